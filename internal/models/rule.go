package models

import "github.com/google/uuid"

// RuleCriteria selects which value catalog a rule draws its values from.
type RuleCriteria string

const (
	RuleCriteriaCollectionAccess RuleCriteria = "user_collection_access"
	RuleCriteriaUserRole         RuleCriteria = "user_role"
)

func (c RuleCriteria) Valid() bool {
	switch c {
	case RuleCriteriaCollectionAccess, RuleCriteriaUserRole:
		return true
	default:
		return false
	}
}

// RuleOperator determines allow-list or deny-list semantics for a rule's values.
type RuleOperator string

const (
	RuleOperatorAllowOnly RuleOperator = "is_any_of"
	RuleOperatorBlock     RuleOperator = "is_none_of"
)

func (o RuleOperator) Valid() bool {
	switch o {
	case RuleOperatorAllowOnly, RuleOperatorBlock:
		return true
	default:
		return false
	}
}

// AccessRule is one access-control statement. A rule belongs to exactly one
// folder or one file; rules of the same owner are AND-combined in Position
// order.
type AccessRule struct {
	BaseModel
	FolderID *uuid.UUID   `json:"folderID,omitempty" gorm:"type:uuid;index"`
	FileID   *uuid.UUID   `json:"fileID,omitempty" gorm:"type:uuid;index"`
	Position int          `json:"position" gorm:"not null;default:0"`
	Criteria RuleCriteria `json:"criteria" gorm:"type:varchar(40);not null"`
	Operator RuleOperator `json:"operator" gorm:"type:varchar(20);not null"`
	Values   StringList   `json:"values" gorm:"type:text;not null"`
}

func (AccessRule) TableName() string {
	return "access_rules"
}
