package models

// UserCollection is a selectable value for user_collection_access rules.
// Position preserves the catalog's display order.
type UserCollection struct {
	BaseModel
	Name     string `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Position int    `json:"position" gorm:"not null;default:0"`
}

func (UserCollection) TableName() string {
	return "user_collections"
}

// UserRoleOption is a selectable value for user_role rules.
type UserRoleOption struct {
	BaseModel
	Name     string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Position int    `json:"position" gorm:"not null;default:0"`
}

func (UserRoleOption) TableName() string {
	return "user_roles"
}
