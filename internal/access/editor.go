package access

import (
	"context"
	"strings"

	"github.com/assetdeck/backend/internal/models"
	"github.com/google/uuid"
)

type EditorMode string

const (
	EditorModeCreate EditorMode = "create"
	EditorModeEdit   EditorMode = "edit"
)

// EditorSession holds the working state of one rule create/edit dialog:
// selected criteria, operator, value selection and the catalog search
// filter. Nothing touches a committed rule set until Save hands the
// finished rule back to the caller.
type EditorSession struct {
	mode     EditorMode
	ruleID   uuid.UUID
	criteria models.RuleCriteria
	operator models.RuleOperator
	values   []string
	query    string
	catalog  Catalog
}

// NewCreateSession starts an editor with the create-mode defaults.
func NewCreateSession(catalog Catalog) *EditorSession {
	return &EditorSession{
		mode:     EditorModeCreate,
		criteria: models.RuleCriteriaCollectionAccess,
		operator: models.RuleOperatorAllowOnly,
		values:   []string{},
		catalog:  catalog,
	}
}

// NewEditSession starts an editor seeded from an existing rule. The rule in
// the store is untouched until Save.
func NewEditSession(catalog Catalog, rule models.AccessRule) *EditorSession {
	values := make([]string, len(rule.Values))
	copy(values, rule.Values)
	return &EditorSession{
		mode:     EditorModeEdit,
		ruleID:   rule.ID,
		criteria: rule.Criteria,
		operator: rule.Operator,
		values:   values,
		catalog:  catalog,
	}
}

func (s *EditorSession) Mode() EditorMode              { return s.mode }
func (s *EditorSession) Criteria() models.RuleCriteria { return s.criteria }
func (s *EditorSession) Operator() models.RuleOperator { return s.operator }
func (s *EditorSession) Query() string                 { return s.query }

// Values returns a copy of the working selection in selection order.
func (s *EditorSession) Values() []string {
	values := make([]string, len(s.values))
	copy(values, s.values)
	return values
}

// SelectCriteria switches the criteria and clears the working selection:
// the catalogs are disjoint, so stale values would be meaningless. The
// operator is kept.
func (s *EditorSession) SelectCriteria(criteria models.RuleCriteria) error {
	if !criteria.Valid() {
		return ErrUnknownCriteria
	}
	if criteria == s.criteria {
		return nil
	}
	s.criteria = criteria
	s.values = []string{}
	return nil
}

// SelectOperator switches the operator without affecting the selection.
func (s *EditorSession) SelectOperator(operator models.RuleOperator) error {
	if !operator.Valid() {
		return ErrUnknownOperator
	}
	s.operator = operator
	return nil
}

// ToggleValue adds the value to the selection if absent and removes it if
// present. Values must come from the current criteria's catalog.
func (s *EditorSession) ToggleValue(ctx context.Context, value string) error {
	for i, existing := range s.values {
		if existing == value {
			s.values = append(s.values[:i], s.values[i+1:]...)
			return nil
		}
	}

	available, err := s.catalog.ValuesFor(ctx, s.criteria)
	if err != nil {
		return err
	}
	for _, candidate := range available {
		if candidate == value {
			s.values = append(s.values, value)
			return nil
		}
	}
	return ErrValueNotInCatalog
}

// Search sets the catalog filter. It does not affect the selection.
func (s *EditorSession) Search(query string) {
	s.query = query
}

// FilteredValues returns the catalog entries for the current criteria that
// match the search filter, case-insensitively, in catalog order.
func (s *EditorSession) FilteredValues(ctx context.Context) ([]string, error) {
	available, err := s.catalog.ValuesFor(ctx, s.criteria)
	if err != nil {
		return nil, err
	}
	if s.query == "" {
		return available, nil
	}

	needle := strings.ToLower(s.query)
	filtered := make([]string, 0, len(available))
	for _, value := range available {
		if strings.Contains(strings.ToLower(value), needle) {
			filtered = append(filtered, value)
		}
	}
	return filtered, nil
}

// ClearAll empties the working selection without closing the editor.
func (s *EditorSession) ClearAll() {
	s.values = []string{}
}

// CanSave reports whether Save would succeed. A rule with zero values must
// never be persisted, so the save action stays disabled until a value is
// selected.
func (s *EditorSession) CanSave() bool {
	return len(s.values) > 0
}

// Save produces the finished rule. In edit mode the existing rule id is
// reused; in create mode a fresh id is minted. The session is done after a
// successful Save.
func (s *EditorSession) Save() (models.AccessRule, error) {
	if len(s.values) == 0 {
		return models.AccessRule{}, ErrInvalidRule
	}

	id := s.ruleID
	if s.mode == EditorModeCreate {
		id = uuid.New()
	}

	values := make(models.StringList, len(s.values))
	copy(values, s.values)

	return models.AccessRule{
		BaseModel: models.BaseModel{ID: id},
		Criteria:  s.criteria,
		Operator:  s.operator,
		Values:    values,
	}, nil
}
