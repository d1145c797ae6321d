package access

import (
	"context"
	"reflect"
	"testing"

	"github.com/assetdeck/backend/internal/models"
	"github.com/google/uuid"
)

type staticCatalog struct {
	collections []string
	roles       []string
}

func (c staticCatalog) ValuesFor(_ context.Context, criteria models.RuleCriteria) ([]string, error) {
	switch criteria {
	case models.RuleCriteriaCollectionAccess:
		return c.collections, nil
	case models.RuleCriteriaUserRole:
		return c.roles, nil
	default:
		return nil, ErrUnknownCriteria
	}
}

func testCatalog() staticCatalog {
	return staticCatalog{
		collections: []string{"Pre-order 2024", "Demo Colect WEB - DEV", "Sales"},
		roles:       []string{"ADMIN", "VIEWER", "SALES_AGENT"},
	}
}

func TestEditorSession_Defaults(t *testing.T) {
	t.Run("create mode", func(t *testing.T) {
		session := NewCreateSession(testCatalog())

		if session.Mode() != EditorModeCreate {
			t.Errorf("expected create mode, got %s", session.Mode())
		}
		if session.Criteria() != models.RuleCriteriaCollectionAccess {
			t.Errorf("expected collection access default, got %s", session.Criteria())
		}
		if session.Operator() != models.RuleOperatorAllowOnly {
			t.Errorf("expected allow-only default, got %s", session.Operator())
		}
		if len(session.Values()) != 0 {
			t.Errorf("expected empty selection, got %v", session.Values())
		}
		if session.CanSave() {
			t.Error("expected save to be disabled with no values")
		}
	})

	t.Run("edit mode seeds from the existing rule", func(t *testing.T) {
		existing := makeRule(models.RuleCriteriaUserRole, models.RuleOperatorBlock, "VIEWER", "ADMIN")
		session := NewEditSession(testCatalog(), existing)

		if session.Mode() != EditorModeEdit {
			t.Errorf("expected edit mode, got %s", session.Mode())
		}
		if session.Criteria() != models.RuleCriteriaUserRole {
			t.Errorf("expected seeded criteria, got %s", session.Criteria())
		}
		if session.Operator() != models.RuleOperatorBlock {
			t.Errorf("expected seeded operator, got %s", session.Operator())
		}
		if !reflect.DeepEqual(session.Values(), []string{"VIEWER", "ADMIN"}) {
			t.Errorf("expected seeded values, got %v", session.Values())
		}
	})
}

func TestEditorSession_ToggleValue(t *testing.T) {
	ctx := context.Background()
	session := NewCreateSession(testCatalog())

	t.Run("toggle twice is an involution", func(t *testing.T) {
		if err := session.ToggleValue(ctx, "Sales"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(session.Values(), []string{"Sales"}) {
			t.Errorf("expected [Sales], got %v", session.Values())
		}
		if !session.CanSave() {
			t.Error("expected save to be enabled after toggle")
		}

		if err := session.ToggleValue(ctx, "Sales"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(session.Values()) != 0 {
			t.Errorf("expected empty selection after second toggle, got %v", session.Values())
		}
	})

	t.Run("selection order is preserved", func(t *testing.T) {
		for _, v := range []string{"Demo Colect WEB - DEV", "Sales", "Pre-order 2024"} {
			if err := session.ToggleValue(ctx, v); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		want := []string{"Demo Colect WEB - DEV", "Sales", "Pre-order 2024"}
		if !reflect.DeepEqual(session.Values(), want) {
			t.Errorf("expected %v, got %v", want, session.Values())
		}
	})

	t.Run("value outside the catalog is rejected", func(t *testing.T) {
		if err := session.ToggleValue(ctx, "NOT_A_REAL_VALUE"); err != ErrValueNotInCatalog {
			t.Errorf("expected ErrValueNotInCatalog, got %v", err)
		}
	})
}

func TestEditorSession_SelectCriteria(t *testing.T) {
	ctx := context.Background()
	session := NewCreateSession(testCatalog())
	if err := session.ToggleValue(ctx, "Sales"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.SelectOperator(models.RuleOperatorBlock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("switching criteria clears values but keeps operator", func(t *testing.T) {
		if err := session.SelectCriteria(models.RuleCriteriaUserRole); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(session.Values()) != 0 {
			t.Errorf("expected cleared selection, got %v", session.Values())
		}
		if session.Operator() != models.RuleOperatorBlock {
			t.Errorf("expected operator to survive criteria switch, got %s", session.Operator())
		}
	})

	t.Run("reselecting the same criteria keeps values", func(t *testing.T) {
		if err := session.ToggleValue(ctx, "ADMIN"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := session.SelectCriteria(models.RuleCriteriaUserRole); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(session.Values(), []string{"ADMIN"}) {
			t.Errorf("expected selection to survive, got %v", session.Values())
		}
	})

	t.Run("unknown criteria is rejected", func(t *testing.T) {
		if err := session.SelectCriteria(models.RuleCriteria("shoe_size")); err != ErrUnknownCriteria {
			t.Errorf("expected ErrUnknownCriteria, got %v", err)
		}
	})
}

func TestEditorSession_Search(t *testing.T) {
	ctx := context.Background()
	session := NewCreateSession(testCatalog())
	if err := session.ToggleValue(ctx, "Sales"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("case-insensitive substring match", func(t *testing.T) {
		session.Search("demo")
		filtered, err := session.FilteredValues(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(filtered, []string{"Demo Colect WEB - DEV"}) {
			t.Errorf("expected only the demo collection, got %v", filtered)
		}
	})

	t.Run("search does not affect the selection", func(t *testing.T) {
		if !reflect.DeepEqual(session.Values(), []string{"Sales"}) {
			t.Errorf("expected selection untouched by search, got %v", session.Values())
		}
	})

	t.Run("empty query returns the whole catalog", func(t *testing.T) {
		session.Search("")
		filtered, err := session.FilteredValues(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(filtered) != 3 {
			t.Errorf("expected full catalog, got %v", filtered)
		}
	})
}

func TestEditorSession_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("save with no values is rejected", func(t *testing.T) {
		session := NewCreateSession(testCatalog())
		if _, err := session.Save(); err != ErrInvalidRule {
			t.Errorf("expected ErrInvalidRule, got %v", err)
		}
	})

	t.Run("clear all re-disables save", func(t *testing.T) {
		session := NewCreateSession(testCatalog())
		if err := session.ToggleValue(ctx, "Sales"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		session.ClearAll()
		if session.CanSave() {
			t.Error("expected save to be disabled after clear all")
		}
	})

	t.Run("create mode mints a fresh id", func(t *testing.T) {
		session := NewCreateSession(testCatalog())
		if err := session.ToggleValue(ctx, "Sales"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rule, err := session.Save()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rule.ID == uuid.Nil {
			t.Error("expected a minted rule id")
		}
		if rule.Criteria != models.RuleCriteriaCollectionAccess || rule.Operator != models.RuleOperatorAllowOnly {
			t.Errorf("unexpected rule discriminators: %+v", rule)
		}
		if !reflect.DeepEqual([]string(rule.Values), []string{"Sales"}) {
			t.Errorf("expected [Sales], got %v", rule.Values)
		}
	})

	t.Run("edit mode reuses the existing id", func(t *testing.T) {
		existing := makeRule(models.RuleCriteriaUserRole, models.RuleOperatorBlock, "VIEWER")
		session := NewEditSession(testCatalog(), existing)
		if err := session.ToggleValue(ctx, "ADMIN"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rule, err := session.Save()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rule.ID != existing.ID {
			t.Errorf("expected id %s to be reused, got %s", existing.ID, rule.ID)
		}
		if !reflect.DeepEqual([]string(rule.Values), []string{"VIEWER", "ADMIN"}) {
			t.Errorf("expected [VIEWER ADMIN], got %v", rule.Values)
		}
	})
}
