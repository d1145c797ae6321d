package access

import (
	"reflect"
	"testing"

	"github.com/assetdeck/backend/internal/models"
	"github.com/google/uuid"
)

func makeRule(criteria models.RuleCriteria, operator models.RuleOperator, values ...string) models.AccessRule {
	return models.AccessRule{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Criteria:  criteria,
		Operator:  operator,
		Values:    models.StringList(values),
	}
}

func TestFolderOverridePolicy_Resolve(t *testing.T) {
	policy := FolderOverridePolicy{}

	folderRule := makeRule(models.RuleCriteriaUserRole, models.RuleOperatorBlock, "VIEWER")
	fileRule := makeRule(models.RuleCriteriaCollectionAccess, models.RuleOperatorAllowOnly, "Sales")

	t.Run("folder rules win when non-empty", func(t *testing.T) {
		view := policy.Resolve([]models.AccessRule{folderRule}, []models.AccessRule{fileRule})

		if view.Source != SourceFolder {
			t.Errorf("expected source folder, got %s", view.Source)
		}
		if !view.Inherited {
			t.Error("expected inherited flag to be set")
		}
		if len(view.ActiveRules) != 1 || view.ActiveRules[0].ID != folderRule.ID {
			t.Errorf("expected active rules to be the folder rules, got %+v", view.ActiveRules)
		}
		if len(view.ShadowedRules) != 1 || view.ShadowedRules[0].ID != fileRule.ID {
			t.Errorf("expected file rules to be shadowed, got %+v", view.ShadowedRules)
		}
	})

	t.Run("file rules active when folder set empty", func(t *testing.T) {
		view := policy.Resolve(nil, []models.AccessRule{fileRule})

		if view.Source != SourceFile {
			t.Errorf("expected source file, got %s", view.Source)
		}
		if view.Inherited {
			t.Error("expected inherited flag to be unset")
		}
		if len(view.ActiveRules) != 1 || view.ActiveRules[0].ID != fileRule.ID {
			t.Errorf("expected active rules to be the file rules, got %+v", view.ActiveRules)
		}
		if len(view.ShadowedRules) != 0 {
			t.Errorf("expected no shadowed rules, got %+v", view.ShadowedRules)
		}
	})

	t.Run("both sets empty still resolves to file source", func(t *testing.T) {
		view := policy.Resolve(nil, nil)

		if view.Source != SourceFile {
			t.Errorf("expected source file, got %s", view.Source)
		}
		if len(view.ActiveRules) != 0 || len(view.ShadowedRules) != 0 {
			t.Errorf("expected empty view, got %+v", view)
		}
	})

	t.Run("never mutates its inputs", func(t *testing.T) {
		folderRules := []models.AccessRule{folderRule}
		fileRules := []models.AccessRule{fileRule}
		folderBefore := append([]models.AccessRule{}, folderRules...)
		fileBefore := append([]models.AccessRule{}, fileRules...)

		policy.Resolve(folderRules, fileRules)
		policy.Resolve(folderRules, fileRules)

		if !reflect.DeepEqual(folderRules, folderBefore) {
			t.Error("folder rules were mutated by Resolve")
		}
		if !reflect.DeepEqual(fileRules, fileBefore) {
			t.Error("file rules were mutated by Resolve")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		folderRules := []models.AccessRule{folderRule}
		fileRules := []models.AccessRule{fileRule}

		first := policy.Resolve(folderRules, fileRules)
		second := policy.Resolve(folderRules, fileRules)

		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical results for identical inputs")
		}
	})
}

func TestPolicyForScenario(t *testing.T) {
	t.Run("folder override scenario is implemented", func(t *testing.T) {
		policy, err := PolicyForScenario(models.ScenarioFolderOverride)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.ScenarioID() != models.ScenarioFolderOverride {
			t.Errorf("expected scenario-1 policy, got %s", policy.ScenarioID())
		}
	})

	t.Run("placeholder scenarios are unavailable", func(t *testing.T) {
		for _, id := range []string{
			models.ScenarioInheritCopy,
			models.ScenarioLayered,
			models.ScenarioFolderOnly,
			models.ScenarioAdditive,
		} {
			if _, err := PolicyForScenario(id); err != ErrScenarioUnavailable {
				t.Errorf("scenario %s: expected ErrScenarioUnavailable, got %v", id, err)
			}
		}
	})

	t.Run("unknown scenario is unavailable", func(t *testing.T) {
		if _, err := PolicyForScenario("scenario-42"); err != ErrScenarioUnavailable {
			t.Errorf("expected ErrScenarioUnavailable, got %v", err)
		}
	})
}
