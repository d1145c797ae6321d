package services

import (
	"context"
	"errors"
	"testing"

	"github.com/assetdeck/backend/internal/access"
	"github.com/assetdeck/backend/internal/models"
)

func TestCatalogService_ValuesFor(t *testing.T) {
	db := setupRulesTestDB(t)
	service := NewCatalogService(db)
	ctx := context.Background()

	collections := []string{"Sales Team", "Marketing Team", "VIP Customers"}
	for i, name := range collections {
		if err := db.Create(&models.UserCollection{Name: name, Position: i}).Error; err != nil {
			t.Fatalf("failed seeding collection: %v", err)
		}
	}
	roles := []string{"ADMIN", "VIEWER"}
	for i, name := range roles {
		if err := db.Create(&models.UserRoleOption{Name: name, Position: i}).Error; err != nil {
			t.Fatalf("failed seeding role: %v", err)
		}
	}

	t.Run("collections come back in catalog order", func(t *testing.T) {
		values, err := service.ValuesFor(ctx, models.RuleCriteriaCollectionAccess)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(values) != len(collections) {
			t.Fatalf("expected %d values, got %d", len(collections), len(values))
		}
		for i, want := range collections {
			if values[i] != want {
				t.Fatalf("expected %q at %d, got %q", want, i, values[i])
			}
		}
	})

	t.Run("roles use their own catalog", func(t *testing.T) {
		values, err := service.ValuesFor(ctx, models.RuleCriteriaUserRole)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(values) != 2 || values[0] != "ADMIN" {
			t.Fatalf("unexpected role catalog: %+v", values)
		}
	})

	t.Run("unknown criteria is rejected", func(t *testing.T) {
		_, err := service.ValuesFor(ctx, "user_region")
		if !errors.Is(err, access.ErrUnknownCriteria) {
			t.Fatalf("expected unknown criteria error, got %v", err)
		}
	})
}

func TestScenarioState(t *testing.T) {
	state := NewScenarioState()

	t.Run("starts on the folder-override scenario", func(t *testing.T) {
		if state.Current() != models.ScenarioFolderOverride {
			t.Fatalf("expected %s, got %s", models.ScenarioFolderOverride, state.Current())
		}
	})

	t.Run("policy matches the current scenario", func(t *testing.T) {
		policy, err := state.Policy()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.ScenarioID() != models.ScenarioFolderOverride {
			t.Fatalf("unexpected policy %s", policy.ScenarioID())
		}
	})

	t.Run("unavailable scenarios cannot be selected", func(t *testing.T) {
		for _, id := range []string{models.ScenarioInheritCopy, models.ScenarioLayered, models.ScenarioFolderOnly, models.ScenarioAdditive, "scenario-99"} {
			if err := state.Select(id); !errors.Is(err, access.ErrScenarioUnavailable) {
				t.Fatalf("expected unavailable error for %s, got %v", id, err)
			}
		}
		if state.Current() != models.ScenarioFolderOverride {
			t.Fatalf("failed selection must not change state, got %s", state.Current())
		}
	})
}
