package access

import (
	"testing"

	"github.com/assetdeck/backend/internal/models"
)

func TestTransitionGuard_FirstRule(t *testing.T) {
	rule := makeRule(models.RuleCriteriaUserRole, models.RuleOperatorBlock, "VIEWER")

	t.Run("first rule on empty baseline parks for confirmation", func(t *testing.T) {
		guard := NewTransitionGuard(0)

		parked, err := guard.Submit(rule)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !parked {
			t.Fatal("expected rule to be parked for confirmation")
		}
		if guard.State() != GuardAwaitingConfirmation {
			t.Errorf("expected awaiting_confirmation, got %s", guard.State())
		}
		pending := guard.Pending()
		if pending == nil || pending.ID != rule.ID {
			t.Errorf("expected pending rule %s, got %+v", rule.ID, pending)
		}
	})

	t.Run("confirm releases the pending rule", func(t *testing.T) {
		guard := NewTransitionGuard(0)
		if _, err := guard.Submit(rule); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		released, err := guard.Confirm()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if released.ID != rule.ID {
			t.Errorf("expected released rule %s, got %s", rule.ID, released.ID)
		}
		if guard.State() != GuardCommitted {
			t.Errorf("expected committed, got %s", guard.State())
		}

		guard.Reset()
		if guard.State() != GuardIdle {
			t.Errorf("expected idle after reset, got %s", guard.State())
		}
	})

	t.Run("later submissions after a confirm go straight through", func(t *testing.T) {
		guard := NewTransitionGuard(0)
		if _, err := guard.Submit(rule); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := guard.Confirm(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		guard.Reset()

		second := makeRule(models.RuleCriteriaCollectionAccess, models.RuleOperatorAllowOnly, "Sales")
		parked, err := guard.Submit(second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parked {
			t.Error("expected second rule to pass without confirmation")
		}
	})

	t.Run("cancel discards the pending rule", func(t *testing.T) {
		guard := NewTransitionGuard(0)
		if _, err := guard.Submit(rule); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := guard.Cancel(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if guard.State() != GuardIdle {
			t.Errorf("expected idle after cancel, got %s", guard.State())
		}
		if guard.Pending() != nil {
			t.Error("expected no pending rule after cancel")
		}

		// A cancel does not count as a confirmation: the next submission
		// must ask again.
		parked, err := guard.Submit(rule)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !parked {
			t.Error("expected next submission after cancel to park again")
		}
	})
}

func TestTransitionGuard_NonEmptyBaseline(t *testing.T) {
	rule := makeRule(models.RuleCriteriaUserRole, models.RuleOperatorAllowOnly, "ADMIN")

	guard := NewTransitionGuard(2)
	parked, err := guard.Submit(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parked {
		t.Error("expected submission on non-empty baseline to pass directly")
	}
	if guard.State() != GuardIdle {
		t.Errorf("expected idle, got %s", guard.State())
	}
}

func TestTransitionGuard_Violations(t *testing.T) {
	rule := makeRule(models.RuleCriteriaUserRole, models.RuleOperatorBlock, "VIEWER")

	t.Run("confirm without pending rule fails loudly", func(t *testing.T) {
		guard := NewTransitionGuard(0)
		if _, err := guard.Confirm(); err != ErrGuardViolation {
			t.Errorf("expected ErrGuardViolation, got %v", err)
		}
	})

	t.Run("cancel without pending rule fails loudly", func(t *testing.T) {
		guard := NewTransitionGuard(0)
		if err := guard.Cancel(); err != ErrGuardViolation {
			t.Errorf("expected ErrGuardViolation, got %v", err)
		}
	})

	t.Run("submit while awaiting confirmation fails loudly", func(t *testing.T) {
		guard := NewTransitionGuard(0)
		if _, err := guard.Submit(rule); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := guard.Submit(rule); err != ErrGuardViolation {
			t.Errorf("expected ErrGuardViolation, got %v", err)
		}
	})
}
