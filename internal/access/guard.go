package access

import "github.com/assetdeck/backend/internal/models"

// GuardState is exposed to the presentation layer so it can render or hide
// the confirmation prompt.
type GuardState string

const (
	GuardIdle                 GuardState = "idle"
	GuardAwaitingConfirmation GuardState = "awaiting_confirmation"
	GuardCommitted            GuardState = "committed"
)

// TransitionGuard intercepts the moment a folder's rule set goes from empty
// to non-empty, which silently deactivates every contained file's own rules.
// Only the very first rule added during an edit session that started with an
// empty rule set needs confirmation; once confirmed (or when the folder
// already had rules), later additions in the same session pass straight
// through.
type TransitionGuard struct {
	state         GuardState
	baselineEmpty bool
	confirmed     bool
	pending       *models.AccessRule
}

// NewTransitionGuard starts a guard for one folder edit session.
// baselineRuleCount is the folder's committed rule count at session start,
// not the live in-progress edits.
func NewTransitionGuard(baselineRuleCount int) *TransitionGuard {
	return &TransitionGuard{
		state:         GuardIdle,
		baselineEmpty: baselineRuleCount == 0,
	}
}

func (g *TransitionGuard) State() GuardState {
	return g.state
}

// Pending returns the rule parked for confirmation, if any.
func (g *TransitionGuard) Pending() *models.AccessRule {
	if g.pending == nil {
		return nil
	}
	rule := *g.pending
	return &rule
}

// Submit routes a finished rule through the guard. It returns true when the
// rule was parked and needs an explicit Confirm before it may be committed;
// false means the rule can be appended immediately.
func (g *TransitionGuard) Submit(rule models.AccessRule) (bool, error) {
	if g.state == GuardAwaitingConfirmation {
		// The surface that triggers Submit is disabled while a confirmation
		// is pending, so a second submit means the caller desynchronized.
		return false, ErrGuardViolation
	}

	if g.baselineEmpty && !g.confirmed {
		g.pending = &rule
		g.state = GuardAwaitingConfirmation
		return true, nil
	}

	return false, nil
}

// Confirm releases the pending rule for committing and resets the guard.
// Later submissions in this session no longer require confirmation.
func (g *TransitionGuard) Confirm() (models.AccessRule, error) {
	if g.state != GuardAwaitingConfirmation || g.pending == nil {
		return models.AccessRule{}, ErrGuardViolation
	}

	rule := *g.pending
	g.pending = nil
	g.confirmed = true
	g.state = GuardCommitted
	return rule, nil
}

// Cancel discards the pending rule and returns the guard to idle. The
// folder's rule set is left exactly as it was.
func (g *TransitionGuard) Cancel() error {
	if g.state != GuardAwaitingConfirmation {
		return ErrGuardViolation
	}

	g.pending = nil
	g.state = GuardIdle
	return nil
}

// Reset returns a committed guard to idle so the session can accept the
// next submission directly.
func (g *TransitionGuard) Reset() {
	if g.state == GuardCommitted {
		g.state = GuardIdle
	}
}
