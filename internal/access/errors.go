package access

import "errors"

var (
	// ErrInvalidRule is returned when a rule with no values would be saved.
	ErrInvalidRule = errors.New("rule must have at least one value")

	// ErrGuardViolation indicates a confirm or cancel on a guard that is not
	// awaiting confirmation. This is a caller bug, not a user-facing state.
	ErrGuardViolation = errors.New("guard is not awaiting confirmation")

	// ErrUnknownCriteria is returned for a criteria outside the closed set.
	ErrUnknownCriteria = errors.New("unknown rule criteria")

	// ErrUnknownOperator is returned for an operator outside the closed set.
	ErrUnknownOperator = errors.New("unknown rule operator")

	// ErrValueNotInCatalog is returned when a toggled value does not exist in
	// the catalog for the session's current criteria.
	ErrValueNotInCatalog = errors.New("value is not in the catalog for this criteria")

	// ErrScenarioUnavailable is returned when a resolution policy is requested
	// for a scenario that has no implementation.
	ErrScenarioUnavailable = errors.New("scenario is not available")
)
