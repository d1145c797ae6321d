package services

import (
	"sync"

	"github.com/assetdeck/backend/internal/access"
	"github.com/assetdeck/backend/internal/models"
)

// ScenarioState holds the currently selected rights-management scenario for
// the running panel. It starts on the folder-override scenario, the only one
// with an implementation.
type ScenarioState struct {
	mu      sync.RWMutex
	current string
}

func NewScenarioState() *ScenarioState {
	return &ScenarioState{current: models.ScenarioFolderOverride}
}

func (s *ScenarioState) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Select switches the active scenario. Scenarios without an implementation
// cannot be selected.
func (s *ScenarioState) Select(id string) error {
	scenario, ok := models.ScenarioByID(id)
	if !ok || !scenario.Available {
		return access.ErrScenarioUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
	return nil
}

// Policy returns the resolution policy for the active scenario.
func (s *ScenarioState) Policy() (access.Policy, error) {
	return access.PolicyForScenario(s.Current())
}
