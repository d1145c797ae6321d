package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetdeck/backend/internal/models"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/pkg/logger"
	"github.com/assetdeck/backend/pkg/utils"
)

type ScenariosHandler struct {
	Scenario *services.ScenarioState
}

func NewScenariosHandler(scenario *services.ScenarioState) *ScenariosHandler {
	return &ScenariosHandler{Scenario: scenario}
}

// List returns every known scenario together with the currently active one.
func (h *ScenariosHandler) List(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"scenarios": models.Scenarios,
		"current":   h.Scenario.Current(),
	})
}

type selectScenarioRequest struct {
	ID string `json:"id"`
}

// Select switches the active scenario. Unimplemented scenarios are rejected.
func (h *ScenariosHandler) Select(c *fiber.Ctx) error {
	var req selectScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.Scenario.Select(req.ID); err != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "scenario is not available")
	}

	logger.Info("scenario_selected", map[string]interface{}{
		"scenario_id": req.ID,
		"request_id":  getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"current": h.Scenario.Current()})
}
