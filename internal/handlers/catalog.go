package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetdeck/backend/internal/models"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/pkg/utils"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// Values lists the selectable values for one rule criteria in catalog order.
func (h *CatalogHandler) Values(c *fiber.Ctx) error {
	criteria := models.RuleCriteria(c.Params("criteria"))
	if !criteria.Valid() {
		return utils.Error(c, fiber.StatusBadRequest, "unknown criteria")
	}

	values, err := h.Catalog.ValuesFor(c.Context(), criteria)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading catalog values")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"criteria": criteria,
		"values":   values,
	})
}
