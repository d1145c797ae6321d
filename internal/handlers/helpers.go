package handlers

import (
	"errors"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/assetdeck/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

var (
	sanitizePolicy     *bluemonday.Policy
	sanitizePolicyOnce sync.Once
)

// sanitizeText strips any markup from user-supplied names and descriptions.
// The panel renders plain text only.
func sanitizeText(input string) string {
	sanitizePolicyOnce.Do(func() {
		sanitizePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(sanitizePolicy.Sanitize(input))
}

func respondStoreError(c *fiber.Ctx, err error, notFoundMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Error(c, fiber.StatusNotFound, notFoundMessage)
	}
	return utils.Error(c, fiber.StatusInternalServerError, "internal error")
}

func getRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestID").(string); ok {
		return id
	}
	return ""
}
