package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/assetdeck/backend/internal/access"
	"github.com/assetdeck/backend/internal/models"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/pkg/logger"
	"github.com/assetdeck/backend/pkg/utils"
)

type RulesHandler struct {
	Rules *services.RuleService
}

func NewRulesHandler(rules *services.RuleService) *RulesHandler {
	return &RulesHandler{Rules: rules}
}

type ruleRequest struct {
	Criteria string   `json:"criteria"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

func (r ruleRequest) toModel() models.AccessRule {
	return models.AccessRule{
		Criteria: models.RuleCriteria(r.Criteria),
		Operator: models.RuleOperator(r.Operator),
		Values:   models.StringList(r.Values),
	}
}

func respondRuleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.Error(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, access.ErrGuardViolation):
		return utils.Error(c, fiber.StatusConflict, "no pending rule for this folder")
	case errors.Is(err, access.ErrUnknownCriteria),
		errors.Is(err, access.ErrUnknownOperator),
		errors.Is(err, access.ErrInvalidRule):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		logger.Error("rule_operation_failed", err, map[string]interface{}{
			"request_id": getRequestID(c),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "internal error")
	}
}

func (h *RulesHandler) ListFolderRules(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	rules, err := h.Rules.ListFolderRules(c.Context(), folderID)
	if err != nil {
		return respondRuleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"rules":      rules,
		"guardState": h.Rules.GuardStateFor(folderID),
	})
}

// AddFolderRule submits a rule for a folder. On a folder whose session
// started rule-less the first rule comes back parked with guardState
// awaiting_confirmation instead of committed.
func (h *RulesHandler) AddFolderRule(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	var req ruleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	decision, err := h.Rules.AddFolderRule(c.Context(), folderID, req.toModel())
	if err != nil {
		return respondRuleError(c, err)
	}

	status := fiber.StatusCreated
	if decision.State == access.GuardAwaitingConfirmation {
		status = fiber.StatusAccepted
	}

	logger.Info("folder_rule_submitted", map[string]interface{}{
		"folder_id":   folderID.String(),
		"guard_state": string(decision.State),
		"request_id":  getRequestID(c),
	})

	return utils.Success(c, status, decision)
}

func (h *RulesHandler) ConfirmFolderRule(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	rule, err := h.Rules.ConfirmFolderRule(c.Context(), folderID)
	if err != nil {
		return respondRuleError(c, err)
	}

	logger.Info("folder_rule_confirmed", map[string]interface{}{
		"folder_id":  folderID.String(),
		"rule_id":    rule.ID.String(),
		"request_id": getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, rule)
}

func (h *RulesHandler) CancelFolderRule(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	if err := h.Rules.CancelFolderRule(folderID); err != nil {
		return respondRuleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"guardState": h.Rules.GuardStateFor(folderID),
	})
}

// EndFolderSession closes the folder's edit session so the next one takes a
// fresh baseline.
func (h *RulesHandler) EndFolderSession(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	h.Rules.EndFolderSession(folderID)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"ended": true})
}

func (h *RulesHandler) ListFileRules(c *fiber.Ctx) error {
	fileID, err := parseUUID(c.Params("fileID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	rules, err := h.Rules.ListFileRules(c.Context(), fileID)
	if err != nil {
		return respondRuleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, rules)
}

func (h *RulesHandler) AddFileRule(c *fiber.Ctx) error {
	fileID, err := parseUUID(c.Params("fileID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var req ruleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	rule, err := h.Rules.AddFileRule(c.Context(), fileID, req.toModel())
	if err != nil {
		return respondRuleError(c, err)
	}

	logger.Info("file_rule_added", map[string]interface{}{
		"file_id":    fileID.String(),
		"rule_id":    rule.ID.String(),
		"request_id": getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, rule)
}

func (h *RulesHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid rule id")
	}

	rule, err := h.Rules.GetRule(c.Context(), id)
	if err != nil {
		return respondRuleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, rule)
}

func (h *RulesHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid rule id")
	}

	var req ruleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	rule := req.toModel()
	rule.ID = id

	updated, err := h.Rules.UpdateRule(c.Context(), rule)
	if err != nil {
		return respondRuleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, updated)
}

func (h *RulesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid rule id")
	}

	if err := h.Rules.DeleteRule(c.Context(), id); err != nil {
		return respondRuleError(c, err)
	}

	logger.Info("rule_deleted", map[string]interface{}{
		"rule_id":    id.String(),
		"request_id": getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
