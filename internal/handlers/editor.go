package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/assetdeck/backend/internal/access"
	"github.com/assetdeck/backend/internal/models"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/pkg/logger"
	"github.com/assetdeck/backend/pkg/utils"
)

// EditorHandler exposes the rule create/edit dialog over HTTP. Every session
// action returns the full session view so the panel can re-render from one
// response.
type EditorHandler struct {
	Manager *services.EditorManager
	Rules   *services.RuleService
}

func NewEditorHandler(manager *services.EditorManager, rules *services.RuleService) *EditorHandler {
	return &EditorHandler{Manager: manager, Rules: rules}
}

type editorSessionView struct {
	ID             uuid.UUID           `json:"id"`
	Owner          services.RuleOwner  `json:"owner"`
	Mode           access.EditorMode   `json:"mode"`
	Criteria       models.RuleCriteria `json:"criteria"`
	Operator       models.RuleOperator `json:"operator"`
	Values         []string            `json:"values"`
	Query          string              `json:"query"`
	FilteredValues []string            `json:"filteredValues"`
	CanSave        bool                `json:"canSave"`
}

func (h *EditorHandler) sessionView(c *fiber.Ctx, entry *services.EditorEntry) (editorSessionView, error) {
	filtered, err := entry.Session.FilteredValues(c.Context())
	if err != nil {
		return editorSessionView{}, err
	}
	return editorSessionView{
		ID:             entry.ID,
		Owner:          entry.Owner,
		Mode:           entry.Session.Mode(),
		Criteria:       entry.Session.Criteria(),
		Operator:       entry.Session.Operator(),
		Values:         entry.Session.Values(),
		Query:          entry.Session.Query(),
		FilteredValues: filtered,
		CanSave:        entry.Session.CanSave(),
	}, nil
}

func (h *EditorHandler) respondSession(c *fiber.Ctx, status int, entry *services.EditorEntry) error {
	view, err := h.sessionView(c, entry)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading catalog values")
	}
	return utils.Success(c, status, view)
}

type startSessionRequest struct {
	FolderID *string `json:"folderID"`
	FileID   *string `json:"fileID"`
	RuleID   *string `json:"ruleID"`
}

// Start opens an editor session. With a ruleID the session opens in edit
// mode seeded from the stored rule; otherwise it opens in create mode with
// the dialog defaults.
func (h *EditorHandler) Start(c *fiber.Ctx) error {
	var req startSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var owner services.RuleOwner
	switch {
	case req.FolderID != nil && req.FileID != nil:
		return utils.Error(c, fiber.StatusBadRequest, "provide either folderID or fileID, not both")
	case req.FolderID != nil:
		id, err := parseUUID(*req.FolderID)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid folderID")
		}
		owner.FolderID = &id
	case req.FileID != nil:
		id, err := parseUUID(*req.FileID)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid fileID")
		}
		owner.FileID = &id
	default:
		return utils.Error(c, fiber.StatusBadRequest, "folderID or fileID is required")
	}

	var entry *services.EditorEntry
	if req.RuleID != nil && strings.TrimSpace(*req.RuleID) != "" {
		ruleID, err := parseUUID(*req.RuleID)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid ruleID")
		}
		rule, err := h.Rules.GetRule(c.Context(), ruleID)
		if err != nil {
			return respondStoreError(c, err, "rule not found")
		}
		entry = h.Manager.StartEdit(owner, rule)
	} else {
		entry = h.Manager.StartCreate(owner)
	}

	logger.Info("editor_session_started", map[string]interface{}{
		"session_id": entry.ID.String(),
		"mode":       string(entry.Session.Mode()),
		"request_id": getRequestID(c),
	})

	return h.respondSession(c, fiber.StatusCreated, entry)
}

func (h *EditorHandler) entry(c *fiber.Ctx) (*services.EditorEntry, error) {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return nil, utils.Error(c, fiber.StatusBadRequest, "invalid session id")
	}
	entry, err := h.Manager.Get(id)
	if err != nil {
		return nil, utils.Error(c, fiber.StatusNotFound, "editor session not found")
	}
	return entry, nil
}

func (h *EditorHandler) Get(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}
	return h.respondSession(c, fiber.StatusOK, entry)
}

type selectCriteriaRequest struct {
	Criteria string `json:"criteria"`
}

func (h *EditorHandler) SelectCriteria(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}

	var req selectCriteriaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := entry.Session.SelectCriteria(models.RuleCriteria(req.Criteria)); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return h.respondSession(c, fiber.StatusOK, entry)
}

type selectOperatorRequest struct {
	Operator string `json:"operator"`
}

func (h *EditorHandler) SelectOperator(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}

	var req selectOperatorRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := entry.Session.SelectOperator(models.RuleOperator(req.Operator)); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return h.respondSession(c, fiber.StatusOK, entry)
}

type toggleValueRequest struct {
	Value string `json:"value"`
}

func (h *EditorHandler) ToggleValue(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}

	var req toggleValueRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := entry.Session.ToggleValue(c.Context(), req.Value); err != nil {
		if errors.Is(err, access.ErrValueNotInCatalog) {
			return utils.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading catalog values")
	}
	return h.respondSession(c, fiber.StatusOK, entry)
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *EditorHandler) Search(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}

	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry.Session.Search(req.Query)
	return h.respondSession(c, fiber.StatusOK, entry)
}

func (h *EditorHandler) ClearAll(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}

	entry.Session.ClearAll()
	return h.respondSession(c, fiber.StatusOK, entry)
}

// Save finishes the session and routes the rule to its owner. Folder
// create-saves can come back parked by the inheritance guard; the session is
// done either way and the confirmation runs over the folder guard endpoints.
func (h *EditorHandler) Save(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}

	rule, err := entry.Session.Save()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "select at least one value")
	}

	if entry.Session.Mode() == access.EditorModeEdit {
		updated, err := h.Rules.UpdateRule(c.Context(), rule)
		if err != nil {
			return respondRuleError(c, err)
		}
		h.Manager.End(entry.ID)
		return utils.Success(c, fiber.StatusOK, services.GuardDecision{
			State:     access.GuardIdle,
			Committed: &updated,
		})
	}

	if entry.Owner.FolderID != nil {
		decision, err := h.Rules.AddFolderRule(c.Context(), *entry.Owner.FolderID, rule)
		if err != nil {
			return respondRuleError(c, err)
		}
		h.Manager.End(entry.ID)

		status := fiber.StatusCreated
		if decision.State == access.GuardAwaitingConfirmation {
			status = fiber.StatusAccepted
		}
		return utils.Success(c, status, decision)
	}

	committed, err := h.Rules.AddFileRule(c.Context(), *entry.Owner.FileID, rule)
	if err != nil {
		return respondRuleError(c, err)
	}
	h.Manager.End(entry.ID)
	return utils.Success(c, fiber.StatusCreated, services.GuardDecision{
		State:     access.GuardIdle,
		Committed: &committed,
	})
}

// Cancel discards the session without touching any committed rule set.
func (h *EditorHandler) Cancel(c *fiber.Ctx) error {
	entry, err := h.entry(c)
	if entry == nil {
		return err
	}

	h.Manager.End(entry.ID)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"cancelled": true})
}
