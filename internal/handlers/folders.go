package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/assetdeck/backend/internal/models"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/pkg/logger"
	"github.com/assetdeck/backend/pkg/utils"
)

type FoldersHandler struct {
	DB    *gorm.DB
	Rules *services.RuleService
}

func NewFoldersHandler(db *gorm.DB, rules *services.RuleService) *FoldersHandler {
	return &FoldersHandler{DB: db, Rules: rules}
}

type createFolderRequest struct {
	Name         string  `json:"name"`
	ThumbnailURL string  `json:"thumbnailURL"`
	ParentID     *string `json:"parentID"`
}

func (h *FoldersHandler) Create(c *fiber.Ctx) error {
	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	name := sanitizeText(req.Name)
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	thumbnail := strings.TrimSpace(req.ThumbnailURL)
	if thumbnail == "" {
		thumbnail = models.DefaultFolderThumbnailURL
	}

	var parentID *uuid.UUID
	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) != "" {
		parsed, err := parseUUID(*req.ParentID)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid parentID")
		}
		if err := h.DB.First(&models.Folder{}, "id = ?", parsed).Error; err != nil {
			return respondStoreError(c, err, "parent folder not found")
		}
		parentID = &parsed
	}

	folder := models.Folder{
		Name:         name,
		ThumbnailURL: thumbnail,
		ParentID:     parentID,
	}

	if err := h.DB.Create(&folder).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating folder")
	}

	logger.Info("folder_created", map[string]interface{}{
		"folder_id":   folder.ID.String(),
		"folder_name": folder.Name,
		"request_id":  getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, folder)
}

func (h *FoldersHandler) List(c *fiber.Ctx) error {
	query := h.DB.Model(&models.Folder{}).Order("name")

	parentIDRaw := strings.TrimSpace(c.Query("parentID"))
	if parentIDRaw == "" {
		query = query.Where("parent_id IS NULL")
	} else {
		parsed, err := parseUUID(parentIDRaw)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid parentID")
		}
		query = query.Where("parent_id = ?", parsed)
	}

	var folders []models.Folder
	if err := query.Find(&folders).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing folders")
	}

	return utils.Success(c, fiber.StatusOK, folders)
}

func (h *FoldersHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	var folder models.Folder
	if err := h.DB.Preload("Rules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&folder, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "folder not found")
	}

	return utils.Success(c, fiber.StatusOK, folder)
}

type updateFolderRequest struct {
	Name         *string `json:"name"`
	ThumbnailURL *string `json:"thumbnailURL"`
}

func (h *FoldersHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	var req updateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var folder models.Folder
	if err := h.DB.First(&folder, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "folder not found")
	}

	if req.Name != nil {
		name := sanitizeText(*req.Name)
		if name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
		}
		folder.Name = name
	}
	if req.ThumbnailURL != nil {
		thumbnail := strings.TrimSpace(*req.ThumbnailURL)
		if thumbnail == "" {
			thumbnail = models.DefaultFolderThumbnailURL
		}
		folder.ThumbnailURL = thumbnail
	}

	if err := h.DB.Save(&folder).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating folder")
	}

	return utils.Success(c, fiber.StatusOK, folder)
}

// Delete removes a folder together with every file it contains and all
// rules on either. Files never outlive their folder.
func (h *FoldersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	var folder models.Folder
	if err := h.DB.First(&folder, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "folder not found")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var fileIDs []uuid.UUID
		if err := tx.Model(&models.File{}).
			Where("folder_id = ?", id).
			Pluck("id", &fileIDs).Error; err != nil {
			return err
		}

		if len(fileIDs) > 0 {
			if err := tx.Where("file_id IN ?", fileIDs).Delete(&models.AccessRule{}).Error; err != nil {
				return err
			}
			if err := tx.Where("folder_id = ?", id).Delete(&models.File{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("folder_id = ?", id).Delete(&models.AccessRule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&folder).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting folder")
	}

	h.Rules.EndFolderSession(id)

	logger.Info("folder_deleted", map[string]interface{}{
		"folder_id":  id.String(),
		"file_count": folder.FileCount,
		"request_id": getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
