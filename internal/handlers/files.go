package handlers

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/assetdeck/backend/internal/models"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/internal/storage"
	"github.com/assetdeck/backend/pkg/linktoken"
	"github.com/assetdeck/backend/pkg/logger"
	"github.com/assetdeck/backend/pkg/utils"
)

type FilesHandler struct {
	DB      *gorm.DB
	Rules   *services.RuleService
	Storage storage.Store
}

func NewFilesHandler(db *gorm.DB, rules *services.RuleService, store storage.Store) *FilesHandler {
	return &FilesHandler{DB: db, Rules: rules, Storage: store}
}

type fileRequest struct {
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Type              string     `json:"type"`
	Size              int64      `json:"size"`
	Resolution        *string    `json:"resolution"`
	ThumbnailURL      string     `json:"thumbnailURL"`
	Channels          []string   `json:"channels"`
	AvailabilityStart *time.Time `json:"availabilityStart"`
	AvailabilityEnd   *time.Time `json:"availabilityEnd"`
}

func (r *fileRequest) toModel(folderID uuid.UUID) (models.File, error) {
	name := sanitizeText(r.Name)
	if name == "" {
		return models.File{}, fmt.Errorf("name is required")
	}

	fileType := models.FileType(strings.ToUpper(strings.TrimSpace(r.Type)))
	if !fileType.Valid() {
		return models.File{}, fmt.Errorf("unknown file type %q", r.Type)
	}

	channels := make(models.StringList, 0, len(r.Channels))
	for _, raw := range r.Channels {
		ch := models.UsageChannel(strings.TrimSpace(raw))
		if !ch.Valid() {
			return models.File{}, fmt.Errorf("unknown channel %q", raw)
		}
		channels = append(channels, string(ch))
	}

	if r.AvailabilityStart != nil && r.AvailabilityEnd != nil &&
		r.AvailabilityEnd.Before(*r.AvailabilityStart) {
		return models.File{}, fmt.Errorf("availabilityEnd precedes availabilityStart")
	}

	return models.File{
		FolderID:          folderID,
		Name:              name,
		Description:       sanitizeText(r.Description),
		Type:              fileType,
		UploadedAt:        time.Now().UTC(),
		Size:              r.Size,
		Resolution:        r.Resolution,
		ThumbnailURL:      strings.TrimSpace(r.ThumbnailURL),
		Channels:          channels,
		AvailabilityStart: r.AvailabilityStart,
		AvailabilityEnd:   r.AvailabilityEnd,
	}, nil
}

type batchUploadRequest struct {
	Files []fileRequest `json:"files"`
}

// Upload registers one or more file metadata records under a folder. The
// whole batch lands or none of it does.
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	var folder models.Folder
	if err := h.DB.First(&folder, "id = ?", folderID).Error; err != nil {
		return respondStoreError(c, err, "folder not found")
	}

	var req batchUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Files) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "no files provided")
	}

	files := make([]models.File, 0, len(req.Files))
	for _, fr := range req.Files {
		file, err := fr.toModel(folderID)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, err.Error())
		}
		files = append(files, file)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&files).Error; err != nil {
			return err
		}
		return tx.Model(&models.Folder{}).
			Where("id = ?", folderID).
			UpdateColumn("file_count", gorm.Expr("file_count + ?", len(files))).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed uploading files")
	}

	logger.Info("files_uploaded", map[string]interface{}{
		"folder_id":  folderID.String(),
		"count":      len(files),
		"request_id": getRequestID(c),
	})

	return utils.Success(c, fiber.StatusCreated, files)
}

func (h *FilesHandler) ListByFolder(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("folderID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	if err := h.DB.First(&models.Folder{}, "id = ?", folderID).Error; err != nil {
		return respondStoreError(c, err, "folder not found")
	}

	var files []models.File
	if err := h.DB.Where("folder_id = ?", folderID).
		Order("uploaded_at DESC").
		Find(&files).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing files")
	}

	return utils.Success(c, fiber.StatusOK, files)
}

func (h *FilesHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var file models.File
	if err := h.DB.Preload("Rules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&file, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "file not found")
	}

	return utils.Success(c, fiber.StatusOK, file)
}

type updateFileRequest struct {
	Name              *string    `json:"name"`
	Description       *string    `json:"description"`
	ThumbnailURL      *string    `json:"thumbnailURL"`
	Channels          *[]string  `json:"channels"`
	AvailabilityStart *time.Time `json:"availabilityStart"`
	AvailabilityEnd   *time.Time `json:"availabilityEnd"`
}

func (h *FilesHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var req updateFileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var file models.File
	if err := h.DB.First(&file, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "file not found")
	}

	if req.Name != nil {
		name := sanitizeText(*req.Name)
		if name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
		}
		file.Name = name
	}
	if req.Description != nil {
		file.Description = sanitizeText(*req.Description)
	}
	if req.ThumbnailURL != nil {
		file.ThumbnailURL = strings.TrimSpace(*req.ThumbnailURL)
	}
	if req.Channels != nil {
		channels := make(models.StringList, 0, len(*req.Channels))
		for _, raw := range *req.Channels {
			ch := models.UsageChannel(strings.TrimSpace(raw))
			if !ch.Valid() {
				return utils.Error(c, fiber.StatusBadRequest, fmt.Sprintf("unknown channel %q", raw))
			}
			channels = append(channels, string(ch))
		}
		file.Channels = channels
	}
	if req.AvailabilityStart != nil {
		file.AvailabilityStart = req.AvailabilityStart
	}
	if req.AvailabilityEnd != nil {
		file.AvailabilityEnd = req.AvailabilityEnd
	}
	if file.AvailabilityStart != nil && file.AvailabilityEnd != nil &&
		file.AvailabilityEnd.Before(*file.AvailabilityStart) {
		return utils.Error(c, fiber.StatusBadRequest, "availabilityEnd precedes availabilityStart")
	}

	if err := h.DB.Save(&file).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating file")
	}

	return utils.Success(c, fiber.StatusOK, file)
}

func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var file models.File
	if err := h.DB.First(&file, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "file not found")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", id).Delete(&models.AccessRule{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&file).Error; err != nil {
			return err
		}
		return tx.Model(&models.Folder{}).
			Where("id = ? AND file_count > 0", file.FolderID).
			UpdateColumn("file_count", gorm.Expr("file_count - 1")).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting file")
	}

	logger.Info("file_deleted", map[string]interface{}{
		"file_id":    id.String(),
		"folder_id":  file.FolderID.String(),
		"request_id": getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// EffectiveAccess reports which rule set governs the file after folder
// inheritance is applied.
func (h *FilesHandler) EffectiveAccess(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	view, err := h.Rules.EffectiveAccessForFile(c.Context(), id)
	if err != nil {
		return respondStoreError(c, err, "file not found")
	}

	return utils.Success(c, fiber.StatusOK, view)
}

// DownloadURL mints a short-lived signed link for the file.
func (h *FilesHandler) DownloadURL(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var file models.File
	if err := h.DB.First(&file, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "file not found")
	}

	token, err := linktoken.Generate(file.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating download link")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"url":   "/api/downloads/" + token,
		"token": token,
	})
}

// Download resolves a signed link back to its file metadata.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	claims, err := linktoken.Validate(c.Params("token"))
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "invalid or expired download link")
	}

	var file models.File
	if err := h.DB.First(&file, "id = ?", claims.FileID).Error; err != nil {
		return respondStoreError(c, err, "file not found")
	}

	logger.Info("file_downloaded", map[string]interface{}{
		"file_id":    file.ID.String(),
		"file_name":  file.Name,
		"request_id": getRequestID(c),
	})

	return utils.Success(c, fiber.StatusOK, file)
}

// UploadThumbnail stores raw thumbnail bytes for a file and rewrites its
// thumbnail URL to the serving endpoint.
func (h *FilesHandler) UploadThumbnail(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var file models.File
	if err := h.DB.First(&file, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "file not found")
	}

	body := c.Body()
	if len(body) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "empty thumbnail body")
	}

	contentType := c.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := "thumbnails/" + file.ID.String()
	if err := h.Storage.Upload(c.Context(), objectName, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		logger.Error("thumbnail_upload_failed", err, map[string]interface{}{
			"file_id": file.ID.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed storing thumbnail")
	}

	file.ThumbnailURL = "/api/files/" + file.ID.String() + "/thumbnail"
	if err := h.DB.Save(&file).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating file")
	}

	return utils.Success(c, fiber.StatusOK, file)
}

func (h *FilesHandler) DownloadThumbnail(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	if err := h.DB.First(&models.File{}, "id = ?", id).Error; err != nil {
		return respondStoreError(c, err, "file not found")
	}

	reader, err := h.Storage.Download(c.Context(), "thumbnails/"+id.String())
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "thumbnail not found")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed reading thumbnail")
	}

	return c.Send(data)
}
