package handlers

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/assetdeck/backend/internal/middleware"
	"github.com/assetdeck/backend/internal/models"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/internal/storage"
	"github.com/assetdeck/backend/pkg/linktoken"
	"github.com/assetdeck/backend/pkg/logger"
)

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	rules    *services.RuleService
	scenario *services.ScenarioState
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC(), nil
		})
		logger.Init()
		linktoken.Configure("test-secret", 15*time.Minute)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.Folder{},
		&models.File{},
		&models.AccessRule{},
		&models.UserCollection{},
		&models.UserRoleOption{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	seedCatalogs(t, db)

	scenarioState := services.NewScenarioState()
	catalogService := services.NewCatalogService(db)
	ruleService := services.NewRuleService(db, scenarioState)
	editorManager := services.NewEditorManager(catalogService)
	store := storage.NewMemoryStore()

	foldersHandler := NewFoldersHandler(db, ruleService)
	filesHandler := NewFilesHandler(db, ruleService, store)
	rulesHandler := NewRulesHandler(ruleService)
	editorHandler := NewEditorHandler(editorManager, ruleService)
	catalogHandler := NewCatalogHandler(catalogService)
	scenariosHandler := NewScenariosHandler(scenarioState)

	app := fiber.New(fiber.Config{BodyLimit: 25 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS("http://localhost:3001"))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	folderRoutes := api.Group("/folders")
	folderRoutes.Post("/", foldersHandler.Create)
	folderRoutes.Get("/", foldersHandler.List)
	folderRoutes.Get("/:id", foldersHandler.Get)
	folderRoutes.Put("/:id", foldersHandler.Update)
	folderRoutes.Delete("/:id", foldersHandler.Delete)

	folderRoutes.Post("/:folderID/files", filesHandler.Upload)
	folderRoutes.Get("/:folderID/files", filesHandler.ListByFolder)

	folderRoutes.Get("/:folderID/rules", rulesHandler.ListFolderRules)
	folderRoutes.Post("/:folderID/rules", rulesHandler.AddFolderRule)
	folderRoutes.Post("/:folderID/rules/confirm", rulesHandler.ConfirmFolderRule)
	folderRoutes.Post("/:folderID/rules/cancel", rulesHandler.CancelFolderRule)
	folderRoutes.Delete("/:folderID/rules/session", rulesHandler.EndFolderSession)
	folderRoutes.Get("/:folderID/rules/:id", rulesHandler.Get)
	folderRoutes.Put("/:folderID/rules/:id", rulesHandler.Update)
	folderRoutes.Delete("/:folderID/rules/:id", rulesHandler.Delete)

	fileRoutes := api.Group("/files")
	fileRoutes.Get("/:id/access", filesHandler.EffectiveAccess)
	fileRoutes.Get("/:id/download-url", filesHandler.DownloadURL)
	fileRoutes.Post("/:id/thumbnail", filesHandler.UploadThumbnail)
	fileRoutes.Get("/:id/thumbnail", filesHandler.DownloadThumbnail)
	fileRoutes.Get("/:id", filesHandler.Get)
	fileRoutes.Put("/:id", filesHandler.Update)
	fileRoutes.Delete("/:id", filesHandler.Delete)

	fileRoutes.Get("/:fileID/rules", rulesHandler.ListFileRules)
	fileRoutes.Post("/:fileID/rules", rulesHandler.AddFileRule)
	fileRoutes.Get("/:fileID/rules/:id", rulesHandler.Get)
	fileRoutes.Put("/:fileID/rules/:id", rulesHandler.Update)
	fileRoutes.Delete("/:fileID/rules/:id", rulesHandler.Delete)

	api.Get("/downloads/:token", filesHandler.Download)

	editorRoutes := api.Group("/rule-editor")
	editorRoutes.Post("/", editorHandler.Start)
	editorRoutes.Get("/:id", editorHandler.Get)
	editorRoutes.Post("/:id/criteria", editorHandler.SelectCriteria)
	editorRoutes.Post("/:id/operator", editorHandler.SelectOperator)
	editorRoutes.Post("/:id/toggle", editorHandler.ToggleValue)
	editorRoutes.Post("/:id/search", editorHandler.Search)
	editorRoutes.Post("/:id/clear", editorHandler.ClearAll)
	editorRoutes.Post("/:id/save", editorHandler.Save)
	editorRoutes.Delete("/:id", editorHandler.Cancel)

	api.Get("/catalog/:criteria", catalogHandler.Values)

	api.Get("/scenarios", scenariosHandler.List)
	api.Put("/scenarios/current", scenariosHandler.Select)

	return &testEnv{app: app, db: db, rules: ruleService, scenario: scenarioState}
}

func seedCatalogs(t *testing.T, db *gorm.DB) {
	t.Helper()

	collections := []string{"Sales Team", "Marketing Team", "VIP Customers", "Wholesale Partners"}
	for i, name := range collections {
		if err := db.Create(&models.UserCollection{Name: name, Position: i}).Error; err != nil {
			t.Fatalf("failed seeding collection %q: %v", name, err)
		}
	}

	roles := []string{"ADMIN", "EDITOR", "VIEWER", "GUEST"}
	for i, name := range roles {
		if err := db.Create(&models.UserRoleOption{Name: name, Position: i}).Error; err != nil {
			t.Fatalf("failed seeding role %q: %v", name, err)
		}
	}
}

func createTestFolder(t *testing.T, db *gorm.DB, name string) *models.Folder {
	t.Helper()

	folder := &models.Folder{Name: name, ThumbnailURL: models.DefaultFolderThumbnailURL}
	if err := db.Create(folder).Error; err != nil {
		t.Fatalf("failed creating test folder: %v", err)
	}
	return folder
}

func createTestFile(t *testing.T, db *gorm.DB, folderID uuid.UUID, name string) *models.File {
	t.Helper()

	file := &models.File{
		FolderID:   folderID,
		Name:       name,
		Type:       models.FileTypePDF,
		UploadedAt: time.Now().UTC(),
		Size:       1024,
		Channels:   models.StringList{string(models.ChannelWebsite)},
	}
	if err := db.Create(file).Error; err != nil {
		t.Fatalf("failed creating test file: %v", err)
	}
	return file
}

func createTestRule(t *testing.T, db *gorm.DB, folderID, fileID *uuid.UUID, position int, values ...string) *models.AccessRule {
	t.Helper()

	rule := &models.AccessRule{
		FolderID: folderID,
		FileID:   fileID,
		Position: position,
		Criteria: models.RuleCriteriaCollectionAccess,
		Operator: models.RuleOperatorAllowOnly,
		Values:   models.StringList(values),
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed creating test rule: %v", err)
	}
	return rule
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	headers := map[string]string{}
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
		headers["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, headers)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %+v", body["data"])
	}
	return data
}

func dataSlice(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected array data, got %+v", body["data"])
	}
	return data
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}
