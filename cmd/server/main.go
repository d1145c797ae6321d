package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/assetdeck/backend/internal/config"
	"github.com/assetdeck/backend/internal/database"
	"github.com/assetdeck/backend/internal/handlers"
	"github.com/assetdeck/backend/internal/middleware"
	"github.com/assetdeck/backend/internal/services"
	"github.com/assetdeck/backend/internal/storage"
	"github.com/assetdeck/backend/pkg/linktoken"
	"github.com/assetdeck/backend/pkg/logger"
)

func main() {
	logger.Init()

	cfg := config.Load()
	linktoken.Configure(cfg.Link.Secret, cfg.Link.TTL)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	store, err := storage.New(cfg.Storage, cfg.MinIO)
	if err != nil {
		log.Fatalf("storage initialization failed: %v", err)
	}

	scenarioState := services.NewScenarioState()
	if cfg.Scenario.Default != "" {
		if err := scenarioState.Select(cfg.Scenario.Default); err != nil {
			logger.Warn("scenario_default_unavailable", map[string]interface{}{
				"scenario_id": cfg.Scenario.Default,
			})
		}
	}

	catalogService := services.NewCatalogService(db)
	ruleService := services.NewRuleService(db, scenarioState)
	editorManager := services.NewEditorManager(catalogService)

	foldersHandler := handlers.NewFoldersHandler(db, ruleService)
	filesHandler := handlers.NewFilesHandler(db, ruleService, store)
	rulesHandler := handlers.NewRulesHandler(ruleService)
	editorHandler := handlers.NewEditorHandler(editorManager, ruleService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	scenariosHandler := handlers.NewScenariosHandler(scenarioState)

	app := fiber.New(fiber.Config{BodyLimit: 25 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.AllowOrigins))
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

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
		"storage": cfg.Storage.Driver,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
