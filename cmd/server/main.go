package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"arbor/internal/auth"
	"arbor/internal/config"
	"arbor/internal/domain/repositories"
	"arbor/internal/handler"
	"arbor/internal/middleware"
	"arbor/internal/repository/memory"
	"arbor/internal/repository/postgres"
	"arbor/internal/repository/sqlite"
	"arbor/internal/service/folder"
	"arbor/internal/template"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.Debug {
		logFile, err := config.SetupLogFile("logs", 5)
		if err != nil {
			log.Printf("log file disabled: %v", err)
		} else {
			defer logFile.Close()
			logOutput = io.MultiWriter(os.Stdout, logFile)
		}
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_driver", cfg.StorageDriver,
	)

	// Create repositories for the configured storage driver
	ctx := context.Background()
	var states repositories.StateRepository
	var snapshots repositories.SnapshotRepository

	switch cfg.StorageDriver {
	case "memory":
		states = memory.NewStateRepository()
		snapshots = memory.NewSnapshotRepository()

	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite database: %v", err)
		}
		states = sqlite.NewStateRepository(db)
		snapshots = sqlite.NewSnapshotRepository(db)
		logger.Info("database connected", "driver", "sqlite", "path", cfg.SQLitePath)

	case "postgres":
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		logger.Info("database connected",
			"driver", "postgres",
			"max_conns", 25,
			"min_conns", 5,
		)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		states = postgres.NewStateRepository(repoConfig)
		snapshots = postgres.NewSnapshotRepository(repoConfig)

	default:
		log.Fatalf("Unknown storage driver %q (want memory, sqlite or postgres)", cfg.StorageDriver)
	}

	// Load workspace templates
	templates, err := template.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load workspace templates: %v", err)
	}
	logger.Info("templates loaded", "count", len(templates.List()))

	// Create the folder engine
	engine := folder.NewEngine(states, snapshots, templates, cfg, logger)
	defer engine.Close()

	// Create JWT verifier when an issuer is configured. Without one the
	// API runs unauthenticated (local development, embedded use).
	var jwtVerifier auth.JWTVerifier
	if cfg.JWKSURL != "" {
		jwtVerifier, err = auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
	} else {
		logger.Warn("AUTH_JWKS_URL is not set, bearer-token auth is disabled")
	}

	// Create handlers
	workspaceHandler := handler.NewWorkspaceHandler(engine, logger)
	viewHandler := handler.NewViewHandler(engine, logger)
	trashHandler := handler.NewTrashHandler(engine, logger)
	favoriteHandler := handler.NewFavoriteHandler(engine, logger)
	snapshotHandler := handler.NewSnapshotHandler(engine, logger)
	sessionHandler := handler.NewSessionHandler(engine, logger)
	importHandler := handler.NewImportHandler(engine, logger)
	templateHandler := handler.NewTemplateHandler(templates, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", workspaceHandler.HealthCheck)

	// Workspace routes
	mux.HandleFunc("POST /api/workspaces", workspaceHandler.Create)
	mux.HandleFunc("GET /api/workspaces", workspaceHandler.List)
	mux.HandleFunc("GET /api/workspaces/current", workspaceHandler.Current) // Must come before {id} routes
	mux.HandleFunc("GET /api/workspaces/current/setting", workspaceHandler.Setting)
	mux.HandleFunc("POST /api/workspaces/{id}/open", workspaceHandler.Open)
	mux.HandleFunc("GET /api/workspaces/{id}/views", workspaceHandler.Views)

	// Snapshot routes
	mux.HandleFunc("POST /api/snapshots", snapshotHandler.Capture)
	mux.HandleFunc("GET /api/workspaces/{id}/snapshots", snapshotHandler.List)
	mux.HandleFunc("POST /api/workspaces/{id}/snapshots/{snapshotID}/restore", snapshotHandler.Restore)

	// Template routes
	mux.HandleFunc("GET /api/templates", templateHandler.List)

	// View routes
	mux.HandleFunc("POST /api/views", viewHandler.Create)
	mux.HandleFunc("POST /api/views/orphan", viewHandler.CreateOrphan)
	mux.HandleFunc("POST /api/views/move", viewHandler.Move) // Must come before {id} routes
	mux.HandleFunc("POST /api/views/reorder", viewHandler.Reorder)
	mux.HandleFunc("POST /api/views/trash", viewHandler.TrashBatch)
	mux.HandleFunc("GET /api/views/{id}", viewHandler.Get)
	mux.HandleFunc("PATCH /api/views/{id}", viewHandler.Update)
	mux.HandleFunc("DELETE /api/views/{id}", viewHandler.Trash)
	mux.HandleFunc("PUT /api/views/{id}/icon", viewHandler.UpdateIcon)
	mux.HandleFunc("POST /api/views/{id}/duplicate", viewHandler.Duplicate)
	mux.HandleFunc("PUT /api/views/{id}/favorite", favoriteHandler.Toggle)
	mux.HandleFunc("POST /api/views/{id}/close", sessionHandler.Close)

	// Trash routes
	mux.HandleFunc("GET /api/trash", trashHandler.List)
	mux.HandleFunc("DELETE /api/trash", trashHandler.PurgeAll)
	mux.HandleFunc("POST /api/trash/purge", trashHandler.PurgeBatch) // Must come before {id} routes
	mux.HandleFunc("POST /api/trash/restore-all", trashHandler.RestoreAll)
	mux.HandleFunc("POST /api/trash/{id}/restore", trashHandler.Restore)
	mux.HandleFunc("DELETE /api/trash/{id}", trashHandler.Purge)

	// Favorite routes
	mux.HandleFunc("GET /api/favorites", favoriteHandler.List)
	mux.HandleFunc("POST /api/favorites/toggle", favoriteHandler.ToggleBatch)

	// Session routes
	mux.HandleFunc("PUT /api/session/current-view", sessionHandler.SetCurrent)
	mux.HandleFunc("GET /api/session/current-view", sessionHandler.GetCurrent)

	// Import routes
	mux.HandleFunc("POST /api/import", importHandler.Import)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	if jwtVerifier != nil {
		httpHandler = middleware.Auth(jwtVerifier)(httpHandler)
	}
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
