package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"arbor/internal/config"
	"arbor/internal/domain/repositories"
	"arbor/internal/domain/services"
	"arbor/internal/repository/postgres"
	"arbor/internal/repository/sqlite"
	"arbor/internal/service/folder"
	"arbor/internal/template"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed a workspace (for use with shell scripts)")
	clearData := flag.Bool("clear-data", false, "Clear all workspace states and snapshots (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, driver: %s)", cfg.Environment, cfg.StorageDriver)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, driver: %s)", cfg.Environment, cfg.StorageDriver)
	} else {
		log.Printf("🌱 Seeding a demo workspace (environment: %s, driver: %s)", cfg.Environment, cfg.StorageDriver)
	}

	ctx := context.Background()
	var states repositories.StateRepository
	var snapshots repositories.SnapshotRepository

	switch cfg.StorageDriver {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite database: %v", err)
		}

		if *dropTables {
			log.Println("🗑️  Dropping all tables...")
			if err := db.Migrator().DropTable(&sqlite.StateRecord{}, &sqlite.SnapshotRecord{}); err != nil {
				log.Fatalf("Failed to drop tables: %v", err)
			}
			if err := sqlite.AutoMigrate(db); err != nil {
				log.Fatalf("Failed to recreate tables: %v", err)
			}
			log.Println("✅ Tables dropped and recreated")
		}

		if *clearData {
			log.Println("🧹 Clearing workspace states and snapshots...")
			if err := db.Exec("DELETE FROM " + sqlite.SnapshotRecord{}.TableName()).Error; err != nil {
				log.Fatalf("Failed to clear snapshots: %v", err)
			}
			if err := db.Exec("DELETE FROM " + sqlite.StateRecord{}.TableName()).Error; err != nil {
				log.Fatalf("Failed to clear states: %v", err)
			}
			log.Println("✅ Data cleared successfully")
			return
		}

		// Open runs the migrations, nothing more to do for schema-only
		if *schemaOnly {
			log.Println("✅ Schema setup complete (schema-only mode)")
			return
		}

		states = sqlite.NewStateRepository(db)
		snapshots = sqlite.NewSnapshotRepository(db)

	case "postgres":
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)

		if *dropTables {
			log.Println("🗑️  Dropping all tables...")
			if err := dropAllTables(ctx, pool, tables); err != nil {
				log.Fatalf("Failed to drop tables: %v", err)
			}
			log.Println("✅ Tables dropped")
		}

		log.Println("📋 Ensuring database schema is up to date...")
		if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			log.Fatalf("Failed to run schema: %v", err)
		}
		log.Println("✅ Schema ready")

		if *schemaOnly {
			log.Println("✅ Schema setup complete (schema-only mode)")
			return
		}

		if *clearData {
			log.Println("🧹 Clearing workspace states and snapshots...")
			if err := clearAllData(ctx, pool, tables); err != nil {
				log.Fatalf("Failed to clear data: %v", err)
			}
			log.Println("✅ Data cleared successfully")
			return
		}

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		states = postgres.NewStateRepository(repoConfig)
		snapshots = postgres.NewSnapshotRepository(repoConfig)

	default:
		log.Fatalf("Nothing to seed for storage driver %q (want sqlite or postgres)", cfg.StorageDriver)
	}

	// Seed through the service layer so every invariant holds
	templates, err := template.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load workspace templates: %v", err)
	}

	engine := folder.NewEngine(states, snapshots, templates, cfg, logger)
	defer engine.Close()

	log.Println("📝 Creating demo workspace from the getting-started template...")
	workspace, err := engine.CreateWorkspace(ctx, &services.CreateWorkspaceRequest{
		Name:     "Demo Workspace",
		Template: "getting-started",
	})
	if err != nil {
		log.Fatalf("Failed to create workspace: %v", err)
	}
	log.Printf("✅ Created workspace: %s (ID: %s)", workspace.Name, workspace.ID)

	seeds := getSeedViews()
	created := 0
	for i, seed := range seeds {
		if err := createSeedView(ctx, engine, workspace.ID, seed, &created); err != nil {
			log.Printf("❌ Failed to create view '%s': %v", seed.name, err)
			continue
		}
		log.Printf("✅ Created view tree %d/%d: %s", i+1, len(seeds), seed.name)
	}

	// Leave one trashed view behind so the trash UI has something to show
	trashed, err := engine.CreateView(ctx, &services.CreateViewRequest{
		ParentID: workspace.ID,
		Name:     "Old drafts",
		Icon:     "🗑️",
	})
	if err != nil {
		log.Printf("❌ Failed to create trash demo view: %v", err)
	} else if err := engine.TrashView(ctx, trashed.ID); err != nil {
		log.Printf("❌ Failed to trash demo view: %v", err)
	} else {
		created++
		log.Printf("✅ Trashed demo view: %s", trashed.Name)
	}

	snapshot, err := engine.CaptureSnapshot(ctx)
	if err != nil {
		log.Printf("❌ Failed to capture snapshot: %v", err)
	} else {
		log.Printf("✅ Captured snapshot: %s", snapshot.ID)
	}

	log.Printf("🎉 Seeding complete! (%d views)", created)
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createStates := `
		CREATE TABLE IF NOT EXISTS ` + tables.States + ` (
			workspace_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			state JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createStates); err != nil {
		return err
	}

	createSnapshots := `
		CREATE TABLE IF NOT EXISTS ` + tables.Snapshots + ` (
			id TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createSnapshots); err != nil {
		return err
	}

	// Snapshot listing reads newest-first per workspace
	index := `CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `snapshots_workspace_created
		ON ` + tables.Snapshots + ` (workspace_id, created_at DESC)`
	if _, err := pool.Exec(ctx, index); err != nil {
		return err
	}

	return nil
}

// dropAllTables drops all tables
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Snapshots,
		tables.States,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearAllData clears every workspace state and snapshot
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Snapshots); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.States); err != nil {
		return err
	}
	return nil
}

type seedView struct {
	name     string
	icon     string
	favorite bool
	children []seedView
}

func getSeedViews() []seedView {
	return []seedView{
		{
			name: "Projects",
			icon: "📁",
			children: []seedView{
				{name: "Roadmap", icon: "🗺️", favorite: true},
				{name: "Archive", icon: "📦"},
			},
		},
		{
			name: "Reading list",
			icon: "📚",
			children: []seedView{
				{name: "Articles", icon: "📰"},
				{name: "Books", icon: "📖"},
			},
		},
		{
			name:     "Scratchpad",
			icon:     "✏️",
			favorite: true,
		},
	}
}

// createSeedView creates a view and its children depth-first
func createSeedView(ctx context.Context, engine services.FolderEngine, parentID string, seed seedView, created *int) error {
	view, err := engine.CreateView(ctx, &services.CreateViewRequest{
		ParentID: parentID,
		Name:     seed.name,
		Icon:     seed.icon,
	})
	if err != nil {
		return err
	}
	*created++

	if seed.favorite {
		if _, err := engine.ToggleFavorite(ctx, view.ID); err != nil {
			return fmt.Errorf("favorite %s: %w", seed.name, err)
		}
	}

	for _, child := range seed.children {
		if err := createSeedView(ctx, engine, view.ID, child, created); err != nil {
			return err
		}
	}
	return nil
}
