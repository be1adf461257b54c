package main

// Apply schema migrations to the configured database:
//   DATABASE_URL=postgres://... go run ./cmd/migrate
//   SQLITE_PATH=./data/analyses.db go run ./cmd/migrate

import (
	"context"
	"database/sql"
	"os"
	"strings"

	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/storage/db"
	"resume-ats/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.LogJSON, cfg.LogDebug)
	ctx := context.Background()

	var (
		sqlDB   *sql.DB
		dialect db.Dialect
		err     error
	)
	switch {
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.ProfileMigrate.Options()))
	case strings.TrimSpace(cfg.SQLitePath) != "":
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		telemetry.Error("migrate.no_database", map[string]any{"hint": "set DATABASE_URL or SQLITE_PATH"})
		os.Exit(1)
	}
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"dialect": string(dialect), "err": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"dialect": string(dialect), "err": err})
		sqlDB.Close()
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"dialect": string(dialect)})
}
