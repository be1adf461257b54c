package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/analyses"
	"resume-ats/internal/services/health"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/server"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/storage/cache"
	"resume-ats/internal/shared/storage/db"
	"resume-ats/internal/shared/storage/object"
	localstore "resume-ats/internal/shared/storage/object/local"
	s3store "resume-ats/internal/shared/storage/object/s3"
	"resume-ats/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Dialect         db.Dialect
	Store           object.ObjectStore
	Cache           *cache.Redis
	AnalysesRepo    analyses.Repo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	Health          *health.Service
}

// Build wires configuration into storage, services and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.Init(cfg.LogJSON, cfg.LogDebug)
	ctx := context.Background()

	sqlDB, dialect, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Dialect: dialect,
		Store:   store,
	}
	if strings.TrimSpace(cfg.RedisURL) != "" {
		app.Cache = cache.NewRedis(ctx, cfg.RedisURL)
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		Health:          app.Health,
		RateLimiter:     middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"db":           string(dialect),
		"object_store": cfg.ObjectStoreType,
		"cache":        app.Cache != nil,
	})
	return app, nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// buildDB prefers Postgres, then an embedded SQLite file. Dev-like envs fall
// back to in-memory repositories.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, db.Dialect, error) {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		var (
			sqlDB *sql.DB
			err   error
		)
		if db.IsLambdaRuntime() {
			sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.ProfileLambda.Options()))
		} else {
			sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.ProfileServer.Options()))
		}
		if err == nil {
			err = db.RunMigrations(ctx, sqlDB, db.DialectPostgres)
		}
		if err != nil {
			if isDevLike(cfg.Env) {
				telemetry.Warn("bootstrap.database_unavailable", map[string]any{"err": err})
				return nil, "", nil
			}
			return nil, "", err
		}
		return sqlDB, db.DialectPostgres, nil
	}

	if strings.TrimSpace(cfg.SQLitePath) != "" {
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, "", err
		}
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			sqlDB.Close()
			return nil, "", err
		}
		return sqlDB, db.DialectSQLite, nil
	}

	if isDevLike(cfg.Env) {
		telemetry.Info("bootstrap.memory_repositories", nil)
		return nil, "", nil
	}
	return nil, "", fmt.Errorf("DATABASE_URL or SQLITE_PATH is required when ENV=%s", cfg.Env)
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "none":
		return nil, nil
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Config{
			Region:   cfg.AWSRegion,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			KMSKeyID: cfg.SSEKMSKeyID,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	switch app.Dialect {
	case db.DialectPostgres:
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	case db.DialectSQLite:
		app.AnalysesRepo = &analyses.SQLiteRepo{DB: app.DB}
	default:
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}

	svc := &analyses.Service{
		Repo:            app.AnalysesRepo,
		Store:           app.Store,
		CacheTTL:        app.Config.CacheTTL,
		MinResumeChars:  app.Config.MinResumeChars,
		AnalyzerVersion: app.Config.AnalyzerVersion,
	}
	var dbPinger, cachePinger health.Pinger
	if app.DB != nil {
		dbPinger = app.DB
	}
	if app.Cache != nil {
		svc.Cache = app.Cache
		cachePinger = health.PingFunc(app.Cache.Ping)
	}

	app.AnalysesService = svc
	app.AnalysisHandler = analyses.NewHandler(svc, app.Config.MaxUploadBytes)
	app.Health = health.NewService(dbPinger, cachePinger)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
