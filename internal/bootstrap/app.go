package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-builder/internal/auth"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/kv"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
	"resume-builder/internal/users"
	"resume-builder/resume/render"
)

const redisKeyPrefix = "resume-builder:"

// App holds shared dependencies and the configured router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	KV     kv.Store
	Tokens *sharedauth.Issuer

	UsersRepo     users.Repo
	TemplatesRepo templates.Repo
	ResumesRepo   resumes.Repo

	UsersService     *users.Service
	TemplatesService *templates.Service
	ResumesService   *resumes.Service
	Sessions         *auth.Sessions

	closers []func() error
}

// Build prepares every dependency and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	store, closeKV, err := buildKV(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.KV = store
	if closeKV != nil {
		app.closers = append(app.closers, closeKV)
	}

	issuer, err := sharedauth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Tokens = issuer

	if err := buildServices(ctx, app); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases the database and kv connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	if cfg.DBMaxOpenConns > 0 {
		opts.MaxOpenConns = cfg.DBMaxOpenConns
	}
	if cfg.DBMaxIdleConns > 0 {
		opts.MaxIdleConns = cfg.DBMaxIdleConns
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildKV(ctx context.Context, cfg config.Config) (kv.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		if !isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_kv", map[string]any{"reason": "REDIS_ADDR empty"})
		}
		return kv.NewMemoryStore(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := kv.NewRedisStore(client, redisKeyPrefix)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Close()
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_kv", map[string]any{
				"reason": "redis ping failed",
				"error":  err.Error(),
			})
			return kv.NewMemoryStore(), nil, nil
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return store, client.Close, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.TemplatesRepo = &templates.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.TemplatesRepo = templates.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		if _, err := templates.Seed(ctx, app.TemplatesRepo); err != nil {
			return err
		}
	}

	cfg := app.Config
	app.UsersService = users.NewService(app.UsersRepo)
	app.TemplatesService = templates.NewService(app.TemplatesRepo)
	app.ResumesService = resumes.NewService(
		app.ResumesRepo,
		app.TemplatesRepo,
		render.NewRenderer(render.PageSizeByName(cfg.PDFPageSize)),
	)
	app.Sessions = auth.NewSessions(app.Tokens, app.KV)

	checks := health.NewService()
	if app.DB != nil {
		checks.Register("database", app.DB.PingContext)
	}
	if pinger, ok := app.KV.(*kv.RedisStore); ok {
		checks.Register("redis", pinger.Ping)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Verifier: app.Tokens,
		Health:   checks,
		Handlers: []server.RouteRegistrar{
			auth.NewHandler(app.UsersService, app.Sessions),
			auth.NewGoogleService(
				cfg.GoogleClientID,
				cfg.GoogleClientSecret,
				cfg.GoogleRedirectURL,
				cfg.UIRedirectURL,
				app.KV,
				app.UsersService,
				app.Sessions,
			),
			auth.NewLinkedInService(app.UsersService, app.Sessions),
			users.NewHandler(app.UsersService),
			templates.NewHandler(app.TemplatesService),
			resumes.NewHandler(app.ResumesService),
		},
	})
	return nil
}
