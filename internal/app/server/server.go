package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"hrdocs/internal/db"
	"hrdocs/internal/domain/auth"
	"hrdocs/internal/domain/company"
	"hrdocs/internal/domain/documents"
	"hrdocs/internal/domain/employee"
	"hrdocs/internal/platform/config"
	"hrdocs/internal/platform/jobs"
	"hrdocs/internal/platform/logging"
	"hrdocs/internal/platform/metrics"
	"hrdocs/internal/platform/render"
	"hrdocs/internal/platform/session"
	"hrdocs/internal/platform/storage"
	"hrdocs/internal/platform/templates"
	"hrdocs/internal/transport/http/api"
	adminhandler "hrdocs/internal/transport/http/handlers/admin"
	companieshandler "hrdocs/internal/transport/http/handlers/companies"
	documentshandler "hrdocs/internal/transport/http/handlers/documents"
	"hrdocs/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Router  http.Handler
	Logger  *slog.Logger
	Metrics *metrics.Collector

	Jobs *jobs.Service

	pool  *pgxpool.Pool
	redis *redis.Client
}

// New wires the stores, the document pipeline and the router. Without
// DATABASE_URL or REDIS_ADDR the in-memory employee and session stores are
// used.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{Config: cfg, Logger: logger, Metrics: metrics.New()}

	registry, err := company.LoadRegistry(cfg.CompaniesFile)
	if err != nil {
		return nil, err
	}
	tmpl, err := templates.New(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	files, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		return nil, err
	}

	var employeeStore employee.StoreAPI
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.pool = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				app.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		employeeStore = employee.NewStore(pool)
	} else {
		logger.Warn("DATABASE_URL not set, employees are kept in memory")
		employeeStore = employee.NewMemoryStore()
	}

	var sessions session.Store
	var purger jobs.SessionPurger
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rdb, err := session.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = rdb
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, sessions are kept in memory")
		memory := session.NewMemoryStore(cfg.SessionTTL)
		sessions, purger = memory, memory
	}
	var pruner jobs.DocumentPruner
	if cfg.DocumentRetention > 0 {
		pruner = files
	}
	app.Jobs = jobs.New(jobs.Config{
		SessionPurgeInterval: cfg.SessionPurgeInterval,
		RetentionInterval:    cfg.RetentionInterval,
		RetentionPeriod:      cfg.DocumentRetention,
	}, purger, pruner, logger)

	composer := documents.NewComposer(registry, documents.WithAssetBaseURL(cfg.AssetBaseURL))
	docs := documents.NewService(composer, tmpl, render.NewPDFRenderer(cfg.AssetDir), files, app.Metrics, logger)
	employees := employee.NewService(employeeStore)
	admin := auth.NewService(cfg.JWTSecret, cfg.AdminPasswordHash, cfg.AdminTokenTTL)
	if !admin.Enabled() {
		logger.Warn("ADMIN_PASSWORD_HASH or JWT_SECRET not set, admin endpoints are disabled")
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logging.RequestLogger(logger, cfg.LogLevel))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowCredentials: true,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
			MaxAge:           300,
		}))
	}
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Metrics(app.Metrics))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", app.handleReady)
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, app.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}
	if prefix := assetPrefix(cfg.AssetBaseURL); prefix != "" {
		router.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.AssetDir))))
	}

	router.Route("/api/v1", func(r chi.Router) {
		companieshandler.NewHandler(registry).RegisterRoutes(r)
		documentshandler.NewHandler(employees, sessions, docs, logger).RegisterRoutes(r)
		adminhandler.NewHandler(admin, files, employees, logger).RegisterRoutes(r)
	})

	app.Router = router
	return app, nil
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if a.pool != nil {
		if err := a.pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	if a.redis != nil {
		if err := a.redis.Ping(ctx).Err(); err != nil {
			http.Error(w, "redis not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Run starts the housekeeping jobs and serves until ctx is cancelled, then
// drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	a.Jobs.Start(ctx)
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("hrdocs server listening", "addr", a.Config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

// assetPrefix returns the local route for watermark assets, or "" when they
// are served from another host.
func assetPrefix(base string) string {
	base = strings.TrimSpace(base)
	if base == "" || strings.Contains(base, "://") || !strings.HasPrefix(base, "/") {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
