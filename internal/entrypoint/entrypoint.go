package entrypoint

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/auth"
	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/covers"
	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/database/authors"
	"github.com/mrlokans/bookr/internal/database/books"
	"github.com/mrlokans/bookr/internal/database/listings"
	"github.com/mrlokans/bookr/internal/database/rankings"
	"github.com/mrlokans/bookr/internal/database/users"
	"github.com/mrlokans/bookr/internal/demo"
	http_controllers "github.com/mrlokans/bookr/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the dependencies shared by the HTTP server and the CLI commands.
type App struct {
	Config      *config.Config
	DB          *database.Database
	Authors     *authors.Repository
	Books       *books.Repository
	Listings    *listings.Repository
	Rankings    *rankings.Repository
	Users       *users.Repository
	Catalog     *catalog.OpenLibraryClient
	Reconciler  *catalog.Reconciler
	AuthService *auth.Service
}

// NewApp opens the database and wires the repositories, the external catalog
// client and the auth service.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.Auth.Mode == "" {
		cfg.Auth.Mode = config.AuthModeNone
	}

	db, err := database.Open(database.Options{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.DSN,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{
		Config:   cfg,
		DB:       db,
		Authors:  authors.NewRepository(db.DB),
		Books:    books.NewRepository(db.DB),
		Listings: listings.NewRepository(db.DB),
		Rankings: rankings.NewRepository(db.DB),
		Users:    users.NewRepository(db.DB),
		Catalog: catalog.NewOpenLibraryClient(catalog.OpenLibraryConfig{
			BaseURL:           cfg.OpenLibrary.BaseURL,
			UserAgent:         cfg.OpenLibrary.UserAgent,
			RequestsPerSecond: cfg.OpenLibrary.RequestsPerSecond,
			SearchLimit:       cfg.OpenLibrary.SearchLimit,
			Timeout:           cfg.OpenLibrary.Timeout,
			BreakerFailures:   cfg.OpenLibrary.BreakerFailures,
			BreakerCooldown:   cfg.OpenLibrary.BreakerCooldown,
		}),
	}
	app.Reconciler = catalog.NewReconciler(app.Authors, app.Books, app.Listings)
	app.AuthService = auth.NewService(app.Users, cfg.Auth)
	return app, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

// Router builds the HTTP router. The returned ShutdownFunc releases the
// resources the router holds.
func (a *App) Router(version string) (*gin.Engine, ShutdownFunc, error) {
	cfg := a.Config

	routerCfg := http_controllers.RouterConfig{
		Authors:        a.Authors,
		Books:          a.Books,
		Listings:       a.Listings,
		Rankings:       a.Rankings,
		Database:       a.DB,
		Searcher:       a.Catalog,
		Lookup:         a.Catalog,
		Ingester:       a.Reconciler,
		AuthConfig:     cfg.Auth,
		AuthService:    a.AuthService,
		DashboardLimit: cfg.Dashboard.Limit,
		MetricsEnabled: cfg.Metrics.Enabled,
		Version:        version,
	}

	if cfg.Demo.Enabled {
		log.Info().Msg("Demo mode enabled - write operations will be blocked")
		routerCfg.DemoMiddleware = demo.NewMiddleware(true)
	}

	if cfg.Covers.Dir != "" {
		coverCache, err := covers.NewCache(cfg.Covers.Dir, cfg.OpenLibrary.UserAgent)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize cover cache, covers disabled")
		} else {
			log.Info().Str("dir", coverCache.Dir()).Msg("Cover cache initialized")
			routerCfg.CoverCache = coverCache
		}
	}

	var onShutdown ShutdownFunc
	switch cfg.Auth.Mode {
	case config.AuthModeLocal:
		log.Info().Msg("Authentication mode: local")

		// The SQLite session store shares the application database; other
		// drivers keep sessions in memory.
		sessionManager, err := auth.NewSessionManager(a.sqlDBForSessions(), cfg.Auth)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize session manager: %w", err)
		}

		csrfSecret, err := loadCSRFSecret(cfg.Auth.SessionSecret)
		if err != nil {
			return nil, nil, err
		}

		rateLimiter := auth.NewRateLimiter(auth.RateLimitConfigFromAuth(cfg.Auth))
		onShutdown = func(ctx context.Context) { rateLimiter.Stop() }

		routerCfg.SessionManager = sessionManager
		routerCfg.CSRFSecret = csrfSecret
		routerCfg.RateLimiter = rateLimiter
		routerCfg.AuthMiddleware = auth.NewMiddleware(a.AuthService, sessionManager, cfg.Auth)

		if hasUsers, err := a.AuthService.HasUsers(context.Background()); err == nil && !hasUsers {
			log.Info().Msg("No users found. POST /setup to create an administrator account.")
		}
	case config.AuthModeNone:
		log.Info().Msg("Authentication mode: none (no authentication required)")
		routerCfg.AuthMiddleware = auth.NewMiddleware(a.AuthService, nil, cfg.Auth)
	default:
		return nil, nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}

	return http_controllers.NewRouter(routerCfg), onShutdown, nil
}

func (a *App) sqlDBForSessions() *sql.DB {
	if a.DB.Driver() != database.DriverSQLite {
		return nil
	}
	db, err := a.DB.DB.DB()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to get SQL DB for sessions, using memory store")
		return nil
	}
	return db
}

// loadCSRFSecret decodes a hex session secret, falls back to its raw bytes, and
// generates a fresh one when none is configured.
func loadCSRFSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	generated, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	log.Warn().Msg("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(generated)
}

// Serve runs the server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts it down gracefully.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}

// Run starts the HTTP server with every dependency wired from cfg.
func Run(ctx context.Context, cfg *config.Config, version string) error {
	log.Info().Str("version", version).Msg("Starting bookr")
	if cfg.Global.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	router, onShutdown, err := app.Router(version)
	if err != nil {
		return err
	}
	return Serve(ctx, router, cfg, onShutdown)
}
