package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/bookr/internal/auth"
	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(logging.RequestID(), logging.Logger(), logging.Recovery())
	if cfg.MetricsEnabled {
		router.Use(MetricsMiddleware())
	}
	router.Use(auth.SecurityHeadersMiddleware(), auth.StrictTransportSecurityMiddleware())

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "route")
	})

	// Probes and metrics bypass sessions and authentication.
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	app := router.Group("")
	localAuth := cfg.AuthConfig.Mode == config.AuthModeLocal && cfg.SessionManager != nil
	if localAuth {
		app.Use(cfg.SessionManager.SessionLoadSave())
		if len(cfg.CSRFSecret) > 0 {
			app.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies))
		}
	}
	if cfg.AuthMiddleware != nil {
		app.Use(cfg.AuthMiddleware.Handler())
	}
	if cfg.DemoMiddleware != nil {
		app.Use(cfg.DemoMiddleware.Handler())
	}

	var authController *auth.AuthController
	if cfg.AuthService != nil {
		authController = auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.RateLimiter)
		if localAuth {
			authController.RegisterRoutes(app)
		}
	}

	api := app.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
	}
	if authController != nil {
		api.GET("/me", authController.Me)
	}

	// Dashboard
	dashboard := NewDashboardController(cfg.Rankings, cfg.DashboardLimit)
	api.GET("/dashboard", dashboard.Get)

	// Shared catalog
	booksController := NewBooksController(cfg.Books, cfg.Listings)
	api.GET("/books", booksController.List)
	api.GET("/books/:id", booksController.Get)

	// Personal list
	myBooks := NewMyBooksController(cfg.Listings, cfg.Books)
	my := api.Group("/my/books")
	my.GET("", myBooks.List)
	my.POST("", myBooks.Add)
	my.GET("/available", myBooks.Available)
	my.POST("/rate", myBooks.Rate)
	my.GET("/:id", myBooks.Get)
	my.PATCH("/:id", myBooks.Update)
	my.DELETE("/:id", myBooks.Delete)

	// External catalog search and ingest
	if cfg.Searcher != nil && cfg.Lookup != nil && cfg.Ingester != nil {
		search := NewSearchController(cfg.Searcher, cfg.Lookup, cfg.Ingester)
		my.GET("/search", search.Search)
		my.POST("/search", search.Ingest)
	}

	// Covers
	if cfg.CoverCache != nil {
		coversController := NewCoversController(cfg.CoverCache, cfg.Books, cfg.Listings)
		api.GET("/books/:id/cover", coversController.BookCover)
		my.GET("/:id/cover", coversController.ListingCover)
	}

	// Forms
	formsController := NewFormsController(cfg.Books)
	api.GET("/forms", formsController.List)
	api.GET("/forms/:entity", formsController.Get)

	// Catalog administration
	admin := api.Group("/admin")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}
	adminController := NewAdminController(cfg.Authors, cfg.Books)
	admin.GET("/authors", adminController.ListAuthors)
	admin.POST("/authors", adminController.CreateAuthor)
	admin.DELETE("/authors/:id", adminController.DeleteAuthor)
	admin.POST("/books", adminController.CreateBook)
	admin.DELETE("/books/:id", adminController.DeleteBook)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})

	return router
}
