package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blogadmin/internal/api/handler"
	apimiddleware "github.com/mcoot/blogadmin/internal/api/middleware"
	"github.com/mcoot/blogadmin/internal/api/response"
	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/metrics"
	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/services/analytics"
	"github.com/mcoot/blogadmin/internal/services/auth"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	Metrics          *metrics.Metrics
	Clock            clock.Clock
	AuthService      *auth.Service
	AnalyticsService *analytics.Service
	Categories       handler.CategoryLister
	Cookies          middleware.SessionCookies
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService, cfg.Cookies, cfg.Clock)
	analyticsHandler := handler.NewAnalyticsHandler(cfg.AnalyticsService, cfg.Categories)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Instrument(cfg.Metrics))
	api.Use(middleware.LoadPrincipal(cfg.AuthService, cfg.Cookies, cfg.Logger))

	// Public routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/login", sessionHandler.Login).Methods(http.MethodPost)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(apimiddleware.Auth())
	protected.HandleFunc("/logout", sessionHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/me", sessionHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/categories", analyticsHandler.Categories).Methods(http.MethodGet)
	protected.HandleFunc("/stats", analyticsHandler.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/blog-performance", analyticsHandler.BlogPerformance).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
