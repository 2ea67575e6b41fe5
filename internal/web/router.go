package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/metrics"
	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/services/analytics"
	"github.com/mcoot/blogadmin/internal/services/auth"
	"github.com/mcoot/blogadmin/internal/web/handler"
	webmw "github.com/mcoot/blogadmin/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	Metrics          *metrics.Metrics
	Clock            clock.Clock
	AuthService      *auth.Service
	AnalyticsService *analytics.Service
	Cookies          middleware.SessionCookies
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(webmw.Recovery(cfg.Logger))
	r.Use(webmw.Logging(cfg.Logger))
	r.Use(middleware.Instrument(cfg.Metrics))
	r.Use(webmw.Principal(cfg.AuthService, cfg.Cookies, cfg.Logger))
	r.Use(webmw.Flash())

	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Cookies, cfg.Clock, cfg.Logger)
	dashboardHandler := handler.NewDashboardHandler(cfg.AnalyticsService, cfg.Logger)
	accountHandler := handler.NewAccountHandler(cfg.Logger)

	// Public routes
	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc(webmw.LoginPath, authHandler.AdminLoginPage).Methods(http.MethodGet)
	r.HandleFunc(webmw.LoginPath, authHandler.AdminLogin).Methods(http.MethodPost)
	r.HandleFunc(handler.UserLoginPath, authHandler.UserLoginPage).Methods(http.MethodGet)
	r.HandleFunc(handler.UserLoginPath, authHandler.UserLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet, http.MethodPost)

	// Any logged-in principal
	protected := r.NewRoute().Subrouter()
	protected.Use(webmw.RequireAuth())
	protected.HandleFunc(handler.UserHomePath, accountHandler.Account).Methods(http.MethodGet)

	// Admins only
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(webmw.RequireAdmin())
	admin.HandleFunc("/dashboard", dashboardHandler.Dashboard).Methods(http.MethodGet)

	return r
}
