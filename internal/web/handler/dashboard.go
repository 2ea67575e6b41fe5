package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mcoot/blogadmin/internal/services/analytics"
	"github.com/mcoot/blogadmin/internal/web/templates/components"
	"github.com/mcoot/blogadmin/internal/web/templates/pages"
)

// DashboardHandler renders the admin dashboard
type DashboardHandler struct {
	analytics *analytics.Service
	logger    *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(analyticsService *analytics.Service, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		analytics: analyticsService,
		logger:    logger,
	}
}

// Dashboard handles GET /admin/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	days := analytics.DefaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n != 0 {
			days = n
		}
	}

	perf, err := h.analytics.Performance(r.Context(), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stats, err := h.analytics.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := pages.DashboardData{
		PageData: pageData(r, "Dashboard"),
		Stats: components.Stats{
			AdminCount:    stats.AdminCount,
			CategoryCount: stats.CategoryCount,
			BlogCount:     stats.BlogCount,
			TotalViews:    stats.TotalViews,
		},
		Days:       days,
		TimeSeries: perf.TimeSeries,
		Categories: perf.Categories,
	}

	setHTML(w, http.StatusOK)
	if err := pages.Dashboard(data).Render(r.Context(), w); err != nil {
		h.logger.Error("render dashboard failed", slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, analytics.ErrInvalidWindow) {
		renderError(w, r, h.logger, http.StatusBadRequest, "Bad Request", "The requested window must be between 1 and 366 days.")
		return
	}
	renderError(w, r, h.logger, http.StatusInternalServerError, "Dashboard Unavailable", "The dashboard could not be loaded. Please try again later.")
}
