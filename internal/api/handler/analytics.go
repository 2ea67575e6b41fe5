package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mcoot/blogadmin/internal/api/response"
	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/services/analytics"
)

// CategoryLister lists categories
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

// AnalyticsHandler serves the dashboard data endpoints
type AnalyticsHandler struct {
	analytics  *analytics.Service
	categories CategoryLister
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.Service, categories CategoryLister) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics:  analyticsService,
		categories: categories,
	}
}

// Categories handles GET /api/categories
func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		WriteError(w, fmt.Errorf("%w: list categories: %w", analytics.ErrStoreUnavailable, err))
		return
	}

	response.JSON(w, http.StatusOK, response.CategoriesFromModel(categories))
}

// Stats handles GET /api/stats
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromService(stats))
}

// BlogPerformance handles GET /api/blog-performance?days=N
func (h *AnalyticsHandler) BlogPerformance(w http.ResponseWriter, r *http.Request) {
	days := parseDays(r.URL.Query().Get("days"))

	perf, err := h.analytics.Performance(r.Context(), days)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PerformanceFromService(perf))
}

// parseDays reads the window length. Missing, non-numeric and zero values
// select the default; out-of-range values are left for the service to reject.
func parseDays(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		return analytics.DefaultWindowDays
	}
	return n
}
