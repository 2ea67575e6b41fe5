package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/web/templates/pages"
)

// AccountHandler renders the page regular users land on
type AccountHandler struct {
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(logger *slog.Logger) *AccountHandler {
	return &AccountHandler{logger: logger}
}

// Account handles GET /account. Admins are sent to their dashboard.
func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdmin(r.Context()) != nil {
		http.Redirect(w, r, AdminHomePath, http.StatusSeeOther)
		return
	}

	setHTML(w, http.StatusOK)
	if err := pages.Account(pageData(r, "Your account")).Render(r.Context(), w); err != nil {
		h.logger.Error("render account page failed", slog.String("error", err.Error()))
	}
}
