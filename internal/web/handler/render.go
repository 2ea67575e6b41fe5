package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/web/templates/layout"
	"github.com/mcoot/blogadmin/internal/web/templates/pages"
	webmw "github.com/mcoot/blogadmin/internal/web/middleware"
)

// pageData fills the fields every page shares from the request context
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		Flash: webmw.GetFlash(r.Context()),
		Admin: middleware.GetAdmin(r.Context()),
		User:  middleware.GetUser(r.Context()),
	}
}

func setHTML(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
}

func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, title, message string) {
	setHTML(w, status)
	if err := pages.Error(pages.ErrorData{PageData: pageData(r, title), Message: message}).Render(r.Context(), w); err != nil {
		logger.Error("render error page failed", slog.String("error", err.Error()))
	}
}
