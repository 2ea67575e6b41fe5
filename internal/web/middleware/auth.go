package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/web/templates/layout"
	"github.com/mcoot/blogadmin/internal/web/templates/pages"
)

// LoginPath is where anonymous visitors are sent
const LoginPath = "/login"

// Principal resolves the session cookie into the request context
func Principal(resolver middleware.PrincipalResolver, cookies middleware.SessionCookies, logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.LoadPrincipal(resolver, cookies, logger)
}

// RequireAuth redirects anonymous requests to the login page
func RequireAuth() func(http.Handler) http.Handler {
	return middleware.RequirePrincipal(http.HandlerFunc(redirectToLogin))
}

// RequireAdmin redirects anonymous requests to the login page and shows
// a forbidden page to users who are not admins.
func RequireAdmin() func(http.Handler) http.Handler {
	return middleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := middleware.GetUser(r.Context())
		if user == nil {
			redirectToLogin(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_ = pages.Error(pages.ErrorData{
			PageData: layout.PageData{Title: "Forbidden", User: user},
			Message:  "This area is for administrators only.",
		}).Render(r.Context(), w)
	}))
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
