package middleware

import (
	"net/http"

	"github.com/mcoot/blogadmin/internal/api/apierr"
	"github.com/mcoot/blogadmin/internal/middleware"
)

// Auth rejects requests without a logged-in principal with a 401 JSON error.
// It relies on middleware.LoadPrincipal having run first.
func Auth() func(http.Handler) http.Handler {
	return middleware.RequirePrincipal(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
	}))
}

