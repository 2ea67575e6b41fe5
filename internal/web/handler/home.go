package handler

import (
	"net/http"

	"github.com/mcoot/blogadmin/internal/middleware"
	webmw "github.com/mcoot/blogadmin/internal/web/middleware"
)

// Landing pages per principal type
const (
	AdminHomePath = "/admin/dashboard"
	UserHomePath  = "/account"
)

// HomeHandler sends visitors to the page for whoever they are logged in as
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home handles GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, homePath(r), http.StatusSeeOther)
}

func homePath(r *http.Request) string {
	switch {
	case middleware.GetAdmin(r.Context()) != nil:
		return AdminHomePath
	case middleware.GetUser(r.Context()) != nil:
		return UserHomePath
	default:
		return webmw.LoginPath
	}
}
