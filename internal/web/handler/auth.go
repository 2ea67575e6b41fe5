package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/services/auth"
	webmw "github.com/mcoot/blogadmin/internal/web/middleware"
	"github.com/mcoot/blogadmin/internal/web/templates/pages"
)

// UserLoginPath is the login page for regular users
const UserLoginPath = "/user/login"

// loginForm describes one principal type's login page
type loginForm struct {
	typ     model.PrincipalType
	title   string
	heading string
	action  string
	home    string
}

var (
	adminLogin = loginForm{
		typ:     model.PrincipalAdmin,
		title:   "Admin Login",
		heading: "Admin sign in",
		action:  webmw.LoginPath,
		home:    AdminHomePath,
	}
	userLogin = loginForm{
		typ:     model.PrincipalUser,
		title:   "Login",
		heading: "Sign in",
		action:  UserLoginPath,
		home:    UserHomePath,
	}
)

// AuthHandler handles the login pages and logout
type AuthHandler struct {
	authService *auth.Service
	cookies     middleware.SessionCookies
	clock       clock.Clock
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, cookies middleware.SessionCookies, clk clock.Clock, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		clock:       clk,
		logger:      logger,
	}
}

// AdminLoginPage handles GET /login
func (h *AuthHandler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	h.loginPage(w, r, adminLogin)
}

// AdminLogin handles POST /login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, adminLogin)
}

// UserLoginPage handles GET /user/login
func (h *AuthHandler) UserLoginPage(w http.ResponseWriter, r *http.Request) {
	h.loginPage(w, r, userLogin)
}

// UserLogin handles POST /user/login
func (h *AuthHandler) UserLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, userLogin)
}

func (h *AuthHandler) loginPage(w http.ResponseWriter, r *http.Request, form loginForm) {
	if p := middleware.GetPrincipal(r.Context()); p != nil && p.PrincipalType() == form.typ {
		http.Redirect(w, r, form.home, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, form, http.StatusOK, "", "")
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, form loginForm) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, form, http.StatusBadRequest, "", "Invalid form data")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderLogin(w, r, form, http.StatusBadRequest, email, "Email and password are required")
		return
	}

	session, principal, err := h.authService.Login(r.Context(), form.typ, email, password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.renderLogin(w, r, form, http.StatusUnauthorized, email, "Invalid email or password")
		return
	default:
		h.logger.Error("login failed", slog.String("principal_type", string(form.typ)), slog.String("error", err.Error()))
		h.renderLogin(w, r, form, http.StatusInternalServerError, email, "Login is unavailable, please try again")
		return
	}

	h.cookies.Set(w, session, h.clock.Now())
	webmw.SetFlash(w, webmw.FlashSuccess, "Welcome back, "+displayName(principal)+"!")
	http.Redirect(w, r, form.home, http.StatusSeeOther)
}

// Logout handles GET and POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := middleware.GetSessionID(r.Context()); id != "" {
		if err := h.authService.Logout(r.Context(), id); err != nil {
			h.logger.Warn("logout failed", slog.String("error", err.Error()))
		}
	}

	h.cookies.Clear(w)
	webmw.SetFlash(w, webmw.FlashInfo, "You have been logged out")
	http.Redirect(w, r, webmw.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, form loginForm, status int, email, errMsg string) {
	data := pages.LoginData{
		PageData: pageData(r, form.title),
		Heading:  form.heading,
		Action:   form.action,
		Email:    email,
		Error:    errMsg,
	}

	setHTML(w, status)
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		h.logger.Error("render login page failed", slog.String("error", err.Error()))
	}
}

func displayName(p model.Principal) string {
	switch v := p.(type) {
	case *model.Admin:
		return v.FullName()
	case *model.User:
		return v.Name
	default:
		return ""
	}
}
