package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/blogadmin/internal/api/request"
	"github.com/mcoot/blogadmin/internal/api/response"
	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/services/auth"
)

// SessionHandler handles login, logout and the current principal
type SessionHandler struct {
	authService *auth.Service
	cookies     middleware.SessionCookies
	clock       clock.Clock
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service, cookies middleware.SessionCookies, clk clock.Clock) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		cookies:     cookies,
		clock:       clk,
	}
}

// Login handles POST /api/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	typ := model.PrincipalAdmin
	if req.Type != "" {
		typ = model.PrincipalType(req.Type)
		if !typ.Valid() {
			WriteError(w, NewInvalidRequestError("type must be admin or user"))
			return
		}
	}

	session, principal, err := h.authService.Login(r.Context(), typ, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.cookies.Set(w, session, h.clock.Now())
	response.JSON(w, http.StatusOK, response.LoginResponse{
		SessionToken: session.ID,
		ExpiresAt:    session.ExpiresAt,
		Me:           response.MeFromPrincipal(principal),
	})
}

// Logout handles POST /api/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.GetSessionID(r.Context())); err != nil {
		WriteError(w, err)
		return
	}

	h.cookies.Clear(w)
	response.NoContent(w)
}

// Me handles GET /api/me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.MeFromPrincipal(middleware.GetPrincipal(r.Context())))
}
