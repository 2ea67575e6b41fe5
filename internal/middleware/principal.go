package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/services/auth"
)

// SessionCookieName is the cookie carrying the session id
const SessionCookieName = "blog-admin"

type contextKey string

const (
	adminContextKey   contextKey = "admin"
	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session_id"
)

// PrincipalResolver turns a session id into the logged-in principal
type PrincipalResolver interface {
	CurrentPrincipal(ctx context.Context, sessionID string) (model.Principal, error)
}

// SessionCookies writes and clears the session cookie
type SessionCookies struct {
	Name   string
	Secure bool
}

// NewSessionCookies returns cookie settings using SessionCookieName
func NewSessionCookies(secure bool) SessionCookies {
	return SessionCookies{Name: SessionCookieName, Secure: secure}
}

// Set stores the session id in a cookie that expires with the session
func (c SessionCookies) Set(w http.ResponseWriter, session *model.Session, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(session.ExpiresAt.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie
func (c SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID returns the session id from a Bearer Authorization header or,
// failing that, the cookie. It returns "" if there is neither.
func (c SessionCookies) SessionID(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// LoadPrincipal resolves the session cookie and projects the principal into
// the request context. It never rejects a request: any failure leaves the
// request unauthenticated. Sessions that point at a deleted principal or an
// unknown principal type have already been deleted by the resolver, so their
// cookie is cleared too.
func LoadPrincipal(resolver PrincipalResolver, cookies SessionCookies, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := cookies.SessionID(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := resolver.CurrentPrincipal(r.Context(), id)
			switch {
			case err == nil:
				ctx := WithPrincipal(r.Context(), principal)
				ctx = context.WithValue(ctx, sessionContextKey, id)
				r = r.WithContext(ctx)
			case errors.Is(err, auth.ErrInvalidSession),
				errors.Is(err, auth.ErrStalePrincipal),
				errors.Is(err, auth.ErrUnknownPrincipalType):
				cookies.Clear(w)
			default:
				logger.Warn("could not resolve session", slog.String("error", err.Error()))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithPrincipal stores p in ctx under the key for its variant
func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	switch v := p.(type) {
	case *model.Admin:
		return context.WithValue(ctx, adminContextKey, v)
	case *model.User:
		return context.WithValue(ctx, userContextKey, v)
	default:
		return ctx
	}
}

// GetAdmin returns the logged-in admin, or nil
func GetAdmin(ctx context.Context) *model.Admin {
	admin, _ := ctx.Value(adminContextKey).(*model.Admin)
	return admin
}

// GetUser returns the logged-in user, or nil
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetPrincipal returns whichever principal is logged in, or nil
func GetPrincipal(ctx context.Context) model.Principal {
	if admin := GetAdmin(ctx); admin != nil {
		return admin
	}
	if user := GetUser(ctx); user != nil {
		return user
	}
	return nil
}

// GetSessionID returns the id of the resolved session, or ""
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionContextKey).(string)
	return id
}

// RequirePrincipal passes requests with a resolved principal and hands the
// rest to deny.
func RequirePrincipal(deny http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetPrincipal(r.Context()) == nil {
				deny.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin passes requests whose principal is an admin and hands the
// rest to deny.
func RequireAdmin(deny http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetAdmin(r.Context()) == nil {
				deny.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
