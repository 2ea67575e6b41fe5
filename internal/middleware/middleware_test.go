package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blogadmin/internal/metrics"
	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/services/auth"
	testlog "github.com/mcoot/blogadmin/internal/testutil"
)

type stubResolver struct {
	principals map[string]model.Principal
	errs       map[string]error
}

func (s *stubResolver) CurrentPrincipal(_ context.Context, id string) (model.Principal, error) {
	if err, ok := s.errs[id]; ok {
		return nil, err
	}
	if p, ok := s.principals[id]; ok {
		return p, nil
	}
	return nil, auth.ErrInvalidSession
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		principals: map[string]model.Principal{
			"admin-session": &model.Admin{ID: "a1", FirstName: "Ada", Email: "ada@blog.local", Password: "$2a$hash"},
			"user-session":  &model.User{ID: "u1", Name: "Bob", Email: "bob@blog.local", Password: "$2a$hash"},
		},
		errs: map[string]error{
			"stale-session":   auth.ErrStalePrincipal,
			"unknown-session": auth.ErrUnknownPrincipalType,
			"down-session":    fmt.Errorf("%w: connection refused", auth.ErrStoreUnavailable),
		},
	}
}

// captured records what the downstream handler saw
type captured struct {
	admin     *model.Admin
	user      *model.User
	principal model.Principal
	sessionID string
}

func serveWithCookie(t *testing.T, value string) (*httptest.ResponseRecorder, *captured) {
	t.Helper()
	seen := &captured{}
	h := LoadPrincipal(newStubResolver(), NewSessionCookies(false), testlog.NopLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen.admin = GetAdmin(r.Context())
			seen.user = GetUser(r.Context())
			seen.principal = GetPrincipal(r.Context())
			seen.sessionID = GetSessionID(r.Context())
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, seen
}

func clearedCookie(rr *httptest.ResponseRecorder) bool {
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestLoadPrincipalProjectsAdmin(t *testing.T) {
	rr, seen := serveWithCookie(t, "admin-session")

	require.NotNil(t, seen.admin)
	assert.Equal(t, model.PrincipalID("a1"), seen.admin.ID)
	assert.Nil(t, seen.user)
	assert.Same(t, seen.admin, seen.principal)
	assert.Equal(t, "admin-session", seen.sessionID)
	assert.False(t, clearedCookie(rr))
}

func TestLoadPrincipalProjectsUser(t *testing.T) {
	_, seen := serveWithCookie(t, "user-session")

	require.NotNil(t, seen.user)
	assert.Equal(t, "Bob", seen.user.Name)
	assert.Nil(t, seen.admin)
}

func TestLoadPrincipalWithoutCookie(t *testing.T) {
	rr, seen := serveWithCookie(t, "")

	assert.Nil(t, seen.principal)
	assert.Empty(t, rr.Result().Cookies())
}

func TestLoadPrincipalClearsDeadSessions(t *testing.T) {
	for _, id := range []string{"missing-session", "stale-session", "unknown-session"} {
		t.Run(id, func(t *testing.T) {
			rr, seen := serveWithCookie(t, id)
			assert.Nil(t, seen.principal)
			assert.True(t, clearedCookie(rr))
		})
	}
}

func TestLoadPrincipalKeepsCookieWhenStoreIsDown(t *testing.T) {
	rr, seen := serveWithCookie(t, "down-session")

	assert.Nil(t, seen.principal)
	assert.False(t, clearedCookie(rr))
}

func gate(mw func(http.Handler) http.Handler, ctx context.Context) int {
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestGates(t *testing.T) {
	deny := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	anon := context.Background()
	admin := WithPrincipal(anon, &model.Admin{ID: "a1"})
	user := WithPrincipal(anon, &model.User{ID: "u1"})

	assert.Equal(t, http.StatusUnauthorized, gate(RequirePrincipal(deny), anon))
	assert.Equal(t, http.StatusNoContent, gate(RequirePrincipal(deny), admin))
	assert.Equal(t, http.StatusNoContent, gate(RequirePrincipal(deny), user))

	assert.Equal(t, http.StatusUnauthorized, gate(RequireAdmin(deny), anon))
	assert.Equal(t, http.StatusNoContent, gate(RequireAdmin(deny), admin))
	assert.Equal(t, http.StatusUnauthorized, gate(RequireAdmin(deny), user))
}

func TestSessionCookieAttributes(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := &model.Session{ID: "abc", CreatedAt: now, ExpiresAt: now.Add(100 * time.Minute)}

	rr := httptest.NewRecorder()
	NewSessionCookies(true).Set(rr, session, now)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, SessionCookieName, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, 6000, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestInstrumentUsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := mux.NewRouter()
	r.Use(Instrument(m))
	r.HandleFunc("/api/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/api/items/1", "/api/items/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/items/{id}", "418")))
}

func TestRecoveryWritesPanicResponse(t *testing.T) {
	h := Recovery(testlog.NopLogger(), DefaultPanicHandler)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("kaboom"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionIDPrefersBearerHeader(t *testing.T) {
	cookies := NewSessionCookies(false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", cookies.SessionID(req))

	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", cookies.SessionID(req))

	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", cookies.SessionID(req))
}
