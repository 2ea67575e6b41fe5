package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blogadmin/internal/api/apierr"
	"github.com/mcoot/blogadmin/internal/api/response"
	"github.com/mcoot/blogadmin/internal/factory"
	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/model"
)

// testServer wraps the full handler over memory stores and a mocked clock
// fixed at 2024-01-01 12:00 UTC.
type testServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	app := factory.NewTestApp()
	return &testServer{t: t, handler: app.Handler(), app: app}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createAdmin(email, password string, legacy bool) *model.Admin {
	ts.t.Helper()
	stored := password
	if !legacy {
		var err error
		stored, err = ts.app.AuthService.HashSecret(password)
		require.NoError(ts.t, err)
	}
	admin := &model.Admin{FirstName: "Super", LastName: "Admin", Email: email, Password: stored}
	require.NoError(ts.t, ts.app.MemoryStorage.CreateAdmin(ts.t.Context(), admin))
	return admin
}

func (ts *testServer) createUser(email, password string) *model.User {
	ts.t.Helper()
	hash, err := ts.app.AuthService.HashSecret(password)
	require.NoError(ts.t, err)
	user := &model.User{Name: "Reader", Email: email, Password: hash}
	require.NoError(ts.t, ts.app.MemoryStorage.CreateUser(ts.t.Context(), user))
	return user
}

// login posts credentials and returns the session token
func (ts *testServer) login(email, password, typ string) string {
	ts.t.Helper()
	rr := ts.request(http.MethodPost, "/api/login", map[string]string{
		"email": email, "password": password, "type": typ,
	}, "")
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.LoginResponse
	require.NoError(ts.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(ts.t, resp.SessionToken)
	return resp.SessionToken
}

func (ts *testServer) adminToken() string {
	ts.t.Helper()
	ts.createAdmin("admin@blog.local", "Admin@12345", false)
	return ts.login("admin@blog.local", "Admin@12345", "")
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func publishedAt(t time.Time) *time.Time {
	return &t
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestLoginSetsCookieAndReturnsToken(t *testing.T) {
	ts := newTestServer(t)
	ts.createAdmin("admin@blog.local", "Admin@12345", false)
	ts.app.MockRandom.QueueToken("sess-1")

	rr := ts.request(http.MethodPost, "/api/login", map[string]string{
		"email": "admin@blog.local", "password": "Admin@12345",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionToken)
	assert.Equal(t, "admin", resp.Me.Type)
	require.NotNil(t, resp.Me.Admin)
	assert.Nil(t, resp.Me.User)
	assert.Equal(t, "admin@blog.local", resp.Me.Admin.Email)
	assert.True(t, resp.ExpiresAt.Equal(time.Date(2024, 1, 1, 13, 40, 0, 0, time.UTC)))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "sess-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginNeverReturnsCredential(t *testing.T) {
	ts := newTestServer(t)
	ts.createAdmin("admin@blog.local", "Admin@12345", false)

	rr := ts.request(http.MethodPost, "/api/login", map[string]string{
		"email": "admin@blog.local", "password": "Admin@12345",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
	assert.NotContains(t, rr.Body.String(), "$2a$")
}

func TestLoginRejectsBadRequests(t *testing.T) {
	ts := newTestServer(t)

	cases := map[string]any{
		"missing email":    map[string]string{"password": "x"},
		"missing password": map[string]string{"email": "a@blog.local"},
		"unknown type":     map[string]string{"email": "a@blog.local", "password": "x", "type": "Admin"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/login", body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	ts := newTestServer(t)
	ts.createAdmin("admin@blog.local", "Admin@12345", false)

	wrong := ts.request(http.MethodPost, "/api/login", map[string]string{"email": "admin@blog.local", "password": "nope"}, "")
	missing := ts.request(http.MethodPost, "/api/login", map[string]string{"email": "ghost@blog.local", "password": "nope"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, decodeError(t, wrong).Code)
	assert.Equal(t, wrong.Body.String(), missing.Body.String())
	assert.Equal(t, 0, ts.app.MemorySessions.Len())
}

func TestLoginMigratesLegacyPassword(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin("legacy@blog.local", "plain-old", true)

	ts.login("legacy@blog.local", "plain-old", "admin")

	stored, err := ts.app.MemoryStorage.GetAdmin(t.Context(), admin.ID)
	require.NoError(t, err)
	assert.True(t, model.IsHashedCredential(stored.Password))
	assert.Equal(t, "Super", stored.FirstName)

	ts.login("legacy@blog.local", "plain-old", "admin")
}

func TestUserLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser("reader@blog.local", "reader-pass")

	// A user cannot log in through the admin realm
	rr := ts.request(http.MethodPost, "/api/login", map[string]string{"email": "reader@blog.local", "password": "reader-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := ts.login("reader@blog.local", "reader-pass", "user")

	rr = ts.request(http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var me response.Me
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "user", me.Type)
	assert.Nil(t, me.Admin)
	require.NotNil(t, me.User)
	assert.Equal(t, string(user.ID), me.User.ID)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestProtectedEndpointsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/me", "/api/categories", "/api/stats", "/api/blog-performance"} {
		t.Run(path, func(t *testing.T) {
			rr := ts.request(http.MethodGet, path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Code)

			rr = ts.request(http.MethodGet, path, nil, "not-a-session")
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}

	rr := ts.request(http.MethodPost, "/api/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionCookieAuthenticates(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"type":"admin"`)
}

func TestCategories(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()

	rr := ts.request(http.MethodGet, "/api/categories", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	tech := &model.Category{Name: "Tech"}
	require.NoError(t, ts.app.MemoryStorage.CreateCategory(t.Context(), tech))

	rr = ts.request(http.MethodGet, "/api/categories", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"_id":"`+string(tech.ID)+`","name":"Tech"}]`, rr.Body.String())
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()
	ctx := t.Context()

	require.NoError(t, ts.app.MemoryStorage.CreateCategory(ctx, &model.Category{Name: "Tech"}))
	require.NoError(t, ts.app.MemoryStorage.CreateBlog(ctx, &model.Blog{Status: model.BlogPublished}))
	require.NoError(t, ts.app.MemoryStorage.CreateBlog(ctx, &model.Blog{Status: model.BlogDraft}))

	rr := ts.request(http.MethodGet, "/api/stats", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"adminCount":1,"categoryCount":1,"blogCount":1,"totalViews":0}`, rr.Body.String())
}

func TestBlogPerformance(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()
	ctx := t.Context()

	// Today is 2024-01-01: one published post two days back and one
	// scheduled post five days back.
	require.NoError(t, ts.app.MemoryStorage.CreateBlog(ctx, &model.Blog{
		Status:      model.BlogPublished,
		PublishDate: publishedAt(time.Date(2023, 12, 30, 10, 0, 0, 0, time.UTC)),
	}))
	require.NoError(t, ts.app.MemoryStorage.CreateBlog(ctx, &model.Blog{
		Status:      model.BlogScheduled,
		CategoryID:  "deleted-category",
		PublishDate: publishedAt(time.Date(2023, 12, 27, 10, 0, 0, 0, time.UTC)),
	}))

	rr := ts.request(http.MethodGet, "/api/blog-performance", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var perf response.Performance
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &perf))
	assert.Equal(t, []string{
		"2023-12-26", "2023-12-27", "2023-12-28", "2023-12-29",
		"2023-12-30", "2023-12-31", "2024-01-01",
	}, perf.Line.Labels)
	assert.Equal(t, []int{0, 1, 0, 0, 1, 0, 0}, perf.Line.Data)
	assert.Equal(t, []string{"Uncategorized"}, perf.Pie.Labels)
	assert.Equal(t, []int{2}, perf.Pie.Data)
}

func TestBlogPerformanceWindow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()

	lengths := map[string]int{
		"":          7,
		"?days=0":   7,
		"?days=x":   7,
		"?days=1":   1,
		"?days=30":  30,
		"?days=366": 366,
	}
	for query, want := range lengths {
		t.Run("len"+query, func(t *testing.T) {
			rr := ts.request(http.MethodGet, "/api/blog-performance"+query, nil, token)
			require.Equal(t, http.StatusOK, rr.Code)

			var perf response.Performance
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &perf))
			assert.Len(t, perf.Line.Labels, want)
			assert.Len(t, perf.Line.Data, want)
			assert.Equal(t, "2024-01-01", perf.Line.Labels[want-1])
			assert.NotNil(t, perf.Pie.Labels)
		})
	}

	for _, query := range []string{"?days=-1", "?days=367"} {
		t.Run("reject"+query, func(t *testing.T) {
			rr := ts.request(http.MethodGet, "/api/blog-performance"+query, nil, token)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidWindow, decodeError(t, rr).Code)
		})
	}
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()

	rr := ts.request(http.MethodPost, "/api/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)

	rr = ts.request(http.MethodGet, "/api/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestStaleSessionIsRejectedAndCleared(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createAdmin("admin@blog.local", "Admin@12345", false)
	token := ts.login("admin@blog.local", "Admin@12345", "admin")

	require.NoError(t, ts.app.MemoryStorage.DeleteAdmin(t.Context(), admin.ID))

	rr := ts.request(http.MethodGet, "/api/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
	assert.Equal(t, 0, ts.app.MemorySessions.Len())
}

func TestSessionExpiresWithoutRefresh(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()

	ts.app.MockClock.Advance(99 * time.Minute)
	rr := ts.request(http.MethodGet, "/api/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	ts.app.MockClock.Advance(time.Minute)
	rr = ts.request(http.MethodGet, "/api/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.request(http.MethodGet, "/api/health", nil, "")

	rr := ts.request(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `blogadmin_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}
