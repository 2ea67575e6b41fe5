package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blogadmin/internal/factory"
	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/model"
)

// webTestServer drives the full handler the way a browser would
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()
	app := factory.NewTestApp()
	return &webTestServer{
		t:       t,
		handler: app.Handler(),
		app:     app,
		cookies: newCookieJar(),
	}
}

func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	ts.cookies.extract(rr)
	return rr
}

func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// followRedirect requests the Location of a redirect response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// createAdmin stores an admin whose password is hashed unless legacy is set
func (ts *webTestServer) createAdmin(email, password string, legacy bool) *model.Admin {
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

func (ts *webTestServer) createUser(email, password string) *model.User {
	ts.t.Helper()
	hash, err := ts.app.AuthService.HashSecret(password)
	require.NoError(ts.t, err)
	user := &model.User{Name: "Reader", Email: email, Password: hash}
	require.NoError(ts.t, ts.app.MemoryStorage.CreateUser(ts.t.Context(), user))
	return user
}

// loginAdmin creates an admin and logs in through the form
func (ts *webTestServer) loginAdmin() *model.Admin {
	ts.t.Helper()
	admin := ts.createAdmin("admin@blog.local", "Admin@12345", false)
	rr := ts.post("/login", url.Values{"email": {"admin@blog.local"}, "password": {"Admin@12345"}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
	return admin
}

func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar keeps cookies across requests
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies[middleware.SessionCookieName]
	return ok
}

func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if n := doc.Find(selector).Length(); n > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, n)
	}
}

func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
