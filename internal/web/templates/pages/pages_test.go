package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/web/templates/components"
	"github.com/mcoot/blogadmin/internal/web/templates/layout"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestLoginEscapesUserInput(t *testing.T) {
	doc := render(t, Login(LoginData{
		PageData: layout.PageData{Title: "Admin Login"},
		Heading:  "Admin login",
		Action:   "/login",
		Email:    `"><script>alert(1)</script>`,
		Error:    "Invalid email or password",
	}))

	assert.Equal(t, "Admin Login | Blog Admin", doc.Find("title").Text())
	assert.Equal(t, "/login", doc.Find("#login-form").AttrOr("action", ""))
	assert.Equal(t, `"><script>alert(1)</script>`, doc.Find(`input[name="email"]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "Invalid email or password", doc.Find(".error").Text())
}

func TestLayoutShowsPrincipalAndFlash(t *testing.T) {
	doc := render(t, Account(layout.PageData{
		Title: "Your account",
		Flash: &layout.FlashMessage{Type: "success", Message: "Welcome back, <Bob>!"},
		User:  &model.User{ID: "u1", Name: "Bob", Email: "bob@blog.local"},
	}))

	assert.Equal(t, "Bob", doc.Find(`.principal[data-type="user"]`).Text())
	assert.Equal(t, "Welcome back, <Bob>!", doc.Find(".flash.flash-success").Text())
	assert.Equal(t, "bob@blog.local", doc.Find("#account-email").Text())
	assert.Equal(t, 0, doc.Find(`.principal[data-type="admin"]`).Length())
}

func TestDashboardTables(t *testing.T) {
	doc := render(t, Dashboard(DashboardData{
		PageData: layout.PageData{Title: "Dashboard", Admin: &model.Admin{FirstName: "Ada", LastName: "L"}},
		Stats:    components.Stats{AdminCount: 1, CategoryCount: 2, BlogCount: 3},
		Days:     2,
		TimeSeries: []model.TimeBucket{
			{Date: "2024-01-01", Count: 0},
			{Date: "2024-01-02", Count: 3},
		},
		Categories: []model.CategoryTally{{Label: "Tech & Life", Count: 3}},
	}))

	assert.Equal(t, "3", doc.Find("#blog-count").Text())
	assert.Equal(t, 2, doc.Find("tr.bucket").Length())
	assert.Equal(t, "Tech & Life3", doc.Find("tr.tally").Text())
	assert.True(t, strings.Contains(doc.Find("#time-series h2").Text(), "last 2 days"))
}

func TestDashboardWithoutPosts(t *testing.T) {
	doc := render(t, Dashboard(DashboardData{PageData: layout.PageData{Title: "Dashboard"}, Days: 7}))

	assert.Equal(t, 0, doc.Find("tr.tally").Length())
	assert.Contains(t, doc.Find("#categories").Text(), "No published posts yet")
}

func TestErrorPage(t *testing.T) {
	doc := render(t, Error(ErrorData{PageData: layout.PageData{Title: "Forbidden"}, Message: "Admins only"}))

	assert.Equal(t, "Forbidden", doc.Find("main h1").Text())
	assert.Equal(t, "Admins only", doc.Find(".error").Text())
}
