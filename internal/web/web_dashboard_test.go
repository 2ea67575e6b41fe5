package web_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blogadmin/internal/model"
)

func (ts *webTestServer) seedContent() {
	ts.t.Helper()
	ctx := ts.t.Context()

	tech := &model.Category{Name: "Tech"}
	require.NoError(ts.t, ts.app.MemoryStorage.CreateCategory(ctx, tech))

	at := func(day int, hour int) *time.Time {
		t := time.Date(2023, 12, day, hour, 0, 0, 0, time.UTC)
		return &t
	}
	blogs := []*model.Blog{
		{Title: "a", Status: model.BlogPublished, CategoryID: tech.ID, PublishDate: at(27, 9)},
		{Title: "b", Status: model.BlogPublished, CategoryID: tech.ID, PublishDate: at(30, 18)},
		{Title: "c", Status: model.BlogPublished, PublishDate: at(30, 8)},
		{Title: "d", Status: model.BlogPublished, CategoryID: "gone", PublishDate: at(20, 8)},
		{Title: "draft", Status: model.BlogDraft, CategoryID: tech.ID, PublishDate: at(30, 8)},
	}
	for _, b := range blogs {
		require.NoError(ts.t, ts.app.MemoryStorage.CreateBlog(ctx, b))
	}
}

func rows(doc *goquery.Document, selector string) [][2]string {
	var out [][2]string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		out = append(out, [2]string{cells.Eq(0).Text(), cells.Eq(1).Text()})
	})
	return out
}

func TestDashboardRequiresLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestDashboardRendersStatsAndCharts(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()
	ts.seedContent()

	rr := ts.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)

	assertContainsText(t, doc, "#admin-count", "1")
	assertContainsText(t, doc, "#category-count", "1")
	assertContainsText(t, doc, "#blog-count", "4")
	assertContainsText(t, doc, "#total-views", "0")

	assert.Equal(t, [][2]string{
		{"2023-12-26", "0"},
		{"2023-12-27", "1"},
		{"2023-12-28", "0"},
		{"2023-12-29", "0"},
		{"2023-12-30", "2"},
		{"2023-12-31", "0"},
		{"2024-01-01", "0"},
	}, rows(doc, "tr.bucket"))

	assert.Equal(t, [][2]string{
		{"Tech", "2"},
		{"Uncategorized", "2"},
	}, rows(doc, "tr.tally"))
}

func TestDashboardCustomWindow(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()
	ts.seedContent()

	rr := ts.get("/admin/dashboard?days=14")
	require.Equal(t, http.StatusOK, rr.Code)

	buckets := rows(parseHTML(rr.Body), "tr.bucket")
	require.Len(t, buckets, 14)
	assert.Equal(t, [2]string{"2023-12-19", "0"}, buckets[0])
	assert.Equal(t, [2]string{"2023-12-20", "1"}, buckets[1])
}

func TestDashboardRejectsInvalidWindow(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	for _, days := range []string{"-1", "367"} {
		rr := ts.get("/admin/dashboard?days=" + days)
		assert.Equal(t, http.StatusBadRequest, rr.Code, days)
	}
}

func TestDashboardEmptyContent(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	rr := ts.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Len(t, rows(doc, "tr.bucket"), 7)
	assert.Empty(t, rows(doc, "tr.tally"))
	assertContainsText(t, doc, "#categories", "No published posts yet")
}
