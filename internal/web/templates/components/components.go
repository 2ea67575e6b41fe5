// Package components holds the page fragments shared across pages.
package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/blogadmin/internal/model"
)

// Text renders s as escaped HTML text
func Text(s string) templ.Component {
	return templ.Raw(templ.EscapeString(s))
}

// Count renders n as text
func Count(n int64) templ.Component {
	return templ.Raw(strconv.FormatInt(n, 10))
}

// Int renders n as text
func Int(n int) templ.Component {
	return templ.Raw(strconv.Itoa(n))
}

// Stats are the dashboard headline counts
type Stats struct {
	AdminCount    int64
	CategoryCount int64
	BlogCount     int64
	TotalViews    int64
}

// StatList renders the headline counts as a definition list
func StatList(stats Stats) templ.Component {
	return templ.Join(
		templ.Raw(`<section id="stats"><dl>`),
		stat("Admins", "admin-count", stats.AdminCount),
		stat("Categories", "category-count", stats.CategoryCount),
		stat("Posts", "blog-count", stats.BlogCount),
		stat("Views", "total-views", stats.TotalViews),
		templ.Raw(`</dl></section>`),
	)
}

func stat(label, id string, n int64) templ.Component {
	return templ.Join(
		templ.Raw("<dt>"), Text(label), templ.Raw(`</dt><dd id="`+id+`">`),
		Count(n),
		templ.Raw("</dd>"),
	)
}

// BucketTable renders one row per day of a time series
func BucketTable(buckets []model.TimeBucket) templ.Component {
	rows := make([]templ.Component, 0, len(buckets)+2)
	rows = append(rows, templ.Raw("<table><tr><th>Date</th><th>Posts</th></tr>"))
	for _, b := range buckets {
		rows = append(rows, templ.Join(
			templ.Raw(`<tr class="bucket"><td>`), Text(b.Date),
			templ.Raw("</td><td>"), Int(b.Count),
			templ.Raw("</td></tr>"),
		))
	}
	rows = append(rows, templ.Raw("</table>"))
	return templ.Join(rows...)
}

// TallyTable renders one row per category, or a placeholder row when
// there is nothing to show.
func TallyTable(tallies []model.CategoryTally) templ.Component {
	rows := make([]templ.Component, 0, len(tallies)+3)
	rows = append(rows, templ.Raw("<table><tr><th>Category</th><th>Posts</th></tr>"))
	for _, t := range tallies {
		rows = append(rows, templ.Join(
			templ.Raw(`<tr class="tally"><td>`), Text(t.Label),
			templ.Raw("</td><td>"), Int(t.Count),
			templ.Raw("</td></tr>"),
		))
	}
	if len(tallies) == 0 {
		rows = append(rows, templ.Raw(`<tr><td colspan="2">No published posts yet</td></tr>`))
	}
	rows = append(rows, templ.Raw("</table>"))
	return templ.Join(rows...)
}
