// Package pages renders the full pages served by the web interface.
package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/web/templates/components"
	"github.com/mcoot/blogadmin/internal/web/templates/layout"
)

// LoginData is the data for the admin and user login pages
type LoginData struct {
	layout.PageData
	Heading string
	Action  string
	Email   string
	Error   string
}

// Login renders a login form posting to data.Action
func Login(data LoginData) templ.Component {
	var errMsg templ.Component = templ.NopComponent
	if data.Error != "" {
		errMsg = templ.Join(templ.Raw(`<p class="error">`), components.Text(data.Error), templ.Raw("</p>"))
	}
	return layout.Base(data.PageData, templ.Join(
		templ.Raw("<h1>"), components.Text(data.Heading), templ.Raw("</h1>"),
		errMsg,
		templ.Raw(`<form method="post" action="`),
		components.Text(string(templ.URL(data.Action))),
		templ.Raw(`" id="login-form"><label>Email <input type="email" name="email" value="`),
		components.Text(data.Email),
		templ.Raw(`" required></label><label>Password <input type="password" name="password" required></label>`),
		templ.Raw(`<button type="submit">Log in</button></form>`),
	))
}

// DashboardData is the data for the admin dashboard
type DashboardData struct {
	layout.PageData
	Stats      components.Stats
	Days       int
	TimeSeries []model.TimeBucket
	Categories []model.CategoryTally
}

// Dashboard renders the admin dashboard
func Dashboard(data DashboardData) templ.Component {
	return layout.Base(data.PageData, templ.Join(
		templ.Raw("<h1>Dashboard</h1>"),
		components.StatList(data.Stats),
		templ.Raw(`<section id="time-series"><h2>Posts over the last `+strconv.Itoa(data.Days)+` days</h2>`),
		components.BucketTable(data.TimeSeries),
		templ.Raw(`</section><section id="categories"><h2>Posts by category</h2>`),
		components.TallyTable(data.Categories),
		templ.Raw("</section>"),
	))
}

// Account renders the signed-in user's page
func Account(data layout.PageData) templ.Component {
	var details templ.Component = templ.NopComponent
	if data.User != nil {
		details = templ.Join(
			templ.Raw(`<p id="account-name">`), components.Text(data.User.Name),
			templ.Raw(`</p><p id="account-email">`), components.Text(data.User.Email),
			templ.Raw("</p>"),
		)
	}
	return layout.Base(data, templ.Join(templ.Raw("<h1>Your account</h1>"), details))
}

// ErrorData is the data for an error page
type ErrorData struct {
	layout.PageData
	Message string
}

// Error renders an error page
func Error(data ErrorData) templ.Component {
	return layout.Base(data.PageData, templ.Join(
		templ.Raw("<h1>"), components.Text(data.Title), templ.Raw("</h1>"),
		templ.Raw(`<p class="error">`), components.Text(data.Message), templ.Raw("</p>"),
		templ.Raw(`<p><a href="/">Return to home</a></p>`),
	))
}
