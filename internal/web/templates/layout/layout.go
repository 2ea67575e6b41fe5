// Package layout renders the page shell shared by every page.
package layout

import (
	"github.com/a-h/templ"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/web/templates/components"
)

// FlashMessage is a one-shot message shown on the next page
type FlashMessage struct {
	Type    string
	Message string
}

// PageData holds data shared by every page
type PageData struct {
	Title string
	Flash *FlashMessage
	Admin *model.Admin
	User  *model.User
}

// Base wraps content in the document shell, navigation and flash banner
func Base(data PageData, content templ.Component) templ.Component {
	return templ.Join(
		templ.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`),
		components.Text(data.Title),
		templ.Raw(" | Blog Admin</title></head><body>"),
		nav(data),
		flash(data.Flash),
		templ.Raw("<main>"),
		content,
		templ.Raw("</main></body></html>"),
	)
}

func nav(data PageData) templ.Component {
	var who templ.Component = templ.NopComponent
	switch {
	case data.Admin != nil:
		who = principal("admin", data.Admin.FullName())
	case data.User != nil:
		who = principal("user", data.User.Name)
	}
	return templ.Join(
		templ.Raw(`<nav><a href="/">Blog Admin</a>`),
		who,
		templ.Raw("</nav>"),
	)
}

func principal(typ, name string) templ.Component {
	return templ.Join(
		templ.Raw(`<span class="principal" data-type="`+typ+`">`),
		components.Text(name),
		templ.Raw(`</span><form method="post" action="/logout"><button type="submit">Log out</button></form>`),
	)
}

func flash(f *FlashMessage) templ.Component {
	if f == nil {
		return templ.NopComponent
	}
	return templ.Join(
		templ.Raw(`<div class="flash flash-`),
		components.Text(f.Type),
		templ.Raw(`">`),
		components.Text(f.Message),
		templ.Raw("</div>"),
	)
}
