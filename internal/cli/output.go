package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output formats command results as text or JSON
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case LoginResult:
		o.printMe(v.Me)
		fmt.Fprintf(o.w, "Token: %s\n", v.SessionToken)
		fmt.Fprintf(o.w, "Expires: %s\n", v.ExpiresAt)
	case Me:
		o.printMe(v)
	case Stats:
		fmt.Fprintf(o.w, "Admins:     %d\n", v.AdminCount)
		fmt.Fprintf(o.w, "Categories: %d\n", v.CategoryCount)
		fmt.Fprintf(o.w, "Posts:      %d\n", v.BlogCount)
		fmt.Fprintf(o.w, "Views:      %d\n", v.TotalViews)
	case []Category:
		if len(v) == 0 {
			fmt.Fprintln(o.w, "No categories")
		}
		for _, c := range v {
			fmt.Fprintf(o.w, "%s  %s\n", c.ID, c.Name)
		}
	case Performance:
		o.printSeries("Posts per day", v.Line)
		fmt.Fprintln(o.w)
		o.printSeries("Posts per category", v.Pie)
	case SeedResult:
		if v.Created {
			fmt.Fprintf(o.w, "Created admin %s (%s)\n", v.Email, v.ID)
		} else {
			fmt.Fprintf(o.w, "Admin %s already exists\n", v.Email)
		}
		if !v.Persistent {
			fmt.Fprintln(o.w, "Warning: in-memory store, nothing was persisted")
		}
	default:
		o.printJSON(data)
	}
}

func (o *Output) printMe(m Me) {
	switch {
	case m.Admin != nil:
		name := strings.TrimSpace(m.Admin.FirstName + " " + m.Admin.LastName)
		fmt.Fprintf(o.w, "Admin: %s <%s> (%s)\n", name, m.Admin.Email, m.Admin.ID)
	case m.User != nil:
		fmt.Fprintf(o.w, "User: %s <%s> (%s)\n", m.User.Name, m.User.Email, m.User.ID)
	default:
		fmt.Fprintf(o.w, "Principal: %s\n", m.Type)
	}
}

func (o *Output) printSeries(title string, s Series) {
	fmt.Fprintf(o.w, "%s:\n", title)
	if len(s.Labels) == 0 {
		fmt.Fprintln(o.w, "  (none)")
		return
	}
	width := 0
	for _, l := range s.Labels {
		width = max(width, len(l))
	}
	for i, l := range s.Labels {
		fmt.Fprintf(o.w, "  %-*s %d\n", width, l, s.Data[i])
	}
}

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

// Admin is an admin as the API projects it
type Admin struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// User is a user as the API projects it
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Me is the logged-in principal
type Me struct {
	Type  string `json:"type"`
	Admin *Admin `json:"admin,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// LoginResult is the login response
type LoginResult struct {
	SessionToken string `json:"session_token"`
	ExpiresAt    string `json:"expires_at"`
	Me           Me     `json:"me"`
}

// Stats are the dashboard headline counts
type Stats struct {
	AdminCount    int64 `json:"adminCount"`
	CategoryCount int64 `json:"categoryCount"`
	BlogCount     int64 `json:"blogCount"`
	TotalViews    int64 `json:"totalViews"`
}

// Category is a listed category
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Series is one chart's labels and values
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Performance is the blog performance chart payload
type Performance struct {
	Line Series `json:"line"`
	Pie  Series `json:"pie"`
}

// SeedResult reports the outcome of seed-admin
type SeedResult struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Created    bool   `json:"created"`
	Persistent bool   `json:"persistent"`
}
