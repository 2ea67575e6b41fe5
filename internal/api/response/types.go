package response

import (
	"time"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/services/analytics"
)

// Category is a category as listed for the dashboard filters
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CategoriesFromModel converts categories, always returning a non-nil slice
func CategoriesFromModel(cs []*model.Category) []Category {
	out := make([]Category, len(cs))
	for i, c := range cs {
		out[i] = Category{ID: string(c.ID), Name: c.Name}
	}
	return out
}

// Stats are the dashboard headline counts
type Stats struct {
	AdminCount    int64 `json:"adminCount"`
	CategoryCount int64 `json:"categoryCount"`
	BlogCount     int64 `json:"blogCount"`
	TotalViews    int64 `json:"totalViews"`
}

// StatsFromService converts analytics.Stats
func StatsFromService(s *analytics.Stats) Stats {
	return Stats{
		AdminCount:    s.AdminCount,
		CategoryCount: s.CategoryCount,
		BlogCount:     s.BlogCount,
		TotalViews:    s.TotalViews,
	}
}

// Series is one chart's labels and values, index-aligned
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Performance is the blog performance chart payload
type Performance struct {
	Line Series `json:"line"`
	Pie  Series `json:"pie"`
}

// PerformanceFromService converts analytics.Performance
func PerformanceFromService(p *analytics.Performance) Performance {
	line := Series{
		Labels: make([]string, len(p.TimeSeries)),
		Data:   make([]int, len(p.TimeSeries)),
	}
	for i, b := range p.TimeSeries {
		line.Labels[i] = b.Date
		line.Data[i] = b.Count
	}

	pie := Series{
		Labels: make([]string, len(p.Categories)),
		Data:   make([]int, len(p.Categories)),
	}
	for i, t := range p.Categories {
		pie.Labels[i] = t.Label
		pie.Data[i] = t.Count
	}

	return Performance{Line: line, Pie: pie}
}

// Admin is the public projection of an admin
type Admin struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	ContactNumber string   `json:"contactNumber,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	Hobby         []string `json:"hobby,omitempty"`
	Description   string   `json:"description,omitempty"`
	ProfileImage  string   `json:"profileImage,omitempty"`
}

// User is the public projection of a user
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Me describes the logged-in principal. Exactly one of Admin and User is set.
type Me struct {
	Type  string `json:"type"`
	Admin *Admin `json:"admin,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// MeFromPrincipal projects p without its credential
func MeFromPrincipal(p model.Principal) Me {
	me := Me{Type: string(p.PrincipalType())}
	switch v := p.(type) {
	case *model.Admin:
		me.Admin = &Admin{
			ID:            string(v.ID),
			FirstName:     v.FirstName,
			LastName:      v.LastName,
			Email:         v.Email,
			ContactNumber: v.ContactNumber,
			Gender:        v.Gender,
			Hobby:         v.Hobby,
			Description:   v.Description,
			ProfileImage:  v.ProfileImage,
		}
	case *model.User:
		me.User = &User{
			ID:    string(v.ID),
			Name:  v.Name,
			Email: v.Email,
		}
	}
	return me
}

// LoginResponse is returned by a successful API login
type LoginResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Me           Me        `json:"me"`
}

// Health is the health check payload
type Health struct {
	Status string `json:"status"`
}
