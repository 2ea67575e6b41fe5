package storage

import (
	"context"
	"time"

	"github.com/mcoot/blogadmin/internal/model"
)

// AdminStore persists administrators
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	GetAdmin(ctx context.Context, id model.PrincipalID) (*model.Admin, error)
	// GetAdminByEmail expects an already normalised email
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	// UpdateAdminPassword changes only the password field
	UpdateAdminPassword(ctx context.Context, id model.PrincipalID, password string) error
	DeleteAdmin(ctx context.Context, id model.PrincipalID) error
	CountAdmins(ctx context.Context) (int64, error)
}

// UserStore persists regular users
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.PrincipalID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserPassword(ctx context.Context, id model.PrincipalID, password string) error
	DeleteUser(ctx context.Context, id model.PrincipalID) error
}

// CredentialStore is everything the identity resolver needs
type CredentialStore interface {
	AdminStore
	UserStore
}

// CategoryStore persists categories
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	ListCategories(ctx context.Context) ([]*model.Category, error)
	// CategoryNames resolves ids to names in one lookup; unknown ids are absent
	CategoryNames(ctx context.Context, ids []model.CategoryID) (map[model.CategoryID]string, error)
	DeleteCategory(ctx context.Context, id model.CategoryID) error
	CountCategories(ctx context.Context) (int64, error)
}

// ContentStore persists blog posts and answers aggregate queries over them
type ContentStore interface {
	CreateBlog(ctx context.Context, blog *model.Blog) error
	// CountListedBlogs counts published and scheduled posts regardless of date
	CountListedBlogs(ctx context.Context) (int64, error)
	// CountVisibleByDay returns day -> count for days that have posts
	CountVisibleByDay(ctx context.Context, q model.DayCountQuery) (map[string]int, error)
	// CountVisibleByCategory groups all posts visible at now by category reference
	CountVisibleByCategory(ctx context.Context, now time.Time) ([]model.CategoryCount, error)
}

// Storage is the full record store
type Storage interface {
	CredentialStore
	CategoryStore
	ContentStore
	Close(ctx context.Context) error
}

// SessionStore persists login sessions
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
	Close() error
}
