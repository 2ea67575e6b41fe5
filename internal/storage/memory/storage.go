package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	admins          map[model.PrincipalID]*model.Admin
	adminEmailIndex map[string]model.PrincipalID
	users           map[model.PrincipalID]*model.User
	userEmailIndex  map[string]model.PrincipalID
	categories      map[model.CategoryID]*model.Category
	blogs           map[model.BlogID]*model.Blog
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		admins:          make(map[model.PrincipalID]*model.Admin),
		adminEmailIndex: make(map[string]model.PrincipalID),
		users:           make(map[model.PrincipalID]*model.User),
		userEmailIndex:  make(map[string]model.PrincipalID),
		categories:      make(map[model.CategoryID]*model.Category),
		blogs:           make(map[model.BlogID]*model.Blog),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func newID() string {
	return uuid.NewString()
}

// Close is a no-op
func (s *Storage) Close(ctx context.Context) error {
	return nil
}

// Admin operations

func (s *Storage) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.adminEmailIndex[admin.Email]; ok {
		return model.ErrEmailExists
	}
	if admin.ID == "" {
		admin.ID = model.PrincipalID(newID())
	}
	stored := *admin
	s.admins[admin.ID] = &stored
	s.adminEmailIndex[admin.Email] = admin.ID
	return nil
}

func (s *Storage) GetAdmin(ctx context.Context, id model.PrincipalID) (*model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[id]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	out := *admin
	return &out, nil
}

func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	s.mu.RLock()
	id, ok := s.adminEmailIndex[email]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	return s.GetAdmin(ctx, id)
}

func (s *Storage) UpdateAdminPassword(ctx context.Context, id model.PrincipalID, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[id]
	if !ok {
		return model.ErrAdminNotFound
	}
	admin.Password = password
	return nil
}

func (s *Storage) DeleteAdmin(ctx context.Context, id model.PrincipalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[id]
	if !ok {
		return model.ErrAdminNotFound
	}
	delete(s.adminEmailIndex, admin.Email)
	delete(s.admins, id)
	return nil
}

func (s *Storage) CountAdmins(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.admins)), nil
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userEmailIndex[user.Email]; ok {
		return model.ErrEmailExists
	}
	if user.ID == "" {
		user.ID = model.PrincipalID(newID())
	}
	stored := *user
	s.users[user.ID] = &stored
	s.userEmailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.PrincipalID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.userEmailIndex[email]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) UpdateUserPassword(ctx context.Context, id model.PrincipalID, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Password = password
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.PrincipalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	delete(s.userEmailIndex, user.Email)
	delete(s.users, id)
	return nil
}

// Category operations

func (s *Storage) CreateCategory(ctx context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.ID == "" {
		category.ID = model.CategoryID(newID())
	}
	stored := *category
	s.categories[category.ID] = &stored
	return nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out := *c
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Storage) CategoryNames(ctx context.Context, ids []model.CategoryID) (map[model.CategoryID]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make(map[model.CategoryID]string, len(ids))
	for _, id := range ids {
		if c, ok := s.categories[id]; ok {
			names[id] = c.Name
		}
	}
	return names, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, id model.CategoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *Storage) CountCategories(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.categories)), nil
}

// Blog operations

func (s *Storage) CreateBlog(ctx context.Context, blog *model.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if blog.ID == "" {
		blog.ID = model.BlogID(newID())
	}
	stored := *blog
	s.blogs[blog.ID] = &stored
	return nil
}

func (s *Storage) CountListedBlogs(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, b := range s.blogs {
		if b.Status == model.BlogPublished || b.Status == model.BlogScheduled {
			n++
		}
	}
	return n, nil
}

func (s *Storage) CountVisibleByDay(ctx context.Context, q model.DayCountQuery) (map[string]int, error) {
	loc := q.Location
	if loc == nil {
		loc = time.Local
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, b := range s.blogs {
		if !b.VisibleAt(q.Now) {
			continue
		}
		at := b.EffectiveDate()
		if at.Before(q.Since) || at.After(q.Until) {
			continue
		}
		counts[at.In(loc).Format(model.DayFormat)]++
	}
	return counts, nil
}

func (s *Storage) CountVisibleByCategory(ctx context.Context, now time.Time) ([]model.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grouped := make(map[model.CategoryID]int)
	for _, b := range s.blogs {
		if b.VisibleAt(now) {
			grouped[b.CategoryID]++
		}
	}
	result := make([]model.CategoryCount, 0, len(grouped))
	for id, n := range grouped {
		result = append(result, model.CategoryCount{CategoryID: id, Count: n})
	}
	return result, nil
}
