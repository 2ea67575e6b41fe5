package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/storage"
)

// Bootstrap admin defaults
const (
	DefaultAdminEmail    = "admin@blog.local"
	DefaultAdminPassword = "Admin@12345"
	DefaultFirstName     = "Super"
	DefaultLastName      = "Admin"
)

// ErrMissingCredentials is returned when the seed email or password is blank
var ErrMissingCredentials = errors.New("seed email and password are required")

// Hasher hashes a secret for storage
type Hasher interface {
	HashSecret(secret string) (string, error)
}

// SeedRequest describes the admin to create
type SeedRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Service creates the first admin account out of band from the login flow
type Service struct {
	admins storage.AdminStore
	hasher Hasher
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new provisioning Service
func New(admins storage.AdminStore, hasher Hasher, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		admins: admins,
		hasher: hasher,
		clock:  clk,
		logger: logger,
	}
}

// SeedAdmin creates the admin unless one with the same email exists.
// It reports whether a new admin was created.
func (s *Service) SeedAdmin(ctx context.Context, req SeedRequest) (*model.Admin, bool, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, false, ErrMissingCredentials
	}

	existing, err := s.admins.GetAdminByEmail(ctx, email)
	if err == nil {
		s.logger.Info("admin already exists", slog.String("email", email))
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrAdminNotFound) {
		return nil, false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := s.hasher.HashSecret(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	firstName, lastName := req.FirstName, req.LastName
	if firstName == "" {
		firstName = DefaultFirstName
	}
	if lastName == "" {
		lastName = DefaultLastName
	}

	now := s.clock.Now()
	admin := &model.Admin{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.admins.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			s.logger.Info("admin already exists", slog.String("email", email))
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("seeded admin", slog.String("email", email), slog.String("admin_id", string(admin.ID)))
	return admin, true, nil
}
