package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/dependencies/random"
	"github.com/mcoot/blogadmin/internal/metrics"
	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidSession       = errors.New("invalid or expired session")
	ErrStalePrincipal       = errors.New("principal no longer exists")
	ErrUnknownPrincipalType = errors.New("unknown principal type")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrMigrationWriteFailed = errors.New("credential migration write failed")
)

// sessionIDBytes is the entropy of a session id
const sessionIDBytes = 32

// Config holds configuration for the auth service
type Config struct {
	// SessionDuration is the fixed session lifetime; activity does not extend it
	SessionDuration time.Duration
	// BcryptCost is used for new hashes, including migrated credentials
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 100 * time.Minute,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// Service authenticates admins and users, migrates legacy credentials and
// manages the sessions that remember who is logged in.
type Service struct {
	sessions storage.SessionStore
	clock    clock.Clock
	random   random.Random
	metrics  *metrics.Metrics
	logger   *slog.Logger

	realms map[model.PrincipalType]realm

	sessionDuration time.Duration
	bcryptCost      int
}

// New creates a new auth Service
func New(
	store storage.CredentialStore,
	sessions storage.SessionStore,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		sessions:        sessions,
		clock:           clk,
		random:          rnd,
		metrics:         m,
		logger:          logger,
		realms:          newRealms(store),
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      cfg.BcryptCost,
	}
}

// SessionDuration returns the configured session lifetime
func (s *Service) SessionDuration() time.Duration {
	return s.sessionDuration
}

// Authenticate checks identifier and secret against the store for typ.
// An unknown identifier and a wrong secret both yield ErrInvalidCredentials.
// A matching plaintext credential is replaced by its bcrypt hash before
// returning; failure to write the hash is logged and does not fail the login.
func (s *Service) Authenticate(ctx context.Context, typ model.PrincipalType, identifier, secret string) (model.Principal, error) {
	r, ok := s.realms[typ]
	if !ok {
		return nil, ErrUnknownPrincipalType
	}

	principal, err := s.verify(ctx, r, identifier, secret)
	switch {
	case err == nil:
		s.metrics.LoginAttempts.WithLabelValues(string(typ), metrics.ResultSuccess).Inc()
	case errors.Is(err, ErrInvalidCredentials):
		s.metrics.LoginAttempts.WithLabelValues(string(typ), metrics.ResultFailure).Inc()
	default:
		s.metrics.LoginAttempts.WithLabelValues(string(typ), metrics.ResultError).Inc()
	}
	return principal, err
}

func (s *Service) verify(ctx context.Context, r realm, identifier, secret string) (model.Principal, error) {
	if secret == "" {
		return nil, ErrInvalidCredentials
	}

	principal, stored, err := r.lookupByEmail(ctx, model.NormalizeEmail(identifier))
	if err != nil {
		if errors.Is(err, r.notFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError(err)
	}

	if model.IsHashedCredential(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)); err != nil {
			return nil, ErrInvalidCredentials
		}
		return principal, nil
	}

	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) != 1 {
		return nil, ErrInvalidCredentials
	}

	s.migrateCredential(ctx, r, principal, secret)
	return principal, nil
}

// migrateCredential rewrites only the password field. Concurrent logins may
// both write; every hash written verifies the same secret.
func (s *Service) migrateCredential(ctx context.Context, r realm, principal model.Principal, secret string) {
	attrs := []any{
		slog.String("principal_type", string(r.typ)),
		slog.String("principal_id", string(principal.PrincipalID())),
	}

	err := s.writeHash(ctx, r, principal.PrincipalID(), secret)
	if err != nil {
		s.metrics.CredentialMigrations.WithLabelValues(string(r.typ), metrics.ResultFailure).Inc()
		s.logger.Warn("credential migration failed",
			append(attrs, slog.String("error", fmt.Errorf("%w: %w", ErrMigrationWriteFailed, err).Error()))...)
		return
	}

	s.metrics.CredentialMigrations.WithLabelValues(string(r.typ), metrics.ResultSuccess).Inc()
	s.logger.Info("migrated credential to hashed storage", attrs...)
}

func (s *Service) writeHash(ctx context.Context, r realm, id model.PrincipalID, secret string) error {
	hash, err := s.HashSecret(secret)
	if err != nil {
		return err
	}
	return r.setPassword(ctx, id, hash)
}

// HashSecret hashes a secret with the configured bcrypt cost
func (s *Service) HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SerializePrincipal builds the token a session stores for p. The type comes
// from the principal's variant, which is fixed by the store that loaded it.
func (s *Service) SerializePrincipal(p model.Principal) model.SessionToken {
	return model.SessionToken{
		PrincipalID:   p.PrincipalID(),
		PrincipalType: p.PrincipalType(),
	}
}

// ResolvePrincipal loads the principal a token refers to from the store
// named by its type. Unknown types never fall through to a store.
func (s *Service) ResolvePrincipal(ctx context.Context, tok model.SessionToken) (model.Principal, error) {
	r, ok := s.realms[tok.PrincipalType]
	if !ok {
		return nil, ErrUnknownPrincipalType
	}

	principal, err := r.lookupByID(ctx, tok.PrincipalID)
	if err != nil {
		if errors.Is(err, r.notFound) {
			return nil, ErrStalePrincipal
		}
		return nil, storeError(err)
	}
	return principal, nil
}

// Login authenticates and opens a new session for the principal
func (s *Service) Login(ctx context.Context, typ model.PrincipalType, identifier, secret string) (*model.Session, model.Principal, error) {
	principal, err := s.Authenticate(ctx, typ, identifier, secret)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	session := &model.Session{
		ID:        s.random.Token(sessionIDBytes),
		Token:     s.SerializePrincipal(principal),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, nil, storeError(err)
	}

	s.logger.Info("login",
		slog.String("principal_type", string(typ)),
		slog.String("principal_id", string(principal.PrincipalID())),
	)
	return session, principal, nil
}

// ValidateSession returns the live session with the given id
func (s *Service) ValidateSession(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, storeError(err)
	}

	if session.Expired(s.clock.Now()) {
		_ = s.sessions.DeleteSession(ctx, id)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// CurrentPrincipal validates a session and resolves its principal. Sessions
// whose principal is gone or whose type is unrecognised are deleted.
func (s *Service) CurrentPrincipal(ctx context.Context, sessionID string) (model.Principal, error) {
	session, err := s.ValidateSession(ctx, sessionID)
	if err != nil {
		s.recordResolution(err)
		return nil, err
	}

	principal, err := s.ResolvePrincipal(ctx, session.Token)
	s.recordResolution(err)
	if err != nil {
		if errors.Is(err, ErrStalePrincipal) || errors.Is(err, ErrUnknownPrincipalType) {
			s.logger.Warn("discarding session",
				slog.String("principal_type", string(session.Token.PrincipalType)),
				slog.String("principal_id", string(session.Token.PrincipalID)),
				slog.String("error", err.Error()),
			)
			_ = s.sessions.DeleteSession(ctx, sessionID)
		}
		return nil, err
	}
	return principal, nil
}

func (s *Service) recordResolution(err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidSession):
		result = "invalid"
	case errors.Is(err, ErrStalePrincipal):
		result = "stale"
	case errors.Is(err, ErrUnknownPrincipalType):
		result = "unknown_type"
	default:
		result = metrics.ResultError
	}
	s.metrics.SessionResolutions.WithLabelValues(result).Inc()
}

// Logout ends a session
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return storeError(err)
	}
	return nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
