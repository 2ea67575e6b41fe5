package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/dependencies/random"
	"github.com/mcoot/blogadmin/internal/metrics"
	"github.com/mcoot/blogadmin/internal/middleware"
	"github.com/mcoot/blogadmin/internal/services/analytics"
	"github.com/mcoot/blogadmin/internal/services/auth"
	"github.com/mcoot/blogadmin/internal/services/provision"
	"github.com/mcoot/blogadmin/internal/storage"
	"github.com/mcoot/blogadmin/internal/storage/memory"
	"github.com/mcoot/blogadmin/internal/storage/mongostore"
	redisstorage "github.com/mcoot/blogadmin/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeMongo  = "mongo"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStore

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Location *time.Location

	// Observability
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Services
	AuthService      *auth.Service
	AnalyticsService *analytics.Service
	ProvisionService *provision.Service

	// HTTP
	Cookies middleware.SessionCookies
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// Zero fields fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Location is the zone calendar days are counted in (optional)
	// If nil, time.Local is used
	Location *time.Location
	// CookieSecure marks the session cookie Secure
	CookieSecure bool

	// StorageType selects the record store ("memory" or "mongo")
	// If empty, defaults to "memory"
	StorageType string
	// MongoConfig holds MongoDB connection settings (required if StorageType is "mongo")
	MongoConfig *mongostore.Config

	// SessionStore selects the session store ("memory" or "redis")
	// If empty, defaults to "memory"
	SessionStore string
	// RedisConfig holds Redis connection settings (required if SessionStore is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions, err := newSessionStore(cfg)
	if err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}

	deps := dependencies{
		store:        store,
		sessions:     sessions,
		clock:        clock.New(),
		random:       random.New(),
		location:     cfg.Location,
		authCfg:      cfg.AuthConfig,
		cookieSecure: cfg.CookieSecure,
		logger:       logger,
	}
	return newWithDependencies(deps), nil
}

func newStorage(cfg Config, logger *slog.Logger) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		store, err := mongostore.NewStore(*cfg.MongoConfig, logger)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return store, nil
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'mongo'")
	}
}

func newSessionStore(cfg Config) (storage.SessionStore, error) {
	sessionStore := cfg.SessionStore
	if sessionStore == "" {
		sessionStore = SessionStoreMemory
	}

	switch sessionStore {
	case SessionStoreMemory:
		return memory.NewSessionStore(), nil
	case SessionStoreRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when SessionStore is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, nil
	default:
		return nil, errors.New("invalid SessionStore: must be 'memory' or 'redis'")
	}
}

// dependencies are the pieces newWithDependencies wires together
type dependencies struct {
	store        storage.Storage
	sessions     storage.SessionStore
	clock        clock.Clock
	random       random.Random
	location     *time.Location
	authCfg      auth.Config
	cookieSecure bool
	logger       *slog.Logger
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(d dependencies) *App {
	loc := d.location
	if loc == nil {
		loc = time.Local
	}
	m := metrics.New()

	authService := auth.New(d.store, d.sessions, d.clock, d.random, d.authCfg, m, d.logger)
	analyticsService := analytics.New(d.store, d.clock, loc, m, d.logger)
	provisionService := provision.New(d.store, authService, d.clock, d.logger)

	return &App{
		Storage:          d.store,
		Sessions:         d.sessions,
		Clock:            d.clock,
		Random:           d.random,
		Location:         loc,
		Logger:           d.logger,
		Metrics:          m,
		AuthService:      authService,
		AnalyticsService: analyticsService,
		ProvisionService: provisionService,
		Cookies:          middleware.NewSessionCookies(d.cookieSecure),
	}
}

// Close releases the stores
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Sessions.Close(), a.Storage.Close(ctx))
}
