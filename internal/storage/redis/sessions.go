package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/storage"
)

// SessionStore is a Redis-backed session store. Each session is a JSON
// value whose Redis TTL matches the session lifetime.
type SessionStore struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis session store
func New(cfg Config) (*SessionStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis session store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *SessionStore {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultConfig().SessionTTL
	}
	return &SessionStore{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *SessionStore) Close() error {
	return s.client.Close()
}

// Ensure SessionStore implements the interface
var _ storage.SessionStore = (*SessionStore)(nil)

// sessionRecord is the stored JSON shape
type sessionRecord struct {
	PrincipalID   string    `json:"principal_id"`
	PrincipalType string    `json:"principal_type"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func (s *SessionStore) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(sessionRecord{
		PrincipalID:   string(session.Token.PrincipalID),
		PrincipalType: string(session.Token.PrincipalType),
		CreatedAt:     session.CreatedAt,
		ExpiresAt:     session.ExpiresAt,
	})
	if err != nil {
		return err
	}

	ttl := session.ExpiresAt.Sub(session.CreatedAt)
	if ttl <= 0 {
		ttl = s.cfg.SessionTTL
	}

	return s.client.Set(ctx, s.sessionKey(session.ID), data, ttl).Err()
}

func (s *SessionStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Undecodable payloads are dropped
		if delErr := s.client.Del(ctx, s.sessionKey(id)).Err(); delErr != nil {
			return nil, delErr
		}
		return nil, model.ErrSessionNotFound
	}
	return &model.Session{
		ID: id,
		Token: model.SessionToken{
			PrincipalID:   model.PrincipalID(rec.PrincipalID),
			PrincipalType: model.PrincipalType(rec.PrincipalType),
		},
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.sessionKey(id)).Err()
}
