package factory

import (
	"log/slog"

	"github.com/mcoot/blogadmin/internal/config"
	"github.com/mcoot/blogadmin/internal/services/auth"
	"github.com/mcoot/blogadmin/internal/storage/mongostore"
	redisstorage "github.com/mcoot/blogadmin/internal/storage/redis"
)

// FromSettings builds a factory Config from loaded application settings
func FromSettings(settings *config.Config, logger *slog.Logger) (Config, error) {
	loc, err := settings.Location()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AuthConfig: auth.Config{
			SessionDuration: settings.Sessions.TTL,
			BcryptCost:      settings.Auth.BcryptCost,
		},
		Logger:       logger,
		Location:     loc,
		CookieSecure: settings.Sessions.CookieSecure,
		StorageType:  settings.Storage.Type,
		SessionStore: settings.Sessions.Store,
	}

	if cfg.StorageType == StorageTypeMongo {
		mongoCfg := mongostore.DefaultConfig()
		mongoCfg.URI = settings.Storage.MongoURI
		mongoCfg.Database = settings.Storage.MongoDatabase
		cfg.MongoConfig = &mongoCfg
	}

	if cfg.SessionStore == SessionStoreRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = settings.Sessions.RedisURL
		redisCfg.SessionTTL = settings.Sessions.TTL
		cfg.RedisConfig = &redisCfg
	}

	return cfg, nil
}
