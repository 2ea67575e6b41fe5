// Package config loads application settings.
//
// Sources, lowest precedence first:
//  1. built-in defaults
//  2. the YAML file named by CONFIG_FILE, if any
//  3. environment variables, including those loaded from .env
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend names
const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"

	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// ErrInvalidConfig is returned when a setting has an unusable value
var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Sessions SessionsConfig `yaml:"sessions"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`

	// Timezone names the location calendar days are counted in; empty means local
	Timezone string `yaml:"timezone"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Type          string `yaml:"type"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

type SessionsConfig struct {
	Store        string        `yaml:"store"`
	RedisURL     string        `yaml:"redis_url"`
	TTL          time.Duration `yaml:"ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

type AuthConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "", Port: 8000},
		Storage: StorageConfig{
			Type:          StorageMemory,
			MongoURI:      "mongodb://127.0.0.1:27017",
			MongoDatabase: "blog-admin-db",
		},
		Sessions: SessionsConfig{
			Store:    SessionsMemory,
			RedisURL: "redis://localhost:6379/0",
			TTL:      100 * time.Minute,
		},
		Auth: AuthConfig{BcryptCost: 10},
		Log:  LogConfig{Level: "info"},
	}
}

var envPaths = []string{
	".env",
	"../.env",
}

// Load reads .env, the optional YAML file and the environment
func Load() (*Config, error) {
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Storage.Type = getEnv("STORAGE_TYPE", c.Storage.Type)
	c.Storage.MongoURI = getEnv("MONGO_URI", c.Storage.MongoURI)
	c.Storage.MongoDatabase = getEnv("MONGO_DATABASE", c.Storage.MongoDatabase)
	c.Sessions.Store = getEnv("SESSION_STORE", c.Sessions.Store)
	c.Sessions.RedisURL = getEnv("REDIS_URL", c.Sessions.RedisURL)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	var err error
	if c.Server.Port, err = getEnvInt("PORT", c.Server.Port); err != nil {
		return err
	}
	if c.Auth.BcryptCost, err = getEnvInt("BCRYPT_COST", c.Auth.BcryptCost); err != nil {
		return err
	}
	if c.Sessions.TTL, err = getEnvDuration("SESSION_TTL", c.Sessions.TTL); err != nil {
		return err
	}
	if c.Sessions.CookieSecure, err = getEnvBool("COOKIE_SECURE", c.Sessions.CookieSecure); err != nil {
		return err
	}
	return nil
}

// Validate checks backend names and numeric ranges
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageMongo:
	default:
		return fmt.Errorf("%w: storage type %q, expected memory or mongo", ErrInvalidConfig, c.Storage.Type)
	}
	switch c.Sessions.Store {
	case SessionsMemory, SessionsRedis:
	default:
		return fmt.Errorf("%w: session store %q, expected memory or redis", ErrInvalidConfig, c.Sessions.Store)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidConfig)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("%w: bcrypt cost %d, expected 4 to 31", ErrInvalidConfig, c.Auth.BcryptCost)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Location resolves Timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// LogLevel parses Log.Level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, v)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, v)
	}
	return b, nil
}
