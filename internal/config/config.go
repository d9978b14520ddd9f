// Package config loads portal settings from defaults, an optional YAML file
// and ALETHEIA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/ulule/limiter/v3"
)

// EnvPrefix is stripped from environment variable names before mapping them onto keys.
const EnvPrefix = "ALETHEIA_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Session   SessionConfig   `koanf:"session"`
	Log       LogConfig       `koanf:"log"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Theme     ThemeConfig     `koanf:"theme"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	Title        string        `koanf:"title"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// APIConfig locates the Aletheia backend. Requests go to Origin+Prefix+path.
type APIConfig struct {
	Origin  string        `koanf:"origin"`
	Prefix  string        `koanf:"prefix"`
	Timeout time.Duration `koanf:"timeout"`
}

// BaseURL joins origin and prefix.
func (a APIConfig) BaseURL() string {
	return strings.TrimRight(a.Origin, "/") + a.Prefix
}

type SessionConfig struct {
	Backend       string        `koanf:"backend"`
	CookieName    string        `koanf:"cookie_name"`
	MaxAge        time.Duration `koanf:"max_age"`
	TabTTL        time.Duration `koanf:"tab_ttl"`
	SQLitePath    string        `koanf:"sqlite_path"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// RateLimitConfig uses the limiter "<count>-<unit>" format, e.g. "10-S".
type RateLimitConfig struct {
	Actions string `koanf:"actions"`
}

type ThemeConfig struct {
	Name string `koanf:"name"`
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			Title:        "Aletheia",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // SSE streams stay open
		},
		API: APIConfig{
			Origin:  "http://localhost:8081",
			Prefix:  "/api",
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{
			Backend:    BackendMemory,
			CookieName: "aletheia_sid",
			MaxAge:     30 * 24 * time.Hour,
			TabTTL:     30 * time.Minute,
			SQLitePath: "aletheia-sessions.db",
			RedisAddr:  "localhost:6379",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		RateLimit: RateLimitConfig{
			Actions: "10-S",
		},
		Theme: ThemeConfig{
			Name: "jade",
		},
	}
}

// Load reads path when it exists, overlays the environment and validates the result.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// ALETHEIA_SESSION_COOKIE_NAME -> session.cookie_name
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	}
	u, err := url.Parse(c.API.Origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.origin %q must be an absolute URL", ErrInvalid, c.API.Origin)
	}
	if c.API.Prefix != "" && !strings.HasPrefix(c.API.Prefix, "/") {
		return fmt.Errorf("%w: api.prefix %q must start with /", ErrInvalid, c.API.Prefix)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalid)
	}
	switch c.Session.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("%w: session.sqlite_path is required for the sqlite backend", ErrInvalid)
		}
	case BackendRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("%w: session.redis_addr is required for the redis backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: session.backend %q must be one of memory, sqlite, redis", ErrInvalid, c.Session.Backend)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("%w: session.cookie_name is required", ErrInvalid)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path %q must start with /", ErrInvalid, c.Metrics.Path)
	}
	if c.RateLimit.Actions != "" {
		if _, err := limiter.NewRateFromFormatted(c.RateLimit.Actions); err != nil {
			return fmt.Errorf("%w: ratelimit.actions: %v", ErrInvalid, err)
		}
	}
	return nil
}
