package sessionstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/internal/config"
)

// Store is a session store that holds a connection.
type Store interface {
	portal.SessionStore
	io.Closer
}

type memory struct{ *portal.MemoryStore }

func (memory) Close() error { return nil }

// Open builds the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return memory{portal.NewMemoryStore()}, nil
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendRedis:
		client, err := ConnectRedis(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return NewRedis(client, cfg.MaxAge), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
