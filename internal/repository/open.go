// Package repository selects and opens the configured key-value backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"clubroster/config"
	"clubroster/internal/domain"
	"clubroster/internal/repository/filestore"
	"clubroster/internal/repository/memstore"
	"clubroster/internal/repository/redisstore"
	"clubroster/internal/repository/sqlstore"
)

// Open returns the store named by cfg.StoreDriver, migrated and ready for use.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.KeyValueStore, error) {
	var (
		store domain.KeyValueStore
		err   error
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres, config.DriverSQLite:
		var s *sqlstore.Store
		if cfg.StoreDriver == config.DriverPostgres {
			s, err = sqlstore.OpenPostgres(ctx, cfg.DBUrl)
		} else {
			s, err = sqlstore.OpenSQLite(ctx, cfg.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		store = s
	case config.DriverRedis:
		// Redis namespaces keys itself.
		return redisstore.Open(ctx, cfg.RedisURL, redisstore.WithKeyPrefix(cfg.StoreKeyPrefix))
	case config.DriverFile:
		store, err = filestore.Open(cfg.DataFile, logger)
		if err != nil {
			return nil, err
		}
	case config.DriverMemory:
		store = memstore.New()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return WithPrefix(store, cfg.StoreKeyPrefix), nil
}

// WithPrefix namespaces every key of store. An empty prefix returns store unchanged.
func WithPrefix(store domain.KeyValueStore, prefix string) domain.KeyValueStore {
	if prefix == "" {
		return store
	}
	return &prefixed{KeyValueStore: store, prefix: prefix}
}

type prefixed struct {
	domain.KeyValueStore
	prefix string
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.KeyValueStore.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.KeyValueStore.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) SetMany(ctx context.Context, entries ...domain.Entry) error {
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		out[i] = domain.Entry{Key: p.prefix + e.Key, Value: e.Value}
	}
	return p.KeyValueStore.SetMany(ctx, out...)
}
