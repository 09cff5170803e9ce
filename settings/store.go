// Package settings stores plugin setting values on behalf of the host.
package settings

import (
	"context"
	"io"

	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/plugin"
	"go.uber.org/zap"
)

// Store persists setting values per plugin. Values are plain JSON-like data:
// string, bool, float64 (integers come back as float64 from Redis), or nil.
type Store interface {
	Get(ctx context.Context, plugin, key string) (any, bool, error)
	Set(ctx context.Context, plugin, key string, value any) error
	Delete(ctx context.Context, plugin, key string) error
	All(ctx context.Context, plugin string) (map[string]any, error)

	// PluginSettings lets a Store be used as a plugin.Host settings source.
	PluginSettings(ctx context.Context, plugin string) (map[string]any, error)
}

var (
	_ Store                 = (*MemoryStore)(nil)
	_ Store                 = (*RedisStore)(nil)
	_ plugin.SettingsSource = Store(nil)
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open creates the store selected by cfg.Driver. The returned closer
// releases the backend connection.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, io.Closer, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nopCloser{}, nil
	case "redis":
		client, err := NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Redis.Prefix), client, nil
	default:
		return nil, nil, apperrors.NewInvalid("settings.driver", cfg.Driver, "want memory or redis")
	}
}
