package settings

import (
	"context"
	"errors"
	"fmt"

	redis "github.com/go-redis/redis/v8"
	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/json"
	"go.uber.org/zap"
)

// ErrEmptyKey is returned when a setting key is empty.
var ErrEmptyKey = errors.New("setting key cannot be empty")

// NewRedisClient connects to Redis and pings it once.
func NewRedisClient(ctx context.Context, cnf RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cnf.Addr(),
		Password: cnf.Password,
		DB:       cnf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.WrapWithType(err, apperrors.ErrorTypeExternal, "connect redis "+cnf.Addr())
	}
	if logger != nil {
		logger.Info("redis connected",
			zap.String("addr", cnf.Addr()),
			zap.Int("db", cnf.DB),
			zap.String("password", redactedPassword(cnf.Password)),
		)
	}
	return client, nil
}

// RedisStore keeps each plugin's settings in one hash, values JSON-encoded.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store on client. An empty prefix uses
// "modkit:settings".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "modkit:settings"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Key returns the hash holding plugin's settings.
func (s *RedisStore) Key(plugin string) string {
	return fmt.Sprintf("%s:%s", s.prefix, plugin)
}

func (s *RedisStore) Get(ctx context.Context, plugin, key string) (any, bool, error) {
	raw, err := s.client.HGet(ctx, s.Key(plugin), key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.wrap(err, "get", plugin)
	}
	v, err := decode(raw)
	if err != nil {
		return nil, false, apperrors.WrapWithType(err, apperrors.ErrorTypeInternal,
			fmt.Sprintf("decode setting %s.%s", plugin, key))
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, plugin, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.WrapWithType(err, apperrors.ErrorTypeInvalid,
			fmt.Sprintf("encode setting %s.%s", plugin, key))
	}
	if err := s.client.HSet(ctx, s.Key(plugin), key, string(data)).Err(); err != nil {
		return s.wrap(err, "set", plugin)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, plugin, key string) error {
	if err := s.client.HDel(ctx, s.Key(plugin), key).Err(); err != nil {
		return s.wrap(err, "delete", plugin)
	}
	return nil
}

// All returns every stored value of plugin. Undecodable fields are skipped.
func (s *RedisStore) All(ctx context.Context, plugin string) (map[string]any, error) {
	fields, err := s.client.HGetAll(ctx, s.Key(plugin)).Result()
	if err != nil {
		return nil, s.wrap(err, "read", plugin)
	}
	out := make(map[string]any, len(fields))
	for k, raw := range fields {
		v, err := decode(raw)
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out, nil
}

func (s *RedisStore) PluginSettings(ctx context.Context, plugin string) (map[string]any, error) {
	return s.All(ctx, plugin)
}

func (s *RedisStore) wrap(err error, op, plugin string) error {
	return apperrors.WrapWithType(err, apperrors.ErrorTypeExternal,
		fmt.Sprintf("%s settings of %q", op, plugin))
}

func decode(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
