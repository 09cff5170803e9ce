package settings

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/go-redis/redis/v8"
	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/plugin"
	"github.com/leeforge/modkit/plugin/examples/hello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ""), mr
}

func testStores(t *testing.T) map[string]Store {
	redisStore, _ := newRedisStore(t)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "HelloFeature", "greeting")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "HelloFeature", "greeting", "Howdy"))
			require.NoError(t, store.Set(ctx, "HelloFeature", "enabled", true))

			v, ok, err := store.Get(ctx, "HelloFeature", "greeting")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Howdy", v)

			all, err := store.All(ctx, "HelloFeature")
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"greeting": "Howdy", "enabled": true}, all)

			require.NoError(t, store.Delete(ctx, "HelloFeature", "greeting"))
			_, ok, err = store.Get(ctx, "HelloFeature", "greeting")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.ErrorIs(t, store.Set(ctx, "HelloFeature", "", 1), ErrEmptyKey)
		})
	}
}

func TestStore_PluginsAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "a", "k", "from-a"))
			all, err := store.PluginSettings(ctx, "b")
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "p", "k", "v"))

	all, _ := s.All(ctx, "p")
	all["k"] = "changed"

	v, _, _ := s.Get(ctx, "p", "k")
	assert.Equal(t, "v", v)
}

func TestRedisStore_LayoutAndNumbers(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "HelloFeature", "repeat", 3))
	assert.Equal(t, "modkit:settings:HelloFeature", store.Key("HelloFeature"))
	assert.Equal(t, "3", mr.HGet("modkit:settings:HelloFeature", "repeat"))

	v, ok, err := store.Get(ctx, "HelloFeature", "repeat")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(3), v)
}

func TestRedisStore_SkipsUndecodableFields(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	mr.HSet(store.Key("p"), "good", `"ok"`)
	mr.HSet(store.Key("p"), "bad", `{not json`)

	all, err := store.All(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"good": "ok"}, all)

	_, _, err = store.Get(ctx, "p", "bad")
	assert.Error(t, err)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.All(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestRedisStore_FeedsHostSettings(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	require.NoError(t, store.Set(ctx, "HelloFeature", "greeting", "Howdy"))

	host := plugin.NewHost(plugin.Host{Settings: store})
	p := hello.NewFeaturePlugin()
	require.True(t, p.Init(host))

	fp, err := plugin.AsFeatureProvider(p)
	require.NoError(t, err)
	require.NoError(t, fp.RegisterFeatures(host.Features))

	f := plugin.MustResolveFeature[hello.Feature](host.Features, hello.FeatureKey)
	assert.Equal(t, "Howdy", f.ExampleFunction())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, closer, err := Open(ctx, Config{Driver: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, closer.Close())

	_, _, err = Open(ctx, Config{Driver: "etcd"}, nil)
	assert.ErrorIs(t, err, &apperrors.AppError{Type: apperrors.ErrorTypeInvalid})
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := strings.Cut(mr.Addr(), ":")
	core, logs := observer.New(zap.InfoLevel)

	store, closer, err := Open(context.Background(), Config{
		Driver: "redis",
		Redis:  RedisConfig{Host: host, Port: port, Password: "", Prefix: "test"},
	}, zap.New(core))
	require.NoError(t, err)
	defer closer.Close()

	rs, ok := store.(*RedisStore)
	require.True(t, ok)
	assert.Equal(t, "test:p", rs.Key("p"))

	entries := logs.FilterMessage("redis connected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "<empty>", entries[0].ContextMap()["password"])
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := strings.Cut(mr.Addr(), ":")
	mr.Close()

	_, err := NewRedisClient(context.Background(), RedisConfig{Host: host, Port: port}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestRedactedPassword(t *testing.T) {
	assert.Equal(t, "[REDACTED]", redactedPassword("super-secret"))
	assert.Equal(t, "<empty>", redactedPassword(""))
}

func TestRedisConfig_Addr(t *testing.T) {
	c := RedisConfig{Host: "redis.example.com", Port: "6380"}
	assert.Equal(t, "redis.example.com:6380", c.Addr())
}
