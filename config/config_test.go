package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leeforge/modkit/env_mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string `mapstructure:"name" default:"modkit"`
	Verbose bool   `mapstructure:"verbose" default:"true"`
	Server  struct {
		Port int `mapstructure:"port" default:"8088"`
	} `mapstructure:"server"`
	Tags []string `mapstructure:"tags"`
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func testOptions(dir string) ConfigOptions {
	return ConfigOptions{BasePath: dir, FileName: "modkit", FileType: "yaml", EnvPrefix: "MODKIT_TEST"}
}

func withMode(t *testing.T, mode env_mode.ENV_MODE) {
	t.Helper()
	prev := env_mode.Mode()
	env_mode.SetMode(mode)
	t.Cleanup(func() { env_mode.SetMode(prev) })
}

func TestNewConfig_MergeOrder(t *testing.T) {
	withMode(t, env_mode.ProMode)
	dir := t.TempDir()
	writeFile(t, dir, "modkit.yaml", "name: base\nserver:\n  port: 1\n")
	writeFile(t, dir, "modkit.local.yaml", "server:\n  port: 2\n")
	writeFile(t, dir, "modkit.prod.yaml", "name: prod\n")
	writeFile(t, dir, "modkit.test.yaml", "name: ignored\n")

	c, err := NewConfig(testOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "modkit.yaml"),
		filepath.Join(dir, "modkit.local.yaml"),
		filepath.Join(dir, "modkit.prod.yaml"),
	}, c.Files())

	var cfg testConfig
	require.NoError(t, c.Bind(&cfg))
	assert.Equal(t, "prod", cfg.Name)
	assert.Equal(t, 2, cfg.Server.Port)
}

func TestNewConfig_MissingFiles(t *testing.T) {
	opts := testOptions(t.TempDir())
	_, err := NewConfig(opts)
	assert.Error(t, err)

	opts.Optional = true
	c, err := NewConfig(opts)
	require.NoError(t, err)
	assert.Empty(t, c.Files())
}

func TestBindWithDefaults_ExplicitFalseWins(t *testing.T) {
	withMode(t, env_mode.TestMode)
	dir := t.TempDir()
	writeFile(t, dir, "modkit.yaml", "verbose: false\n")

	c, err := NewConfig(testOptions(dir))
	require.NoError(t, err)

	var cfg testConfig
	require.NoError(t, c.BindWithDefaults(&cfg))
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "modkit", cfg.Name)
	assert.Equal(t, 8088, cfg.Server.Port)
}

func TestBind_EnvOverrides(t *testing.T) {
	withMode(t, env_mode.TestMode)
	dir := t.TempDir()
	writeFile(t, dir, "modkit.yaml", "name: file\n")
	t.Setenv("MODKIT_TEST_NAME", "env")
	t.Setenv("MODKIT_TEST_SERVER_PORT", "9090")
	t.Setenv("MODKIT_TEST_TAGS", "a,b")

	c, err := NewConfig(testOptions(dir))
	require.NoError(t, err)

	var cfg testConfig
	require.NoError(t, c.BindWithDefaults(&cfg))
	assert.Equal(t, "env", cfg.Name)
	assert.Equal(t, 9090, cfg.Server.Port, "keys absent from files are still overridable")
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
}

func TestBind_Nil(t *testing.T) {
	var c *Config
	assert.Error(t, c.Bind(&testConfig{}))

	c, err := NewConfig(ConfigOptions{BasePath: t.TempDir(), FileName: "modkit", Optional: true})
	require.NoError(t, err)
	assert.Error(t, c.Bind(nil))
}

func TestGetSet(t *testing.T) {
	c, err := NewConfig(ConfigOptions{BasePath: t.TempDir(), FileName: "modkit", Optional: true})
	require.NoError(t, err)

	c.Set("server.port", 7000)
	assert.Equal(t, 7000, c.Get("server.port"))
	assert.Contains(t, c.AllSettings(), "server")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "MODKIT_LOG_FILE_NAME", EnvKey("MODKIT", "log.file-name"))
	assert.Equal(t, "LEVEL", EnvKey("", "level"))
}

func TestStructKeys(t *testing.T) {
	keys := structKeys(&AppConfig{})
	assert.Contains(t, keys, "log.level")
	assert.Contains(t, keys, "settings.redis.host")
	assert.Contains(t, keys, "plugins.disabled")
	assert.Contains(t, keys, "inspector.addr")
	assert.Nil(t, structKeys("not a struct"))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	withMode(t, env_mode.TestMode)
	dir := t.TempDir()
	writeFile(t, dir, "modkit.yaml", "name: before\n")

	changed := make(chan struct{}, 4)
	opts := testOptions(dir)
	opts.WatchAble = true
	opts.OnChange = func(fsnotify.Event) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	c, err := NewConfig(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	var cfg testConfig
	require.NoError(t, c.Bind(&cfg))
	require.Equal(t, "before", cfg.Name)

	writeFile(t, dir, "modkit.test.yaml", "name: after\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
	assert.Eventually(t, func() bool {
		return c.Get("name") == "after"
	}, 2*time.Second, 20*time.Millisecond)
}
