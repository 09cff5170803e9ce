package plugin

import (
	"github.com/leeforge/modkit/json"
)

// ConfigProvider gives plugins type-safe access to their scoped settings.
type ConfigProvider interface {
	Get(key string) (any, bool)
	GetString(key string, defaultVal string) string
	GetInt(key string, defaultVal int) int
	GetBool(key string, defaultVal bool) bool
	GetFloat(key string, defaultVal float64) float64
	Bind(target any) error
	IsEnabled() bool
}

// SettingsEntry resolves a plugin's settings: stored values first, then the
// defaults the plugin declared, then the caller's fallback.
type SettingsEntry struct {
	name     string
	enabled  bool
	declared map[string]Setting
	values   map[string]any
}

// NewSettingsEntry creates a settings entry for one plugin.
func NewSettingsEntry(name string, enabled bool, declared []Setting, values map[string]any) *SettingsEntry {
	d := make(map[string]Setting, len(declared))
	for _, s := range declared {
		d[s.Key] = s
	}
	v := make(map[string]any, len(values))
	for k, val := range values {
		v[k] = val
	}
	return &SettingsEntry{name: name, enabled: enabled, declared: d, values: v}
}

// NewMapConfigProvider creates a ConfigProvider from a settings map (always enabled).
func NewMapConfigProvider(values map[string]any) *SettingsEntry {
	return NewSettingsEntry("", true, nil, values)
}

// Name returns the plugin the entry belongs to.
func (c *SettingsEntry) Name() string { return c.name }

func (c *SettingsEntry) Get(key string) (any, bool) {
	if v, ok := c.values[key]; ok {
		return v, true
	}
	if s, ok := c.declared[key]; ok && s.Default != nil {
		return s.Default, true
	}
	return nil, false
}

func (c *SettingsEntry) GetString(key string, defaultVal string) string {
	v, ok := c.Get(key)
	if !ok {
		return defaultVal
	}
	s, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return s
}

func (c *SettingsEntry) GetInt(key string, defaultVal int) int {
	v, ok := c.Get(key)
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return defaultVal
	}
}

func (c *SettingsEntry) GetBool(key string, defaultVal bool) bool {
	v, ok := c.Get(key)
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

func (c *SettingsEntry) GetFloat(key string, defaultVal float64) float64 {
	v, ok := c.Get(key)
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return defaultVal
	}
}

// Bind decodes the effective settings (defaults overlaid with stored values)
// into target.
func (c *SettingsEntry) Bind(target any) error {
	merged := make(map[string]any, len(c.declared)+len(c.values))
	for k, s := range c.declared {
		if s.Default != nil {
			merged[k] = s.Default
		}
	}
	for k, v := range c.values {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func (c *SettingsEntry) IsEnabled() bool {
	return c.enabled
}

// emptyConfig is a ConfigProvider that returns defaults for everything.
type emptyConfig struct{}

func (e *emptyConfig) Get(string) (any, bool)               { return nil, false }
func (e *emptyConfig) GetString(_ string, d string) string  { return d }
func (e *emptyConfig) GetInt(_ string, d int) int           { return d }
func (e *emptyConfig) GetBool(_ string, d bool) bool        { return d }
func (e *emptyConfig) GetFloat(_ string, d float64) float64 { return d }
func (e *emptyConfig) Bind(any) error                       { return nil }
func (e *emptyConfig) IsEnabled() bool                      { return false }

// EmptyConfig returns a ConfigProvider that always returns defaults.
func EmptyConfig() ConfigProvider { return &emptyConfig{} }
