package config

import (
	"fmt"

	"github.com/leeforge/modkit/deploy"
	"github.com/leeforge/modkit/logging"
	"github.com/leeforge/modkit/settings"
)

// AppConfig is the configuration of the modkit host.
type AppConfig struct {
	Log       logging.Config  `mapstructure:"log" json:"log" yaml:"log"`
	Paths     PathsConfig     `mapstructure:"paths" json:"paths" yaml:"paths"`
	Plugins   PluginsConfig   `mapstructure:"plugins" json:"plugins" yaml:"plugins"`
	Settings  settings.Config `mapstructure:"settings" json:"settings" yaml:"settings"`
	Deploy    deploy.Config   `mapstructure:"deploy" json:"deploy" yaml:"deploy"`
	Inspector InspectorConfig `mapstructure:"inspector" json:"inspector" yaml:"inspector"`
}

// PathsConfig holds the host directories handed to plugins.
type PathsConfig struct {
	Base    string `mapstructure:"base" json:"base" yaml:"base" default:"."`
	Plugins string `mapstructure:"plugins" json:"plugins" yaml:"plugins" default:"plugins"`
	Mods    string `mapstructure:"mods" json:"mods" yaml:"mods" default:"mods"`
	Data    string `mapstructure:"data" json:"data" yaml:"data" default:"data"`
}

// PluginsConfig controls discovery and enablement.
type PluginsConfig struct {
	// Disabled plugin names are registered but never initialized.
	Disabled []string `mapstructure:"disabled" json:"disabled" yaml:"disabled"`
	// IconSize is the edge of the box tool icons are scaled into.
	IconSize uint `mapstructure:"icon-size" json:"iconSize" yaml:"icon-size" default:"32" validate:"gte=8,lte=512"`
}

// InspectorConfig configures the HTTP inspection server.
type InspectorConfig struct {
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr" default:"127.0.0.1:8088" validate:"required,hostname_port"`
}

// DisabledSet returns Plugins.Disabled as a lookup set.
func (c *AppConfig) DisabledSet() map[string]bool {
	out := make(map[string]bool, len(c.Plugins.Disabled))
	for _, name := range c.Plugins.Disabled {
		out[name] = true
	}
	return out
}

// applyDerived fills values that default to other settings.
func (c *AppConfig) applyDerived() {
	if c.Deploy.Target == "" {
		c.Deploy.Target = c.Paths.Plugins
	}
}

// Validate checks what tags cannot express.
func (c *AppConfig) Validate() error {
	if c.Settings.Driver == "redis" && c.Settings.Redis.Host == "" {
		return fmt.Errorf("settings.redis.host is required for the redis driver")
	}
	return nil
}

// LoadApp loads, defaults and validates the host configuration. The
// returned Config must be closed when WatchAble is set.
func LoadApp(opts ConfigOptions) (*AppConfig, *Config, error) {
	c, err := NewConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	app := &AppConfig{}
	if err := c.BindWithDefaults(app); err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	app.applyDerived()
	if err := Validate(app); err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return app, c, nil
}
