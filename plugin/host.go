package plugin

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
)

// Window is an opaque reference to the host window that parents dialogs.
type Window any

// Notifier is the host's message-box primitive. Calls are synchronous.
type Notifier interface {
	Information(parent Window, title, body string)
	Warning(parent Window, title, body string)
	Critical(parent Window, title, body string)
}

// SettingsSource supplies stored setting values for a plugin.
type SettingsSource interface {
	PluginSettings(ctx context.Context, plugin string) (map[string]any, error)
}

// Paths are the host directories a plugin may read.
type Paths struct {
	Base    string `json:"base"`
	Plugins string `json:"plugins"`
	Mods    string `json:"mods"`
	Data    string `json:"data"`
}

// PluginData returns the data directory reserved for one plugin.
func (p Paths) PluginData(name string) string {
	return filepath.Join(p.Data, name)
}

// Host is the handle passed to Plugin.Init. Plugins keep the pointer for
// their lifetime but never own it: the host outlives every plugin.
type Host struct {
	Logger   *zap.Logger
	Notifier Notifier
	Window   Window
	Paths    Paths
	Features *FeatureRegistry
	Settings SettingsSource

	// Disabled lists plugins switched off in configuration.
	Disabled map[string]bool
}

// NewHost fills in no-op collaborators for any that are missing.
func NewHost(h Host) *Host {
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}
	if h.Notifier == nil {
		h.Notifier = NewLogNotifier(h.Logger)
	}
	if h.Features == nil {
		h.Features = NewFeatureRegistry()
	}
	if h.Disabled == nil {
		h.Disabled = map[string]bool{}
	}
	return &h
}

// PluginLogger returns the host log sink scoped to one plugin.
func (h *Host) PluginLogger(name string) *zap.Logger {
	return h.Logger.Named("plugin").With(zap.String("plugin", name))
}

// IsEnabled reports whether configuration leaves the plugin switched on.
func (h *Host) IsEnabled(name string) bool {
	return !h.Disabled[name]
}

// PluginSettings returns the scoped configuration of p. Stored values are
// read once per call; declared defaults fill the gaps.
func (h *Host) PluginSettings(p Plugin) ConfigProvider {
	name := p.Name()
	var values map[string]any
	if h.Settings != nil {
		v, err := h.Settings.PluginSettings(context.Background(), name)
		if err != nil {
			h.Logger.Warn("plugin settings unavailable, using defaults",
				zap.String("plugin", name), zap.Error(err))
		} else {
			values = v
		}
	}
	return NewSettingsEntry(name, h.IsEnabled(name), p.Settings(), values)
}
