package inspector

import (
	"time"

	"github.com/leeforge/modkit/plugin"
	"github.com/leeforge/modkit/registry"
)

// SettingView is the JSON shape of a declared setting.
type SettingView struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default any    `json:"default,omitempty"`
	Kind    string `json:"kind"`
}

// ToolView is the JSON shape of a tool's menu entry.
type ToolView struct {
	DisplayName string `json:"displayName"`
	Tooltip     string `json:"tooltip"`
	Icon        string `json:"icon,omitempty"`
}

// PluginView is the JSON shape of one registered plugin.
type PluginView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Author       string        `json:"author"`
	Description  string        `json:"description"`
	Version      string        `json:"version"`
	Settings     []SettingView `json:"settings"`
	State        string        `json:"state"`
	Capabilities []string      `json:"capabilities"`
	Source       string        `json:"source,omitempty"`
	Error        string        `json:"error,omitempty"`
	RegisteredAt time.Time     `json:"registeredAt"`
	Tool         *ToolView     `json:"tool,omitempty"`
}

// NewPluginView builds the view of a registry entry. p supplies the tool
// metadata and may be nil.
func NewPluginView(e registry.Entry, p plugin.Plugin) PluginView {
	d := e.Descriptor
	v := PluginView{
		ID:           e.ID.String(),
		Name:         d.Name(),
		Author:       d.Author(),
		Description:  d.Description(),
		Version:      d.Version().String(),
		Settings:     make([]SettingView, 0, len(d.Settings())),
		State:        e.State.String(),
		Source:       e.Source,
		RegisteredAt: e.RegisteredAt,
	}
	for _, s := range d.Settings() {
		v.Settings = append(v.Settings, SettingView{Key: s.Key, Label: s.Label, Default: s.Default, Kind: s.Kind.String()})
	}
	for _, c := range e.Capabilities.List() {
		v.Capabilities = append(v.Capabilities, string(c))
	}
	if e.Err != nil {
		v.Error = e.Err.Error()
	}
	if t, err := plugin.AsTool(p); err == nil && p != nil {
		v.Tool = &ToolView{DisplayName: t.DisplayName(), Tooltip: t.Tooltip(), Icon: t.Icon().Path}
	}
	return v
}

// Views returns the views of every plugin in registration order.
func Views(r *registry.Registry) []PluginView {
	entries := r.Entries()
	out := make([]PluginView, 0, len(entries))
	for _, e := range entries {
		p, _ := r.Get(e.Descriptor.Name())
		out = append(out, NewPluginView(e, p))
	}
	return out
}
