// Package hello holds the example plugins shipped with modkit.
package hello

import (
	"github.com/leeforge/modkit/plugin"
)

// HelloPlugin is the smallest useful plugin: metadata and a log line at init.
//
// Implements: Plugin
type HelloPlugin struct {
	host *plugin.Host
}

// NewHelloPlugin creates the plugin. It matches plugin.Factory.
func NewHelloPlugin() plugin.Plugin {
	return &HelloPlugin{}
}

func (p *HelloPlugin) Name() string               { return "HelloPlugin" }
func (p *HelloPlugin) Author() string             { return "Your Name" }
func (p *HelloPlugin) Description() string        { return "A simple plugin for Mod Organizer." }
func (p *HelloPlugin) Version() plugin.Version    { return plugin.NewVersion(1, 0, 0) }
func (p *HelloPlugin) Settings() []plugin.Setting { return nil }

func (p *HelloPlugin) Init(host *plugin.Host) bool {
	p.host = host
	host.PluginLogger(p.Name()).Info("Hello, Plugin!")
	return true
}
