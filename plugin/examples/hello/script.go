package hello

import (
	"github.com/leeforge/modkit/plugin"
)

// ScriptPlugin is the script-deployed hello plugin. It shows how each log
// level reaches the host log.
//
// Implements: Plugin
type ScriptPlugin struct {
	host *plugin.Host
}

// NewScriptPlugin creates the plugin.
func NewScriptPlugin() plugin.Plugin {
	return &ScriptPlugin{}
}

func (p *ScriptPlugin) Name() string        { return "Python: Hello World Plugin" }
func (p *ScriptPlugin) Author() string      { return "Your Name" }
func (p *ScriptPlugin) Description() string { return "A simple plugin for Mod Organizer 2" }

func (p *ScriptPlugin) Version() plugin.Version {
	return plugin.Version{Major: 1, Release: plugin.ReleaseFinal}
}

func (p *ScriptPlugin) Settings() []plugin.Setting { return nil }

func (p *ScriptPlugin) Init(host *plugin.Host) bool {
	p.host = host
	log := host.PluginLogger(p.Name())
	log.Debug("Print logs at DEBUG level")
	log.Error("Errors go to ERROR level")
	log.Info("This one way to put things into the logs at INFO level")
	return true
}
