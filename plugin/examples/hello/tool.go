package hello

import (
	"github.com/leeforge/modkit/plugin"
)

const (
	greetingTitle = "Hello World"
	greetingBody  = "Hello, World!"
)

// Tool shows a greeting message box when triggered from the tools menu.
// HelloTool and HelloWorldPlugin are the same tool with different metadata.
//
// Implements: Plugin, Tool
type Tool struct {
	name        string
	description string
	displayName string
	tooltip     string
	icon        plugin.Icon

	host *plugin.Host
}

// NewTool creates a greeting tool with custom metadata.
func NewTool(name, description, displayName, tooltip string) *Tool {
	return &Tool{
		name:        name,
		description: description,
		displayName: displayName,
		tooltip:     tooltip,
	}
}

// NewHelloTool creates the "HelloTool" example.
func NewHelloTool() plugin.Plugin {
	return NewTool("HelloTool", "A simple Tool plugin for Mod Organizer.",
		"Hello World Tool", "This is a simple Hello World tool.")
}

// NewHelloWorldPlugin creates the "HelloWorldPlugin" example.
func NewHelloWorldPlugin() plugin.Plugin {
	return NewTool("HelloWorldPlugin", "A simple Hello World plugin for Mod Organizer.",
		"Hello World Tool", "This is a simple Hello World tool.")
}

// WithIcon returns a copy of the tool using the given icon.
func (t *Tool) WithIcon(icon plugin.Icon) *Tool {
	c := *t
	c.icon = icon
	return &c
}

func (t *Tool) Name() string               { return t.name }
func (t *Tool) Author() string             { return "Your Name" }
func (t *Tool) Description() string        { return t.description }
func (t *Tool) Version() plugin.Version    { return plugin.NewVersion(1, 0, 0) }
func (t *Tool) Settings() []plugin.Setting { return nil }

func (t *Tool) Init(host *plugin.Host) bool {
	t.host = host
	return true
}

func (t *Tool) DisplayName() string { return t.displayName }
func (t *Tool) Tooltip() string     { return t.tooltip }
func (t *Tool) Icon() plugin.Icon   { return t.icon }

// Display shows the greeting. It does nothing before Init.
func (t *Tool) Display() {
	if t.host == nil {
		return
	}
	t.host.Notifier.Information(t.host.Window, greetingTitle, greetingBody)
}
