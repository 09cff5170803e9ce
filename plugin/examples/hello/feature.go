package hello

import (
	"github.com/leeforge/modkit/plugin"
	"go.uber.org/zap"
)

// FeatureKey is where FeaturePlugin publishes its feature.
const FeatureKey = "hello.feature"

// Feature is the contract other plugins resolve from the feature registry.
type Feature interface {
	ExampleFunction() string
}

// HelloFeature is the game feature published by FeaturePlugin.
type HelloFeature struct {
	greeting string
}

// NewHelloFeature creates a feature answering with greeting.
func NewHelloFeature(greeting string) *HelloFeature {
	return &HelloFeature{greeting: greeting}
}

func (f *HelloFeature) ExampleFunction() string { return f.greeting }

// FeaturePlugin publishes HelloFeature once ready. The greeting comes from
// the plugin's "greeting" setting.
//
// Implements: Plugin, FeatureProvider
type FeaturePlugin struct {
	feature *HelloFeature
	logger  *zap.Logger
}

// NewFeaturePlugin creates the plugin.
func NewFeaturePlugin() plugin.Plugin {
	return &FeaturePlugin{}
}

func (p *FeaturePlugin) Name() string            { return "HelloFeature" }
func (p *FeaturePlugin) Author() string          { return "Your Name" }
func (p *FeaturePlugin) Description() string     { return "Publishes the hello game feature." }
func (p *FeaturePlugin) Version() plugin.Version { return plugin.NewVersion(1, 0, 0) }

func (p *FeaturePlugin) Settings() []plugin.Setting {
	return []plugin.Setting{
		plugin.NewSetting("greeting", "Greeting returned by the feature", "Hello from HelloFeature"),
	}
}

func (p *FeaturePlugin) Init(host *plugin.Host) bool {
	p.logger = host.PluginLogger(p.Name())
	cfg := host.PluginSettings(p)
	p.feature = NewHelloFeature(cfg.GetString("greeting", "Hello from HelloFeature"))
	return true
}

// --- FeatureProvider ---

func (p *FeaturePlugin) RegisterFeatures(features *plugin.FeatureRegistry) error {
	p.logger.Debug("publishing feature", zap.String("key", FeatureKey))
	return features.RegisterFeature(p.Name(), FeatureKey, Feature(p.feature))
}
