package plugin

import (
	"errors"
	"testing"
)

// testFullPlugin implements all interfaces -- verifies compile-time compliance.
type testFullPlugin struct{}

func (p *testFullPlugin) Name() string        { return "test-full" }
func (p *testFullPlugin) Author() string      { return "tests" }
func (p *testFullPlugin) Description() string { return "full" }
func (p *testFullPlugin) Version() Version    { return NewVersion(1, 0, 0) }
func (p *testFullPlugin) Settings() []Setting { return nil }
func (p *testFullPlugin) Init(*Host) bool     { return true }

func (p *testFullPlugin) DisplayName() string                     { return "Full" }
func (p *testFullPlugin) Tooltip() string                         { return "full tool" }
func (p *testFullPlugin) Icon() Icon                              { return Icon{} }
func (p *testFullPlugin) Display()                                {}
func (p *testFullPlugin) RegisterFeatures(*FeatureRegistry) error { return nil }
func (p *testFullPlugin) Close() error                            { return nil }

// Compile-time assertions
var _ Plugin = (*testFullPlugin)(nil)
var _ Tool = (*testFullPlugin)(nil)
var _ FeatureProvider = (*testFullPlugin)(nil)
var _ Closer = (*testFullPlugin)(nil)

// testMinimalPlugin implements ONLY the core interface.
type testMinimalPlugin struct{}

func (p *testMinimalPlugin) Name() string        { return "test-minimal" }
func (p *testMinimalPlugin) Author() string      { return "tests" }
func (p *testMinimalPlugin) Description() string { return "minimal" }
func (p *testMinimalPlugin) Version() Version    { return NewVersion(0, 1, 0) }
func (p *testMinimalPlugin) Settings() []Setting { return nil }
func (p *testMinimalPlugin) Init(*Host) bool     { return true }

var _ Plugin = (*testMinimalPlugin)(nil)

func TestCapabilityDetection(t *testing.T) {
	full := Capabilities(&testFullPlugin{})
	minimal := Capabilities(&testMinimalPlugin{})

	for _, c := range []Capability{CapabilityPlugin, CapabilityTool, CapabilityFeature, CapabilityCloser} {
		if !full.Has(c) {
			t.Errorf("testFullPlugin should have %s", c)
		}
	}

	if !minimal.Has(CapabilityPlugin) {
		t.Error("every plugin has the base capability")
	}
	if minimal.Has(CapabilityTool) {
		t.Error("testMinimalPlugin should NOT be a tool")
	}
	if got := minimal.String(); got != "plugin" {
		t.Errorf("minimal.String() = %q, want plugin", got)
	}
	if got := full.String(); got != "plugin,tool,feature,closer" {
		t.Errorf("full.String() = %q", got)
	}
}

func TestCapabilitiesOfNil(t *testing.T) {
	if len(Capabilities(nil)) != 0 {
		t.Error("nil plugin should have no capabilities")
	}
}

func TestAsTool(t *testing.T) {
	if _, err := AsTool(&testFullPlugin{}); err != nil {
		t.Fatalf("AsTool(full) failed: %v", err)
	}

	_, err := AsTool(&testMinimalPlugin{})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("AsTool(minimal) error = %v, want ErrUnsupported", err)
	}
}

func TestAsFeatureProvider(t *testing.T) {
	if _, err := AsFeatureProvider(&testFullPlugin{}); err != nil {
		t.Fatalf("AsFeatureProvider(full) failed: %v", err)
	}
	if _, err := AsFeatureProvider(&testMinimalPlugin{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("AsFeatureProvider(minimal) error = %v, want ErrUnsupported", err)
	}
}

func TestIcon_IsZero(t *testing.T) {
	if !(Icon{}).IsZero() {
		t.Error("zero Icon should report IsZero")
	}
	if (Icon{Path: "a.png"}).IsZero() {
		t.Error("Icon with path should not be zero")
	}
}
