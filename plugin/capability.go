package plugin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned when a plugin lacks a requested capability.
var ErrUnsupported = errors.New("capability not supported")

// Capability names one contract a plugin can implement.
type Capability string

const (
	CapabilityPlugin  Capability = "plugin"
	CapabilityTool    Capability = "tool"
	CapabilityFeature Capability = "feature"
	CapabilityCloser  Capability = "closer"
)

// allCapabilities fixes the order used by CapabilitySet.List.
var allCapabilities = []Capability{
	CapabilityPlugin,
	CapabilityTool,
	CapabilityFeature,
	CapabilityCloser,
}

// CapabilitySet is the set of contracts a plugin declares.
type CapabilitySet map[Capability]struct{}

// Capabilities computes the capability set of p once, so that callers query
// the set instead of inspecting the plugin's type.
func Capabilities(p Plugin) CapabilitySet {
	set := CapabilitySet{}
	if p == nil {
		return set
	}
	set[CapabilityPlugin] = struct{}{}
	if _, ok := p.(Tool); ok {
		set[CapabilityTool] = struct{}{}
	}
	if _, ok := p.(FeatureProvider); ok {
		set[CapabilityFeature] = struct{}{}
	}
	if _, ok := p.(Closer); ok {
		set[CapabilityCloser] = struct{}{}
	}
	return set
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities in a stable order.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for _, c := range allCapabilities {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CapabilitySet) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = string(c)
	}
	return strings.Join(names, ",")
}

// AsTool returns the tool contract of p, or ErrUnsupported.
func AsTool(p Plugin) (Tool, error) {
	if t, ok := p.(Tool); ok {
		return t, nil
	}
	return nil, fmt.Errorf("plugin %q: %s: %w", nameOf(p), CapabilityTool, ErrUnsupported)
}

// AsFeatureProvider returns the feature contract of p, or ErrUnsupported.
func AsFeatureProvider(p Plugin) (FeatureProvider, error) {
	if f, ok := p.(FeatureProvider); ok {
		return f, nil
	}
	return nil, fmt.Errorf("plugin %q: %s: %w", nameOf(p), CapabilityFeature, ErrUnsupported)
}

func nameOf(p Plugin) string {
	if p == nil {
		return ""
	}
	return p.Name()
}
