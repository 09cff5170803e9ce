package plugin

import (
	"fmt"

	validatorV10 "github.com/go-playground/validator/v10"
)

var validate = validatorV10.New()

// Descriptor is an immutable snapshot of a plugin's identity.
type Descriptor struct {
	name        string
	author      string
	description string
	version     Version
	settings    []Setting
}

// descriptorFields mirrors Descriptor for struct-tag validation.
type descriptorFields struct {
	Name     string    `validate:"required,max=128"`
	Author   string    `validate:"max=256"`
	Version  Version
	Settings []Setting `validate:"dive"`
}

// NewDescriptor builds a descriptor, copying settings so later changes by
// the caller cannot leak in.
func NewDescriptor(name, author, description string, version Version, settings []Setting) Descriptor {
	return Descriptor{
		name:        name,
		author:      author,
		description: description,
		version:     version,
		settings:    append([]Setting(nil), settings...),
	}
}

// Describe captures the metadata p reports right now.
func Describe(p Plugin) Descriptor {
	return NewDescriptor(p.Name(), p.Author(), p.Description(), p.Version(), p.Settings())
}

func (d Descriptor) Name() string        { return d.name }
func (d Descriptor) Author() string      { return d.author }
func (d Descriptor) Description() string { return d.description }
func (d Descriptor) Version() Version    { return d.version }

// Settings returns a copy of the declared settings in declaration order.
func (d Descriptor) Settings() []Setting {
	return append([]Setting(nil), d.settings...)
}

// Setting looks up a declared setting by key.
func (d Descriptor) Setting(key string) (Setting, bool) {
	for _, s := range d.settings {
		if s.Key == key {
			return s, true
		}
	}
	return Setting{}, false
}

// Validate checks the name, the version and that setting keys are pairwise
// distinct.
func (d Descriptor) Validate() error {
	fields := descriptorFields{
		Name:     d.name,
		Author:   d.author,
		Version:  d.version,
		Settings: d.settings,
	}
	if err := validate.Struct(fields); err != nil {
		return fmt.Errorf("descriptor %q: %w", d.name, err)
	}
	if err := d.version.Validate(); err != nil {
		return fmt.Errorf("descriptor %q: %w", d.name, err)
	}

	seen := make(map[string]struct{}, len(d.settings))
	for _, s := range d.settings {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("descriptor %q: %w", d.name, err)
		}
		if _, dup := seen[s.Key]; dup {
			return fmt.Errorf("descriptor %q: duplicate setting key %q", d.name, s.Key)
		}
		seen[s.Key] = struct{}{}
	}
	return nil
}
