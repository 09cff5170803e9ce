package plugin

import "fmt"

// SettingKind is the value type of a declared setting.
type SettingKind int

const (
	KindString SettingKind = iota
	KindInt
	KindBool
	KindFloat
)

func (k SettingKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Setting is a named, typed, defaultable value a plugin exposes to the
// host's configuration UI.
type Setting struct {
	Key     string      `json:"key" validate:"required"`
	Label   string      `json:"label"`
	Default any         `json:"default"`
	Kind    SettingKind `json:"kind"`
}

// NewSetting declares a setting, inferring its kind from the default value.
// Unsupported default types fall back to KindString and fail Validate.
func NewSetting(key, label string, def any) Setting {
	kind := KindString
	switch def.(type) {
	case int, int64:
		kind = KindInt
	case bool:
		kind = KindBool
	case float64:
		kind = KindFloat
	}
	return Setting{Key: key, Label: label, Default: def, Kind: kind}
}

// Validate checks that the key is set and the default matches the kind.
func (s Setting) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("setting key cannot be empty")
	}
	if s.Default == nil {
		return nil
	}
	if !s.Kind.accepts(s.Default) {
		return fmt.Errorf("setting %q: default %v (%T) is not a %s", s.Key, s.Default, s.Default, s.Kind)
	}
	return nil
}

func (k SettingKind) accepts(v any) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindInt:
		switch v.(type) {
		case int, int64:
			return true
		}
		return false
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindFloat:
		switch v.(type) {
		case float64, float32:
			return true
		}
		return false
	default:
		return false
	}
}
