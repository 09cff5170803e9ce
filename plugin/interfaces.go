package plugin

// Plugin is the minimal interface every plugin must implement.
//
// The metadata accessors must be pure and return the same values for the
// whole session. Init is called once by the host; returning false marks the
// plugin unusable and the host must not call it again.
type Plugin interface {
	Name() string
	Author() string
	Description() string
	Version() Version
	Settings() []Setting
	Init(host *Host) bool
}

// --- Optional Capability Interfaces ---
// Use Capabilities or AsTool rather than asserting at call sites.

// Tool -- a single user-triggered action shown in the host's tool menu.
//
// Display runs synchronously on the caller's goroutine and has no error
// return: failures are reported through Host.Notifier by the plugin itself.
type Tool interface {
	Plugin
	DisplayName() string
	Tooltip() string
	Icon() Icon
	Display()
}

// FeatureProvider -- publishes typed features into the host feature registry
// once the plugin is ready.
type FeatureProvider interface {
	RegisterFeatures(features *FeatureRegistry) error
}

// Closer -- releases resources at host shutdown.
type Closer interface {
	Close() error
}

// Icon is an optional image reference. The zero value means no icon.
type Icon struct {
	Path string `json:"path,omitempty"`
}

// IsZero reports whether no icon is set.
func (i Icon) IsZero() bool { return i.Path == "" }

// Factory creates a fresh plugin instance.
type Factory func() Plugin
