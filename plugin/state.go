package plugin

// State represents the lifecycle state of a registered plugin.
type State int

const (
	StateUninitialized State = iota // Registered, Init not yet called
	StateReady                      // Init returned true
	StateFailed                     // Init returned false or panicked
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanInvoke reports whether tool actions may run in this state.
func (s State) CanInvoke() bool {
	return s == StateReady
}

// IsTerminal returns true if the state cannot transition further.
func (s State) IsTerminal() bool {
	return s == StateReady || s == StateFailed
}
