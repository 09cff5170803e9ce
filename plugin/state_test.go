package plugin

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUninitialized, "uninitialized"},
		{StateReady, "ready"},
		{StateFailed, "failed"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_CanInvoke(t *testing.T) {
	if StateUninitialized.CanInvoke() {
		t.Error("Uninitialized should not allow invoke")
	}
	if !StateReady.CanInvoke() {
		t.Error("Ready should allow invoke")
	}
	if StateFailed.CanInvoke() {
		t.Error("Failed should not allow invoke")
	}
}

func TestState_IsTerminal(t *testing.T) {
	if StateUninitialized.IsTerminal() {
		t.Error("Uninitialized should not be terminal")
	}
	if !StateReady.IsTerminal() {
		t.Error("Ready should be terminal")
	}
	if !StateFailed.IsTerminal() {
		t.Error("Failed should be terminal")
	}
}
