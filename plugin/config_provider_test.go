package plugin

import "testing"

func TestSettingsEntry_StoredValueWins(t *testing.T) {
	cfg := NewSettingsEntry("hello", true,
		[]Setting{NewSetting("greeting", "Greeting", "hi")},
		map[string]any{"greeting": "hello"},
	)

	if got := cfg.GetString("greeting", ""); got != "hello" {
		t.Errorf("GetString(greeting) = %q, want %q", got, "hello")
	}
}

func TestSettingsEntry_DeclaredDefault(t *testing.T) {
	cfg := NewSettingsEntry("hello", true,
		[]Setting{
			NewSetting("greeting", "Greeting", "hi"),
			NewSetting("repeat", "Repeat", 3),
			NewSetting("loud", "Loud", true),
			NewSetting("ratio", "Ratio", 0.5),
		},
		nil,
	)

	if got := cfg.GetString("greeting", "x"); got != "hi" {
		t.Errorf("GetString(greeting) = %q, want %q", got, "hi")
	}
	if got := cfg.GetInt("repeat", 0); got != 3 {
		t.Errorf("GetInt(repeat) = %d, want 3", got)
	}
	if got := cfg.GetBool("loud", false); !got {
		t.Error("GetBool(loud) = false, want true")
	}
	if got := cfg.GetFloat("ratio", 0); got != 0.5 {
		t.Errorf("GetFloat(ratio) = %v, want 0.5", got)
	}
	if got := cfg.GetString("missing", "fallback"); got != "fallback" {
		t.Errorf("GetString(missing) = %q, want fallback", got)
	}
}

func TestSettingsEntry_GetIntFromJSONNumber(t *testing.T) {
	cfg := NewMapConfigProvider(map[string]any{"port": float64(8080)})
	if got := cfg.GetInt("port", 0); got != 8080 {
		t.Errorf("GetInt(port) = %d, want 8080", got)
	}
}

func TestSettingsEntry_WrongTypeFallsBack(t *testing.T) {
	cfg := NewMapConfigProvider(map[string]any{"flag": "yes"})
	if got := cfg.GetBool("flag", false); got {
		t.Error("GetBool on string value should return the fallback")
	}
}

func TestSettingsEntry_Bind(t *testing.T) {
	cfg := NewSettingsEntry("hello", true,
		[]Setting{NewSetting("greeting", "Greeting", "hi"), NewSetting("repeat", "Repeat", 1)},
		map[string]any{"repeat": float64(2)},
	)

	type options struct {
		Greeting string `json:"greeting"`
		Repeat   int    `json:"repeat"`
	}

	var target options
	if err := cfg.Bind(&target); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if target.Greeting != "hi" || target.Repeat != 2 {
		t.Errorf("Bind = %+v, want {hi 2}", target)
	}
}

func TestSettingsEntry_ValuesAreCopied(t *testing.T) {
	values := map[string]any{"k": "v"}
	cfg := NewSettingsEntry("p", true, nil, values)
	values["k"] = "changed"

	if got := cfg.GetString("k", ""); got != "v" {
		t.Errorf("entry should not observe caller mutation, got %q", got)
	}
}

func TestSettingsEntry_IsEnabled(t *testing.T) {
	if !NewSettingsEntry("a", true, nil, nil).IsEnabled() {
		t.Error("should be enabled")
	}
	if NewSettingsEntry("a", false, nil, nil).IsEnabled() {
		t.Error("should be disabled")
	}
}

func TestEmptyConfigProvider(t *testing.T) {
	cfg := EmptyConfig()
	if got := cfg.GetString("any", "fallback"); got != "fallback" {
		t.Errorf("empty config should return default, got %q", got)
	}
	if cfg.IsEnabled() {
		t.Error("empty config should not be enabled")
	}
}
