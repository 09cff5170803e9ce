package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Director != "" {
		t.Errorf("expected no Director, got '%s'", cfg.Director)
	}
	if cfg.Level != "info" {
		t.Errorf("expected Level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected Format 'console', got '%s'", cfg.Format)
	}
	if !cfg.LogInTerminal {
		t.Error("expected LogInTerminal to be true")
	}
}

func TestConfigTransportLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Level: tt.level}
			if got := cfg.TransportLevel(); got != tt.expected {
				t.Errorf("TransportLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(Config{Format: "json", Level: "debug"}, &buf)

	logger.Named("plugin").Info("Hello, Plugin!", zap.String("plugin", "HelloPlugin"))
	_ = logger.Sync()

	out := buf.String()
	if !strings.Contains(out, `"message":"Hello, Plugin!"`) {
		t.Errorf("missing message in %q", out)
	}
	if !strings.Contains(out, `"logger":"plugin"`) {
		t.Errorf("missing logger name in %q", out)
	}
	if !strings.Contains(out, `"plugin":"HelloPlugin"`) {
		t.Errorf("missing field in %q", out)
	}
}

func TestNewLoggerTo_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(Config{Level: "warn"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn entry should be written")
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(Config{Director: dir, FileName: "host.log"})

	logger.Infof("loaded %d plugins", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "host.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "loaded 3 plugins") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("discarded")
	if logger.Zap() == nil {
		t.Fatal("Nop should expose a zap logger")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nop logger: %v", err)
	}
}
