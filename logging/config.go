package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config represents the host log sink configuration.
type Config struct {
	// Director is the directory where log files are written. Empty disables
	// file output.
	Director string `mapstructure:"director" json:"director" yaml:"director"`

	// FileName is the log file inside Director.
	FileName string `mapstructure:"file-name" json:"fileName" yaml:"file-name" default:"modkit.log"`

	// Level is the minimum log level (debug, info, warn, error, dpanic, panic, fatal).
	Level string `mapstructure:"level" json:"level" yaml:"level" default:"info"`

	// Format is the log format (json or console).
	Format string `mapstructure:"format" json:"format" yaml:"format" default:"console"`

	// EncodeLevel is the level encoder (lowercase, capital, color).
	EncodeLevel string `mapstructure:"encode-level" json:"encodeLevel" yaml:"encode-level" default:"capital"`

	// TimeFormat is the Go time layout used for timestamps.
	TimeFormat string `mapstructure:"time-format" json:"timeFormat" yaml:"time-format" default:"2006/01/02 - 15:04:05"`

	// LogInTerminal also writes to stderr.
	LogInTerminal bool `mapstructure:"log-in-terminal" json:"logInTerminal" yaml:"log-in-terminal" default:"true"`

	// MaxSize is the size in megabytes before the file is rotated.
	MaxSize int `mapstructure:"max-size" json:"maxSize" yaml:"max-size" default:"50"`

	// MaxBackups is the number of rotated files kept.
	MaxBackups int `mapstructure:"max-backups" json:"maxBackups" yaml:"max-backups" default:"5"`

	// MaxAge is the number of days rotated files are kept.
	MaxAge int `mapstructure:"max-age" json:"maxAge" yaml:"max-age" default:"14"`

	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress" json:"compress" yaml:"compress"`

	// ShowCaller adds file:line to entries.
	ShowCaller bool `mapstructure:"show-caller" json:"showCaller" yaml:"show-caller"`
}

// DefaultConfig returns a terminal-only console config at info level.
func DefaultConfig() Config {
	return Config{
		FileName:      "modkit.log",
		Level:         "info",
		Format:        "console",
		EncodeLevel:   "capital",
		TimeFormat:    "2006/01/02 - 15:04:05",
		LogInTerminal: true,
		MaxSize:       50,
		MaxBackups:    5,
		MaxAge:        14,
	}
}

// TransportLevel converts Level to a zapcore.Level. Unknown values map to info.
func (c Config) TransportLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ZapEncodeLevel returns the zapcore.LevelEncoder named by EncodeLevel.
func (c Config) ZapEncodeLevel() zapcore.LevelEncoder {
	switch strings.ToLower(c.EncodeLevel) {
	case "lowercase":
		return zapcore.LowercaseLevelEncoder
	case "color", "capital-color":
		return zapcore.CapitalColorLevelEncoder
	case "lowercase-color":
		return zapcore.LowercaseColorLevelEncoder
	default:
		return zapcore.CapitalLevelEncoder
	}
}

// applyDefaults applies default values to empty fields.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.FileName == "" {
		c.FileName = defaults.FileName
	}
	if c.Level == "" {
		c.Level = defaults.Level
	}
	if c.Format == "" {
		c.Format = defaults.Format
	}
	if c.TimeFormat == "" {
		c.TimeFormat = defaults.TimeFormat
	}
	if c.MaxSize == 0 {
		c.MaxSize = defaults.MaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = defaults.MaxBackups
	}
	if c.MaxAge == 0 {
		c.MaxAge = defaults.MaxAge
	}
}
