package logging

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across modkit.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	Infof(format string, args ...any)
	Errorf(format string, args ...any)

	// With creates a child logger with additional fields.
	With(fields ...zap.Field) Logger
	// Named creates a child logger with the given name.
	Named(name string) Logger

	// Zap returns the underlying *zap.Logger, which is what plugins receive.
	Zap() *zap.Logger
	// Sync flushes buffered entries.
	Sync() error
	// Close flushes and releases the log file, if any.
	Close() error
}

// zapLogger wraps *zap.Logger to implement the Logger interface.
type zapLogger struct {
	zl     *zap.Logger
	sl     *zap.SugaredLogger
	closer io.Closer
}

// NewLogger creates a Logger from config.
func NewLogger(config Config) Logger {
	return newLogger(config)
}

// NewLoggerTo creates a Logger that also writes to w. Used by tests and by
// the CLI to capture output.
func NewLoggerTo(config Config, w io.Writer) Logger {
	return newLogger(config, w)
}

func newLogger(config Config, extra ...io.Writer) Logger {
	config.applyDefaults()

	ws, closer := writeSyncer(config, extra...)
	core := zapcore.NewCore(GetEncoder(config), ws, config.TransportLevel())
	zl := zap.New(core)
	if config.ShowCaller {
		zl = zl.WithOptions(zap.AddCaller(), zap.AddCallerSkip(1))
	}
	return &zapLogger{zl: zl, sl: zl.Sugar(), closer: closer}
}

// FromZap wraps an existing *zap.Logger as a Logger.
func FromZap(zl *zap.Logger) Logger {
	return &zapLogger{zl: zl, sl: zl.Sugar()}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return FromZap(zap.NewNop())
}

// GetEncoder returns a zapcore.Encoder based on the config format.
func GetEncoder(config Config) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    config.ZapEncodeLevel(),
		EncodeTime:     timeEncoder(config.TimeFormat),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if config.Format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	return zapcore.NewConsoleEncoder(ec)
}

func timeEncoder(layout string) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(layout))
	}
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.zl.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.zl.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }

func (l *zapLogger) Infof(format string, args ...any)  { l.sl.Infof(format, args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.sl.Errorf(format, args...) }

func (l *zapLogger) With(fields ...zap.Field) Logger {
	zl := l.zl.With(fields...)
	return &zapLogger{zl: zl, sl: zl.Sugar(), closer: l.closer}
}

func (l *zapLogger) Named(name string) Logger {
	zl := l.zl.Named(name)
	return &zapLogger{zl: zl, sl: zl.Sugar(), closer: l.closer}
}

func (l *zapLogger) Zap() *zap.Logger { return l.zl }

func (l *zapLogger) Sync() error { return l.zl.Sync() }

func (l *zapLogger) Close() error {
	_ = l.zl.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Ensure zapLogger implements Logger.
var _ Logger = (*zapLogger)(nil)
