package logging

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// fileWriter returns a rotating writer for Config.Director, or nil when file
// output is disabled.
func fileWriter(config Config) *lumberjack.Logger {
	if config.Director == "" {
		return nil
	}
	_ = os.MkdirAll(config.Director, 0o755)
	return &lumberjack.Logger{
		Filename:   filepath.Join(config.Director, config.FileName),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}
}

// writeSyncer tees terminal and file output according to config. extra is
// appended, which tests use to capture output.
func writeSyncer(config Config, extra ...io.Writer) (zapcore.WriteSyncer, io.Closer) {
	var syncers []zapcore.WriteSyncer
	if config.LogInTerminal {
		syncers = append(syncers, zapcore.Lock(os.Stderr))
	}

	var closer io.Closer
	if fw := fileWriter(config); fw != nil {
		syncers = append(syncers, zapcore.AddSync(fw))
		closer = fw
	}
	for _, w := range extra {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	if len(syncers) == 0 {
		return zapcore.AddSync(io.Discard), closer
	}
	return zapcore.NewMultiWriteSyncer(syncers...), closer
}
