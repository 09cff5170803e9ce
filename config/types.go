package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Validator is implemented by config structs with checks beyond tags.
type Validator interface {
	Validate() error
}

type Config struct {
	instance   *viper.Viper
	opts       ConfigOptions
	files      []string
	watchMutex sync.RWMutex
	watcher    *fsnotify.Watcher
	watchDone  chan struct{}
	watchOnce  sync.Once
}

type ConfigOptions struct {
	BasePath string
	FileName string
	FileType string
	// EnvPrefix prefixes environment overrides: MODKIT_LOG_LEVEL sets log.level.
	EnvPrefix string
	// Optional allows running on defaults when no file is found.
	Optional  bool
	WatchAble bool
	OnChange  func(e fsnotify.Event)
}
