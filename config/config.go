package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/leeforge/modkit/env_mode"
	"github.com/spf13/viper"
)

var validate = validator.New()

func DefaultConfigOptions() ConfigOptions {
	basePath := os.Getenv("MODKIT_CONFIG_PATH")
	if basePath == "" {
		basePath = "config"
	}

	return ConfigOptions{
		BasePath:  basePath,
		FileName:  "modkit",
		FileType:  "yaml",
		EnvPrefix: "MODKIT",
		Optional:  true,
	}
}

func DevConfigOptions() ConfigOptions {
	opts := DefaultConfigOptions()
	opts.WatchAble = true
	return opts
}

// NewConfig loads the config files selected by opts and the current env mode.
func NewConfig(optsArr ...ConfigOptions) (*Config, error) {
	opts := DefaultConfigOptions()
	if len(optsArr) > 0 {
		opts = optsArr[0]
	}
	if opts.FileType == "" {
		opts.FileType = "yaml"
	}

	files := configFilePaths(opts)
	if len(files) == 0 && !opts.Optional {
		return nil, fmt.Errorf("no configuration files found in path: %s", opts.BasePath)
	}

	instance, err := readFiles(files, opts.FileType)
	if err != nil {
		return nil, err
	}

	return &Config{
		instance: instance,
		opts:     opts,
		files:    files,
	}, nil
}

// Files returns the config files that were merged, lowest priority first.
func (c *Config) Files() []string {
	c.watchMutex.RLock()
	defer c.watchMutex.RUnlock()
	return append([]string(nil), c.files...)
}

// Bind decodes the merged config into instance, a pointer to a struct.
// Environment overrides are applied for every key the struct declares.
// With WatchAble set, instance is refreshed whenever a config file changes.
func (c *Config) Bind(instance any) error {
	if c == nil || c.instance == nil {
		return fmt.Errorf("config instance is nil")
	}
	if instance == nil {
		return fmt.Errorf("target instance is nil")
	}

	c.watchMutex.Lock()
	err := c.decode(instance)
	c.watchMutex.Unlock()
	if err != nil {
		return err
	}

	if c.opts.WatchAble {
		return c.watch(instance)
	}
	return nil
}

// BindWithDefaults applies `default` tags, then Bind. Values present in
// files or environment win over defaults, including explicit zero values.
func (c *Config) BindWithDefaults(instance any) error {
	if err := defaults.Set(instance); err != nil {
		return fmt.Errorf("failed to set defaults: %w", err)
	}
	return c.Bind(instance)
}

// Validate runs `validate` tags and, when implemented, Validator.
func Validate(instance any) error {
	if err := validate.Struct(instance); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if v, ok := instance.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}

func (c *Config) Get(key string) any {
	c.watchMutex.RLock()
	defer c.watchMutex.RUnlock()

	return c.instance.Get(key)
}

func (c *Config) Set(key string, value any) {
	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()

	c.instance.Set(key, value)
}

// AllSettings returns the merged config as a nested map.
func (c *Config) AllSettings() map[string]any {
	c.watchMutex.RLock()
	defer c.watchMutex.RUnlock()

	return c.instance.AllSettings()
}

// decode must be called with watchMutex held.
func (c *Config) decode(instance any) error {
	applyEnvOverrides(c.instance, c.opts.EnvPrefix, structKeys(instance))
	if err := c.instance.Unmarshal(instance); err != nil {
		return fmt.Errorf("failed to unmarshal config (path: %s, file: %s.%s): %w",
			c.opts.BasePath, c.opts.FileName, c.opts.FileType, err)
	}
	return nil
}

func readFiles(files []string, fileType string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType(fileType)

	for _, configPath := range files {
		tempV := viper.New()
		tempV.SetConfigFile(configPath)
		if err := tempV.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		if err := v.MergeConfigMap(tempV.AllSettings()); err != nil {
			return nil, fmt.Errorf("error merging config file %s: %w", configPath, err)
		}
	}
	return v, nil
}

// configFilePaths lists existing files in priority order: base, base.local,
// then every alias of the env mode with its .local variant.
func configFilePaths(opts ConfigOptions) (configFiles []string) {
	fileNames := []string{
		opts.FileName,
		opts.FileName + ".local",
	}
	for _, alias := range env_mode.Aliases(env_mode.Mode()) {
		fileNames = append(fileNames,
			fmt.Sprintf("%s.%s", opts.FileName, alias),
			fmt.Sprintf("%s.%s.local", opts.FileName, alias),
		)
	}

	for _, fileName := range fileNames {
		file := filepath.Join(opts.BasePath, fmt.Sprintf("%s.%s", fileName, opts.FileType))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			configFiles = append(configFiles, file)
		}
	}
	return configFiles
}
