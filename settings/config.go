package settings

import (
	"fmt"
)

// Config selects and configures the settings backend.
type Config struct {
	// Driver is "memory" or "redis".
	Driver string      `mapstructure:"driver" json:"driver" yaml:"driver" default:"memory" validate:"oneof=memory redis"`
	Redis  RedisConfig `mapstructure:"redis" json:"redis" yaml:"redis"`
}

// RedisConfig holds the Redis connection used by RedisStore.
type RedisConfig struct {
	Host     string `mapstructure:"host" json:"host" yaml:"host" default:"127.0.0.1"`
	Port     string `mapstructure:"port" json:"port" yaml:"port" default:"6379"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`
	// Prefix namespaces the hash keys, one hash per plugin.
	Prefix string `mapstructure:"prefix" json:"prefix" yaml:"prefix" default:"modkit:settings"`
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// redactedPassword keeps passwords out of logs.
func redactedPassword(password string) string {
	if password == "" {
		return "<empty>"
	}
	return "[REDACTED]"
}
