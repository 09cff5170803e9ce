package env_mode

import (
	"os"
	"strings"
	"sync"
)

// ENV_MODE_KEY is the environment variable selecting the run mode.
const ENV_MODE_KEY = "MODKIT_ENV"

type ENV_MODE string

const (
	DevMode  ENV_MODE = "development"
	ProMode  ENV_MODE = "production"
	TestMode ENV_MODE = "test"
)

var (
	currentEnv ENV_MODE
	mu         sync.RWMutex
)

func ParseEnv(env string) ENV_MODE {
	normalizedEnv := strings.ToLower(strings.TrimSpace(env))
	switch normalizedEnv {
	case "development", "dev", "":
		return DevMode
	case "production", "prod", "pro":
		return ProMode
	case "test", "testing":
		return TestMode
	default:
		return DevMode
	}
}

// Mode returns the run mode, read from MODKIT_ENV on first use.
func Mode() ENV_MODE {
	mu.RLock()
	env := currentEnv
	mu.RUnlock()
	if env != "" {
		return env
	}

	mu.Lock()
	defer mu.Unlock()
	if currentEnv == "" {
		currentEnv = ParseEnv(os.Getenv(ENV_MODE_KEY))
	}
	return currentEnv
}

// SetMode overrides the run mode for this process.
func SetMode(mode ENV_MODE) {
	mu.Lock()
	defer mu.Unlock()
	os.Setenv(ENV_MODE_KEY, string(mode))
	currentEnv = mode
}

// Aliases returns the file-name suffixes accepted for mode, canonical first.
func Aliases(mode ENV_MODE) []string {
	switch mode {
	case ProMode:
		return []string{"production", "pro", "prod"}
	case TestMode:
		return []string{"test"}
	default:
		return []string{"development", "dev"}
	}
}
