package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvKey returns the environment variable overriding a config key:
// log.file-name with prefix MODKIT is MODKIT_LOG_FILE_NAME.
func EnvKey(prefix, key string) string {
	envKey := strings.ToUpper(envKeyReplacer.Replace(key))
	if prefix != "" {
		envKey = strings.ToUpper(prefix) + "_" + envKey
	}
	return envKey
}

// applyEnvOverrides sets every key whose environment variable is non-empty.
// Environment variables have higher priority than config files.
func applyEnvOverrides(v *viper.Viper, envPrefix string, extraKeys []string) {
	keys := map[string]struct{}{}
	for _, key := range v.AllKeys() {
		keys[key] = struct{}{}
	}
	for _, key := range extraKeys {
		keys[key] = struct{}{}
	}

	for key := range keys {
		if envValue := os.Getenv(EnvKey(envPrefix, key)); envValue != "" {
			v.Set(key, envValue)
		}
	}
}

// structKeys lists the dotted mapstructure keys of the leaf fields of the
// struct instance points to.
func structKeys(instance any) []string {
	t := reflect.TypeOf(instance)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	collectKeys(t, "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			collectKeys(ft, key, keys)
			continue
		}
		*keys = append(*keys, key)
	}
}
