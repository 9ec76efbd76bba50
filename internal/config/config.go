// Package config loads CLI settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// Config holds the itemcache CLI settings.
// Tags used:
// - mapstructure: env key, used by viper to unmarshal
// - default: value set when the key is missing
// - required: if "true", Load fails when the value is empty
type Config struct {
	// Environment selects the log format: "production" logs JSON, anything else logs console output.
	Environment string `mapstructure:"ITEMCACHE_ENV" default:"development"`
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `mapstructure:"ITEMCACHE_LOG_LEVEL" default:"warn"`
	// RedisURL is a redis:// or rediss:// URI.
	RedisURL string `mapstructure:"ITEMCACHE_REDIS_URL" required:"true"`
	// Namespace prefixes every key as "<ns>:". Empty disables it.
	Namespace string `mapstructure:"ITEMCACHE_NAMESPACE"`
}

// Load reads path/.env if present, then overlays environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := bindTags(v, reflect.TypeOf(cfg)); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := validateRequired(reflect.ValueOf(cfg)); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindTags binds every tagged field to its env key and registers defaults.
// Unmarshal only sees env values for keys viper already knows about.
func bindTags(v *viper.Viper, t reflect.Type) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := f.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
		if def := f.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
	return nil
}

func validateRequired(val reflect.Value) error {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", f.Tag.Get("mapstructure"))
		}
	}
	return nil
}
