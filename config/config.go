// Package config holds runtime settings for the shell and batch tools.
// Settings resolve, highest priority first: command-line overrides, the
// KLOTSKI_* environment, an optional config file, built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

// DefaultConfig returns a config with built-in defaults and environment
// binding, before any command-line overrides.
func DefaultConfig() *Config {
	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("default-variant", "classic")
	v.SetDefault("save-db-path", "klotski-saves.db")
	v.SetDefault("auto-workers", 0) // 0 means one worker per CPU
	v.SetEnvPrefix("klotski")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// Load applies command-line overrides of the form key=value, with any
// number of leading dashes, and then merges an optional klotski.yaml from
// the current directory.
func (c *Config) Load(args []string) error {
	for _, arg := range args {
		arg = strings.TrimLeft(arg, "-")
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("bad option %q, expected key=value", arg)
		}
		c.v.Set(key, val)
	}
	c.v.SetConfigName("klotski")
	c.v.SetConfigType("yaml")
	c.v.AddConfigPath(".")
	if err := c.v.MergeInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return err
		}
	}
	return nil
}

// Set overrides a single setting.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetString(key string) string { return c.v.GetString(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }

// AllSettings returns every resolved setting, for display.
func (c *Config) AllSettings() map[string]any {
	return c.v.AllSettings()
}
