// Package config handles configuration loading and sebas home resolution.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// UsageConfig controls the local usage log.
type UsageConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the per-home configuration.
type Config struct {
	StoreDir     string      `yaml:"store_dir"`     // marker directory name
	DefaultGroup string      `yaml:"default_group"` // group used when --group is absent
	Inject       string      `yaml:"inject"`        // "auto" | "tiocsti" | "print"
	Confirm      bool        `yaml:"confirm"`       // prompt before destructive operations
	LogLevel     string      `yaml:"log_level"`     // "debug" | "info" | "warn" | "error"
	Usage        UsageConfig `yaml:"usage"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		StoreDir:     ".sebas",
		DefaultGroup: "miscellaneous",
		Inject:       "auto",
		Confirm:      true,
		LogLevel:     "warn",
		Usage:        UsageConfig{Enabled: true},
	}
}

// Load reads config.yaml from path. A missing file yields Default(); keys that
// are absent keep their defaults. SEBAS_* environment variables override the
// file (SEBAS_USAGE_ENABLED for usage.enabled).
func Load(path string) (*Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetDefault("store_dir", defaults.StoreDir)
	v.SetDefault("default_group", defaults.DefaultGroup)
	v.SetDefault("inject", defaults.Inject)
	v.SetDefault("confirm", defaults.Confirm)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("usage.enabled", defaults.Usage.Enabled)

	v.SetEnvPrefix("SEBAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		StoreDir:     v.GetString("store_dir"),
		DefaultGroup: v.GetString("default_group"),
		Inject:       v.GetString("inject"),
		Confirm:      v.GetBool("confirm"),
		LogLevel:     v.GetString("log_level"),
		Usage:        UsageConfig{Enabled: v.GetBool("usage.enabled")},
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = defaults.StoreDir
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaults.DefaultGroup
	}
	switch cfg.Inject {
	case "auto", "tiocsti", "print":
	default:
		cfg.Inject = defaults.Inject
	}
	return cfg, nil
}

// ---------------------------------------------------------------------------
// Home resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global sebas config file.
// This file stores only home (and future global settings).
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sebas", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveHome returns the sebas home path and the source of the resolution.
// Priority: SEBAS_HOME env → persisted global config → ~/.sebas-rs
// source is one of "env", "config", or "default".
func ResolveHome() (path, source string) {
	if env := os.Getenv("SEBAS_HOME"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedHome(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sebas-rs"), "default"
}

// GetHome returns the resolved home path.
func GetHome() string {
	path, _ := ResolveHome()
	return path
}

// GetPersistedHome reads home from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedHome() (string, bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false, nil
	}

	val, _ := raw["home"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedHome normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Read existing global config, preserving any other keys.
	var raw map[string]any
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["home"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedHome removes home from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedHome() (bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, nil
	}

	if _, ok := raw["home"]; !ok {
		return false, nil
	}
	delete(raw, "home")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}
