package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"cmcshell/internal/context"
	"cmcshell/internal/logger"
)

// Default values for every recognized config key. Keys outside this map
// are extension keys: persisted and surfaced, but not validated here.
var configDefaults = map[string]any{
	"batch":      false,
	"dry_run":    false,
	"ssl_verify": true,
}

// ConfigDefaults returns a fresh copy of the default settings.
func ConfigDefaults() map[string]any {
	defaults := make(map[string]any, len(configDefaults))
	for key, value := range configDefaults {
		defaults[key] = value
	}
	return defaults
}

// ConfigService persists session flag defaults and arbitrary extension
// keys. Every mutation is written to disk immediately, so a crash loses
// at most the in-memory undo stack.
type ConfigService struct {
	initialized bool
	viper       *viper.Viper
	configDir   string
}

// NewConfigService creates a ConfigService instance.
func NewConfigService() *ConfigService {
	return &ConfigService{}
}

// Name returns the service name "config" for registration.
func (c *ConfigService) Name() string { return "config" }

// ConfigDir returns the directory holding config.yaml, aliases.yaml,
// macros.yaml, the trash holding area, and an optional .env file.
// CMC_HOME overrides the default of ~/.cmc.
func ConfigDir() string {
	if dir := os.Getenv("CMC_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cmc"
	}
	return filepath.Join(home, ".cmc")
}

// Initialize loads the persisted configuration, a .env file if present,
// and applies the flag defaults to the session context.
func (c *ConfigService) Initialize() error {
	c.configDir = ConfigDir()
	if err := os.MkdirAll(c.configDir, 0750); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	envPath := filepath.Join(c.configDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn("Failed to load .env", "path", envPath, "error", err)
		}
	}

	c.viper = viper.New()
	c.viper.SetConfigName("config")
	c.viper.SetConfigType("yaml")
	c.viper.AddConfigPath(c.configDir)
	for key, value := range configDefaults {
		c.viper.SetDefault(key, value)
	}
	if err := c.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("cannot read config: %w", err)
		}
	}

	c.applyFlags()
	c.initialized = true
	logger.Debug("ConfigService initialized", "dir", c.configDir)
	return nil
}

// applyFlags copies the persisted flag defaults onto the session flags.
func (c *ConfigService) applyFlags() {
	flags := context.GetGlobalContext().Flags()
	flags.SetBatch(c.viper.GetBool("batch"))
	flags.SetDryRun(c.viper.GetBool("dry_run"))
	flags.SetSSLVerify(c.viper.GetBool("ssl_verify"))
}

// Get returns the value for a key and whether it is set at all.
func (c *ConfigService) Get(key string) (any, bool) {
	if !c.viper.IsSet(key) {
		if def, ok := configDefaults[key]; ok {
			return def, true
		}
		return nil, false
	}
	return c.viper.Get(key), true
}

// Snapshot returns all current settings, for undo records and listing.
func (c *ConfigService) Snapshot() map[string]any {
	snap := make(map[string]any, len(configDefaults))
	for key, def := range configDefaults {
		snap[key] = def
	}
	for key, value := range c.viper.AllSettings() {
		snap[key] = value
	}
	return snap
}

// Keys returns every known key, defaults first, sorted.
func (c *ConfigService) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for key := range configDefaults {
		seen[key] = true
		keys = append(keys, key)
	}
	for key := range c.viper.AllSettings() {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Set stores a key and persists synchronously. Values "true"/"false"/
// "on"/"off" become booleans, numerics become ints, anything else stays
// a string. Flag keys are applied to the session immediately.
func (c *ConfigService) Set(key, raw string) error {
	if !c.initialized {
		return fmt.Errorf("config service not initialized")
	}
	c.viper.Set(key, parseConfigValue(raw))
	c.applyFlags()
	return c.save()
}

// Restore replaces all settings with a snapshot and persists. Used by
// undo of config mutations and by config reset.
func (c *ConfigService) Restore(snapshot map[string]any) error {
	if !c.initialized {
		return fmt.Errorf("config service not initialized")
	}
	fresh := viper.New()
	fresh.SetConfigName("config")
	fresh.SetConfigType("yaml")
	fresh.AddConfigPath(c.configDir)
	for key, value := range snapshot {
		fresh.Set(key, value)
	}
	c.viper = fresh
	c.applyFlags()
	return c.save()
}

// PersistFlags writes the current session flags back as defaults.
func (c *ConfigService) PersistFlags() error {
	if !c.initialized {
		return fmt.Errorf("config service not initialized")
	}
	batch, dryRun, sslVerify := context.GetGlobalContext().Flags().Snapshot()
	c.viper.Set("batch", batch)
	c.viper.Set("dry_run", dryRun)
	c.viper.Set("ssl_verify", sslVerify)
	return c.save()
}

func (c *ConfigService) save() error {
	path := filepath.Join(c.configDir, "config.yaml")
	if err := c.viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("cannot persist config: %w", err)
	}
	return nil
}

func parseConfigValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true", "on", "yes":
		return true
	case "false", "off", "no":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}
