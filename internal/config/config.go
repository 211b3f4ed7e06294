// Package config loads the process configuration: where state lives, how
// logs are written and how often the timer ticks. Timer preferences live in
// the settings record instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focusdeck/internal/platform"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName names the config directory, the instance lock and autostart entries.
const AppName = "focusdeck"

const envPrefix = "FOCUSDECK"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"storage":    "storage",
	"data-dir":   "data_dir",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// Config is the process configuration.
type Config struct {
	DataDir           string        `mapstructure:"data_dir"`
	Storage           string        `mapstructure:"storage"`
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	IdleCheckInterval time.Duration `mapstructure:"idle_check_interval"`
	Log               LogConfig     `mapstructure:"log"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives logs in addition to stderr when set.
	File string `mapstructure:"file"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	dataDir := ""
	if configDir, err := platform.NewService().GetConfigDir(); err == nil {
		dataDir = filepath.Join(configDir, AppName)
	}
	return &Config{
		DataDir:           dataDir,
		Storage:           "yaml",
		TickInterval:      time.Second,
		IdleCheckInterval: 10 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location inside the default data dir.
func DefaultPath() string {
	dataDir := Default().DataDir
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, "config.yaml")
}

// Load reads path (or DefaultPath when empty) over the defaults, then applies
// FOCUSDECK_* environment overrides and any flags the user set. A missing
// default file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the app cannot run with.
func (cfg *Config) Validate() error {
	switch cfg.Storage {
	case "yaml", "sqlite", "memory":
	default:
		return fmt.Errorf("storage must be yaml, sqlite or memory, got %q", cfg.Storage)
	}
	if cfg.Storage != "memory" && cfg.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", cfg.TickInterval)
	}
	if cfg.IdleCheckInterval <= 0 {
		return fmt.Errorf("idle_check_interval must be positive, got %s", cfg.IdleCheckInterval)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Every key needs a default for AutomaticEnv to reach it during Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("tick_interval", cfg.TickInterval)
	v.SetDefault("idle_check_interval", cfg.IdleCheckInterval)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
}
