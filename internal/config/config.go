package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataFile string `yaml:"data_file" mapstructure:"data_file"`
	Theme    string `yaml:"theme" mapstructure:"theme"`
	LogFile  string `yaml:"log_file" mapstructure:"log_file"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	Plain    bool   `yaml:"plain" mapstructure:"plain"`
}

var validThemes = map[string]bool{"green": true, "amber": true, "mono": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func DefaultConfig() *Config {
	return &Config{
		DataFile: filepath.Join(dataDir(), "books_data.json"),
		Theme:    "green",
		LogLevel: "info",
	}
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookshelf")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "bookshelf")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookshelf")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookshelf")
}

// DefaultPath is where init-config writes the configuration file.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load reads the configuration. An explicit path must exist; otherwise
// config.yaml is searched in the working directory and the user config
// directory, and a missing file means defaults. BOOKSHELF_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("data_file", cfg.DataFile)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("plain", cfg.Plain)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
	}

	v.SetEnvPrefix("BOOKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.DataFile = expandHome(cfg.DataFile)
	cfg.LogFile = expandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("config: data_file is required")
	}
	c.Theme = strings.ToLower(c.Theme)
	if c.Theme == "" {
		c.Theme = "green"
	}
	if !validThemes[c.Theme] {
		return fmt.Errorf("config: invalid theme %q (must be green, amber, or mono)", c.Theme)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("config: invalid log_level %q (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}
