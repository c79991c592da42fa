// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for matchday.
type Config struct {
	BackendURL string `mapstructure:"backend_url" yaml:"backend_url"`
	ClubID     string `mapstructure:"club_id" yaml:"club_id"`
	Timezone   string `mapstructure:"timezone" yaml:"timezone"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("matchday")

	// Defaults (club_id has no default - it's account-specific)
	v.SetDefault("backend_url", "nats://127.0.0.1:4222")
	v.SetDefault("club_id", "")
	v.SetDefault("timezone", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// ENV binding with MATCHDAY_ prefix
	v.SetEnvPrefix("MATCHDAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better parsing
	// Note: BindEnv errors are very rare (only invalid key names), but we check them anyway
	for key, env := range map[string]string{
		"backend_url": "MATCHDAY_BACKEND_URL",
		"club_id":     "MATCHDAY_CLUB_ID",
		"timezone":    "MATCHDAY_TIMEZONE",
		"log_level":   "MATCHDAY_LOG_LEVEL",
		"log_file":    "MATCHDAY_LOG_FILE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		// Need to set config file explicitly for merge
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/matchday/matchday.yml or $XDG_CONFIG_HOME/matchday/matchday.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "matchday", "matchday.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "matchday", "matchday.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./matchday.yml in the current working directory.
func ProjectPath() string {
	return "matchday.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
