// Package config loads application settings from flags, environment
// variables and an optional config file via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application. Values are read
// by viper from ~/.glowbot/config.yaml or GLOWBOT_* environment
// variables, with flag overrides bound in cmd.
type Config struct {
	// Upstream chat-completion API.
	APIKey      string `mapstructure:"api_key"`
	UpstreamURL string `mapstructure:"upstream_url"`
	Model       string `mapstructure:"model"`

	// Proxy service.
	ListenAddr string `mapstructure:"listen_addr"`

	// Resolver.
	BrandDomains []string `mapstructure:"brand_domains"`

	// Client state.
	StateDir string `mapstructure:"state_dir"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads the configuration, applying defaults for anything unset.
func Load() (*Config, error) {
	v := viper.GetViper()

	v.SetDefault("upstream_url", "https://api.openai.com/v1")
	v.SetDefault("model", "gpt-4o")
	v.SetDefault("listen_addr", ":8787")
	v.SetDefault("brand_domains", []string{"lorealparis.com", "loreal.com"})
	v.SetDefault("log_level", "info")

	if v.GetString("state_dir") == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		v.SetDefault("state_dir", filepath.Join(home, ".glowbot", "state"))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
