// Package config loads the dashboard's runtime settings from environment
// variables and an optional config file. Environment variables win over file
// values, file values win over defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Environment variables carry this prefix, e.g. DASHBOARD_BASE_URL.
const envPrefix = "DASHBOARD"

// Config holds every runtime setting of the dashboard client.
type Config struct {
	AppName         string        // Shown in the startup banner
	BaseURL         string        // Backend API base, e.g. http://localhost:8000
	TokenPath       string        // File the bearer token persists to
	RequestTimeout  time.Duration // Per-request deadline for backend calls
	PageSize        int           // Rows requested per page for listings
	RefreshInterval time.Duration // How often the visible data reloads
	LogLevel        string        // zerolog level: debug, info, warn, error
}

// Load reads settings from the environment and, when path is not empty, from
// the config file at path. A named file must exist and parse.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "[Load] viper.ReadInConfig")
		}
	}

	cfg := &Config{
		AppName:         v.GetString("app_name"),
		BaseURL:         v.GetString("base_url"),
		TokenPath:       v.GetString("token_path"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		PageSize:        v.GetInt("page_size"),
		RefreshInterval: v.GetDuration("refresh_interval"),
		LogLevel:        v.GetString("log_level"),
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("[Load] base_url is required")
	}
	if cfg.PageSize <= 0 {
		return nil, errors.New("[Load] page_size must be positive")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("[Load] refresh_interval must be positive")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "Price Dashboard")
	v.SetDefault("base_url", "http://localhost:8000")
	v.SetDefault("token_path", defaultTokenPath())
	v.SetDefault("request_timeout", 15*time.Second)
	v.SetDefault("page_size", 20)
	v.SetDefault("refresh_interval", 30*time.Second)
	v.SetDefault("log_level", "info")
}

// defaultTokenPath places the token under the user's home directory, falling
// back to the working directory when the home cannot be resolved.
func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".price-dashboard-token"
	}
	return filepath.Join(home, ".price-dashboard", "token")
}
