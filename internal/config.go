package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is used when no base URL is configured
const DefaultBaseURL = "https://api.vivahmilan.app"

const (
	// DefaultPollInterval is how often an open conversation re-syncs
	DefaultPollInterval = 5 * time.Second

	// DefaultHTTPTimeout bounds every request to the backend
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds the resolved client configuration
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	PollInterval time.Duration `yaml:"poll_interval"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	DataDir      string        `yaml:"data_dir"`
}

// LoadConfig resolves configuration from (highest priority first) flag
// overrides, VIVAH_* environment variables, an optional config.yaml in
// the data directory, and built-in defaults.
func LoadConfig(baseURLOverride, dataDirOverride string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("VIVAH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)

	dataDir := dataDirOverride
	if dataDir == "" {
		dataDir = v.GetString("data_dir")
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".vivah")
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is worth surfacing.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if baseURLOverride != "" {
		v.Set("base_url", baseURLOverride)
	}

	cfg := &Config{
		BaseURL:      normalizeBaseURL(v.GetString("base_url")),
		PollInterval: v.GetDuration("poll_interval"),
		HTTPTimeout:  v.GetDuration("http_timeout"),
		DataDir:      dataDir,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}

	return cfg, nil
}

// DatabasePath returns the location of the local app database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "vivah.db")
}

// normalizeBaseURL strips trailing slashes so paths can be joined naively
func normalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
