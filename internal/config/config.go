// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Country         string `toml:"country"`
	UtellyBase      string `toml:"utelly_base"`
	WatchmodeBase   string `toml:"watchmode_base"`
	WatchmodeAPIKey string `toml:"watchmode_api_key"`
	ScrapeBase      string `toml:"scrape_base"`
	ScrapeFallback  bool   `toml:"scrape_fallback"`
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
	Browser         string `toml:"browser"`
	Debug           bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Country:         "us",
		UtellyBase:      "https://utelly-tv-shows-and-movies-availability-v1.p.rapidapi.com",
		WatchmodeBase:   "https://api.watchmode.com/v1",
		ScrapeBase:      "justwatch.com",
		ScrapeFallback:  true,
		CacheTTLMinutes: 30,
		Debug:           false,
	}
}

var countryPattern = regexp.MustCompile(`^[a-z]{2}$`)

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if !countryPattern.MatchString(strings.ToLower(c.Country)) {
		return fmt.Errorf("country must be a two-letter code, got %q", c.Country)
	}
	if c.UtellyBase == "" && c.WatchmodeBase == "" {
		return fmt.Errorf("at least one provider base URL must be set")
	}
	if c.CacheTTLMinutes <= 0 {
		return fmt.Errorf("cache_ttl_minutes must be positive, got %d", c.CacheTTLMinutes)
	}
	return nil
}

// CacheTTL returns the resolution cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "whereto"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "whereto"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StorePath returns the path to the sqlite store holding the user profile
// and the resolution cache.
func StorePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "whereto", "whereto.db"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Country = strings.ToLower(cfg.Country)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
