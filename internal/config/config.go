package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is missing or fields are unset.
const (
	DefaultAPIBaseURL = "http://localhost:8000"

	DefaultTableRefreshSeconds     = 30
	DefaultHistoryRefreshSeconds   = 30
	DefaultDiversityRefreshSeconds = 60
	DefaultTablePageSize           = 10
	DefaultOtherThresholdPct       = 2.0
	DefaultHistoryCacheTTLMinutes  = 5
	DefaultHistoryMaxPoints        = 300
)

// EnvAPIBaseURL overrides the configured base URL when set.
const EnvAPIBaseURL = "FOLIO_API_URL"

// Config holds the CLI configuration.
type Config struct {
	APIBaseURL string `yaml:"api_base_url"`

	TableRefreshSeconds     int     `yaml:"table_refresh_seconds"`
	HistoryRefreshSeconds   int     `yaml:"history_refresh_seconds"`
	DiversityRefreshSeconds int     `yaml:"diversity_refresh_seconds"`
	TablePageSize           int     `yaml:"table_page_size"`
	OtherThresholdPct       float64 `yaml:"other_threshold_pct"`
	HistoryCacheTTLMinutes  int     `yaml:"history_cache_ttl_minutes"`
	HistoryMaxPoints        int     `yaml:"history_max_points"`

	Profile Profile `yaml:"profile"`
}

// Profile holds the static content shown on the dashboard profile card.
type Profile struct {
	Name     string `yaml:"name,omitempty"`
	Title    string `yaml:"title,omitempty"`
	Bio      string `yaml:"bio,omitempty"`
	Email    string `yaml:"email,omitempty"`
	GitHub   string `yaml:"github,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		APIBaseURL:              DefaultAPIBaseURL,
		TableRefreshSeconds:     DefaultTableRefreshSeconds,
		HistoryRefreshSeconds:   DefaultHistoryRefreshSeconds,
		DiversityRefreshSeconds: DefaultDiversityRefreshSeconds,
		TablePageSize:           DefaultTablePageSize,
		OtherThresholdPct:       DefaultOtherThresholdPct,
		HistoryCacheTTLMinutes:  DefaultHistoryCacheTTLMinutes,
		HistoryMaxPoints:        DefaultHistoryMaxPoints,
	}
}

// ConfigDir returns the directory holding folio's config, cache and logs.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/folio.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "folio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "folio")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// CacheDir returns the directory used for cached history series.
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// LogPath returns the path of the debug log file.
func LogPath() string {
	return filepath.Join(ConfigDir(), "folio.log")
}

// Load reads the config file at the given path. A missing file is not an
// error: defaults are returned. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	fillDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// Save writes the config file, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// TableRefresh returns the table poll interval as a duration.
func (c *Config) TableRefresh() time.Duration {
	return time.Duration(c.TableRefreshSeconds) * time.Second
}

// HistoryRefresh returns the history poll interval as a duration.
func (c *Config) HistoryRefresh() time.Duration {
	return time.Duration(c.HistoryRefreshSeconds) * time.Second
}

// DiversityRefresh returns the diversity poll interval as a duration.
func (c *Config) DiversityRefresh() time.Duration {
	return time.Duration(c.DiversityRefreshSeconds) * time.Second
}

// HistoryCacheTTL returns the staleness cutoff for cached history series.
func (c *Config) HistoryCacheTTL() time.Duration {
	return time.Duration(c.HistoryCacheTTLMinutes) * time.Minute
}

func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = def.APIBaseURL
	}
	if cfg.TableRefreshSeconds <= 0 {
		cfg.TableRefreshSeconds = def.TableRefreshSeconds
	}
	if cfg.HistoryRefreshSeconds <= 0 {
		cfg.HistoryRefreshSeconds = def.HistoryRefreshSeconds
	}
	if cfg.DiversityRefreshSeconds <= 0 {
		cfg.DiversityRefreshSeconds = def.DiversityRefreshSeconds
	}
	if cfg.TablePageSize <= 0 {
		cfg.TablePageSize = def.TablePageSize
	}
	if cfg.OtherThresholdPct <= 0 {
		cfg.OtherThresholdPct = def.OtherThresholdPct
	}
	if cfg.HistoryCacheTTLMinutes <= 0 {
		cfg.HistoryCacheTTLMinutes = def.HistoryCacheTTLMinutes
	}
	if cfg.HistoryMaxPoints <= 0 {
		cfg.HistoryMaxPoints = def.HistoryMaxPoints
	}
}

func applyEnv(cfg *Config) {
	if url := os.Getenv(EnvAPIBaseURL); url != "" {
		cfg.APIBaseURL = url
	}
}
