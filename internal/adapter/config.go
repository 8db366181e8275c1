package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Player     PlayerConfig     `mapstructure:"player"`
	Thumbnails ThumbnailsConfig `mapstructure:"thumbnails"`
	UI         UIConfig         `mapstructure:"ui"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// APIConfig holds content API configuration
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`        // Content API root
	ImageURL       string        `mapstructure:"image_url"`       // Thumbnail service endpoint
	MediaURL       string        `mapstructure:"media_url"`       // Media delivery origin
	Language       string        `mapstructure:"language"`        // UI and content language
	PageSize       int           `mapstructure:"page_size"`       // Lessons per catalog fetch
	Timeout        time.Duration `mapstructure:"timeout"`         // Per-request timeout, 0 disables
	ThumbnailWidth int           `mapstructure:"thumbnail_width"` // Requested image width in pixels
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// ThumbnailsConfig controls lazy thumbnail loading
type ThumbnailsConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	Lazy       bool `mapstructure:"lazy"`        // false loads every thumbnail at once
	MarginRows int  `mapstructure:"margin_rows"` // Rows beyond the viewport loaded early
	MarginCols int  `mapstructure:"margin_cols"` // Cards beyond the viewport loaded early
}

// UIConfig holds UI configuration
type UIConfig struct {
	CardWidth int `mapstructure:"card_width"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CacheConfig holds the thumbnail cache location
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://kabbalahmedia.info/backend",
			ImageURL:       "https://kabbalahmedia.info/imaginary/thumbnail",
			MediaURL:       "https://cdn.kabbalahmedia.info",
			Language:       "pt",
			PageSize:       56,
			Timeout:        30 * time.Second,
			ThumbnailWidth: 320,
		},
		Player: PlayerConfig{
			Command: "",
			Args:    []string{},
		},
		Thumbnails: ThumbnailsConfig{
			Enabled:    true,
			Lazy:       true,
			MarginRows: 1,
			MarginCols: 2,
		},
		UI: UIConfig{
			CardWidth: 28,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aulas", "aulas.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "aulas", "aulas.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aulas")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aulas")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "aulas", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "aulas", "cache")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

// envKeyReplacer maps nested keys to env names: api.page_size -> AULAS_API_PAGE_SIZE
var envKeyReplacer = strings.NewReplacer(".", "_")

// loadConfig reads config.yaml from the given directories into the defaults
func loadConfig(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides, e.g. AULAS_API_LANGUAGE
	v.SetEnvPrefix("AULAS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	normalize(cfg)
	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override it
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.image_url", cfg.API.ImageURL)
	v.SetDefault("api.media_url", cfg.API.MediaURL)
	v.SetDefault("api.language", cfg.API.Language)
	v.SetDefault("api.page_size", cfg.API.PageSize)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.thumbnail_width", cfg.API.ThumbnailWidth)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("thumbnails.enabled", cfg.Thumbnails.Enabled)
	v.SetDefault("thumbnails.lazy", cfg.Thumbnails.Lazy)
	v.SetDefault("thumbnails.margin_rows", cfg.Thumbnails.MarginRows)
	v.SetDefault("thumbnails.margin_cols", cfg.Thumbnails.MarginCols)
	v.SetDefault("ui.card_width", cfg.UI.CardWidth)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
}

// normalize replaces out-of-range values with defaults
func normalize(cfg *Config) {
	def := DefaultConfig()
	if cfg.API.PageSize <= 0 {
		cfg.API.PageSize = def.API.PageSize
	}
	if cfg.API.Language == "" {
		cfg.API.Language = def.API.Language
	}
	if cfg.API.ThumbnailWidth <= 0 {
		cfg.API.ThumbnailWidth = def.API.ThumbnailWidth
	}
	if cfg.API.Timeout < 0 {
		cfg.API.Timeout = 0
	}
	if cfg.UI.CardWidth < 16 {
		cfg.UI.CardWidth = 16
	}
	if cfg.Thumbnails.MarginRows < 0 {
		cfg.Thumbnails.MarginRows = 0
	}
	if cfg.Thumbnails.MarginCols < 0 {
		cfg.Thumbnails.MarginCols = 0
	}
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("api.base_url", cfg.API.BaseURL)
	viper.Set("api.image_url", cfg.API.ImageURL)
	viper.Set("api.media_url", cfg.API.MediaURL)
	viper.Set("api.language", cfg.API.Language)
	viper.Set("api.page_size", cfg.API.PageSize)
	viper.Set("api.timeout", cfg.API.Timeout.String())
	viper.Set("api.thumbnail_width", cfg.API.ThumbnailWidth)

	viper.Set("player.command", cfg.Player.Command)
	viper.Set("player.args", cfg.Player.Args)

	viper.Set("thumbnails.enabled", cfg.Thumbnails.Enabled)
	viper.Set("thumbnails.lazy", cfg.Thumbnails.Lazy)
	viper.Set("thumbnails.margin_rows", cfg.Thumbnails.MarginRows)
	viper.Set("thumbnails.margin_cols", cfg.Thumbnails.MarginCols)

	viper.Set("ui.card_width", cfg.UI.CardWidth)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	viper.Set("cache.dir", cfg.Cache.Dir)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
