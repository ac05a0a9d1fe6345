package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CURSORFX_LOGLEVEL or
// CURSORFX_VIEWPORT_WIDTH.
const EnvPrefix = "CURSORFX"

// ViewportConfig is the window size used when a script does not set one.
type ViewportConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// Config holds the replay tool settings.
type Config struct {
	LogLevel  string         `json:"logLevel" mapstructure:"logLevel"`
	LogFormat string         `json:"logFormat" mapstructure:"logFormat"`
	Viewport  ViewportConfig `json:"viewport" mapstructure:"viewport"`
	// Track lists classes tracked in addition to the script's own.
	Track []string `json:"track" mapstructure:"track"`
	// Frame overrides the script's frame duration in milliseconds when > 0.
	Frame       float64 `json:"frame" mapstructure:"frame"`
	MaxFrames   int     `json:"maxFrames" mapstructure:"maxFrames"`
	SnapshotDir string  `json:"snapshotDir" mapstructure:"snapshotDir"`
	Debug       bool    `json:"debug" mapstructure:"debug"`
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)
	v.SetDefault("track", []string{})
	v.SetDefault("frame", 0)
	v.SetDefault("maxFrames", 100000)
	v.SetDefault("snapshotDir", "")
	v.SetDefault("debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (YAML or JSON, by extension) into v,
// if path is not empty, and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %vx%v", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.MaxFrames <= 0 {
		return nil, fmt.Errorf("maxFrames must be positive, got %d", cfg.MaxFrames)
	}
	return &cfg, nil
}
