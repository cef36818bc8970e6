package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/plus3/ooftn2d/graphics"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of a pipeline and its window.
type Config struct {
	Window     WindowConfig   `yaml:"window"`
	TPS        int            `yaml:"tps"`
	LogLevel   string         `yaml:"log_level"`
	ClearColor graphics.Color `yaml:"clear_color"`
	// AssetRoot is the directory asset paths are relative to. Empty means
	// the directory of the scene being loaded.
	AssetRoot  string         `yaml:"asset_root"`
	HotReload  bool           `yaml:"hot_reload"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultConfig returns the settings used for any key a config file omits.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "ooftn2d",
			Width:  1280,
			Height: 720,
		},
		TPS:        60,
		LogLevel:   "info",
		ClearColor: graphics.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
	}
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// LoadSceneConfig returns the config for viewing the scene at scenePath:
// the file at configPath, or the defaults when configPath is empty. An
// unset AssetRoot becomes the scene's directory.
func LoadSceneConfig(configPath, scenePath string) (Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			return Config{}, err
		}
	}
	if cfg.AssetRoot == "" {
		cfg.AssetRoot = filepath.Dir(scenePath)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn" or "error").
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
