package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Namespace     string            `toml:"namespace"`
	SaveDirectory string            `toml:"save_directory"`
	Scene         SceneConfig       `toml:"scene"`
	Interaction   InteractionConfig `toml:"interaction"`
	Block         BlockConfig       `toml:"block"`
	Log           LogConfig         `toml:"log"`
}

type SceneConfig struct {
	MinScale      float64 `toml:"min_scale"`
	MaxScale      float64 `toml:"max_scale"`
	ZoomIntensity float64 `toml:"zoom_intensity"`
}

type InteractionConfig struct {
	ThrottleMs int `toml:"throttle_ms"`
}

type BlockConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	HandleSize float64 `toml:"handle_size"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

func DefaultConfig() *Config {
	return &Config{
		Namespace: defaultNamespace,
		Scene: SceneConfig{
			MinScale:      defaultMinScale,
			MaxScale:      defaultMaxScale,
			ZoomIntensity: defaultZoomIntensity,
		},
		Interaction: InteractionConfig{ThrottleMs: int(defaultThrottle / time.Millisecond)},
		Block: BlockConfig{
			Width:      defaultBlockWidth,
			Height:     defaultBlockHeight,
			HandleSize: defaultHandleSize,
		},
		Log: LogConfig{Level: "info"},
	}
}

func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "blockflow")
}

func defaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func preferencesPath() string {
	return filepath.Join(configDir(), "prefs.toml")
}

// loadConfig reads path (or the default location when empty). A missing file
// yields the defaults; a malformed one is an error.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = defaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.SaveDirectory != "" {
		cfg.SaveDirectory = expandPath(cfg.SaveDirectory)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	return cfg, cfg.validate()
}

func expandPath(value string) string {
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if abs, err := filepath.Abs(value); err == nil {
			value = abs
		}
	}
	return value
}

func (c *Config) validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("config: namespace must not be empty")
	}
	if c.Scene.MinScale <= 0 || c.Scene.MaxScale < c.Scene.MinScale {
		return fmt.Errorf("config: invalid scale bounds [%g, %g]", c.Scene.MinScale, c.Scene.MaxScale)
	}
	if c.Scene.ZoomIntensity <= 0 {
		return fmt.Errorf("config: zoom_intensity must be positive")
	}
	if c.Interaction.ThrottleMs < 0 {
		return fmt.Errorf("config: throttle_ms must not be negative")
	}
	if c.Block.Width <= 0 || c.Block.Height <= 0 || c.Block.HandleSize < 0 || c.Block.HandleSize > c.Block.Height {
		return fmt.Errorf("config: invalid block size %gx%g (handle %g)", c.Block.Width, c.Block.Height, c.Block.HandleSize)
	}
	return nil
}

func (c *Config) EditorOptions(log *slog.Logger) EditorOptions {
	return EditorOptions{
		Layout: Layout{
			BlockWidth:  c.Block.Width,
			BlockHeight: c.Block.Height,
			HandleSize:  c.Block.HandleSize,
		},
		Zoom: ZoomConfig{
			MinScale:  c.Scene.MinScale,
			MaxScale:  c.Scene.MaxScale,
			Intensity: c.Scene.ZoomIntensity,
		},
		Throttle: time.Duration(c.Interaction.ThrottleMs) * time.Millisecond,
		Logger:   log,
	}
}

func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0o755)
	return filepath.Join(c.SaveDirectory, filename)
}
