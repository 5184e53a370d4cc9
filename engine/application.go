package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "anima2d.toml"

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX int `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY int `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth int `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight int `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name       string        `toml:"name"`
	Fullscreen bool          `toml:"fullscreen"`
	VSync      bool          `toml:"vsync"`
	LogLevel   core.LogLevel `toml:"log_level"`
	// Directory watched for shader overrides.
	AssetsDir string `toml:"assets_dir"`
	// Batch capacity in quads; see renderer.WithMaxSprites.
	MaxSprites int        `toml:"max_sprites"`
	ClearColor [4]float32 `toml:"clear_color"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  800,
		StartHeight: 600,
		Name:        "OpenGL",
		VSync:       true,
		LogLevel:    core.DebugLevel,
		AssetsDir:   "assets",
		MaxSprites:  renderer.DefaultMaxSprites,
		ClearColor:  [4]float32{0.1, 0.1, 0.12, 1},
	}
}

// LoadApplicationConfig overlays the TOML file at path on the defaults. A
// missing file is not an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth <= 0 || c.StartHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.StartWidth, c.StartHeight)
	}
	if c.MaxSprites <= 0 {
		return fmt.Errorf("max_sprites %d must be positive", c.MaxSprites)
	}
	return nil
}

func (c *ApplicationConfig) clearColor() renderer.Color {
	return renderer.RGBA(c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3])
}
