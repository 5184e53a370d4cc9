package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

func TestLoadApplicationConfig_MissingFile(t *testing.T) {
	cfg, err := LoadApplicationConfig(filepath.Join(t.TempDir(), DefaultConfigFile))
	if err != nil {
		t.Fatalf("LoadApplicationConfig() error = %v", err)
	}
	want := DefaultApplicationConfig()
	if *cfg != *want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
	if cfg.StartWidth != 800 || cfg.StartHeight != 600 || cfg.Name != "OpenGL" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadApplicationConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	data := `
name = "shapes"
start_width = 1024
start_height = 768
fullscreen = true
log_level = "warn"
max_sprites = 64
clear_color = [0.0, 0.5, 1.0, 1.0]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatalf("LoadApplicationConfig() error = %v", err)
	}
	if cfg.Name != "shapes" || cfg.StartWidth != 1024 || cfg.StartHeight != 768 || !cfg.Fullscreen {
		t.Errorf("window fields not applied: %+v", cfg)
	}
	if cfg.LogLevel != core.WarnLevel {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.MaxSprites != 64 {
		t.Errorf("MaxSprites = %d, want 64", cfg.MaxSprites)
	}
	// untouched keys keep their defaults
	if !cfg.VSync || cfg.AssetsDir != "assets" || cfg.StartPosX != 100 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if got := cfg.clearColor(); got != (renderer.Color{R: 0, G: 0.5, B: 1, A: 1}) {
		t.Errorf("clearColor() = %+v", got)
	}
}

func TestLoadApplicationConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "name = "},
		{"bad level", `log_level = "loud"`},
		{"zero width", "start_width = 0"},
		{"zero sprites", "max_sprites = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFile)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadApplicationConfig(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
