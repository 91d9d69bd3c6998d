// Package config holds the startup settings of the drawing window.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"LayerPad/internal/state"
)

// EnvPath names the environment variable consulted for a config file when
// none is passed on the command line.
const EnvPath = "LAYERPAD_CONFIG"

// Config is read once at startup and passed down explicitly.
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Scale is the device pixel ratio. Zero means "use the window's".
	Scale float32 `toml:"scale"`

	Background  string `toml:"background"`
	Stroke      string `toml:"stroke"`
	GridColor   string `toml:"grid_color"`
	ShowGrid    bool   `toml:"show_grid"`
	Transparent bool   `toml:"transparent"`

	LegacyGreenShift bool   `toml:"legacy_green_shift"`
	ExportName       string `toml:"export_name"`
	Debug            bool   `toml:"debug"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Width:      480,
		Height:     360,
		Background: "#000000",
		Stroke:     "#00ff00",
		GridColor:  "#ffffff",
		ShowGrid:   true,
		ExportName: "download.png",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		log.Printf("[CONFIG] ignoring unknown keys in %s: %v", path, keys)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromArgs picks the config path from args[1] or the environment.
func FromArgs(args []string) (Config, error) {
	path := os.Getenv(EnvPath)
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		path = args[1]
	}
	return Load(path)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale %v must not be negative", c.Scale)
	}
	if c.ExportName == "" {
		return errors.New("export_name must not be empty")
	}
	for name, v := range map[string]string{
		"background": c.Background,
		"stroke":     c.Stroke,
		"grid_color": c.GridColor,
	} {
		if _, err := state.ParseHex(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Colors returns the parsed background, stroke and grid colors. It must
// only be called on a validated Config.
func (c Config) Colors() (bg, stroke, grid state.RGB) {
	bg, _ = state.ParseHex(c.Background)
	stroke, _ = state.ParseHex(c.Stroke)
	grid, _ = state.ParseHex(c.GridColor)
	return bg, stroke, grid
}
