package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-sprite/common"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config is the file configuration of a sprite application. Fields omitted from a file keep
// their Default values.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Engine   EngineConfig   `yaml:"engine"`
	Scene    SceneConfig    `yaml:"scene"`
	Demo     DemoConfig     `yaml:"demo"`
}

// WindowConfig sizes and titles the application window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig selects the surface and sprite batching settings of the renderer.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string `yaml:"present_mode"`
	// MSAA is the sample count: 1, 4, 8 or 16.
	MSAA int `yaml:"msaa"`
	// ClearColor is a CSS color name or #rrggbb.
	ClearColor    string `yaml:"clear_color"`
	ForceSoftware bool   `yaml:"force_software"`
	// MaxSpritesPerBatch lowers the batch size; 0 keeps sprite.MaxSpritesPerBatch.
	MaxSpritesPerBatch int `yaml:"max_sprites_per_batch"`
}

// EngineConfig sets the engine tick rate, render frame cap and profiling.
type EngineConfig struct {
	TickRate float64 `yaml:"tick_rate"`
	// FrameLimit caps the render loop in frames per second; 0 is uncapped.
	FrameLimit float64 `yaml:"frame_limit"`
	Profiling  bool    `yaml:"profiling"`
}

// SceneConfig tunes the parallel sprite update of each scene.
type SceneConfig struct {
	// Workers is the update worker count; 0 picks one per CPU minus one.
	Workers   int `yaml:"workers"`
	ChunkSize int `yaml:"chunk_size"`
}

// DemoConfig sizes the sprite demo workload.
type DemoConfig struct {
	Sprites  int `yaml:"sprites"`
	Textures int `yaml:"textures"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-sprite",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			PresentMode: renderer.PresentModeVSync.String(),
			MSAA:        int(renderer.MSAA4x),
			ClearColor:  "midnightblue",
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Scene: SceneConfig{
			ChunkSize: 1024,
		},
		Demo: DemoConfig{
			Sprites:  20000,
			Textures: 4,
		},
	}
}

// Load reads a YAML configuration file over the defaults and validates the result.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: a parse or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes the configuration as YAML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: an encoding error
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close config encoder: %w", err)
	}
	return nil
}

// Validate reports every invalid field, joined and wrapped in ErrInvalidConfig.
//
// Returns:
//   - error: nil if the configuration is valid
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)

	if _, err := c.Renderer.PresentModeValue(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Renderer.MSAAValue(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Renderer.ClearColorValue(); err != nil {
		errs = append(errs, err)
	}
	check(c.Renderer.MaxSpritesPerBatch >= 0 && c.Renderer.MaxSpritesPerBatch <= sprite.MaxSpritesPerBatch,
		"max_sprites_per_batch %d must be in [0, %d]", c.Renderer.MaxSpritesPerBatch, sprite.MaxSpritesPerBatch)

	check(c.Engine.TickRate > 0, "tick_rate %v must be positive", c.Engine.TickRate)
	check(c.Engine.FrameLimit >= 0, "frame_limit %v must not be negative", c.Engine.FrameLimit)

	check(c.Scene.Workers >= 0, "workers %d must not be negative", c.Scene.Workers)
	check(c.Scene.ChunkSize > 0, "chunk_size %d must be positive", c.Scene.ChunkSize)

	check(c.Demo.Sprites >= 0, "demo sprites %d must not be negative", c.Demo.Sprites)
	check(c.Demo.Textures > 0, "demo textures %d must be positive", c.Demo.Textures)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// PresentModeValue converts the present mode name.
//
// Returns:
//   - renderer.PresentMode: the present mode
//   - error: an error for an unknown name
func (r RendererConfig) PresentModeValue() (renderer.PresentMode, error) {
	switch strings.ToLower(r.PresentMode) {
	case renderer.PresentModeVSync.String():
		return renderer.PresentModeVSync, nil
	case renderer.PresentModeUncapped.String():
		return renderer.PresentModeUncapped, nil
	}
	return 0, fmt.Errorf("present_mode %q must be vsync or uncapped", r.PresentMode)
}

// MSAAValue converts the MSAA sample count.
//
// Returns:
//   - renderer.MSAASampleCount: the sample count
//   - error: an error for an unsupported count
func (r RendererConfig) MSAAValue() (renderer.MSAASampleCount, error) {
	switch m := renderer.MSAASampleCount(r.MSAA); m {
	case renderer.MSAAOff, renderer.MSAA4x, renderer.MSAA8x, renderer.MSAA16x:
		return m, nil
	}
	return 0, fmt.Errorf("msaa %d must be 1, 4, 8 or 16", r.MSAA)
}

// ClearColorValue parses the clear color.
//
// Returns:
//   - common.Color: the color
//   - error: an error for an unknown name or malformed hex value
func (r RendererConfig) ClearColorValue() (common.Color, error) {
	return ParseColor(r.ClearColor)
}

// ParseColor parses a CSS color name (see golang.org/x/image/colornames) or a #rrggbb hex value
// into an opaque color.
//
// Parameters:
//   - s: the color text
//
// Returns:
//   - common.Color: the color with components in [0, 1]
//   - error: an error for an unknown name or malformed hex value
func ParseColor(s string) (common.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return common.Color{}, fmt.Errorf("clear_color %q must be #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return common.Color{}, fmt.Errorf("clear_color %q: %w", s, err)
		}
		return common.Color{
			R: float64(v>>16&0xff) / 255,
			G: float64(v>>8&0xff) / 255,
			B: float64(v&0xff) / 255,
			A: 1,
		}, nil
	}

	c, ok := colornames.Map[s]
	if !ok {
		return common.Color{}, fmt.Errorf("clear_color %q is not a known color name", s)
	}
	return common.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}, nil
}
