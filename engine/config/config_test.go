package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-sprite/common"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.yaml")
	doc := `
window:
  title: bunnies
renderer:
  present_mode: uncapped
  msaa: 1
  clear_color: "#ff8000"
  max_sprites_per_batch: 500
engine:
  frame_limit: 144
scene:
  workers: 3
demo:
  sprites: 5000
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Title != "bunnies" || cfg.Window.Width != 1280 {
		t.Errorf("window = %+v, want title overridden and default width kept", cfg.Window)
	}
	if m, _ := cfg.Renderer.PresentModeValue(); m != renderer.PresentModeUncapped {
		t.Errorf("present mode = %v", m)
	}
	if m, _ := cfg.Renderer.MSAAValue(); m != renderer.MSAAOff {
		t.Errorf("msaa = %v", m)
	}
	c, _ := cfg.Renderer.ClearColorValue()
	if c != (common.Color{R: 1, G: 128.0 / 255, B: 0, A: 1}) {
		t.Errorf("clear color = %+v", c)
	}
	if cfg.Renderer.MaxSpritesPerBatch != 500 || cfg.Engine.FrameLimit != 144 || cfg.Engine.TickRate != 60 {
		t.Errorf("renderer/engine = %+v / %+v", cfg.Renderer, cfg.Engine)
	}
	if cfg.Scene.Workers != 3 || cfg.Scene.ChunkSize != 1024 || cfg.Demo.Sprites != 5000 || cfg.Demo.Textures != 4 {
		t.Errorf("scene/demo = %+v / %+v", cfg.Scene, cfg.Demo)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file: want error")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"present mode", "renderer: {present_mode: mailbox}", "present_mode"},
		{"msaa", "renderer: {msaa: 2}", "msaa"},
		{"color name", "renderer: {clear_color: notacolor}", "clear_color"},
		{"color hex", "renderer: {clear_color: '#12345'}", "clear_color"},
		{"batch size", "renderer: {max_sprites_per_batch: 20000}", "max_sprites_per_batch"},
		{"window", "window: {width: 0}", "window size"},
		{"tick rate", "engine: {tick_rate: -1}", "tick_rate"},
		{"chunk size", "scene: {chunk_size: 0}", "chunk_size"},
		{"textures", "demo: {textures: 0}", "demo textures"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := Parse([]byte("window: [")); err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Errorf("malformed YAML err = %v, want a parse error", err)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Renderer.MSAA = 3
	cfg.Engine.TickRate = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "msaa") || !strings.Contains(err.Error(), "tick_rate") {
		t.Errorf("Validate() = %v, want both msaa and tick_rate reported", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want common.Color
	}{
		{"black", common.Color{A: 1}},
		{"White", common.Color{R: 1, G: 1, B: 1, A: 1}},
		{" #0000FF ", common.Color{B: 1, A: 1}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Error("ParseColor(#zzzzzz): want error")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Demo.Sprites = 42

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "present_mode: vsync") {
		t.Errorf("encoded config missing snake_case keys:\n%s", buf.String())
	}
	got, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
