package scene

import (
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering. Scenes are active by default.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithSprites adds initial sprites to the scene. Nil sprites are ignored.
//
// Parameters:
//   - sprites: the sprites to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSprites(sprites ...*sprite.Sprite) SceneBuilderOption {
	return func(s *scene) {
		s.addSprites(sprites)
	}
}

// WithUpdater installs the per-sprite update behavior.
//
// Parameters:
//   - fn: the update function
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdater(fn UpdateFunc) SceneBuilderOption {
	return func(s *scene) {
		s.updater = fn
	}
}

// WithUpdateWorkers sets the number of worker goroutines Update spreads sprite chunks over.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}

// WithChunkSize sets how many sprites one update task processes. Defaults to DefaultChunkSize.
//
// Parameters:
//   - n: sprites per task (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithChunkSize(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.chunkSize = n
	}
}

// WithSpritePassOptions forwards options to the scene's sprite pass.
//
// Parameters:
//   - options: the sprite pass options
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSpritePassOptions(options ...renderer.SpritePassBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.passOptions = append(s.passOptions, options...)
	}
}
