package renderer

import "github.com/Carmen-Shannon/oxy-sprite/engine/sprite"

// SpritePassBuilderOption is a functional option applied to a SpritePass during NewSpritePass.
type SpritePassBuilderOption func(*SpritePass)

// WithMaxSpritesPerBatch lowers the number of sprites drawn per call. Values outside
// (0, sprite.MaxSpritesPerBatch] are clamped to sprite.MaxSpritesPerBatch.
//
// Parameters:
//   - n: the per-batch sprite limit
//
// Returns:
//   - SpritePassBuilderOption: option function to apply
func WithMaxSpritesPerBatch(n int) SpritePassBuilderOption {
	return func(p *SpritePass) {
		if n <= 0 || n > sprite.MaxSpritesPerBatch {
			n = sprite.MaxSpritesPerBatch
		}
		p.maxSprites = n
	}
}

// WithLabel sets the label used for the pass's pipeline key and GPU resource names.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - SpritePassBuilderOption: option function to apply
func WithLabel(label string) SpritePassBuilderOption {
	return func(p *SpritePass) {
		p.label = label
	}
}
