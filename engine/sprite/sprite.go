package sprite

import "github.com/Carmen-Shannon/oxy-sprite/common"

// Texture is the view of a GPU texture the sprite pipeline needs: a stable identity used as the
// bind group cache key, plus its pixel dimensions for UV normalization.
// The pipeline assumes a texture's identity and contents never change while it is in use.
type Texture interface {
	// ID returns a process-unique identifier for the texture.
	//
	// Returns:
	//   - uint64: the texture identity
	ID() uint64

	// Width returns the texture width in pixels.
	//
	// Returns:
	//   - uint32: the width in pixels
	Width() uint32

	// Height returns the texture height in pixels.
	//
	// Returns:
	//   - uint32: the height in pixels
	Height() uint32
}

// Sprite is a renderable textured quad. Sprites are owned by the application; the pipeline only
// reads them during the frame they are submitted in and never keeps a reference afterwards.
// All fields may be mutated freely between frames.
type Sprite struct {
	// Texture is the source texture. Sprites sharing a Texture ID are batched together.
	Texture Texture

	// Position is the world-space position of the sprite's top-left corner before rotation.
	Position common.Vec2

	// Size is the sprite's width and height in world units.
	Size common.Vec2

	// Frame is the source rectangle within Texture, in pixels.
	Frame common.Rect

	// Rotation is the rotation in radians applied about Origin.
	Rotation float32

	// Origin is the rotation pivot normalized to the sprite's bounds; (0,0) is the top-left
	// corner and (0.5,0.5) the center.
	Origin common.Vec2

	// Color is the RGB tint multiplied with the sampled texel.
	Color [3]float32

	// Alpha is the opacity multiplied with the sampled texel alpha.
	Alpha float32

	// Z is a draw-order hint. It is consumed by the caller's sort (see scene.Scene), never by
	// the batcher.
	Z float32
}

// NewSprite creates a sprite that draws the whole texture at its native size with a white,
// fully opaque tint, then applies the given options.
//
// Parameters:
//   - tex: the texture to draw
//   - options: functional options to configure the sprite
//
// Returns:
//   - *Sprite: the new sprite
func NewSprite(tex Texture, options ...SpriteBuilderOption) *Sprite {
	s := &Sprite{
		Texture: tex,
		Color:   [3]float32{1, 1, 1},
		Alpha:   1,
	}
	if tex != nil {
		w, h := float32(tex.Width()), float32(tex.Height())
		s.Size = common.Vec2{X: w, Y: h}
		s.Frame = common.Rect{Width: w, Height: h}
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Bounds returns the unrotated world-space rectangle covered by the sprite.
//
// Returns:
//   - common.Rect: the sprite's axis-aligned bounds before rotation
func (s *Sprite) Bounds() common.Rect {
	return common.Rect{X: s.Position.X, Y: s.Position.Y, Width: s.Size.X, Height: s.Size.Y}
}
