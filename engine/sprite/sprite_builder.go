package sprite

import "github.com/Carmen-Shannon/oxy-sprite/common"

// SpriteBuilderOption is a functional option applied to a Sprite during NewSprite.
type SpriteBuilderOption func(*Sprite)

// WithPosition sets the world-space position of the sprite's top-left corner.
//
// Parameters:
//   - x, y: the position in world units
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithPosition(x, y float32) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Position = common.Vec2{X: x, Y: y}
	}
}

// WithSize sets the sprite's width and height in world units.
//
// Parameters:
//   - width, height: the size in world units
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithSize(width, height float32) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Size = common.Vec2{X: width, Y: height}
	}
}

// WithFrame selects a sub-rectangle of the texture, in pixels, for atlas or spritesheet use.
//
// Parameters:
//   - frame: the source rectangle
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithFrame(frame common.Rect) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Frame = frame
	}
}

// WithRotation sets the rotation in radians about the sprite's origin.
//
// Parameters:
//   - radians: the rotation angle
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithRotation(radians float32) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Rotation = radians
	}
}

// WithOrigin sets the normalized rotation pivot.
//
// Parameters:
//   - x, y: the pivot in [0,1] relative to the sprite bounds
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithOrigin(x, y float32) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Origin = common.Vec2{X: x, Y: y}
	}
}

// WithColor sets the RGB tint.
//
// Parameters:
//   - r, g, b: tint components in [0,1]
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithColor(r, g, b float32) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Color = [3]float32{r, g, b}
	}
}

// WithAlpha sets the opacity.
//
// Parameters:
//   - alpha: opacity in [0,1]
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithAlpha(alpha float32) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Alpha = alpha
	}
}

// WithZ sets the draw-order hint used by the caller's sort.
//
// Parameters:
//   - z: the z-order value (lower draws first)
//
// Returns:
//   - SpriteBuilderOption: option function to apply
func WithZ(z float32) SpriteBuilderOption {
	return func(s *Sprite) {
		s.Z = z
	}
}
