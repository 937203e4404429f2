package sprite

import "math"

// WriteQuad writes the four vertices of s into dst, which must hold at least FloatsPerSprite
// floats. Vertices are emitted top-left, top-right, bottom-right, bottom-left, each as
// x, y, u, v, r, g, b, a. Color and alpha are identical on all four vertices.
//
// When s.Rotation is non-zero every corner is rotated about the pivot
// (x + origin.x*width, y + origin.y*height). UVs are the frame rectangle normalized by the
// texture's pixel size and are not clamped.
//
// Parameters:
//   - dst: the destination slice
//   - s: the sprite to write
func WriteQuad(dst []float32, s *Sprite) {
	_ = dst[FloatsPerSprite-1]

	x0, y0 := s.Position.X, s.Position.Y
	x1, y1 := x0+s.Size.X, y0+s.Size.Y
	corners := [VerticesPerSprite][2]float32{
		{x0, y0},
		{x1, y0},
		{x1, y1},
		{x0, y1},
	}

	if s.Rotation != 0 {
		px := x0 + s.Origin.X*s.Size.X
		py := y0 + s.Origin.Y*s.Size.Y
		sin64, cos64 := math.Sincos(float64(s.Rotation))
		sin, cos := float32(sin64), float32(cos64)
		for i := range corners {
			dx, dy := corners[i][0]-px, corners[i][1]-py
			corners[i][0] = px + dx*cos - dy*sin
			corners[i][1] = py + dx*sin + dy*cos
		}
	}

	var u0, v0, u1, v1 float32
	if s.Texture != nil {
		tw, th := float32(s.Texture.Width()), float32(s.Texture.Height())
		u0, u1 = s.Frame.X/tw, (s.Frame.X+s.Frame.Width)/tw
		v0, v1 = s.Frame.Y/th, (s.Frame.Y+s.Frame.Height)/th
	}
	uvs := [VerticesPerSprite][2]float32{
		{u0, v0},
		{u1, v0},
		{u1, v1},
		{u0, v1},
	}

	for i := range VerticesPerSprite {
		v := dst[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
		v[positionOffset], v[positionOffset+1] = corners[i][0], corners[i][1]
		v[uvOffset], v[uvOffset+1] = uvs[i][0], uvs[i][1]
		v[colorOffset] = s.Color[0]
		v[colorOffset+1] = s.Color[1]
		v[colorOffset+2] = s.Color[2]
		v[colorOffset+3] = s.Alpha
	}
}
