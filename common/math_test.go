package common

import (
	"image"
	"image/color"
	"math"
	"testing"
)

const eps = 1e-5

func transform(m []float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestOrthoPixelSpace(t *testing.T) {
	var m [16]float32
	Ortho(m[:], 0, 800, 600, 0, -1, 1)

	tests := []struct {
		name   string
		x, y   float32
		cx, cy float32
	}{
		{"top-left", 0, 0, -1, 1},
		{"bottom-right", 800, 600, 1, -1},
		{"center", 400, 300, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := transform(m[:], tt.x, tt.y)
			if !near(cx, tt.cx) || !near(cy, tt.cy) {
				t.Errorf("Ortho(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
		})
	}

	// z = 0 lands in the middle of WebGPU's [0, 1] depth range.
	if z := m[14]; !near(z, 0.5) {
		t.Errorf("depth of z=0 = %v, want 0.5", z)
	}
}

func TestView2D(t *testing.T) {
	var m [16]float32

	View2D(m[:], 100, 50, 0, 1)
	if x, y := transform(m[:], 100, 50); !near(x, 0) || !near(y, 0) {
		t.Errorf("camera position should map to origin, got (%v,%v)", x, y)
	}

	View2D(m[:], 0, 0, 0, 2)
	if x, y := transform(m[:], 3, 4); !near(x, 6) || !near(y, 8) {
		t.Errorf("zoom 2 of (3,4) = (%v,%v), want (6,8)", x, y)
	}

	View2D(m[:], 0, 0, math.Pi/2, 1)
	if x, y := transform(m[:], 1, 0); !near(x, 0) || !near(y, -1) {
		t.Errorf("rotation by pi/2 of (1,0) = (%v,%v), want (0,-1)", x, y)
	}
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Errorf("I*M = %v, want %v", out, m)
	}
}

func TestSliceToBytes(t *testing.T) {
	if got := SliceToBytes([]float32(nil)); got != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", got)
	}
	if got := len(SliceToBytes([]uint16{1, 2, 3})); got != 6 {
		t.Errorf("len = %d, want 6", got)
	}
	if got := len(SliceToBytes(make([]float32, 8))); got != 32 {
		t.Errorf("len = %d, want 32", got)
	}
}

func TestClampAndCoalesce(t *testing.T) {
	if got := Clamp(15, 1, 10); got != 10 {
		t.Errorf("Clamp high = %d", got)
	}
	if got := Clamp(-3, 1, 10); got != 1 {
		t.Errorf("Clamp low = %d", got)
	}
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("Coalesce = %d, want 3", got)
	}
}

func TestNewTextureStagingData(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 6, 5))
	src.Set(2, 3, color.NRGBA{R: 255, A: 255})

	got := NewTextureStagingData(src)
	if got.Width != 4 || got.Height != 2 {
		t.Fatalf("size = %dx%d, want 4x2", got.Width, got.Height)
	}
	if len(got.Pixels) != 4*2*4 {
		t.Fatalf("len(Pixels) = %d, want 32", len(got.Pixels))
	}
	if got.Pixels[0] != 255 || got.Pixels[3] != 255 {
		t.Errorf("first pixel = %v, want opaque red", got.Pixels[:4])
	}
}
