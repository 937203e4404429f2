package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestWindowOptions(t *testing.T) {
	w := &engineWindow{initialWidth: 1280, initialHeight: 720, resizable: true}
	for _, opt := range []WindowBuilderOption{
		WithTitle("sprites"),
		WithSize(640, 0),
		WithSizeLimits(100, 80, 0, 1000),
		WithResizable(false),
	} {
		opt(w)
	}

	if w.title != "sprites" || w.resizable {
		t.Errorf("title/resizable = %q/%v", w.title, w.resizable)
	}
	if w.initialWidth != 640 || w.initialHeight != 720 {
		t.Errorf("initial size = %dx%d, want 640x720", w.initialWidth, w.initialHeight)
	}
	if w.minWidth != 100 || w.minHeight != 80 || w.maxWidth != 0 || w.maxHeight != 1000 {
		t.Errorf("limits = %d %d %d %d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}

	w.setSize(300, 200)
	if w.Width() != 300 || w.Height() != 200 {
		t.Errorf("size = %dx%d, want 300x200", w.Width(), w.Height())
	}
}

func TestSizeLimit(t *testing.T) {
	if got := sizeLimit(0); got != glfw.DontCare {
		t.Errorf("sizeLimit(0) = %d, want DontCare", got)
	}
	if got := sizeLimit(-5); got != glfw.DontCare {
		t.Errorf("sizeLimit(-5) = %d, want DontCare", got)
	}
	if got := sizeLimit(640); got != 640 {
		t.Errorf("sizeLimit(640) = %d, want 640", got)
	}
}

func TestRequestCloseUninitialized(t *testing.T) {
	w := &engineWindow{}
	w.RequestClose()
	if w.IsRunning() {
		t.Error("uninitialized window reports running")
	}
}
