package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sprite/engine/camera"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sprite/engine/scene"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
)

type fakeScene struct {
	name      string
	active    bool
	cam       camera.Camera
	renders   int
	updates   int
	renderErr error
}

var _ scene.Scene = &fakeScene{}

func newFakeScene(name string, active bool) *fakeScene {
	return &fakeScene{name: name, active: active, cam: camera.NewCamera()}
}

func (s *fakeScene) Name() string                     { return s.name }
func (s *fakeScene) SetName(name string)              { s.name = name }
func (s *fakeScene) Active() bool                     { return s.active }
func (s *fakeScene) SetActive(active bool)            { s.active = active }
func (s *fakeScene) Camera() camera.Camera            { return s.cam }
func (s *fakeScene) Pass() *renderer.SpritePass       { return nil }
func (s *fakeScene) AddSprite(...*sprite.Sprite)      {}
func (s *fakeScene) RemoveSprite(*sprite.Sprite) bool { return false }
func (s *fakeScene) Sprites() []*sprite.Sprite        { return nil }
func (s *fakeScene) Len() int                         { return 0 }
func (s *fakeScene) Clear()                           {}
func (s *fakeScene) SetUpdater(scene.UpdateFunc)      {}
func (s *fakeScene) Update(float32)                   { s.updates++ }
func (s *fakeScene) Stats() renderer.FrameStats       { return renderer.FrameStats{DrawCalls: 1} }
func (s *fakeScene) Release()                         {}

func (s *fakeScene) Render() error {
	s.renders++
	return s.renderErr
}

func TestEngineRenderFrame(t *testing.T) {
	background := newFakeScene("background", false)
	world := newFakeScene("world", true)
	hud := newFakeScene("hud", true)
	e := NewEngine(WithScene(0, background), WithScene(1, hud)).(*engine)
	e.AddScene(-1, world)

	frames := 0
	e.SetRenderCallback(func(float32) { frames++ })

	if got := e.renderFrame(0.016); got != world {
		t.Fatalf("renderFrame drew %v, want the lowest-keyed active scene", got)
	}
	if world.renders != 1 || hud.renders != 0 || background.renders != 0 {
		t.Errorf("renders = world %d, hud %d, background %d", world.renders, hud.renders, background.renders)
	}
	if frames != 1 {
		t.Errorf("render callback ran %d times, want 1", frames)
	}

	world.renderErr = errors.New("lost surface")
	if got := e.renderFrame(0.016); got != world {
		t.Error("a failed frame changed the drawn scene")
	}
	if frames != 2 {
		t.Error("render callback skipped after a failed frame")
	}

	e.RemoveScene(-1)
	if got := e.renderFrame(0.016); got != hud {
		t.Errorf("after removal drew %v, want hud", got)
	}
}

func TestEngineTick(t *testing.T) {
	a, b, off := newFakeScene("a", true), newFakeScene("b", true), newFakeScene("off", false)
	e := NewEngine(WithScene(0, a), WithScene(1, b), WithScene(2, off)).(*engine)

	var got float32
	e.SetTickCallback(func(dt float32) { got = dt })
	e.tick(0.5)

	if a.updates != 1 || b.updates != 1 || off.updates != 0 {
		t.Errorf("updates = %d/%d/%d, want 1/1/0", a.updates, b.updates, off.updates)
	}
	if got != 0.5 {
		t.Errorf("tick callback dt = %v, want 0.5", got)
	}
}

func TestEngineResize(t *testing.T) {
	a := newFakeScene("a", true)
	e := NewEngine(WithScene(0, a)).(*engine)

	e.resize(1024, 768)
	if w, h := a.cam.Viewport(); w != 1024 || h != 768 {
		t.Errorf("viewport = %vx%v, want 1024x768", w, h)
	}
	e.resize(0, 0)
	if w, h := a.cam.Viewport(); w != 1024 || h != 768 {
		t.Errorf("minimized resize changed viewport to %vx%v", w, h)
	}
}

func TestEngineRates(t *testing.T) {
	e := NewEngine(WithTickRate(120), WithRenderFrameLimit(30)).(*engine)
	if e.engineTickRate != time.Second/120 {
		t.Errorf("tick rate = %v", e.engineTickRate)
	}
	if got := time.Duration(e.renderFrameLimit.Load()); got != time.Second/30 {
		t.Errorf("frame limit = %v", got)
	}

	e.SetTickRate(0)
	if e.engineTickRate != time.Second/60 {
		t.Errorf("SetTickRate(0) = %v, want 60 fps", e.engineTickRate)
	}
	e.SetRenderFrameLimit(0)
	if got := e.renderFrameLimit.Load(); got != 0 {
		t.Errorf("SetRenderFrameLimit(0) = %v, want uncapped", time.Duration(got))
	}

	scenes := e.Scenes()
	scenes[5] = newFakeScene("x", true)
	if e.Scene(5) != nil {
		t.Error("Scenes() returned the engine's own map")
	}
}

func TestEngineSettersWhileRendering(t *testing.T) {
	a := newFakeScene("a", true)
	e := NewEngine(WithScene(0, a), WithProfiling(true)).(*engine)
	if !e.profilingEnabled.Load() {
		t.Fatal("WithProfiling(true) did not enable the profiler")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			e.renderFrame(0.016)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				e.DisableProfiler()
			} else {
				e.EnableProfiler()
			}
			e.SetRenderFrameLimit(float64(30 + i%2*30))
			e.SetTickRate(120)
		}
	}()
	wg.Wait()

	if !e.profilingEnabled.Load() {
		t.Error("profiler disabled after the last EnableProfiler call")
	}
	if got := time.Duration(e.renderFrameLimit.Load()); got != time.Second/60 {
		t.Errorf("frame limit = %v, want %v", got, time.Second/60)
	}
	if a.renders != 200 {
		t.Errorf("renders = %d, want 200", a.renders)
	}
}
