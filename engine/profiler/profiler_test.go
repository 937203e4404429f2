package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer"
)

func TestProfilerTick(t *testing.T) {
	clock := time.Unix(0, 0)
	p := NewProfiler(WithInterval(time.Second), WithClock(func() time.Time { return clock }))

	frame := func(sprites, draws int) renderer.FrameStats {
		return renderer.FrameStats{Sprites: sprites, DrawCalls: draws, Batches: draws, PooledBuffers: 3, CachedBindGroups: 2}
	}

	for i := range 3 {
		clock = clock.Add(250 * time.Millisecond)
		if _, ok := p.Tick(frame(100, 1)); ok {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}

	clock = clock.Add(250 * time.Millisecond)
	r, ok := p.Tick(frame(300, 3))
	if !ok {
		t.Fatal("no report after one second")
	}
	if r.FPS != 4 {
		t.Errorf("FPS = %v, want 4", r.FPS)
	}
	if r.Sprites != 150 || r.DrawCalls != 1.5 {
		t.Errorf("per-frame sprites/draws = %v/%v, want 150/1.5", r.Sprites, r.DrawCalls)
	}
	if r.PooledBuffers != 3 || r.CachedBindGroups != 2 {
		t.Errorf("resource counts = %d/%d, want 3/2", r.PooledBuffers, r.CachedBindGroups)
	}

	clock = clock.Add(500 * time.Millisecond)
	if _, ok := p.Tick(frame(1, 1)); ok {
		t.Error("counters were not reset after reporting")
	}
}
