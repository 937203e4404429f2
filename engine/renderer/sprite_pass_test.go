package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-sprite/common"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeDrawCall struct {
	pipelineKey string
	vertices    *wgpu.Buffer
	indices     *wgpu.Buffer
	indexCount  uint32
	bindGroups  []bind_group_provider.BindGroupProvider
}

// fakeDevice records what a SpritePass asks of the GPU without touching one.
type fakeDevice struct {
	pipelines     []pipeline.Pipeline
	vertexBuffers int
	indexData     []uint16
	writes        map[*wgpu.Buffer][]byte
	released      int
	bindGroupInit int
	draws         []fakeDrawCall
	begins        int
	ends          int
	presents      int

	beginErr error
	drawErr  error
	failDraw int
}

var _ SpriteDevice = &fakeDevice{}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{writes: make(map[*wgpu.Buffer][]byte), failDraw: -1}
}

func (d *fakeDevice) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	d.pipelines = append(d.pipelines, pipelines...)
	return nil
}

func (d *fakeDevice) NewVertexBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	d.vertexBuffers++
	return &wgpu.Buffer{}, nil
}

func (d *fakeDevice) NewIndexBuffer(label string, indices []uint16) (*wgpu.Buffer, error) {
	d.indexData = append([]uint16(nil), indices...)
	return &wgpu.Buffer{}, nil
}

func (d *fakeDevice) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	d.writes[buf] = append([]byte(nil), data...)
}

func (d *fakeDevice) ReleaseBuffer(buf *wgpu.Buffer) {
	d.released++
}

func (d *fakeDevice) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	d.bindGroupInit++
	return nil
}

func (d *fakeDevice) BeginFrame() error {
	if d.beginErr != nil {
		return d.beginErr
	}
	d.begins++
	return nil
}

func (d *fakeDevice) Draw(pipelineKey string, vertices, indices *wgpu.Buffer, indexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	if d.drawErr != nil && len(d.draws) == d.failDraw {
		return d.drawErr
	}
	d.draws = append(d.draws, fakeDrawCall{
		pipelineKey: pipelineKey,
		vertices:    vertices,
		indices:     indices,
		indexCount:  indexCount,
		bindGroups:  append([]bind_group_provider.BindGroupProvider(nil), bindGroups...),
	})
	return nil
}

func (d *fakeDevice) EndFrame() error {
	d.ends++
	return nil
}

func (d *fakeDevice) Present() {
	d.presents++
}

type fakeBindable struct {
	id uint64
}

func (t fakeBindable) ID() uint64              { return t.id }
func (t fakeBindable) Width() uint32           { return 32 }
func (t fakeBindable) Height() uint32          { return 32 }
func (t fakeBindable) View() *wgpu.TextureView { return nil }
func (t fakeBindable) Sampler() *wgpu.Sampler  { return nil }

type plainTexture struct{}

func (plainTexture) ID() uint64     { return 99 }
func (plainTexture) Width() uint32  { return 1 }
func (plainTexture) Height() uint32 { return 1 }

func spritesFor(tex sprite.Texture, n int) []*sprite.Sprite {
	out := make([]*sprite.Sprite, n)
	for i := range out {
		out[i] = sprite.NewSprite(tex, sprite.WithPosition(float32(i), 0))
	}
	return out
}

func newTestPass(t *testing.T, opts ...SpritePassBuilderOption) (*SpritePass, *fakeDevice, bind_group_provider.BindGroupProvider) {
	t.Helper()
	dev := newFakeDevice()
	cam := bind_group_provider.NewBindGroupProvider("camera")
	p, err := NewSpritePass(dev, cam, opts...)
	if err != nil {
		t.Fatalf("NewSpritePass: %v", err)
	}
	return p, dev, cam
}

func TestNewSpritePass(t *testing.T) {
	p, dev, _ := newTestPass(t, WithMaxSpritesPerBatch(4), WithLabel("ui"))

	if len(dev.pipelines) != 1 || dev.pipelines[0].PipelineKey() != "ui" {
		t.Fatalf("registered pipelines = %v, want one keyed ui", dev.pipelines)
	}
	if p.PipelineKey() != "ui" {
		t.Errorf("PipelineKey() = %q, want ui", p.PipelineKey())
	}
	if got, want := len(dev.indexData), 4*sprite.IndicesPerSprite; got != want {
		t.Errorf("index buffer holds %d indices, want %d", got, want)
	}
	if !equalUint16(dev.indexData, sprite.NewQuadIndices(4)) {
		t.Errorf("index buffer = %v, want quad pattern", dev.indexData)
	}

	if _, err := NewSpritePass(dev, nil); err == nil {
		t.Error("NewSpritePass with nil camera: want error")
	}
	if _, err := NewSpritePass(nil, bind_group_provider.NewBindGroupProvider("camera")); err == nil {
		t.Error("NewSpritePass with nil device: want error")
	}
}

func TestSpritePassDrawCalls(t *testing.T) {
	p, dev, cam := newTestPass(t, WithMaxSpritesPerBatch(3))
	a, b, c := fakeBindable{id: 1}, fakeBindable{id: 2}, fakeBindable{id: 3}

	var sprites []*sprite.Sprite
	sprites = append(sprites, spritesFor(a, 4)...)
	sprites = append(sprites, spritesFor(b, 3)...)
	sprites = append(sprites, spritesFor(a, 3)...)
	sprites = append(sprites, spritesFor(c, 1)...)

	if err := p.Render(sprites); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// a: 7 sprites -> 3 draws, b: 1 draw, c: 1 draw
	wantCounts := []uint32{18, 18, 6, 18, 6}
	wantTex := []uint64{1, 1, 1, 2, 3}
	if len(dev.draws) != len(wantCounts) {
		t.Fatalf("draw calls = %d, want %d", len(dev.draws), len(wantCounts))
	}
	for i, d := range dev.draws {
		if d.indexCount != wantCounts[i] {
			t.Errorf("draw %d index count = %d, want %d", i, d.indexCount, wantCounts[i])
		}
		if d.pipelineKey != p.PipelineKey() {
			t.Errorf("draw %d pipeline = %q", i, d.pipelineKey)
		}
		if len(d.bindGroups) != 2 || d.bindGroups[0] != cam {
			t.Fatalf("draw %d bind groups = %v, want [camera, texture]", i, d.bindGroups)
		}
		if d.bindGroups[1] != p.bindGroups[wantTex[i]] {
			t.Errorf("draw %d texture bind group is not the cached one for texture %d", i, wantTex[i])
		}
		if d.indices == nil || d.indices != dev.draws[0].indices {
			t.Errorf("draw %d does not use the shared index buffer", i)
		}
	}

	if dev.begins != 1 || dev.ends != 1 || dev.presents != 1 {
		t.Errorf("begin/end/present = %d/%d/%d, want 1/1/1", dev.begins, dev.ends, dev.presents)
	}

	stats := p.Stats()
	want := FrameStats{Sprites: 11, Batches: 5, DrawCalls: 5, PooledBuffers: 5, AllocatedBuffers: 5, CachedBindGroups: 3}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}

func TestSpritePassUploadsBatchVertices(t *testing.T) {
	p, dev, _ := newTestPass(t)
	tex := fakeBindable{id: 7}
	sprites := spritesFor(tex, 2)

	if err := p.Render(sprites); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := make([]float32, 2*sprite.FloatsPerSprite)
	sprite.WriteQuad(want[:sprite.FloatsPerSprite], sprites[0])
	sprite.WriteQuad(want[sprite.FloatsPerSprite:], sprites[1])

	got := dev.writes[dev.draws[0].vertices]
	if !bytes.Equal(got, common.SliceToBytes(want)) {
		t.Errorf("uploaded %d bytes, want %d bytes of quad data", len(got), len(want)*4)
	}
}

func TestSpritePassBindGroupCache(t *testing.T) {
	p, dev, _ := newTestPass(t)
	a, b := fakeBindable{id: 10}, fakeBindable{id: 11}
	sprites := append(spritesFor(a, 5), spritesFor(b, 5)...)

	for frame := 0; frame < 3; frame++ {
		if err := p.Render(sprites); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}
	if dev.bindGroupInit != 2 {
		t.Errorf("InitBindGroup called %d times over 3 frames, want 2", dev.bindGroupInit)
	}

	first := p.bindGroups[a.id]
	if !p.ReleaseTexture(a) {
		t.Fatal("ReleaseTexture(a) = false, want true")
	}
	if p.ReleaseTexture(a) {
		t.Error("second ReleaseTexture(a) = true, want false")
	}
	if p.ReleaseTexture(fakeBindable{id: 500}) {
		t.Error("ReleaseTexture of an unseen texture = true, want false")
	}

	if err := p.Render(sprites); err != nil {
		t.Fatalf("Render after release: %v", err)
	}
	if dev.bindGroupInit != 3 {
		t.Errorf("InitBindGroup calls = %d after re-drawing a released texture, want 3", dev.bindGroupInit)
	}
	if p.bindGroups[a.id] == first {
		t.Error("released bind group was reused")
	}
}

func TestSpritePassBufferPool(t *testing.T) {
	p, dev, _ := newTestPass(t, WithMaxSpritesPerBatch(2))
	tex := fakeBindable{id: 1}

	frames := []struct {
		sprites   int
		allocated int
	}{
		{sprites: 10, allocated: 5},
		{sprites: 10, allocated: 5},
		{sprites: 3, allocated: 5},
		{sprites: 12, allocated: 6},
		{sprites: 12, allocated: 6},
	}
	for i, f := range frames {
		if err := p.Render(spritesFor(tex, f.sprites)); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if dev.vertexBuffers != f.allocated {
			t.Errorf("frame %d: %d vertex buffers allocated, want %d", i, dev.vertexBuffers, f.allocated)
		}
		if got := p.Stats().PooledBuffers; got != f.allocated {
			t.Errorf("frame %d: pool holds %d buffers, want %d", i, got, f.allocated)
		}
	}

	// Buffers within one frame are distinct.
	seen := map[*wgpu.Buffer]bool{}
	for _, d := range dev.draws[len(dev.draws)-6:] {
		if seen[d.vertices] {
			t.Fatal("vertex buffer used twice in one frame")
		}
		seen[d.vertices] = true
	}
}

func TestSpritePassEmptyFrame(t *testing.T) {
	p, dev, _ := newTestPass(t)

	if err := p.Render(nil); err != nil {
		t.Fatalf("Render(nil): %v", err)
	}
	if len(dev.draws) != 0 {
		t.Errorf("draw calls = %d, want 0", len(dev.draws))
	}
	if dev.begins != 1 || dev.ends != 1 || dev.presents != 1 {
		t.Errorf("begin/end/present = %d/%d/%d, want 1/1/1 so the frame is cleared", dev.begins, dev.ends, dev.presents)
	}
	if got := p.Stats(); got.DrawCalls != 0 || got.Sprites != 0 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestSpritePassErrors(t *testing.T) {
	t.Run("nil texture", func(t *testing.T) {
		p, dev, _ := newTestPass(t)
		err := p.Render([]*sprite.Sprite{{Alpha: 1}})
		if !errors.Is(err, sprite.ErrNilTexture) {
			t.Fatalf("err = %v, want ErrNilTexture", err)
		}
		if dev.begins != 0 {
			t.Error("frame begun despite batching error")
		}
	})

	t.Run("unbindable texture", func(t *testing.T) {
		p, dev, _ := newTestPass(t)
		err := p.Render(spritesFor(plainTexture{}, 1))
		if !errors.Is(err, ErrUnbindableTexture) {
			t.Fatalf("err = %v, want ErrUnbindableTexture", err)
		}
		if dev.begins != 0 {
			t.Error("frame begun despite bind group error")
		}
	})

	t.Run("missing bind group", func(t *testing.T) {
		p, _, _ := newTestPass(t)
		batches, err := sprite.NewBatcher().Batch(spritesFor(fakeBindable{id: 3}, 1))
		if err != nil {
			t.Fatalf("Batch: %v", err)
		}
		if err := p.resolveBindGroups(batches); !errors.Is(err, ErrMissingBindGroup) {
			t.Fatalf("err = %v, want ErrMissingBindGroup", err)
		}
	})

	t.Run("begin frame", func(t *testing.T) {
		p, dev, _ := newTestPass(t)
		dev.beginErr = ErrFrameInFlight
		err := p.Render(spritesFor(fakeBindable{id: 1}, 1))
		if !errors.Is(err, ErrFrameInFlight) {
			t.Fatalf("err = %v, want ErrFrameInFlight", err)
		}
		if dev.vertexBuffers != 0 || len(dev.draws) != 0 {
			t.Error("GPU work recorded after a failed BeginFrame")
		}
	})

	t.Run("draw", func(t *testing.T) {
		p, dev, _ := newTestPass(t, WithMaxSpritesPerBatch(1))
		dev.drawErr = ErrNoFrame
		dev.failDraw = 1
		err := p.Render(spritesFor(fakeBindable{id: 1}, 3))
		if !errors.Is(err, ErrNoFrame) {
			t.Fatalf("err = %v, want ErrNoFrame", err)
		}
		if dev.ends != 1 || dev.presents != 1 {
			t.Errorf("end/present = %d/%d, want the frame closed", dev.ends, dev.presents)
		}
		if len(p.inFlight) != 0 || len(p.pool) != dev.vertexBuffers {
			t.Errorf("pool = %d, in flight = %d, allocated = %d; want all buffers pooled", len(p.pool), len(p.inFlight), dev.vertexBuffers)
		}
	})
}

func TestSpritePassRelease(t *testing.T) {
	p, dev, _ := newTestPass(t, WithMaxSpritesPerBatch(2))
	if err := p.Render(append(spritesFor(fakeBindable{id: 1}, 4), spritesFor(fakeBindable{id: 2}, 1)...)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	p.Release()

	// three vertex buffers plus the index buffer
	if dev.released != 4 {
		t.Errorf("released %d buffers, want 4", dev.released)
	}
	if len(p.bindGroups) != 0 {
		t.Errorf("%d bind groups still cached", len(p.bindGroups))
	}
}

func equalUint16(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
