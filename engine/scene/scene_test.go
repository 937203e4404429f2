package scene

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/oxy-sprite/engine/camera"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeDevice records uploads and draws without a GPU.
type fakeDevice struct {
	bindGroupInit int
	uniformWrites [][]byte
	vertexWrites  [][]byte
	draws         int
	presents      int
}

var _ Device = &fakeDevice{}

func (d *fakeDevice) RegisterPipelines(pipelines ...pipeline.Pipeline) error { return nil }

func (d *fakeDevice) NewVertexBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return &wgpu.Buffer{}, nil
}

func (d *fakeDevice) NewIndexBuffer(label string, indices []uint16) (*wgpu.Buffer, error) {
	return &wgpu.Buffer{}, nil
}

func (d *fakeDevice) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	d.vertexWrites = append(d.vertexWrites, append([]byte(nil), data...))
}

func (d *fakeDevice) ReleaseBuffer(buf *wgpu.Buffer) {}

func (d *fakeDevice) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	d.bindGroupInit++
	return nil
}

func (d *fakeDevice) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		d.uniformWrites = append(d.uniformWrites, append([]byte(nil), w.Data...))
	}
}

func (d *fakeDevice) BeginFrame() error { return nil }

func (d *fakeDevice) Draw(pipelineKey string, vertices, indices *wgpu.Buffer, indexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	d.draws++
	return nil
}

func (d *fakeDevice) EndFrame() error { return nil }

func (d *fakeDevice) Present() { d.presents++ }

type fakeTexture struct{ id uint64 }

func (t fakeTexture) ID() uint64              { return t.id }
func (t fakeTexture) Width() uint32           { return 16 }
func (t fakeTexture) Height() uint32          { return 16 }
func (t fakeTexture) View() *wgpu.TextureView { return nil }
func (t fakeTexture) Sampler() *wgpu.Sampler  { return nil }

func newTestScene(t *testing.T, opts ...SceneBuilderOption) (Scene, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{}
	s, err := NewScene("test", camera.NewCamera(), dev, opts...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s, dev
}

func at(tex sprite.Texture, x, z float32) *sprite.Sprite {
	return sprite.NewSprite(tex, sprite.WithPosition(x, 0), sprite.WithZ(z))
}

func TestNewScene(t *testing.T) {
	s, dev := newTestScene(t)
	if dev.bindGroupInit != 1 {
		t.Errorf("InitBindGroup called %d times, want 1 for the camera", dev.bindGroupInit)
	}
	if !s.Active() || s.Name() != "test" || s.Pass() == nil {
		t.Errorf("scene = active %v, name %q, pass %v", s.Active(), s.Name(), s.Pass())
	}

	defer func() {
		if recover() == nil {
			t.Error("NewScene with nil camera did not panic")
		}
	}()
	_, _ = NewScene("bad", nil, dev)
}

func TestSceneSprites(t *testing.T) {
	tex := fakeTexture{id: 1}
	a, b, c := at(tex, 0, 0), at(tex, 1, 0), at(tex, 2, 0)
	s, _ := newTestScene(t, WithSprites(a, nil, b))

	s.AddSprite(c, nil)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	if !s.RemoveSprite(b) {
		t.Fatal("RemoveSprite(b) = false")
	}
	if s.RemoveSprite(b) {
		t.Error("second RemoveSprite(b) = true")
	}
	got := s.Sprites()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Sprites() = %v, want [a c]", got)
	}

	got[0] = nil
	if s.Sprites()[0] != a {
		t.Error("Sprites() returned the scene's own slice")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d", s.Len())
	}
}

func TestSceneUpdate(t *testing.T) {
	tex := fakeTexture{id: 1}
	s, _ := newTestScene(t, WithUpdateWorkers(2), WithChunkSize(3))
	for i := range 10 {
		s.AddSprite(at(tex, float32(i), 0))
	}

	var calls atomic.Int32
	s.SetUpdater(func(sp *sprite.Sprite, dt float32) {
		calls.Add(1)
		sp.Position.Y += dt
	})
	s.Update(0.5)
	s.Update(0.5)

	if got := calls.Load(); got != 20 {
		t.Errorf("updater ran %d times, want 20", got)
	}
	for i, sp := range s.Sprites() {
		if sp.Position.Y != 1 {
			t.Errorf("sprite %d y = %v, want 1", i, sp.Position.Y)
		}
	}

	s.SetUpdater(nil)
	s.Update(1)
	if calls.Load() != 20 {
		t.Error("Update ran with a nil updater")
	}
}

func TestSceneRenderSortsByZ(t *testing.T) {
	tex := fakeTexture{id: 1}
	sprites := []*sprite.Sprite{at(tex, 0, 2), at(tex, 10, 0), at(tex, 20, 1), at(tex, 30, 0)}
	s, dev := newTestScene(t, WithSprites(sprites...))

	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(dev.uniformWrites) != 1 || len(dev.uniformWrites[0]) != 64 {
		t.Fatalf("camera uniform writes = %d, want one 64-byte write", len(dev.uniformWrites))
	}
	if dev.draws != 1 || dev.presents != 1 {
		t.Fatalf("draws/presents = %d/%d, want 1/1", dev.draws, dev.presents)
	}

	data := dev.vertexWrites[0]
	want := []float32{10, 30, 20, 0}
	for i, x := range want {
		off := i * sprite.FloatsPerSprite * 4
		got := math.Float32frombits(binary.NativeEndian.Uint32(data[off:]))
		if got != x {
			t.Errorf("quad %d x = %v, want %v", i, got, x)
		}
	}

	for i, sp := range s.Sprites() {
		if sp != sprites[i] {
			t.Fatal("Render reordered the scene's sprites")
		}
	}

	if st := s.Stats(); st.Sprites != 4 || st.DrawCalls != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}
