package renderer

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sprite/common"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
	"github.com/cogentcore/webgpu/wgpu"
)

// textureCount hands out process-unique texture identities.
var textureCount atomic.Uint64

// newTextureProvider creates the provider holding a texture's view and sampler.
var newTextureProvider = bind_group_provider.NewBindGroupProvider

// BindableTexture is a sprite texture that exposes the GPU view and sampler a texture bind group
// is built from.
type BindableTexture interface {
	sprite.Texture

	// View returns the GPU texture view bound at the texture binding.
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view
	View() *wgpu.TextureView

	// Sampler returns the GPU sampler bound at the sampler binding.
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler
	Sampler() *wgpu.Sampler
}

// Texture is an immutable GPU texture plus its sampler. Its ID is assigned once at creation and
// is the key the sprite pass caches bind groups under.
type Texture struct {
	id       uint64
	label    string
	width    uint32
	height   uint32
	provider bind_group_provider.BindGroupProvider
}

var _ BindableTexture = &Texture{}

// textureUploader is the part of the Renderer that creates texture views and samplers.
type textureUploader interface {
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
}

func newTexture(up textureUploader, label string, data common.TextureStagingData, sampler common.SamplerStagingData) (*Texture, error) {
	if data.Width == 0 || data.Height == 0 {
		return nil, fmt.Errorf("texture %s: zero size %dx%d", label, data.Width, data.Height)
	}
	t := &Texture{
		id:       textureCount.Add(1),
		label:    label,
		width:    data.Width,
		height:   data.Height,
		provider: newTextureProvider(label),
	}
	if err := up.InitTextureView(t.provider, shader.TextureBinding, data); err != nil {
		t.provider.Release()
		return nil, fmt.Errorf("texture %s: %w", label, err)
	}
	if err := up.InitSampler(t.provider, shader.SamplerBinding, sampler); err != nil {
		t.provider.Release()
		return nil, fmt.Errorf("texture %s sampler: %w", label, err)
	}
	return t, nil
}

func (t *Texture) ID() uint64 {
	return t.id
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

// Label returns the debug label the texture was created with.
func (t *Texture) Label() string {
	return t.label
}

func (t *Texture) View() *wgpu.TextureView {
	return t.provider.TextureView(shader.TextureBinding)
}

func (t *Texture) Sampler() *wgpu.Sampler {
	return t.provider.Sampler(shader.SamplerBinding)
}

// Release releases the texture view and sampler. Any sprite pass that cached a bind group for the
// texture must drop it first with SpritePass.ReleaseTexture.
func (t *Texture) Release() {
	t.provider.Release()
}
