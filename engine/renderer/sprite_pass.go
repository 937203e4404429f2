package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sprite/common"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameStats describes the most recent SpritePass.Render call.
type FrameStats struct {
	// Sprites is the number of sprites drawn.
	Sprites int
	// Batches is the number of batches the sprites were grouped into.
	Batches int
	// DrawCalls is the number of indexed draws encoded. It always equals Batches.
	DrawCalls int
	// PooledBuffers is the number of idle vertex buffers after the frame.
	PooledBuffers int
	// AllocatedBuffers is the number of vertex buffers created over the pass's lifetime.
	AllocatedBuffers int
	// CachedBindGroups is the number of texture bind groups held in the cache.
	CachedBindGroups int
}

// SpritePass draws a frame's sprites with one indexed draw call per batch. It owns a cache of
// texture bind groups keyed by texture ID, a pool of batch-sized vertex buffers and the static
// quad index buffer shared by every draw.
//
// A SpritePass is not safe for concurrent use; Render must not be re-entered.
type SpritePass struct {
	device     SpriteDevice
	camera     bind_group_provider.BindGroupProvider
	label      string
	maxSprites int

	pipeline    pipeline.Pipeline
	batcher     *sprite.Batcher
	indexBuffer *wgpu.Buffer

	bindGroups map[uint64]bind_group_provider.BindGroupProvider

	pool      []*wgpu.Buffer
	inFlight  []*wgpu.Buffer
	allocated int

	resolved   []bind_group_provider.BindGroupProvider
	drawGroups []bind_group_provider.BindGroupProvider

	stats FrameStats
}

// NewSpritePass builds the sprite pipeline on device, registers it, and uploads the static index
// buffer. The camera provider must already hold an initialized group 0 bind group whenever Render
// is called.
//
// Parameters:
//   - device: the GPU device to draw with, typically a Renderer
//   - camera: the provider of the camera uniform bind group
//   - options: functional options to configure the pass
//
// Returns:
//   - *SpritePass: the new pass
//   - error: an error if the pipeline or index buffer could not be created
func NewSpritePass(device SpriteDevice, camera bind_group_provider.BindGroupProvider, options ...SpritePassBuilderOption) (*SpritePass, error) {
	if device == nil {
		return nil, errors.New("sprite pass: nil device")
	}
	if camera == nil {
		return nil, errors.New("sprite pass: nil camera bind group provider")
	}

	p := &SpritePass{
		device:     device,
		camera:     camera,
		label:      "sprites",
		maxSprites: sprite.MaxSpritesPerBatch,
		bindGroups: make(map[uint64]bind_group_provider.BindGroupProvider),
		drawGroups: make([]bind_group_provider.BindGroupProvider, 2),
	}
	for _, opt := range options {
		opt(p)
	}

	vs, fs, err := shader.NewSpriteShaders()
	if err != nil {
		return nil, fmt.Errorf("sprite pass: %w", err)
	}
	p.pipeline = pipeline.NewPipeline(p.label,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)
	if err := device.RegisterPipelines(p.pipeline); err != nil {
		return nil, fmt.Errorf("sprite pass: %w", err)
	}

	p.indexBuffer, err = device.NewIndexBuffer(p.label+" Index Buffer", sprite.NewQuadIndices(p.maxSprites))
	if err != nil {
		return nil, fmt.Errorf("sprite pass: %w", err)
	}

	p.batcher = sprite.NewBatcher(
		sprite.WithMaxSprites(p.maxSprites),
		sprite.WithTextureRegistrar(p.ensureBindGroup),
	)
	return p, nil
}

// PipelineKey returns the key the sprite pipeline is registered under.
//
// Returns:
//   - string: the pipeline key
func (p *SpritePass) PipelineKey() string {
	return p.pipeline.PipelineKey()
}

// Render batches sprites by texture and draws them in one render pass, then presents the frame.
// Sprites are drawn in the batcher's order: texture runs in first-encounter order, input order
// within a texture. An empty slice still clears and presents the frame.
//
// Parameters:
//   - sprites: the frame's sprites, sorted by the caller
//
// Returns:
//   - error: a batching, bind group or device error; on a batching or bind group error no GPU
//     work is encoded for the frame
func (p *SpritePass) Render(sprites []*sprite.Sprite) error {
	batches, err := p.batcher.Batch(sprites)
	if err != nil {
		return fmt.Errorf("sprite pass: %w", err)
	}
	if err := p.resolveBindGroups(batches); err != nil {
		return err
	}

	if err := p.device.BeginFrame(); err != nil {
		return fmt.Errorf("sprite pass: begin frame: %w", err)
	}
	defer p.recycle()

	drawn := 0
	for i, batch := range batches {
		buf, err := p.acquireBuffer()
		if err != nil {
			p.finishFrame()
			return err
		}
		p.device.WriteBuffer(buf, 0, common.SliceToBytes(batch.Vertices()))

		p.drawGroups[0] = p.camera
		p.drawGroups[1] = p.resolved[i]
		if err := p.device.Draw(p.pipeline.PipelineKey(), buf, p.indexBuffer, batch.IndexCount(), p.drawGroups); err != nil {
			p.finishFrame()
			return fmt.Errorf("sprite pass: draw batch %d: %w", i, err)
		}
		drawn += batch.Instances()
	}

	if err := p.finishFrame(); err != nil {
		return fmt.Errorf("sprite pass: %w", err)
	}

	p.stats = FrameStats{
		Sprites:          drawn,
		Batches:          len(batches),
		DrawCalls:        len(batches),
		PooledBuffers:    len(p.pool) + len(p.inFlight),
		AllocatedBuffers: p.allocated,
		CachedBindGroups: len(p.bindGroups),
	}
	return nil
}

// Stats returns the statistics of the last successful Render.
//
// Returns:
//   - FrameStats: the frame statistics
func (p *SpritePass) Stats() FrameStats {
	return p.stats
}

// ReleaseTexture drops and releases the cached bind group for tex. The texture itself is left
// alone. It is a no-op for textures that were never drawn.
//
// Parameters:
//   - tex: the texture to forget
//
// Returns:
//   - bool: true if a cached bind group was released
func (p *SpritePass) ReleaseTexture(tex sprite.Texture) bool {
	if tex == nil {
		return false
	}
	bg, ok := p.bindGroups[tex.ID()]
	if !ok {
		return false
	}
	bg.ReleaseBindGroup()
	delete(p.bindGroups, tex.ID())
	return true
}

// Release releases the vertex buffer pool, the index buffer and every cached bind group.
// The pass must not be used afterwards.
func (p *SpritePass) Release() {
	for _, buf := range p.pool {
		p.device.ReleaseBuffer(buf)
	}
	p.pool = nil
	if p.indexBuffer != nil {
		p.device.ReleaseBuffer(p.indexBuffer)
		p.indexBuffer = nil
	}
	for id, bg := range p.bindGroups {
		bg.ReleaseBindGroup()
		delete(p.bindGroups, id)
	}
}

// ensureBindGroup is the batcher's texture registrar: it creates and caches the group 1 bind
// group the first time a texture is seen.
func (p *SpritePass) ensureBindGroup(tex sprite.Texture) error {
	id := tex.ID()
	if _, ok := p.bindGroups[id]; ok {
		return nil
	}
	bt, ok := tex.(BindableTexture)
	if !ok {
		return fmt.Errorf("%w: texture %d (%T)", ErrUnbindableTexture, id, tex)
	}

	provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s Texture %d", p.label, id))
	provider.SetSampler(shader.SamplerBinding, bt.Sampler())
	provider.SetTextureView(shader.TextureBinding, bt.View())
	if err := p.device.InitBindGroup(provider, shader.TextureBindGroupLayout(), nil, nil); err != nil {
		return fmt.Errorf("texture %d bind group: %w", id, err)
	}

	p.bindGroups[id] = provider
	common.Logger().Debug("texture bind group cached", "pass", p.label, "texture", id, "cached", len(p.bindGroups))
	return nil
}

// resolveBindGroups looks up every batch's texture bind group before any GPU work is encoded.
func (p *SpritePass) resolveBindGroups(batches []*sprite.Batch) error {
	clear(p.resolved)
	p.resolved = p.resolved[:0]
	for _, batch := range batches {
		id := batch.Texture().ID()
		bg, ok := p.bindGroups[id]
		if !ok {
			return fmt.Errorf("%w: texture %d", ErrMissingBindGroup, id)
		}
		p.resolved = append(p.resolved, bg)
	}
	return nil
}

// acquireBuffer pops a pooled vertex buffer or allocates a new one, and marks it in flight.
func (p *SpritePass) acquireBuffer() (*wgpu.Buffer, error) {
	var buf *wgpu.Buffer
	if n := len(p.pool); n > 0 {
		buf = p.pool[n-1]
		p.pool[n-1] = nil
		p.pool = p.pool[:n-1]
	} else {
		size := uint64(p.maxSprites * sprite.FloatsPerSprite * 4)
		var err error
		buf, err = p.device.NewVertexBuffer(fmt.Sprintf("%s Vertex Buffer %d", p.label, p.allocated), size)
		if err != nil {
			return nil, fmt.Errorf("sprite pass: vertex buffer: %w", err)
		}
		p.allocated++
	}
	p.inFlight = append(p.inFlight, buf)
	return buf, nil
}

// recycle returns every in-flight vertex buffer to the pool.
func (p *SpritePass) recycle() {
	p.pool = append(p.pool, p.inFlight...)
	clear(p.inFlight)
	p.inFlight = p.inFlight[:0]
	p.drawGroups[0], p.drawGroups[1] = nil, nil
}

// finishFrame ends the render pass, submits it and presents. Present runs even when EndFrame
// fails so the swapchain texture is never left acquired.
func (p *SpritePass) finishFrame() error {
	err := p.device.EndFrame()
	p.device.Present()
	return err
}
