package renderer

import (
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// SpriteDevice is the slice of GPU functionality the sprite pass depends on. Renderer implements it.
type SpriteDevice interface {
	// RegisterPipelines creates the GPU render pipelines for the given pipelines and caches them by
	// PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// NewVertexBuffer creates an empty vertex buffer with usage Vertex|CopyDst.
	//
	// Parameters:
	//   - label: a debug label for the buffer
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if the buffer could not be created
	NewVertexBuffer(label string, size uint64) (*wgpu.Buffer, error)

	// NewIndexBuffer creates an index buffer holding indices, padded to WebGPU's 4-byte alignment.
	//
	// Parameters:
	//   - label: a debug label for the buffer
	//   - indices: the uint16 index data
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if the buffer could not be created
	NewIndexBuffer(label string, indices []uint16) (*wgpu.Buffer, error)

	// WriteBuffer queues a write of data into buf at offset.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - offset: the byte offset into buf
	//   - data: the bytes to write
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte)

	// ReleaseBuffer releases a buffer created by NewVertexBuffer or NewIndexBuffer.
	//
	// Parameters:
	//   - buf: the buffer to release
	ReleaseBuffer(buf *wgpu.Buffer)

	// InitBindGroup creates a bind group from a layout descriptor and stores it on the provider.
	// Textures and samplers must already be set on the provider for texture and sampler bindings.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferUsageOverrides: additional buffer usage flags keyed by binding index (nil safe)
	//   - bufferSizeOverrides: custom buffer sizes keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// BeginFrame acquires the swapchain texture and begins the frame's single render pass, which
	// clears to the configured clear color.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes one indexed draw within the current render pass.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered render pipeline
	//   - vertices: the vertex buffer bound to slot 0
	//   - indices: the uint16 index buffer
	//   - indexCount: the number of indices to draw
	//   - bindGroups: providers bound to groups 0..n-1 in order
	//
	// Returns:
	//   - error: ErrPipelineNotFound for an unknown key, or ErrNoFrame outside a frame
	Draw(pipelineKey string, vertices, indices *wgpu.Buffer, indexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the frame's single command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()
}
