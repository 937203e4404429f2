package shader

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/sprite.wgsl
var spriteSource string

// Bind group indices and bindings used by the sprite shader.
const (
	CameraGroup   = 0
	CameraBinding = 0

	TextureGroup   = 1
	SamplerBinding = 0
	TextureBinding = 1

	// CameraUniformSize is the size in bytes of the camera uniform (one mat4x4<f32>).
	CameraUniformSize = 64
)

// Shader keys for the sprite pipeline stages.
const (
	SpriteVertexKey   = "sprite_vertex"
	SpriteFragmentKey = "sprite_fragment"
)

// SpriteSource returns the embedded WGSL source shared by both sprite stages.
//
// Returns:
//   - string: the WGSL source
func SpriteSource() string {
	return spriteSource
}

// SpriteVertexLayout describes the interleaved sprite vertex: position at location 0, UV at
// location 1 and RGBA color at location 2, with a stride of sprite.VertexStride bytes.
//
// Returns:
//   - wgpu.VertexBufferLayout: the vertex buffer layout for slot 0
func SpriteVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: sprite.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
		},
	}
}

// CameraBindGroupLayout is the group 0 layout: a single vertex-visible uniform buffer holding
// the view-projection matrix.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the camera bind group layout
func CameraBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Sprite Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    CameraBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: CameraUniformSize,
				},
			},
		},
	}
}

// TextureBindGroupLayout is the group 1 layout: a filtering sampler and a 2D float texture, both
// visible to the fragment stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the texture bind group layout
func TextureBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Sprite Texture Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    SamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
			{
				Binding:    TextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	}
}

// NewSpriteShaders builds the vertex and fragment stages of the sprite pipeline from the
// embedded WGSL source.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
//   - error: an error if either stage could not be created
func NewSpriteShaders() (Shader, Shader, error) {
	vs, err := NewShader(SpriteVertexKey, ShaderTypeVertex, spriteSource,
		WithVertexLayouts(SpriteVertexLayout()),
		WithBindGroupLayout(CameraGroup, CameraBindGroupLayout()),
	)
	if err != nil {
		return nil, nil, err
	}
	fs, err := NewShader(SpriteFragmentKey, ShaderTypeFragment, spriteSource,
		WithBindGroupLayout(TextureGroup, TextureBindGroupLayout()),
	)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}
