package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("sprites")

	if p.PipelineKey() != "sprites" {
		t.Errorf("key = %q", p.PipelineKey())
	}
	if !p.BlendEnabled() || p.BlendState() == nil {
		t.Error("alpha blending should be on by default")
	}
	if p.BlendState().Color.DstFactor != wgpu.BlendFactorOneMinusSrcAlpha {
		t.Errorf("color dst factor = %v", p.BlendState().Color.DstFactor)
	}
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("cull %v topology %v", p.CullMode(), p.Topology())
	}
	if p.Pipeline() != nil {
		t.Error("unregistered pipeline has a GPU handle")
	}
	if p.Shader(shader.ShaderTypeVertex) != nil || p.Shader(shader.ShaderType(99)) != nil {
		t.Error("unexpected shader on a bare pipeline")
	}
	// Release before registration is a no-op.
	p.Release()
}

func TestNewPipelineOptions(t *testing.T) {
	vs, fs, err := shader.NewSpriteShaders()
	if err != nil {
		t.Fatalf("NewSpriteShaders: %v", err)
	}
	p := NewPipeline("opaque",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithBlendEnabled(false),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)

	if p.Shader(shader.ShaderTypeVertex) != vs || p.Shader(shader.ShaderTypeFragment) != fs {
		t.Error("shaders not applied")
	}
	if p.BlendEnabled() {
		t.Error("blend still enabled")
	}
	if p.CullMode() != wgpu.CullModeBack || p.FrontFace() != wgpu.FrontFaceCW || p.WriteMask() != wgpu.ColorWriteMaskRed {
		t.Errorf("cull %v front %v mask %v", p.CullMode(), p.FrontFace(), p.WriteMask())
	}
}
