package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-sprite/common"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
)

type fakeUploader struct {
	viewBindings    []int
	samplerBindings []int
	viewErr         error
	samplerErr      error
}

// releaseCounter wraps a provider and counts Release calls.
type releaseCounter struct {
	bind_group_provider.BindGroupProvider
	released int
}

func (r *releaseCounter) Release() {
	r.released++
	r.BindGroupProvider.Release()
}

func (u *fakeUploader) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	if u.viewErr != nil {
		return u.viewErr
	}
	u.viewBindings = append(u.viewBindings, bindingKey)
	return nil
}

func (u *fakeUploader) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	if u.samplerErr != nil {
		return u.samplerErr
	}
	u.samplerBindings = append(u.samplerBindings, bindingKey)
	return nil
}

func TestNewTexture(t *testing.T) {
	up := &fakeUploader{}
	data := common.TextureStagingData{Pixels: make([]byte, 8*4*4), Width: 8, Height: 4}

	a, err := newTexture(up, "a", data, common.SamplerStagingData{})
	if err != nil {
		t.Fatalf("newTexture: %v", err)
	}
	b, err := newTexture(up, "b", data, common.SamplerStagingData{})
	if err != nil {
		t.Fatalf("newTexture: %v", err)
	}

	if a.ID() == 0 || a.ID() == b.ID() {
		t.Errorf("IDs = %d, %d; want distinct non-zero", a.ID(), b.ID())
	}
	if a.Width() != 8 || a.Height() != 4 || a.Label() != "a" {
		t.Errorf("texture = %dx%d %q, want 8x4 \"a\"", a.Width(), a.Height(), a.Label())
	}
	if len(up.viewBindings) != 2 || up.viewBindings[0] != 1 {
		t.Errorf("view bindings = %v, want texture binding 1", up.viewBindings)
	}
	if len(up.samplerBindings) != 2 || up.samplerBindings[0] != 0 {
		t.Errorf("sampler bindings = %v, want sampler binding 0", up.samplerBindings)
	}
}

func TestNewTextureErrors(t *testing.T) {
	if _, err := newTexture(&fakeUploader{}, "empty", common.TextureStagingData{}, common.SamplerStagingData{}); err == nil {
		t.Error("zero-size texture: want error")
	}

	sentinel := errors.New("no sampler")
	data := common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	_, err := newTexture(&fakeUploader{samplerErr: sentinel}, "bad", data, common.SamplerStagingData{})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want wrapped sampler error", err)
	}
}

func TestNewTextureReleasesProviderOnFailure(t *testing.T) {
	var providers []*releaseCounter
	orig := newTextureProvider
	newTextureProvider = func(label string, options ...bind_group_provider.BindGroupProviderOption) bind_group_provider.BindGroupProvider {
		rc := &releaseCounter{BindGroupProvider: orig(label, options...)}
		providers = append(providers, rc)
		return rc
	}
	t.Cleanup(func() { newTextureProvider = orig })

	data := common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	tests := []struct {
		name string
		up   *fakeUploader
	}{
		{"view", &fakeUploader{viewErr: errors.New("no view")}},
		{"sampler", &fakeUploader{samplerErr: errors.New("no sampler")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers = providers[:0]
			if _, err := newTexture(tt.up, tt.name, data, common.SamplerStagingData{}); err == nil {
				t.Fatal("want error")
			}
			if len(providers) != 1 {
				t.Fatalf("created %d providers, want 1", len(providers))
			}
			if got := providers[0].released; got != 1 {
				t.Errorf("provider released %d times, want 1", got)
			}
		})
	}
}
