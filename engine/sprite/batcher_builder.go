package sprite

// BatcherBuilderOption is a functional option applied to a Batcher during NewBatcher.
type BatcherBuilderOption func(*Batcher)

// TextureRegistrar is called the first time a texture appears in a frame, before any of its
// sprites are written. Returning an error aborts batching for the frame.
type TextureRegistrar func(tex Texture) error

// WithTextureRegistrar installs the per-frame texture registration hook. The render pass uses it
// to lazily create texture bind groups.
//
// Parameters:
//   - fn: the registrar callback
//
// Returns:
//   - BatcherBuilderOption: option function to apply
func WithTextureRegistrar(fn TextureRegistrar) BatcherBuilderOption {
	return func(b *Batcher) {
		b.registrar = fn
	}
}

// WithMaxSprites sets the per-batch sprite limit. Values outside (0, MaxSpritesPerBatch] are
// clamped to MaxSpritesPerBatch.
//
// Parameters:
//   - n: the maximum sprites per batch
//
// Returns:
//   - BatcherBuilderOption: option function to apply
func WithMaxSprites(n int) BatcherBuilderOption {
	return func(b *Batcher) {
		if n <= 0 || n > MaxSpritesPerBatch {
			n = MaxSpritesPerBatch
		}
		b.maxSprites = n
	}
}
