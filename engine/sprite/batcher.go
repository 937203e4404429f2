package sprite

import "fmt"

// Batcher groups a frame's sprites by texture into draw batches of bounded size.
//
// Batches are emitted texture by texture in the order each texture is first encountered in the
// input. Sprites sharing a texture keep their relative input order, but sprites of different
// textures are NOT interleaved in input order: a sprite of texture A that follows one of texture B
// still draws before it if A was seen first. Callers that need strict painter's order across
// textures must sort by texture runs themselves or use an atlas.
//
// A Batcher is not safe for concurrent use.
type Batcher struct {
	registrar  TextureRegistrar
	maxSprites int

	groups   map[uint64]int
	order    [][]*Batch
	free     []*Batch
	inFlight []*Batch
	out      []*Batch
}

// NewBatcher creates a Batcher with the given options.
//
// Parameters:
//   - options: functional options to configure the batcher
//
// Returns:
//   - *Batcher: the new batcher
func NewBatcher(options ...BatcherBuilderOption) *Batcher {
	b := &Batcher{
		maxSprites: MaxSpritesPerBatch,
		groups:     make(map[uint64]int),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// MaxSprites returns the per-batch sprite limit.
//
// Returns:
//   - int: the maximum sprites per batch
func (b *Batcher) MaxSprites() int {
	return b.maxSprites
}

// Batch groups sprites into per-texture batches and writes their vertices. Nil sprites are
// skipped. The returned batches and their vertex storage are recycled on the next call.
//
// Parameters:
//   - sprites: the frame's sprites, already in the desired draw order
//
// Returns:
//   - []*Batch: the batches in draw order
//   - error: ErrNilTexture for a sprite without a texture, or the registrar's error
func (b *Batcher) Batch(sprites []*Sprite) ([]*Batch, error) {
	b.recycle()

	for i, s := range sprites {
		if s == nil {
			continue
		}
		if s.Texture == nil {
			return nil, fmt.Errorf("sprite %d: %w", i, ErrNilTexture)
		}

		id := s.Texture.ID()
		g, ok := b.groups[id]
		if !ok {
			if b.registrar != nil {
				if err := b.registrar(s.Texture); err != nil {
					return nil, fmt.Errorf("failed to register texture %d: %w", id, err)
				}
			}
			g = len(b.order)
			b.groups[id] = g
			b.order = append(b.order, nil)
		}

		runs := b.order[g]
		if len(runs) == 0 || runs[len(runs)-1].Full() {
			runs = append(runs, b.acquire(s.Texture))
			b.order[g] = runs
		}
		runs[len(runs)-1].Add(s)
	}

	for _, runs := range b.order {
		b.out = append(b.out, runs...)
	}
	return b.out, nil
}

// acquire pops a recycled batch or allocates a new one, and marks it in flight.
func (b *Batcher) acquire(tex Texture) *Batch {
	var batch *Batch
	if n := len(b.free); n > 0 {
		batch = b.free[n-1]
		b.free[n-1] = nil
		b.free = b.free[:n-1]
	} else {
		batch = newBatch(b.maxSprites)
	}
	batch.reset(tex)
	b.inFlight = append(b.inFlight, batch)
	return batch
}

// recycle returns the previous call's batches to the freelist and clears per-frame state.
func (b *Batcher) recycle() {
	for _, batch := range b.inFlight {
		batch.reset(nil)
		b.free = append(b.free, batch)
	}
	clear(b.inFlight)
	b.inFlight = b.inFlight[:0]
	clear(b.groups)
	for i := range b.order {
		b.order[i] = nil
	}
	b.order = b.order[:0]
	clear(b.out)
	b.out = b.out[:0]
}
