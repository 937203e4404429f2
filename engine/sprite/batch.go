package sprite

// Batch is a run of sprites that share one texture and are drawn with a single indexed draw
// call. Its vertex storage is allocated once at full capacity and reused by the Batcher across
// frames, so a Batch is only valid until the next call to Batcher.Batch.
type Batch struct {
	texture   Texture
	instances int
	capacity  int
	vertices  []float32
}

// newBatch allocates a batch that can hold capacity sprites.
func newBatch(capacity int) *Batch {
	return &Batch{
		capacity: capacity,
		vertices: make([]float32, capacity*FloatsPerSprite),
	}
}

// reset rebinds the batch to tex and forgets any written sprites. The vertex storage is kept.
func (b *Batch) reset(tex Texture) {
	b.texture = tex
	b.instances = 0
}

// Texture returns the texture every sprite in the batch samples from.
//
// Returns:
//   - Texture: the batch texture
func (b *Batch) Texture() Texture {
	return b.texture
}

// Instances returns the number of sprites written into the batch.
//
// Returns:
//   - int: the sprite count
func (b *Batch) Instances() int {
	return b.instances
}

// Capacity returns the maximum number of sprites the batch can hold.
//
// Returns:
//   - int: the sprite capacity
func (b *Batch) Capacity() int {
	return b.capacity
}

// Full reports whether the batch has no free sprite slots.
//
// Returns:
//   - bool: true if Instances equals Capacity
func (b *Batch) Full() bool {
	return b.instances >= b.capacity
}

// IndexCount returns the number of indices needed to draw the batch.
//
// Returns:
//   - uint32: Instances * IndicesPerSprite
func (b *Batch) IndexCount() uint32 {
	return uint32(b.instances * IndicesPerSprite)
}

// Vertices returns the written prefix of the vertex storage, ready for upload.
//
// Returns:
//   - []float32: Instances * FloatsPerSprite floats
func (b *Batch) Vertices() []float32 {
	return b.vertices[:b.instances*FloatsPerSprite]
}

// Add writes s into the next free slot. It returns false without writing when the batch is full.
//
// Parameters:
//   - s: the sprite to append
//
// Returns:
//   - bool: true if the sprite was written
func (b *Batch) Add(s *Sprite) bool {
	if b.Full() {
		return false
	}
	off := b.instances * FloatsPerSprite
	WriteQuad(b.vertices[off:off+FloatsPerSprite], s)
	b.instances++
	return true
}
