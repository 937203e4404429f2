// Package sprite holds the CPU side of the batched sprite pipeline: the sprite record, the
// vertex layout shared with the sprite shader, the vertex writer and the batcher that groups a
// frame's sprites into per-texture draw batches.
package sprite

// The constants below form the wire contract with the sprite shader. Changing any of them
// requires the matching change in the renderer's vertex buffer layout and WGSL source.
const (
	// FloatsPerVertex is the number of float32 values per vertex: 2 position + 2 UV + 4 color/alpha.
	FloatsPerVertex = 8

	// VerticesPerSprite is the number of vertices emitted per sprite quad.
	VerticesPerSprite = 4

	// IndicesPerSprite is the number of indices per sprite quad (two triangles).
	IndicesPerSprite = 6

	// FloatsPerSprite is the number of float32 values one sprite occupies in a batch.
	FloatsPerSprite = VerticesPerSprite * FloatsPerVertex

	// VertexStride is the size of a single vertex in bytes.
	VertexStride = FloatsPerVertex * 4

	// MaxSpritesPerBatch is the number of sprites a single batch (and draw call) can hold.
	MaxSpritesPerBatch = 10000

	// BatchVertexBufferSize is the size in bytes of a GPU vertex buffer holding one full batch.
	BatchVertexBufferSize = MaxSpritesPerBatch * FloatsPerSprite * 4

	// MaxIndexableVertices is the number of vertices addressable with 16-bit indices.
	MaxIndexableVertices = 1 << 16

	// Attribute float offsets within a vertex.
	positionOffset = 0
	uvOffset       = 2
	colorOffset    = 4
)

// QuadIndexPattern is the two-triangle topology of one quad relative to its first vertex.
// Vertices are ordered top-left, top-right, bottom-right, bottom-left.
var QuadIndexPattern = [IndicesPerSprite]uint16{0, 1, 2, 2, 3, 0}

// compile-time guard: a full batch must stay addressable with uint16 indices.
var _ [MaxIndexableVertices - MaxSpritesPerBatch*VerticesPerSprite]struct{}

// NewQuadIndices builds the static index data for count consecutive quads.
// Counts whose vertices would exceed MaxIndexableVertices are capped.
//
// Parameters:
//   - count: the number of quads to encode
//
// Returns:
//   - []uint16: count * IndicesPerSprite indices
func NewQuadIndices(count int) []uint16 {
	count = max(0, min(count, MaxIndexableVertices/VerticesPerSprite))
	indices := make([]uint16, count*IndicesPerSprite)
	for i := range count {
		base := uint16(i * VerticesPerSprite)
		for j, k := range QuadIndexPattern {
			indices[i*IndicesPerSprite+j] = base + k
		}
	}
	return indices
}
