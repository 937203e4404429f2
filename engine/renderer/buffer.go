package renderer

import "github.com/Carmen-Shannon/oxy-sprite/common"

// copyAlignment is the granularity WebGPU requires for buffer sizes and queue writes.
const copyAlignment = 4

// alignedSize rounds n up to the next multiple of copyAlignment.
func alignedSize(n uint64) uint64 {
	return (n + copyAlignment - 1) &^ (copyAlignment - 1)
}

// indexBytes converts uint16 indices to bytes, zero-padding to a multiple of copyAlignment.
// An odd index count leaves a trailing two-byte pad that no draw ever reads.
func indexBytes(indices []uint16) []byte {
	if len(indices)%2 == 0 {
		return common.SliceToBytes(indices)
	}
	padded := make([]uint16, len(indices)+1)
	copy(padded, indices)
	return common.SliceToBytes(padded)
}
