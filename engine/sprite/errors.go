package sprite

import "errors"

// ErrNilTexture is returned by Batcher.Batch when a sprite has no texture assigned.
var ErrNilTexture = errors.New("sprite: sprite has no texture")
