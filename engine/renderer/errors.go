package renderer

import "errors"

var (
	// ErrNoAdapter is returned when no GPU adapter compatible with the surface is available.
	ErrNoAdapter = errors.New("renderer: no compatible GPU adapter")

	// ErrNoDevice is returned when the adapter refuses to create a device.
	ErrNoDevice = errors.New("renderer: failed to create GPU device")

	// ErrPipelineNotFound is returned when drawing with a pipeline key that was never registered.
	ErrPipelineNotFound = errors.New("renderer: pipeline not registered")

	// ErrFrameInFlight is returned by BeginFrame while the previous surface texture is unpresented.
	ErrFrameInFlight = errors.New("renderer: previous frame not yet presented")

	// ErrNoFrame is returned by Draw outside of a BeginFrame/EndFrame pair.
	ErrNoFrame = errors.New("renderer: no frame in progress")

	// ErrMissingBindGroup is returned by SpritePass.Render when a batch's texture has no cached
	// bind group. It indicates an internal inconsistency and aborts the frame before encoding.
	ErrMissingBindGroup = errors.New("renderer: texture bind group missing from cache")

	// ErrUnbindableTexture is returned when a sprite texture does not expose a GPU view and sampler.
	ErrUnbindableTexture = errors.New("renderer: texture has no GPU view or sampler")
)
