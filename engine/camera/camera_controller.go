package camera

// CameraController owns the positional state of a 2D camera: where it is, how far it is zoomed
// in and how it is rotated. The Camera reads from its controller and computes matrices.
type CameraController interface {
	// Position returns the world-space position of the view's top-left corner.
	//
	// Returns:
	//   - x, y: world-space position in pixels
	Position() (x, y float32)

	// SetPosition sets the camera position directly.
	//
	// Parameters:
	//   - x, y: world-space position in pixels
	SetPosition(x, y float32)

	// Zoom adjusts the zoom level by delta scaled by ZoomSpeed, clamped to the zoom bounds.
	// Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount
	Zoom(delta float32)

	// ZoomLevel returns the current zoom factor. 1 maps one world pixel to one screen pixel.
	//
	// Returns:
	//   - float32: the zoom factor
	ZoomLevel() float32

	// SetZoomLevel sets the zoom factor directly, clamped to the zoom bounds.
	//
	// Parameters:
	//   - zoom: the zoom factor
	SetZoomLevel(zoom float32)

	// MinZoom returns the smallest allowed zoom factor.
	//
	// Returns:
	//   - float32: minimum zoom
	MinZoom() float32

	// MaxZoom returns the largest allowed zoom factor.
	//
	// Returns:
	//   - float32: maximum zoom
	MaxZoom() float32

	// Rotation returns the camera rotation in radians.
	//
	// Returns:
	//   - float32: rotation in radians
	Rotation() float32

	// SetRotation sets the camera rotation in radians.
	//
	// Parameters:
	//   - rotation: rotation in radians
	SetRotation(rotation float32)

	// Rotate turns the camera by delta scaled by RotateSpeed.
	//
	// Parameters:
	//   - delta: rotation amount
	Rotate(delta float32)

	// PanRight moves the camera along its local right axis. Movement is in screen pixels, so the
	// world distance shrinks as the zoom grows.
	//
	// Parameters:
	//   - delta: movement amount scaled by PanSpeed (negative pans left)
	PanRight(delta float32)

	// PanUp moves the camera along its local up axis (toward smaller world y when unrotated).
	//
	// Parameters:
	//   - delta: movement amount scaled by PanSpeed (negative pans down)
	PanUp(delta float32)

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: pixels per unit of pan input
	PanSpeed() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: zoom change per unit of zoom input
	ZoomSpeed() float32

	// RotateSpeed returns the rotation speed multiplier.
	//
	// Returns:
	//   - float32: radians per unit of rotate input
	RotateSpeed() float32
}
