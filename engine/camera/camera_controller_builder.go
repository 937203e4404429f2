package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial world-space position of the view's top-left corner.
//
// Parameters:
//   - x, y: world-space position in pixels
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = [2]float32{x, y}
	}
}

// WithRotation sets the initial rotation.
//
// Parameters:
//   - rotation: rotation in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation
func WithRotation(rotation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotation = rotation
	}
}

// WithZoom sets the initial zoom factor. It is clamped to the zoom bounds once all options are
// applied.
//
// Parameters:
//   - zoom: the zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom
func WithZoom(zoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoom = zoom
	}
}

// WithZoomBounds sets the minimum and maximum zoom factors.
//
// Parameters:
//   - min: smallest zoom factor
//   - max: largest zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom bounds
func WithZoomBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = min
		cc.maxZoom = max
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: pixels per unit of pan input
//
// Returns:
//   - CameraControllerOption: functional option to set the pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: zoom change per unit of zoom input
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithRotateSpeed sets the rotation speed multiplier.
//
// Parameters:
//   - speed: radians per unit of rotate input
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation speed
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}
