package camera

import (
	"math"
	"sync"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [2]float32
	rotation float32
	zoom     float32

	minZoom float32
	maxZoom float32

	panSpeed    float32
	zoomSpeed   float32
	rotateSpeed float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new 2D camera controller at the origin with a zoom of 1.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		zoom:        1,
		minZoom:     0.1,
		maxZoom:     10,
		panSpeed:    1,
		zoomSpeed:   0.1,
		rotateSpeed: 0.02,
	}

	for _, option := range options {
		option(cc)
	}

	cc.zoom = cc.clampZoom(cc.zoom)
	return cc
}

// clampZoom bounds zoom to [minZoom, maxZoom]. Caller must hold the mutex.
func (cc *cameraControllerImpl) clampZoom(zoom float32) float32 {
	return min(max(zoom, cc.minZoom), cc.maxZoom)
}

// localAxes returns the camera's right and up axes in world space, scaled from screen pixels to
// world pixels. Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (rx, ry, ux, uy float32) {
	sin, cos := math.Sincos(float64(cc.rotation))
	s, c := float32(sin)/cc.zoom, float32(cos)/cc.zoom
	return c, s, s, -c
}

func (cc *cameraControllerImpl) Position() (x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1]
}

func (cc *cameraControllerImpl) SetPosition(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [2]float32{x, y}
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = cc.clampZoom(cc.zoom + delta*cc.zoomSpeed)
}

func (cc *cameraControllerImpl) ZoomLevel() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoom
}

func (cc *cameraControllerImpl) SetZoomLevel(zoom float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = cc.clampZoom(zoom)
}

func (cc *cameraControllerImpl) MinZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minZoom
}

func (cc *cameraControllerImpl) MaxZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxZoom
}

func (cc *cameraControllerImpl) Rotation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotation
}

func (cc *cameraControllerImpl) SetRotation(rotation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotation = rotation
}

func (cc *cameraControllerImpl) Rotate(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotation += delta * cc.rotateSpeed
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	rx, ry, _, _ := cc.localAxes()
	offset := delta * cc.panSpeed
	cc.position[0] += rx * offset
	cc.position[1] += ry * offset
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, _, ux, uy := cc.localAxes()
	offset := delta * cc.panSpeed
	cc.position[0] += ux * offset
	cc.position[1] += uy * offset
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) RotateSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotateSpeed
}
