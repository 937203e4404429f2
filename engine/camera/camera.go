package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sprite/common"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/shader"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	width  float32
	height float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera is a 2D orthographic camera. World coordinates are pixels with y pointing down; at a
// zoom of 1 and no rotation the controller's position lands on the viewport's top-left corner.
// The camera computes its matrices from the attached CameraController on Update.
type Camera interface {
	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: the viewport size
	Viewport() (width, height float32)

	// SetViewport sets the viewport size in pixels and recomputes matrices. Non-positive sizes are
	// ignored, which is what a minimized window reports.
	//
	// Parameters:
	//   - width, height: the viewport size
	SetViewport(width, height float32)

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 orthographic projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Uniform returns the GPU uniform for the current view-projection matrix.
	//
	// Returns:
	//   - GPUCameraUniform: the camera uniform
	Uniform() GPUCameraUniform

	// BufferWrite returns the write that uploads the current uniform to the camera's bind group
	// buffer.
	//
	// Returns:
	//   - bind_group_provider.BufferWrite: the uniform buffer write
	BufferWrite() bind_group_provider.BufferWrite

	// ScreenToWorld converts a point in window pixels to world pixels.
	//
	// Parameters:
	//   - x, y: the screen position
	//
	// Returns:
	//   - wx, wy: the world position
	ScreenToWorld(x, y float32) (wx, wy float32)

	// Controller returns the attached CameraController.
	//
	// Returns:
	//   - CameraController: the attached controller
	Controller() CameraController

	// SetController attaches a CameraController to the camera and recomputes matrices.
	// A nil controller is ignored.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider sets the camera's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)

	// Update reads position, zoom and rotation from the controller and recomputes matrices.
	// Should be called once per frame before the uniform is written.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with an 800x600 viewport and a default controller.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		width:  800,
		height: 600,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Add(1), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Viewport() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) SetViewport(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{ViewProj: c.viewProjectionMatrix}
}

func (c *cameraImpl) BufferWrite() bind_group_provider.BufferWrite {
	u := c.Uniform()
	return bind_group_provider.BufferWrite{
		Provider: c.BindGroupProvider(),
		Binding:  shader.CameraBinding,
		Data:     u.Marshal(),
	}
}

func (c *cameraImpl) ScreenToWorld(x, y float32) (wx, wy float32) {
	c.mu.Lock()
	ctrl := c.controller
	c.mu.Unlock()

	px, py := ctrl.Position()
	zoom := ctrl.ZoomLevel()
	sin, cos := math.Sincos(float64(ctrl.Rotation()))
	s, co := float32(sin), float32(cos)
	vx, vy := x/zoom, y/zoom
	return co*vx - s*vy + px, s*vx + co*vy + py
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	if ctrl == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices from the
// controller and viewport. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	px, py := c.controller.Position()

	common.View2D(c.viewMatrix[:], px, py, c.controller.Rotation(), c.controller.ZoomLevel())
	// top < bottom gives a y-down projection over [0, width] x [0, height]
	common.Ortho(c.projectionMatrix[:], 0, c.width, c.height, 0, -1, 1)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
