package scene

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sprite/engine/camera"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sprite/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-sprite/engine/sprite"
)

// DefaultChunkSize is the number of sprites one update task processes.
const DefaultChunkSize = 1024

// UpdateFunc advances one sprite by dt seconds. It runs on worker goroutines and must only touch
// the sprite it is given.
type UpdateFunc func(s *sprite.Sprite, dt float32)

// Device is the GPU functionality a Scene needs. renderer.Renderer implements it.
type Device interface {
	renderer.SpriteDevice

	// WriteBuffers queues writes addressed through bind group providers.
	//
	// Parameters:
	//   - writes: the buffer writes to perform
	WriteBuffers(writes []bind_group_provider.BufferWrite)
}

// Scene is a layer of sprites drawn through one SpritePass with one camera.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Pass returns the sprite pass the scene draws with.
	//
	// Returns:
	//   - *renderer.SpritePass: the sprite pass
	Pass() *renderer.SpritePass

	// AddSprite appends sprites to the scene. Nil sprites are ignored.
	//
	// Parameters:
	//   - sprites: the sprites to add
	AddSprite(sprites ...*sprite.Sprite)

	// RemoveSprite removes a sprite, keeping the order of the rest.
	//
	// Parameters:
	//   - s: the sprite to remove
	//
	// Returns:
	//   - bool: true if the sprite was in the scene
	RemoveSprite(s *sprite.Sprite) bool

	// Sprites returns a copy of the scene's sprites in insertion order.
	//
	// Returns:
	//   - []*sprite.Sprite: the sprites
	Sprites() []*sprite.Sprite

	// Len returns the number of sprites in the scene.
	//
	// Returns:
	//   - int: the sprite count
	Len() int

	// Clear removes every sprite.
	Clear()

	// SetUpdater installs the per-sprite behavior Update runs. Nil disables it.
	//
	// Parameters:
	//   - fn: the update function
	SetUpdater(fn UpdateFunc)

	// Update runs the updater over every sprite, split into chunks across the worker pool, and
	// returns once all chunks are done.
	//
	// Parameters:
	//   - dt: the elapsed time in seconds
	Update(dt float32)

	// Render writes the camera uniform, sorts the sprites by Z and draws them. Sprites with equal
	// Z keep their insertion order.
	//
	// Returns:
	//   - error: an error from the sprite pass
	Render() error

	// Stats returns the sprite pass statistics of the last frame.
	//
	// Returns:
	//   - renderer.FrameStats: the frame statistics
	Stats() renderer.FrameStats

	// Release releases the sprite pass and the camera's GPU resources.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam    camera.Camera
	device Device
	pass   *renderer.SpritePass

	sprites  []*sprite.Sprite
	snapshot []*sprite.Sprite
	updater  UpdateFunc

	passOptions []renderer.SpritePassBuilderOption

	// Pre-allocated slice reused each frame to avoid per-frame allocations.
	writePool []bind_group_provider.BufferWrite

	// updatePool runs sprite update chunks. Workers persist across frames.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
	chunkSize     int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene that draws with cam on device. It initializes the camera's
// uniform bind group and builds the scene's sprite pass. cam and device are required and
// NewScene panics if either is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - device: the GPU device to draw with (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: an error if the camera bind group or sprite pass could not be created
func NewScene(name string, cam camera.Camera, device Device, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if device == nil {
		panic("scene: NewScene requires a non-nil Device")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		active:        true,
		cam:           cam,
		device:        device,
		updateWorkers: max(runtime.NumCPU()-1, 1),
		chunkSize:     DefaultChunkSize,
		writePool:     make([]bind_group_provider.BufferWrite, 0, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithUpdateWorkers can override the default.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	if err := device.InitBindGroup(cam.BindGroupProvider(), shader.CameraBindGroupLayout(), nil, nil); err != nil {
		return nil, fmt.Errorf("scene %s: camera bind group: %w", name, err)
	}

	pass, err := renderer.NewSpritePass(device, cam.BindGroupProvider(), s.passOptions...)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	s.pass = pass

	return s, nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Pass() *renderer.SpritePass {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pass
}

func (s *scene) AddSprite(sprites ...*sprite.Sprite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addSprites(sprites)
}

// addSprites appends the non-nil sprites. Caller must hold the write lock.
func (s *scene) addSprites(sprites []*sprite.Sprite) {
	for _, sp := range sprites {
		if sp != nil {
			s.sprites = append(s.sprites, sp)
		}
	}
}

func (s *scene) RemoveSprite(target *sprite.Sprite) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sp := range s.sprites {
		if sp == target {
			copy(s.sprites[i:], s.sprites[i+1:])
			s.sprites[len(s.sprites)-1] = nil
			s.sprites = s.sprites[:len(s.sprites)-1]
			return true
		}
	}
	return false
}

func (s *scene) Sprites() []*sprite.Sprite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*sprite.Sprite, len(s.sprites))
	copy(out, s.sprites)
	return out
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sprites)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.sprites)
	s.sprites = s.sprites[:0]
}

func (s *scene) SetUpdater(fn UpdateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updater = fn
}

func (s *scene) Update(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updater == nil || len(s.sprites) == 0 {
		return
	}

	// A WaitGroup is the per-frame barrier; pool.Wait() only returns once workers idle-exit.
	var wg sync.WaitGroup
	update := s.updater
	taskID := 0
	for start := 0; start < len(s.sprites); start += s.chunkSize {
		chunk := s.sprites[start:min(start+s.chunkSize, len(s.sprites))]
		wg.Add(1)
		id := taskID
		taskID++
		s.updatePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for _, sp := range chunk {
					update(sp, dt)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam.Update()
	s.writePool = append(s.writePool[:0], s.cam.BufferWrite())
	s.device.WriteBuffers(s.writePool)

	s.snapshot = append(s.snapshot[:0], s.sprites...)
	sort.SliceStable(s.snapshot, func(i, j int) bool {
		return s.snapshot[i].Z < s.snapshot[j].Z
	})

	err := s.pass.Render(s.snapshot)
	clear(s.snapshot)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.name, err)
	}
	return nil
}

func (s *scene) Stats() renderer.FrameStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pass.Stats()
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pass.Release()
	s.cam.BindGroupProvider().Release()
}
