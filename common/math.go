package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Ortho creates an orthographic projection matrix mapping the box
// [left, right] x [bottom, top] x [near, far] to WebGPU clip space (z in [0, 1]).
// Passing top < bottom yields a y-down projection suitable for pixel coordinates.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right: horizontal extent
//   - bottom, top: vertical extent
//   - near, far: depth extent
func Ortho(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
}

// View2D builds a 2D view matrix that translates the world by -(x, y), rotates it by -rotation
// radians and scales it by zoom. This is the inverse of the camera's own transform.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y: camera position in world units
//   - rotation: camera rotation in radians
//   - zoom: uniform scale factor (1 = one world unit per pixel)
func View2D(out []float32, x, y, rotation, zoom float32) {
	sin, cos := math.Sincos(float64(-rotation))
	c, s := float32(cos)*zoom, float32(sin)*zoom
	Identity(out)
	out[0], out[1] = c, s
	out[4], out[5] = -s, c
	out[12] = -(c*x - s*y)
	out[13] = -(s*x + c*y)
}
