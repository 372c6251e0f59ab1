// Package render provides draw targets for a star field: a terminal
// character canvas and an offscreen image.
package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-starfield/internal/starfield"
)

// ErrRange is returned when a batch references vertices that were never
// uploaded.
var ErrRange = errors.New("render: draw range outside vertex buffer")

const (
	nearPlane = 0.1
	farPlane  = 10
)

// Projector maps unit-sphere directions to pixel coordinates for one batch.
type Projector struct {
	width, height int
	matrix        mgl32.Mat4
}

// NewProjector builds the projection for a width x height surface. The
// batch carries the diagonal field of view; the vertical one is derived
// from it and the batch aspect.
func NewProjector(width, height int, b starfield.Batch) Projector {
	fovY := starfield.VerticalFOV(float64(b.Perspective), float64(b.Aspect))
	proj := mgl32.Perspective(float32(fovY), b.Aspect, nearPlane, farPlane)
	return Projector{width: width, height: height, matrix: proj.Mul4(b.View)}
}

// Project returns the pixel position of dir and whether it lands on the
// surface. Directions behind the camera never do.
func (p Projector) Project(dir mgl32.Vec3) (x, y float64, ok bool) {
	clip := p.matrix.Mul4x1(dir.Vec4(0))
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}
	nx, ny := clip.X()/w, clip.Y()/w
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 {
		return 0, 0, false
	}
	x = float64(nx+1) * 0.5 * float64(p.width)
	y = float64(1-ny) * 0.5 * float64(p.height)
	return x, y, true
}

// visit calls fn for every vertex of every range in b that projects onto
// the surface.
func visit(vertices []starfield.GpuVertex, b starfield.Batch, p Projector, fn func(v starfield.GpuVertex, x, y float64)) error {
	for _, r := range b.Ranges {
		if r.Offset < 0 || r.Count < 0 || r.Offset+r.Count > len(vertices) {
			return fmt.Errorf("%w: [%d, %d) of %d", ErrRange, r.Offset, r.Offset+r.Count, len(vertices))
		}
		for _, v := range vertices[r.Offset : r.Offset+r.Count] {
			if x, y, ok := p.Project(v.Position); ok {
				fn(v, x, y)
			}
		}
	}
	return nil
}

// level is the displayed intensity of a packed color, in [0, 1].
func level(color uint32, alpha float32) float64 {
	return float64(starfield.Brightness(color)) / (3 * 255) * float64(alpha)
}
