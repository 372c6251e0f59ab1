package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-starfield/internal/angle"
)

// Field is the application-facing star field: generate or load stars, pick
// a tile resolution and render from a camera view matrix.
type Field struct {
	controller *Controller
}

// NewField creates an empty field.
func NewField(opts ...ControllerOption) *Field {
	return &Field{controller: NewController(opts...)}
}

// Generate replaces the stars with numStars random ones drawn from seed.
func (f *Field) Generate(numStars int, seed uint64) bool {
	return f.controller.ComputeStars(numStars, seed)
}

// Load replaces the stars with vertices, for example from a catalog.
func (f *Field) Load(vertices InputVertices) bool {
	return f.controller.SetStars(vertices)
}

// SetResolution changes the tile resolution; see Controller.SetResolution.
func (f *Field) SetResolution(resolution int) bool {
	return f.controller.SetResolution(resolution)
}

// IsStarsLoaded reports whether a star set has been built and can be
// rendered.
func (f *Field) IsStarsLoaded() bool {
	return f.controller.Renderer() != nil
}

// Attach switches the draw target; see Controller.Attach.
func (f *Field) Attach(target DrawTarget) error {
	return f.controller.Attach(target)
}

// Controller exposes the underlying controller.
func (f *Field) Controller() *Controller {
	return f.controller
}

// Render draws the field for a camera with vertical field of view fovY
// (degrees), aspect ratio, near plane distance and world-to-camera view
// matrix. Culling uses the field of view along the screen diagonal.
func (f *Field) Render(fovY, aspect, nearZ float32, view mgl32.Mat4, alpha float32) (FrameStats, error) {
	diagonal := DiagonalFOV(float64(fovY), float64(aspect), float64(nearZ))
	return f.controller.Render(float32(diagonal), aspect, view.Inv(), alpha)
}

// DiagonalFOV returns the field of view along the screen diagonal in
// radians, given the vertical field of view in degrees.
func DiagonalFOV(fovY, aspect, nearZ float64) float64 {
	if nearZ <= 0 {
		nearZ = 1
	}
	quadrantHeight := nearZ * math.Tan(angle.ToRadians(fovY)*0.5)
	halfDiagonal := math.Sqrt(quadrantHeight * quadrantHeight * (1 + aspect*aspect))
	return math.Atan(halfDiagonal/nearZ) * 2
}

// VerticalFOV inverts DiagonalFOV: it returns the vertical field of view in
// radians for a diagonal field of view in radians.
func VerticalFOV(diagonal, aspect float64) float64 {
	return 2 * math.Atan(math.Tan(diagonal*0.5)/math.Sqrt(1+aspect*aspect))
}

// Orientation returns the camera-to-world rotation of a camera looking
// towards azimuth/altitude (radians) with no roll.
func Orientation(azimuth, altitude float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(float32(-azimuth)).Mul4(mgl32.HomogRotate3DX(float32(altitude)))
}
