package starfield

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-starfield/internal/logging"
)

// DefaultResolution is the tile resolution a controller starts with.
const DefaultResolution = 20

// Controller owns the input star set and the active renderer, rebuilding the
// renderer whenever the stars or the tile resolution change.
type Controller struct {
	vertices     InputVertices
	resolution   int
	renderer     *Renderer
	target       DrawTarget
	colorization float64
	generation   uint64
	logger       *logging.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTarget sets the backend that receives vertex uploads and draws.
func WithTarget(t DrawTarget) ControllerOption {
	return func(c *Controller) {
		c.target = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithResolution sets the initial tile resolution. Values outside
// [MinResolution, MaxResolution] are ignored.
func WithResolution(r int) ControllerOption {
	return func(c *Controller) {
		if r >= MinResolution && r <= MaxResolution {
			c.resolution = r
		}
	}
}

// WithColorization sets the colorization used by ComputeStars.
func WithColorization(v float64) ControllerOption {
	return func(c *Controller) {
		c.colorization = v
	}
}

// NewController creates a controller with no stars.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		resolution:   DefaultResolution,
		colorization: DefaultColorization,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// ComputeStars regenerates the star set from seed and rebuilds the renderer
// at the current resolution. A negative count is rejected.
func (c *Controller) ComputeStars(numStars int, seed uint64) bool {
	if numStars < 0 {
		c.logger.Warn("rejected star count %d", numStars)
		return false
	}
	vertices := NewGenerator(seed, c.colorization).Fill(nil, numStars)
	c.logger.Debug("generated %d stars from seed %d", numStars, seed)
	return c.retile(vertices, c.resolution)
}

// SetStars takes ownership of vertices and rebuilds the renderer at the
// current resolution.
func (c *Controller) SetStars(vertices InputVertices) bool {
	return c.retile(vertices, c.resolution)
}

// SetResolution changes the tile resolution. It returns false without
// changing anything for resolutions outside [MinResolution, MaxResolution]
// or equal to the current one.
func (c *Controller) SetResolution(resolution int) bool {
	if resolution < MinResolution || resolution > MaxResolution {
		c.logger.Warn("rejected tile resolution %d (range %d-%d)", resolution, MinResolution, MaxResolution)
		return false
	}
	if resolution == c.resolution {
		return false
	}
	if c.renderer == nil && len(c.vertices) == 0 {
		c.resolution = resolution
		return true
	}
	if c.retile(c.vertices, resolution) {
		return true
	}
	// The stars were re-sorted for the rejected tiling; restore the order
	// the active renderer was built from.
	SortByTile(c.vertices, NewTiling(c.resolution))
	return false
}

// retile sorts vertices for a tiling at resolution and builds a renderer
// from them. The stars, resolution and renderer are only replaced when the
// build succeeds; on failure the active renderer stays in place.
func (c *Controller) retile(vertices InputVertices, resolution int) bool {
	SortByTile(vertices, NewTiling(resolution))

	r, err := NewRenderer(vertices, len(vertices), resolution, c.target)
	if err != nil {
		c.logger.Error("rebuild renderer: %v", err)
		return false
	}
	c.generation++
	r.generation = c.generation
	c.vertices = vertices
	c.renderer = r
	c.resolution = resolution

	c.logger.Debug("renderer #%d: %d stars in %d tiles (resolution %d)",
		r.generation, len(vertices), r.tiling.TileCount(), resolution)
	return true
}

// Attach switches the draw target, uploading the current vertex buffer to it.
func (c *Controller) Attach(target DrawTarget) error {
	c.target = target
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Attach(target)
}

// Render draws the current star set. Before the first successful build it
// does nothing.
func (c *Controller) Render(perspective, aspect float32, orientation mgl32.Mat4, alpha float32) (FrameStats, error) {
	if c.renderer == nil {
		return FrameStats{}, nil
	}
	return c.renderer.Render(perspective, aspect, orientation, alpha)
}

// Resolution returns the current tile resolution.
func (c *Controller) Resolution() int { return c.resolution }

// Vertices returns the sorted input stars. Callers must not modify them.
func (c *Controller) Vertices() InputVertices { return c.vertices }

// Renderer returns the active renderer, or nil.
func (c *Controller) Renderer() *Renderer { return c.renderer }
