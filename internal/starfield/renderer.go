package starfield

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-starfield/internal/angle"
)

var (
	// ErrInvalidResolution is returned for tile resolutions outside
	// [MinResolution, MaxResolution].
	ErrInvalidResolution = errors.New("starfield: tile resolution out of range")

	// ErrVertexCountMismatch is returned when a vertex slice does not hold the announced star count.
	ErrVertexCountMismatch = errors.New("starfield: vertex count mismatch")

	// ErrUnsorted is returned when vertices are not ordered by tile index.
	ErrUnsorted = errors.New("starfield: vertices not sorted by tile")
)

// poleMargin keeps the view lookup off the degenerate pole tiles.
const poleMargin = 0.002

// DrawRange is a contiguous range of the uploaded vertex buffer.
type DrawRange struct {
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// Batch is everything a backend needs to draw one frame.
type Batch struct {
	Ranges      []DrawRange // valid until the next Render
	View        mgl32.Mat4  // world to camera, rotation only
	Perspective float32     // diagonal field of view in radians
	Aspect      float32
	Alpha       float32
}

// DrawTarget receives the vertex buffer once per rebuild and one batched
// point draw per frame.
type DrawTarget interface {
	Upload(vertices []GpuVertex) error
	Draw(batch Batch) error
}

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	VisitedTiles  int `json:"visited_tiles"`
	RenderedTiles int `json:"rendered_tiles"`
	Ranges        int `json:"ranges"`
	Stars         int `json:"stars"`
}

// Renderer owns the vertex buffer and tile table built from one sorted star
// set and draws the visible part of it each frame.
type Renderer struct {
	tiling     Tiling
	vertices   []GpuVertex
	tiles      []Tile // TileCount()+1 entries, the last is the end sentinel
	target     DrawTarget
	generation uint64

	// Scratch buffers, sized once and reused every frame.
	visited []int
	ranges  []DrawRange
	stack   []Cursor

	// Per-frame view state used by isTileVisible.
	forward         [3]float64
	halfPerspective float64
}

// NewRenderer buckets pre-sorted vertices into per-tile ranges and uploads
// the vertex buffer to target. target may be nil.
func NewRenderer(vertices InputVertices, numStars, resolution int, target DrawTarget) (*Renderer, error) {
	if resolution < MinResolution || resolution > MaxResolution {
		return nil, fmt.Errorf("%w: got %d, want %d-%d", ErrInvalidResolution, resolution, MinResolution, MaxResolution)
	}
	if len(vertices) != numStars {
		return nil, fmt.Errorf("%w: have %d vertices, want %d", ErrVertexCountMismatch, len(vertices), numStars)
	}

	tiling := NewTiling(resolution)
	tileCount := tiling.TileCount()
	r := &Renderer{
		tiling:   tiling,
		vertices: make([]GpuVertex, numStars),
		tiles:    make([]Tile, tileCount+1),
		target:   target,
		visited:  make([]int, 0, tileCount),
		ranges:   make([]DrawRange, 0, tileCount),
		stack:    make([]Cursor, 0, tileCount),
	}

	current := 0
	for i, v := range vertices {
		index := tiling.TileIndex(v.azimuth, v.altitude)
		if index < current {
			return nil, fmt.Errorf("%w: vertex %d in tile %d follows tile %d", ErrUnsorted, i, index, current)
		}
		for current < index {
			current++
			r.tiles[current].Offset = i
		}
		r.tiles[index].Count++
		r.vertices[i] = NewGpuVertex(v)
	}
	for current < tileCount {
		current++
		r.tiles[current].Offset = numStars
	}

	if err := r.Attach(target); err != nil {
		return nil, err
	}
	return r, nil
}

// Attach makes target the draw target and uploads the vertex buffer to it.
// A nil target detaches the renderer.
func (r *Renderer) Attach(target DrawTarget) error {
	r.target = target
	if target == nil {
		return nil
	}
	if err := target.Upload(r.vertices); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}
	return nil
}

// Tiling returns the renderer's tiling.
func (r *Renderer) Tiling() Tiling { return r.tiling }

// StarCount returns the number of uploaded vertices.
func (r *Renderer) StarCount() int { return len(r.vertices) }

// Generation identifies the build that produced this renderer.
func (r *Renderer) Generation() uint64 { return r.generation }

// Tiles returns the tile table including the end sentinel. Callers must not
// modify it.
func (r *Renderer) Tiles() []Tile { return r.tiles }

// Vertices returns the uploaded vertex buffer. Callers must not modify it.
func (r *Renderer) Vertices() []GpuVertex { return r.vertices }

// Render culls the tile grid against a view cone and issues one batched draw.
// perspective is the diagonal field of view in radians; orientation is the
// camera-to-world matrix, whose translation is ignored.
func (r *Renderer) Render(perspective, aspect float32, orientation mgl32.Mat4, alpha float32) (FrameStats, error) {
	m := orientation
	m[12], m[13], m[14], m[15] = 0, 0, 0, 1

	ahead := m.Col(2)
	ax, ay, az := float64(ahead.X()), float64(ahead.Y()), float64(ahead.Z())
	azimuth := math.Atan2(ax, -az) + math.Pi
	altitude := math.Atan2(-ay, math.Hypot(ax, az))
	azimuth, altitude = angle.HorizontalPolar(angle.Radians, azimuth, altitude)
	altitude = max(-math.Pi/2+poleMargin, min(math.Pi/2-poleMargin, altitude))

	view := m.Inv()
	row := view.Row(2)
	r.forward = [3]float64{-float64(row.X()), -float64(row.Y()), -float64(row.Z())}
	r.halfPerspective = float64(perspective) * 0.5

	r.visited = r.visited[:0]
	r.stack = r.stack[:0]
	start := r.tiling.TileIndex(azimuth, altitude)
	stride := r.tiling.AzimuthalTiles()
	FloodFill[Cursor](Cursor{Row: start / stride, Col: start % stride}, tileSelection{r: r})

	stats := r.prepareBatch()

	if r.target == nil {
		return stats, nil
	}
	err := r.target.Draw(Batch{
		Ranges:      r.ranges,
		View:        view,
		Perspective: perspective,
		Aspect:      aspect,
		Alpha:       alpha,
	})
	if err != nil {
		return stats, fmt.Errorf("draw stars: %w", err)
	}
	return stats, nil
}

// prepareBatch collects a range per renderable, non-empty visited tile and
// clears the flags of every tile touched this frame.
func (r *Renderer) prepareBatch() FrameStats {
	stats := FrameStats{VisitedTiles: len(r.visited)}
	r.ranges = r.ranges[:0]
	for _, index := range r.visited {
		t := &r.tiles[index]
		if t.Flags&TileRender != 0 {
			stats.RenderedTiles++
			if t.Count > 0 {
				r.ranges = append(r.ranges, DrawRange{Offset: t.Offset, Count: t.Count})
				stats.Stars += t.Count
			}
		}
		t.Flags = 0
	}
	stats.Ranges = len(r.ranges)
	return stats
}

// isTileVisible tests the tile's center direction against the view cone,
// widened by the tile's angular half-diagonal. Tiles straddling the edge
// of the view are kept.
func (r *Renderer) isTileVisible(index int) bool {
	halfSlice := 0.5 * r.tiling.SliceAngle()
	azimuth, altitude := r.tiling.TileCenter(index)

	sinAz, cosAz := math.Sincos(azimuth)
	sinAlt, cosAlt := math.Sincos(altitude)
	w := r.forward[0]*sinAz*cosAlt + r.forward[1]*sinAlt - r.forward[2]*cosAz*cosAlt

	daz := halfSlice * math.Cos(math.Max(0, math.Abs(altitude)-halfSlice))
	dal := halfSlice
	cone := r.halfPerspective + math.Hypot(daz, dal)
	if cone >= math.Pi {
		return true
	}
	return w >= math.Cos(cone)
}
