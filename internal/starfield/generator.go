package starfield

import (
	"math"
	"math/rand/v2"
	"slices"
)

// DefaultColorization is how far star colors drift away from grey.
const DefaultColorization = 0.1

// pcgStream selects the PCG stream.
const pcgStream = 0x9e3779b97f4a7c15

// Generator produces random star fields from a locally owned PCG source.
type Generator struct {
	rng          *rand.Rand
	colorization float64
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64, colorization float64) *Generator {
	return &Generator{
		rng:          rand.New(rand.NewPCG(seed, pcgStream)),
		colorization: colorization,
	}
}

// ComputeStarPositions replaces the contents of dest with limit random stars
// drawn from seed and returns the resulting slice. The same seed and limit
// always produce the same stars.
func ComputeStarPositions(dest InputVertices, limit int, seed uint64) InputVertices {
	return NewGenerator(seed, DefaultColorization).Fill(dest, limit)
}

// Fill replaces the contents of dest with limit stars and returns it. A
// negative limit yields no stars.
func (g *Generator) Fill(dest InputVertices, limit int) InputVertices {
	limit = max(limit, 0)
	dest = slices.Grow(dest[:0], limit)
	for i := 0; i < limit; i++ {
		azimuth := g.rng.Float64() * 360
		altitude := g.rng.Float64()*180 - 90
		color := ComputeStarColor(g.rng, g.colorization)
		dest = append(dest, NewInputVertex(azimuth, altitude, color))
	}
	return dest
}

// ComputeStarColor draws a random star color. Red is uniform in [0, 255];
// green and blue blend red with an independent draw, weighted by
// colorization (0 gives grey, 1 gives independent channels). The result is
// packed red | green<<8 | blue<<16.
func ComputeStarColor(rng *rand.Rand, colorization float64) uint32 {
	red := float64(rng.IntN(256))
	green := math.Round(red*(1-colorization) + float64(rng.IntN(256))*colorization)
	blue := math.Round(red*(1-colorization) + float64(rng.IntN(256))*colorization)
	return PackColor(uint8(red), uint8(green), uint8(blue))
}
