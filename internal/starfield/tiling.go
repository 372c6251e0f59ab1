package starfield

import (
	"math"
	"math/bits"
)

const (
	// MinResolution is the smallest tile resolution a field accepts.
	MinResolution = 4
	// MaxResolution is the largest tile resolution a field accepts. Tile
	// indices are sorted as uint32 keys, so TileCount must stay below 2^32.
	MaxResolution = 1 << 16
)

// Tiling maps the sphere onto a grid of tiles. The grid has Resolution
// tiles around each altitude ring and Resolution/2+1 rings from pole to
// pole. Resolution is not validated here.
type Tiling struct {
	resolution int
	rcpSlice   float64
}

// NewTiling creates a tiling with the given resolution.
func NewTiling(resolution int) Tiling {
	return Tiling{
		resolution: resolution,
		rcpSlice:   float64(resolution) / (2 * math.Pi),
	}
}

// Resolution returns the resolution parameter.
func (t Tiling) Resolution() int { return t.resolution }

// AzimuthalTiles returns the number of tiles in one altitude ring.
func (t Tiling) AzimuthalTiles() int { return t.resolution }

// AltitudinalTiles returns the number of altitude rings.
func (t Tiling) AltitudinalTiles() int { return t.resolution/2 + 1 }

// TileCount returns the total number of tiles.
func (t Tiling) TileCount() int { return t.AzimuthalTiles() * t.AltitudinalTiles() }

// TileIndexBits returns ceil(log2(TileCount())), the key width for sorting.
func (t Tiling) TileIndexBits() int {
	n := t.TileCount()
	if n < 2 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// SliceAngle returns the angular size of one tile in radians.
func (t Tiling) SliceAngle() float64 { return 1 / t.rcpSlice }

// TileIndex returns the tile containing the given direction (radians).
// Azimuth may be unnormalized; altitude is clamped onto the grid.
func (t Tiling) TileIndex(azimuth, altitude float64) int {
	return t.discreteAzimuth(azimuth) + t.resolution*t.discreteAltitude(altitude)
}

// TileCenter returns the azimuth and altitude of the center of tile index.
func (t Tiling) TileCenter(index int) (azimuth, altitude float64) {
	slice := t.SliceAngle()
	azimuth = float64(index%t.resolution) * slice
	altitude = float64(index/t.resolution)*slice - math.Pi/2
	return azimuth, altitude
}

func (t Tiling) discreteAngle(a float64) int {
	return int(math.Floor(a*t.rcpSlice + 0.5))
}

func (t Tiling) discreteAzimuth(a float64) int {
	i := t.discreteAngle(a) % t.resolution
	if i < 0 {
		i += t.resolution
	}
	return i
}

func (t Tiling) discreteAltitude(a float64) int {
	i := t.discreteAngle(a + math.Pi/2)
	return max(0, min(t.AltitudinalTiles()-1, i))
}
