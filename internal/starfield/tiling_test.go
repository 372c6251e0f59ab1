package starfield

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestTiling_Counts(t *testing.T) {
	tests := []struct {
		resolution int
		azTiles    int
		altTiles   int
		count      int
		bits       int
	}{
		{4, 4, 3, 12, 4},
		{5, 5, 3, 15, 4},
		{8, 8, 5, 40, 6},
		{16, 16, 9, 144, 8},
		{20, 20, 11, 220, 8},
		{64, 64, 33, 2112, 12},
	}

	for _, tt := range tests {
		tl := NewTiling(tt.resolution)
		if got := tl.AzimuthalTiles(); got != tt.azTiles {
			t.Errorf("R=%d AzimuthalTiles = %d, want %d", tt.resolution, got, tt.azTiles)
		}
		if got := tl.AltitudinalTiles(); got != tt.altTiles {
			t.Errorf("R=%d AltitudinalTiles = %d, want %d", tt.resolution, got, tt.altTiles)
		}
		if got := tl.TileCount(); got != tt.count {
			t.Errorf("R=%d TileCount = %d, want %d", tt.resolution, got, tt.count)
		}
		if got := tl.TileIndexBits(); got != tt.bits {
			t.Errorf("R=%d TileIndexBits = %d, want %d", tt.resolution, got, tt.bits)
		}
		if math.Abs(tl.SliceAngle()-2*math.Pi/float64(tt.resolution)) > 1e-12 {
			t.Errorf("R=%d SliceAngle = %v, want %v", tt.resolution, tl.SliceAngle(), 2*math.Pi/float64(tt.resolution))
		}
	}
}

func TestTiling_CenterRoundTrip(t *testing.T) {
	for r := MinResolution; r <= 128; r++ {
		tl := NewTiling(r)
		for i := 0; i < tl.TileCount(); i++ {
			az, alt := tl.TileCenter(i)
			if got := tl.TileIndex(az, alt); got != i {
				t.Fatalf("R=%d TileIndex(center of %d) = %d", r, i, got)
			}
		}
	}
}

func TestTiling_IndexInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, r := range []int{4, 5, 7, 20, 33} {
		tl := NewTiling(r)
		for n := 0; n < 2000; n++ {
			// Deliberately unnormalized angles.
			az := (rng.Float64() - 0.5) * 8 * math.Pi
			alt := (rng.Float64() - 0.5) * 2 * math.Pi
			i := tl.TileIndex(az, alt)
			if i < 0 || i >= tl.TileCount() {
				t.Fatalf("R=%d TileIndex(%v, %v) = %d, outside [0, %d)", r, az, alt, i, tl.TileCount())
			}
		}
	}
}

func TestTiling_AzimuthWraps(t *testing.T) {
	tl := NewTiling(8)

	// Just below a full turn rounds to column 0.
	if got := tl.TileIndex(2*math.Pi-0.01, 0); got != tl.TileIndex(0, 0) {
		t.Errorf("TileIndex(2pi-0.01, 0) = %d, want %d", got, tl.TileIndex(0, 0))
	}
	if got := tl.TileIndex(-math.Pi/4, 0); got != tl.TileIndex(7*math.Pi/4, 0) {
		t.Errorf("TileIndex(-pi/4, 0) = %d, want %d", got, tl.TileIndex(7*math.Pi/4, 0))
	}
}

func TestTiling_AltitudeClamps(t *testing.T) {
	tl := NewTiling(5)
	top := tl.AltitudinalTiles() - 1

	if got := tl.TileIndex(0, math.Pi/2) / tl.AzimuthalTiles(); got != top {
		t.Errorf("north pole row = %d, want %d", got, top)
	}
	if got := tl.TileIndex(0, -math.Pi) / tl.AzimuthalTiles(); got != 0 {
		t.Errorf("below south pole row = %d, want 0", got)
	}
}

func TestTiling_MaxResolutionFitsKey(t *testing.T) {
	tl := NewTiling(MaxResolution)
	if n := uint64(tl.TileCount()); n >= 1<<32 {
		t.Errorf("TileCount at MaxResolution = %d, want below 2^32", n)
	}
	if bits := tl.TileIndexBits(); bits > 32 {
		t.Errorf("TileIndexBits = %d, want at most 32", bits)
	}
}
