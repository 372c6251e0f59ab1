package angle

import (
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		a        float64
		from, to Unit
		expected float64
	}{
		{180, Degrees, Radians, math.Pi},
		{90, Degrees, Rotations, 0.25},
		{math.Pi / 2, Radians, Degrees, 90},
		{1, Rotations, Degrees, 360},
		{-45, Degrees, Degrees, -45},
	}

	for _, tt := range tests {
		got := Convert(tt.a, tt.from, tt.to)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Convert(%v) = %v, want %v", tt.a, got, tt.expected)
		}
	}
}

func TestSignedNormal(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{179, 179},
		{180, -180}, // upper bound is exclusive
		{-180, -180},
		{360, 0},
		{350, -10},
		{370, 10},
		{-190, 170},
		{540, -180},
		{-540, -180},
	}

	for _, tt := range tests {
		got := SignedNormal(Degrees, tt.input)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("SignedNormal(%v) = %v, want %v", tt.input, got, tt.expected)
		}
		if got < -180 || got >= 180 {
			t.Errorf("SignedNormal(%v) = %v, outside [-180, 180)", tt.input, got)
		}
	}
}

func TestUnsignedNormal(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{360, 0},
		{-10, 350},
		{725, 5},
		{-720, 0},
		{359.5, 359.5},
	}

	for _, tt := range tests {
		got := UnsignedNormal(Degrees, tt.input)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("UnsignedNormal(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}

	// Radians never reach a full turn.
	if got := UnsignedNormal(Radians, -1e-18); got < 0 || got >= 2*math.Pi {
		t.Errorf("UnsignedNormal(-1e-18) = %v, outside [0, 2pi)", got)
	}
}

func TestHorizontalPolar(t *testing.T) {
	tests := []struct {
		az, alt         float64
		wantAz, wantAlt float64
		desc            string
	}{
		{0, 0, 0, 0, "origin"},
		{-30, 0, 330, 0, "negative azimuth"},
		{720, 45, 0, 45, "multiple azimuth turns"},
		{10, 100, 190, 80, "over north pole"},
		{350, -100, 170, -80, "over south pole"},
		{0, 270, 0, -90, "altitude wraps to south pole"},
		{0, 90, 0, 90, "exactly north pole"},
		{0, -90, 0, -90, "exactly south pole"},
		{0, 180, 180, 0, "altitude half turn"},
	}

	for _, tt := range tests {
		az, alt := HorizontalPolar(Degrees, tt.az, tt.alt)
		if math.Abs(az-tt.wantAz) > 1e-9 || math.Abs(alt-tt.wantAlt) > 1e-9 {
			t.Errorf("HorizontalPolar(%v, %v) = (%v, %v), want (%v, %v) (%s)",
				tt.az, tt.alt, az, alt, tt.wantAz, tt.wantAlt, tt.desc)
		}
	}
}

func TestHorizontalPolar_Idempotent(t *testing.T) {
	values := []float64{-720, -450, -270, -180, -90, -45, 0, 45, 90, 135, 180, 270, 359.99, 360, 540, 1000}

	for _, unit := range []Unit{Degrees, Radians, Rotations} {
		for _, az := range values {
			for _, alt := range values {
				a := Convert(az, Degrees, unit)
				b := Convert(alt, Degrees, unit)

				az1, alt1 := HorizontalPolar(unit, a, b)
				az2, alt2 := HorizontalPolar(unit, az1, alt1)

				if az1 != az2 || alt1 != alt2 {
					t.Errorf("HorizontalPolar not idempotent for (%v, %v): once (%v, %v), twice (%v, %v)",
						az, alt, az1, alt1, az2, alt2)
				}
				if alt1 < -unit.HalfPi() || alt1 > unit.HalfPi() {
					t.Errorf("altitude %v outside [-halfPi, halfPi] for input (%v, %v)", alt1, az, alt)
				}
				if az1 < 0 || az1 >= unit.TwicePi() {
					t.Errorf("azimuth %v outside [0, twicePi) for input (%v, %v)", az1, az, alt)
				}
			}
		}
	}
}

func TestLerp_ShortestPath(t *testing.T) {
	tests := []struct {
		from, to, t float64
		expected    float64
	}{
		{0, 90, 0.5, 45},
		{350, 10, 0.5, 360},
		{10, 350, 0.5, 0},
		{10, 350, 1.0, -10},
	}

	for _, tt := range tests {
		got := Lerp(Degrees, tt.from, tt.to, tt.t)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.t, got, tt.expected)
		}
	}
}
