package astro

import (
	"math"
	"testing"
	"time"
)

func TestSun(t *testing.T) {
	tests := []struct {
		name   string
		time   time.Time
		wantRA float64
		minDec float64
		maxDec float64
	}{
		{"March equinox", time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), 0, -1, 1},
		{"June solstice", time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), 90, 23, 24},
		{"September equinox", time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC), 180, -1, 1},
		{"December solstice", time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC), 270, -24, -23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sun(tt.time)
			if got.RA < 0 || got.RA >= 360 {
				t.Fatalf("RA = %v, out of range", got.RA)
			}
			dRA := math.Abs(math.Remainder(got.RA-tt.wantRA, 360))
			if dRA > 2 {
				t.Errorf("RA = %v, want %v ± 2", got.RA, tt.wantRA)
			}
			if got.Dec < tt.minDec || got.Dec > tt.maxDec {
				t.Errorf("Dec = %v, want %v..%v", got.Dec, tt.minDec, tt.maxDec)
			}
		})
	}
}

func TestSeparation(t *testing.T) {
	tests := []struct {
		name string
		a, b Equatorial
		want float64
	}{
		{"same point", Equatorial{100, 20}, Equatorial{100, 20}, 0},
		{"pole to equator", Equatorial{0, 90}, Equatorial{123, 0}, 90},
		{"opposite on equator", Equatorial{0, 0}, Equatorial{180, 0}, 180},
		{"across RA wrap", Equatorial{359, 0}, Equatorial{1, 0}, 2},
		{"pole to pole", Equatorial{0, 90}, Equatorial{0, -90}, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Separation(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Separation() = %v, want %v", got, tt.want)
			}
			if back := Separation(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
				t.Errorf("Separation is not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestSeparation_BrightPairs(t *testing.T) {
	// Betelgeuse and Rigel sit on opposite corners of Orion, about 18.6 degrees apart.
	b, _ := Lookup("Betelgeuse")
	r, _ := Lookup("Rigel")
	if got := Separation(b.Pos, r.Pos); math.Abs(got-18.6) > 0.3 {
		t.Errorf("Separation(Betelgeuse, Rigel) = %v, want ~18.6", got)
	}
}
