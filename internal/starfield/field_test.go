package starfield

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDiagonalFOV(t *testing.T) {
	tests := []struct {
		fovY, aspect, nearZ float64
		expected            float64 // degrees
	}{
		{90, 0, 1, 90},
		{60, 1, 0.1, 2 * math.Atan(math.Tan(math.Pi/6)*math.Sqrt2) * 180 / math.Pi},
		{60, 1, 10, 2 * math.Atan(math.Tan(math.Pi/6)*math.Sqrt2) * 180 / math.Pi},
	}

	for _, tt := range tests {
		got := DiagonalFOV(tt.fovY, tt.aspect, tt.nearZ) * 180 / math.Pi
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("DiagonalFOV(%v, %v, %v) = %v°, want %v°", tt.fovY, tt.aspect, tt.nearZ, got, tt.expected)
		}
	}
}

func TestVerticalFOV_InvertsDiagonal(t *testing.T) {
	for _, fov := range []float64{10, 45, 60, 90, 120} {
		for _, aspect := range []float64{0.5, 1, 1.333, 2.4} {
			diag := DiagonalFOV(fov, aspect, 0.1)
			got := VerticalFOV(diag, aspect) * 180 / math.Pi
			if math.Abs(got-fov) > 1e-9 {
				t.Errorf("VerticalFOV(DiagonalFOV(%v, %v)) = %v", fov, aspect, got)
			}
		}
	}
}

func TestOrientation_LooksAlongDirection(t *testing.T) {
	tests := []struct{ az, alt float64 }{
		{0, 0}, {math.Pi / 2, 0}, {math.Pi, 0.5}, {4, -1}, {1, 1.5},
	}

	for _, tt := range tests {
		m := Orientation(tt.az, tt.alt)
		forward := m.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
		want := NewGpuVertex(InputVertex{azimuth: tt.az, altitude: tt.alt}).Position
		if !forward.ApproxEqualThreshold(want, 1e-5) {
			t.Errorf("Orientation(%v, %v) forward = %v, want %v", tt.az, tt.alt, forward, want)
		}
	}
}

func TestField_IsStarsLoaded(t *testing.T) {
	f := NewField()
	if f.IsStarsLoaded() {
		t.Error("IsStarsLoaded = true before Generate")
	}

	if _, err := f.Render(60, 1, 0.1, mgl32.Ident4(), 1); err != nil {
		t.Errorf("Render before Generate: %v", err)
	}

	f.Generate(100, 1)
	if !f.IsStarsLoaded() {
		t.Error("IsStarsLoaded = false after Generate")
	}

	f.Load(InputVertices{NewInputVertex(10, 10, 0xffffff)})
	if got := f.Controller().Renderer().StarCount(); got != 1 {
		t.Errorf("StarCount after Load = %d, want 1", got)
	}
}

func TestField_RenderUsesViewMatrix(t *testing.T) {
	// One star straight ahead of a camera turned to azimuth 90°.
	target := &recordingTarget{}
	f := NewField(WithTarget(target))
	f.Load(InputVertices{NewInputVertex(90, 0, 0xffffff), NewInputVertex(270, 0, 0xffffff)})

	view := Orientation(math.Pi/2, 0).Inv()
	stats, err := f.Render(30, 1, 0.1, view, 1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if stats.Stars != 1 {
		t.Fatalf("stars drawn = %d, want 1", stats.Stars)
	}
	drawn := f.Controller().Renderer().Vertices()[target.batches[0].Ranges[0].Offset]
	if drawn.Position.X() < 0.99 {
		t.Errorf("drew star at %v, want the one at +x", drawn.Position)
	}
}
