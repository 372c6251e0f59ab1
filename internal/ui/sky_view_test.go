package ui

import (
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSkyView_Pan(t *testing.T) {
	tests := []struct {
		key     string
		wantAz  float64
		wantAlt float64
	}{
		{"left", 354, 0},
		{"h", 354, 0},
		{"right", 6, 0},
		{"l", 6, 0},
		{"up", 0, 6},
		{"k", 0, 6},
		{"down", 0, -6},
		{"j", 0, -6},
	}

	for _, tt := range tests {
		m := NewSkyViewModel(0, 0, 60, nil)
		m, _ = m.Update(key(tt.key))
		if math.Abs(m.Azimuth()-tt.wantAz) > 1e-9 || math.Abs(m.Altitude()-tt.wantAlt) > 1e-9 {
			t.Errorf("%s: camera = (%v, %v), want (%v, %v)", tt.key, m.Azimuth(), m.Altitude(), tt.wantAz, tt.wantAlt)
		}
	}
}

func TestSkyView_AltitudeClamped(t *testing.T) {
	m := NewSkyViewModel(0, 85, 60, nil)
	for i := 0; i < 5; i++ {
		m, _ = m.Update(key("up"))
	}
	if m.Altitude() != maxAlt {
		t.Errorf("Altitude = %v, want %v", m.Altitude(), maxAlt)
	}
}

func TestSkyView_Zoom(t *testing.T) {
	m := NewSkyViewModel(0, 0, 60, nil)
	m, _ = m.Update(key("+"))
	if m.FOV() != 55 {
		t.Errorf("FOV after + = %v, want 55", m.FOV())
	}
	for i := 0; i < 40; i++ {
		m, _ = m.Update(key("+"))
	}
	if m.FOV() != minFOV {
		t.Errorf("FOV = %v, want clamp at %v", m.FOV(), minFOV)
	}
	for i := 0; i < 40; i++ {
		m, _ = m.Update(key("-"))
	}
	if m.FOV() != maxFOV {
		t.Errorf("FOV = %v, want clamp at %v", m.FOV(), maxFOV)
	}
}

func TestSkyView_FlyToTarget(t *testing.T) {
	targets := []Target{{"Alpha", 10, 20}, {"Beta", 200, -10}}
	m := NewSkyViewModel(350, 0, 60, targets)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m, cmd := m.focusNext(start)
	if cmd == nil || !m.Animating() {
		t.Fatal("focusNext did not start an animation")
	}
	if tgt, _ := m.Focused(); tgt.Name != "Alpha" {
		t.Errorf("Focused = %q, want Alpha", tgt.Name)
	}

	// Halfway in time is most of the way there with ease-out; the short
	// way from 350 to 10 crosses north.
	m, _ = m.updateAnimation(start.Add(animDuration / 2))
	if az := m.Azimuth(); az < 355 && az > 10 {
		t.Errorf("mid-flight azimuth = %v, want on the short arc through 0", az)
	}
	if alt := m.Altitude(); math.Abs(alt-17.5) > 1e-9 {
		t.Errorf("mid-flight altitude = %v, want 17.5", alt)
	}

	m, cmd = m.updateAnimation(start.Add(animDuration))
	if cmd != nil || m.Animating() {
		t.Error("animation still running after its duration")
	}
	if m.Azimuth() != 10 || m.Altitude() != 20 {
		t.Errorf("camera = (%v, %v), want (10, 20)", m.Azimuth(), m.Altitude())
	}

	m, _ = m.focusPrev(start)
	if tgt, _ := m.Focused(); tgt.Name != "Beta" {
		t.Errorf("Focused after wrapping back = %q, want Beta", tgt.Name)
	}
}

func TestSkyView_PanCancelsFlight(t *testing.T) {
	m := NewSkyViewModel(0, 0, 60, []Target{{"Alpha", 90, 0}})
	m, _ = m.Update(key("n"))
	m, _ = m.Update(key("left"))
	if m.Animating() {
		t.Error("pan did not cancel the flight")
	}
}

func TestSkyView_NoTargets(t *testing.T) {
	m := NewSkyViewModel(0, 0, 60, nil)
	m, cmd := m.Update(key("n"))
	if cmd != nil || m.Animating() {
		t.Error("n without targets started an animation")
	}
	if _, ok := m.Focused(); ok {
		t.Error("Focused() ok without targets")
	}
}

func TestSkyView_ViewMatrix(t *testing.T) {
	m := NewSkyViewModel(90, 30, 60, nil)

	// The camera looks down -Z, so the view matrix maps the look direction there.
	az, alt := 90*math.Pi/180, 30*math.Pi/180
	dir := mgl32.Vec4{
		float32(math.Sin(az) * math.Cos(alt)),
		float32(math.Sin(alt)),
		float32(-math.Cos(az) * math.Cos(alt)),
		0,
	}
	got := m.ViewMatrix().Mul4x1(dir)
	if !got.ApproxEqualThreshold(mgl32.Vec4{0, 0, -1, 0}, 1e-5) {
		t.Errorf("view * look direction = %v, want (0, 0, -1)", got)
	}
}
