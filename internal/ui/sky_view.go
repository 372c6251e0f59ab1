package ui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-starfield/internal/angle"
	"github.com/litescript/ls-starfield/internal/starfield"
)

const (
	// Camera limits in degrees
	minFOV     = 10.0
	maxFOV     = 150.0
	fovStep    = 5.0
	maxAlt     = 89.0
	panDivisor = 10.0

	// Animation
	animDuration  = 600 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	colorTarget = "229" // bright gold
)

// Target is a named point the camera can fly to. Angles are in degrees.
type Target struct {
	Name     string
	Azimuth  float64
	Altitude float64
}

// SkyViewModel is the camera over the star field: where it looks, how wide,
// and the eased flight between named targets.
type SkyViewModel struct {
	// Camera (degrees)
	camAz  float64
	camAlt float64
	fovY   float64

	// Animation state
	animating    bool
	animStartAz  float64
	animStartAlt float64
	animTargAz   float64
	animTargAlt  float64
	animStart    time.Time

	targets  []Target
	focusIdx int // -1 until the first flight
}

// NewSkyViewModel creates a camera looking at az/alt with vertical field of
// view fovY, all in degrees.
func NewSkyViewModel(az, alt, fovY float64, targets []Target) SkyViewModel {
	m := SkyViewModel{fovY: fovY, targets: targets, focusIdx: -1}
	return m.lookAt(az, alt)
}

func (m SkyViewModel) lookAt(az, alt float64) SkyViewModel {
	m.camAz = angle.UnsignedNormal(angle.Degrees, az)
	m.camAlt = math.Max(-maxAlt, math.Min(maxAlt, alt))
	return m
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles camera keys and animation ticks.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		step := m.fovY / panDivisor
		switch msg.String() {
		case "left", "h":
			m.animating = false
			return m.lookAt(m.camAz-step, m.camAlt), nil
		case "right", "l":
			m.animating = false
			return m.lookAt(m.camAz+step, m.camAlt), nil
		case "up", "k":
			m.animating = false
			return m.lookAt(m.camAz, m.camAlt+step), nil
		case "down", "j":
			m.animating = false
			return m.lookAt(m.camAz, m.camAlt-step), nil
		case "+", "=":
			m.fovY = math.Max(minFOV, m.fovY-fovStep)
		case "-", "_":
			m.fovY = math.Min(maxFOV, m.fovY+fovStep)
		case "n":
			return m.focusNext(time.Now())
		case "N":
			return m.focusPrev(time.Now())
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation(time.Time(msg))
		}
	}

	return m, nil
}

func (m SkyViewModel) focusNext(now time.Time) (SkyViewModel, tea.Cmd) {
	if len(m.targets) == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.targets)
	return m.startAnimation(now)
}

func (m SkyViewModel) focusPrev(now time.Time) (SkyViewModel, tea.Cmd) {
	if len(m.targets) == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.targets) - 1
	}
	return m.startAnimation(now)
}

func (m SkyViewModel) startAnimation(now time.Time) (SkyViewModel, tea.Cmd) {
	target := m.targets[m.focusIdx]
	m.animating = true
	m.animStartAz = m.camAz
	m.animStartAlt = m.camAlt
	m.animTargAz = target.Azimuth
	m.animTargAlt = target.Altitude
	m.animStart = now

	return m, animTick()
}

func (m SkyViewModel) updateAnimation(now time.Time) (SkyViewModel, tea.Cmd) {
	t := float64(now.Sub(m.animStart)) / float64(animDuration)

	if t >= 1.0 {
		m.animating = false
		return m.lookAt(m.animTargAz, m.animTargAlt), nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	m = m.lookAt(
		angle.Lerp(angle.Degrees, m.animStartAz, m.animTargAz, t),
		m.animStartAlt+(m.animTargAlt-m.animStartAlt)*t,
	)
	return m, animTick()
}

// Azimuth returns the camera azimuth in degrees.
func (m SkyViewModel) Azimuth() float64 { return m.camAz }

// Altitude returns the camera altitude in degrees.
func (m SkyViewModel) Altitude() float64 { return m.camAlt }

// FOV returns the vertical field of view in degrees.
func (m SkyViewModel) FOV() float64 { return m.fovY }

// Animating reports whether a flight is in progress.
func (m SkyViewModel) Animating() bool { return m.animating }

// Focused returns the target of the last flight.
func (m SkyViewModel) Focused() (Target, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.targets) {
		return Target{}, false
	}
	return m.targets[m.focusIdx], true
}

// ViewMatrix returns the world-to-camera matrix for the current camera.
func (m SkyViewModel) ViewMatrix() mgl32.Mat4 {
	orientation := starfield.Orientation(angle.ToRadians(m.camAz), angle.ToRadians(m.camAlt))
	return orientation.Transpose()
}

func (m SkyViewModel) renderStatus() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	compass := dimStyle.Render(fmt.Sprintf("Az:%.0f° Alt:%.0f° FOV:%.0f°", m.camAz, m.camAlt, m.fovY))

	target, ok := m.Focused()
	if !ok {
		return compass
	}
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorTarget))
	arrow := "►"
	if m.animating {
		arrow = "»"
	}
	return compass + "  " + accentStyle.Render(fmt.Sprintf("%s %s (Az:%.0f° Alt:%.0f°)",
		arrow, target.Name, target.Azimuth, target.Altitude))
}
