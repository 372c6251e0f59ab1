// Package ui provides the terminal star field viewer using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/version"
)

const (
	headerLines = 2
	footerLines = 2
	nearZ       = 0.1
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// rebuiltMsg reports a finished background rebuild.
	rebuiltMsg struct {
		what string
		ok   bool
	}
)

// Options configure the viewer.
type Options struct {
	Stars    int
	Seed     uint64
	FovY     float64 // degrees
	Azimuth  float64 // degrees
	Altitude float64 // degrees
	Alpha    float32
	Targets  []Target
	// Generated is false when the stars come from a catalog; r then has
	// nothing to regenerate.
	Generated bool
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	canvas *render.Canvas

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	building  bool

	sky   SkyViewModel
	opts  Options
	seed  uint64
	stats starfield.FrameStats
	err   error

	snapshot state.Snapshot
}

// New creates the viewer. canvas must be the draw target of stateMgr.
func New(stateMgr *state.Manager, canvas *render.Canvas, opts Options) Model {
	if opts.Alpha == 0 {
		opts.Alpha = 1
	}
	return Model{
		state:    stateMgr,
		canvas:   canvas,
		sky:      NewSkyViewModel(opts.Azimuth, opts.Altitude, opts.FovY, opts.Targets),
		opts:     opts,
		seed:     opts.Seed,
		snapshot: stateMgr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "r":
			if !m.opts.Generated {
				m.statusMsg = "Catalog loaded; nothing to regenerate"
				break
			}
			m.seed++
			seed, stars := m.seed, m.opts.Stars
			cmd = m.rebuild(fmt.Sprintf("seed %d", seed), func(s *state.Manager) bool {
				return s.Regenerate(stars, seed)
			})

		case "[", "]":
			next := m.state.Resolution() + 1
			if msg.String() == "[" {
				next = m.state.Resolution() - 1
			}
			cmd = m.rebuild(fmt.Sprintf("resolution %d", next), func(s *state.Manager) bool {
				return s.SetResolution(next)
			})

		default:
			m.sky, cmd = m.sky.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.canvas.Resize(msg.Width, max(0, msg.Height-headerLines-footerLines))

	case animTickMsg:
		m.sky, cmd = m.sky.Update(msg)

	case rebuiltMsg:
		m.building = false
		if msg.ok {
			m.statusMsg = "Rebuilt: " + msg.what
		} else {
			m.statusMsg = "Rejected: " + msg.what
		}
		m.snapshot = m.state.Snapshot()

	case TickMsg:
		m.animTick++
		m.snapshot = m.state.Snapshot()
		return m, tickCmd()
	}

	m = m.redraw()
	return m, cmd
}

// rebuild runs fn off the UI goroutine.
func (m *Model) rebuild(what string, fn func(*state.Manager) bool) tea.Cmd {
	m.building = true
	m.statusMsg = "Building " + what + "..."
	mgr := m.state
	return func() tea.Msg {
		return rebuiltMsg{what: what, ok: fn(mgr)}
	}
}

// redraw renders the current camera into the canvas.
func (m Model) redraw() Model {
	if !m.ready || m.canvas.Width() == 0 || m.canvas.Height() == 0 {
		return m
	}
	m.stats, m.err = m.state.Render(
		float32(m.sky.FOV()), m.canvas.Aspect(), nearZ, m.sky.ViewMatrix(), m.opts.Alpha)
	return m
}

// Stats returns the statistics of the last drawn frame.
func (m Model) Stats() starfield.FrameStats { return m.stats }

// Sky returns the camera model.
func (m Model) Sky() SkyViewModel { return m.sky }

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 20 || m.height < headerLines+footerLines+3 {
		return "Star field requires a larger terminal"
	}

	return m.renderHeader() + "\n" + m.canvas.String() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))

	title := titleStyle.Render(renderGradient("✶ LS-STARFIELD")) + dimStyle.Render(" v"+version.Version)

	snap := m.snapshot
	tiles := fmt.Sprintf("res %d · %d tiles", snap.Resolution, snap.Tiles)
	frame := fmt.Sprintf("visible %d/%d · %d ranges · %d/%d stars",
		m.stats.RenderedTiles, m.stats.VisitedTiles, m.stats.Ranges, m.stats.Stars, snap.Stars)

	source := fmt.Sprintf("seed %d", snap.Seed)
	if snap.Source != "" {
		source = snap.Source
	}

	line1 := fmt.Sprintf("%s | %s | %s | %s", title, accentStyle.Render(tiles), dimStyle.Render(frame), dimStyle.Render(source))
	return line1 + "\n" + m.sky.renderStatus()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render("ERROR: " + m.err.Error())
	case m.building:
		spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + " " + dimStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		status = dimStyle.Render(m.statusMsg)
	case len(m.snapshot.Events) > 0:
		ev := m.snapshot.Events[len(m.snapshot.Events)-1]
		status = dimStyle.Render(fmt.Sprintf("%s %d stars @ %d (%s)",
			ev.Type, ev.Stars, ev.Resolution, ev.BuildTime.Round(time.Microsecond)))
	}

	help := dimStyle.Render("←↑↓→/hjkl: pan | +/-: zoom | [/]: tiles | n/N: next star | r: reseed | q: quit")
	return "  " + status + "\n  " + help
}

// renderGradient colors text left to right from blue through purple to pink.
func renderGradient(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(i, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient.
func gradientColor(col, width int) string {
	x := float64(col) / float64(max(width, 1))

	// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF) -> Pink (#EC4899)
	var r, g, b float64
	switch {
	case x < 0.33:
		t := x / 0.33
		r, g, b = 59+t*(139-59), 130+t*(92-130), 246
	case x < 0.66:
		t := (x - 0.33) / 0.33
		r, g, b = 139+t*(217-139), 92+t*(70-92), 246+t*(239-246)
	default:
		t := (x - 0.66) / 0.34
		r, g, b = 217+t*(236-217), 70+t*(72-70), 239+t*(153-239)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	return max(0, min(255, int(v)))
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
