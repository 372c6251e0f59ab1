package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/starfield"
)

// Star glyphs by displayed intensity.
const (
	glyphBright = '✶'
	glyphMedium = '✸'
	glyphDim    = '+'
	glyphFaint  = '·'
)

type cell struct {
	level   float64
	r, g, b uint8
	set     bool
}

// Canvas is a terminal character grid that implements starfield.DrawTarget.
// Each cell shows the brightest star that lands in it.
type Canvas struct {
	width, height int
	cells         []cell
	vertices      []starfield.GpuVertex
	stars         int
}

// NewCanvas creates a canvas of width x height cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	c.cells = make([]cell, c.width*c.height)
	c.stars = 0
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// Aspect is the aspect ratio to render with, assuming cells twice as tall
// as they are wide.
func (c *Canvas) Aspect() float32 {
	if c.height == 0 {
		return 1
	}
	return float32(c.width) / float32(2*c.height)
}

// Upload copies the vertex buffer.
func (c *Canvas) Upload(vertices []starfield.GpuVertex) error {
	c.vertices = append(c.vertices[:0], vertices...)
	return nil
}

// Draw clears the grid and plots the stars of every range in b.
func (c *Canvas) Draw(b starfield.Batch) error {
	clear(c.cells)
	c.stars = 0

	p := NewProjector(c.width, c.height, b)
	return visit(c.vertices, b, p, func(v starfield.GpuVertex, x, y float64) {
		col, row := int(x), int(y)
		if col >= c.width || row >= c.height {
			return
		}
		c.stars++

		lv := level(v.Color, b.Alpha)
		cl := &c.cells[row*c.width+col]
		if cl.set && cl.level >= lv {
			return
		}
		r, g, bl, _ := starfield.UnpackColor(v.Color)
		*cl = cell{level: lv, r: scale(r, b.Alpha), g: scale(g, b.Alpha), b: scale(bl, b.Alpha), set: true}
	})
}

func scale(c uint8, alpha float32) uint8 {
	return uint8(float32(c) * max(0, min(1, alpha)))
}

// Stars returns how many stars the last Draw placed on the grid.
func (c *Canvas) Stars() int { return c.stars }

// Glyph returns the rune shown at col, row.
func (c *Canvas) Glyph(col, row int) rune {
	if col < 0 || row < 0 || col >= c.width || row >= c.height {
		return ' '
	}
	return glyph(c.cells[row*c.width+col])
}

func glyph(cl cell) rune {
	switch {
	case !cl.set:
		return ' '
	case cl.level >= 0.75:
		return glyphBright
	case cl.level >= 0.45:
		return glyphMedium
	case cl.level >= 0.2:
		return glyphDim
	default:
		return glyphFaint
	}
}

// Plain renders the grid without colors.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			b.WriteRune(c.Glyph(col, row))
		}
		if row < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// String renders the grid with each star in its own color.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			cl := c.cells[row*c.width+col]
			if !cl.set {
				b.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", cl.r, cl.g, cl.b)))
			b.WriteString(style.Render(string(glyph(cl))))
		}
		if row < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
