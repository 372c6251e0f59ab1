package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-starfield/internal/angle"
)

// opaque is or-ed into every packed color.
const opaque = 0xff000000

// InputVertex is a star in its source representation.
type InputVertex struct {
	azimuth  float64 // radians, [0, 2pi)
	altitude float64 // radians, [-pi/2, pi/2]
	color    uint32
}

// NewInputVertex creates a vertex from degrees. The angles are converted to
// radians and pole-normalized; the color is forced opaque.
func NewInputVertex(azimuthDeg, altitudeDeg float64, color uint32) InputVertex {
	az, alt := angle.HorizontalPolar(angle.Radians,
		angle.ToRadians(azimuthDeg), angle.ToRadians(altitudeDeg))
	return InputVertex{
		azimuth:  az,
		altitude: alt,
		color:    opaque | color,
	}
}

// Azimuth returns the azimuth in radians.
func (v InputVertex) Azimuth() float64 { return v.azimuth }

// Altitude returns the altitude in radians.
func (v InputVertex) Altitude() float64 { return v.altitude }

// Color returns the packed color (red in the low byte, alpha in the high byte).
func (v InputVertex) Color() uint32 { return v.color }

// InputVertices is an ordered, resizable sequence of input vertices.
type InputVertices []InputVertex

// GpuVertex is the render-ready form of a star.
type GpuVertex struct {
	Color    uint32
	Position mgl32.Vec3 // unit sphere
}

// NewGpuVertex derives the unit-sphere position of v.
func NewGpuVertex(v InputVertex) GpuVertex {
	sinAz, cosAz := math.Sincos(v.azimuth)
	sinAlt, cosAlt := math.Sincos(v.altitude)
	return GpuVertex{
		Color: v.color,
		Position: mgl32.Vec3{
			float32(sinAz * cosAlt),
			float32(sinAlt),
			float32(-cosAz * cosAlt),
		},
	}
}

// UnpackColor splits a packed color into its channels.
func UnpackColor(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// PackColor is the inverse of UnpackColor without alpha.
func PackColor(r, g, b uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16
}

// Brightness sums the three color channels of c.
func Brightness(c uint32) int {
	r, g, b, _ := UnpackColor(c)
	return int(r) + int(g) + int(b)
}
