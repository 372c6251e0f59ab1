package catalog

import (
	"math"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/starfield"
)

const (
	// limitMag is the magnitude rendered at the dimmest visible level.
	limitMag = 3.0
	// minLevel keeps the dimmest named stars visible.
	minLevel = 0.25
	// glareRadius is the distance from the Sun, in degrees, inside which
	// stars fade out.
	glareRadius = 15.0
)

// FromStars places named stars on the sphere by their equatorial
// coordinates: right ascension becomes azimuth and declination altitude.
func FromStars(stars []astro.Star) starfield.InputVertices {
	vertices := make(starfield.InputVertices, len(stars))
	for i, s := range stars {
		vertices[i] = starfield.NewInputVertex(s.Pos.RA, s.Pos.Dec, starColor(s, 1))
	}
	return vertices
}

// FromStarsObserved places named stars in the horizontal frame of obs at t.
// The Sun is appended as the last vertex and stars near it are faded.
func FromStarsObserved(stars []astro.Star, obs astro.Observer, t time.Time) starfield.InputVertices {
	sun := astro.Sun(t)

	vertices := make(starfield.InputVertices, 0, len(stars)+1)
	for _, s := range stars {
		h := s.Pos.ToHorizontal(obs, t)
		fade := math.Min(1, astro.Separation(s.Pos, sun)/glareRadius)
		vertices = append(vertices, starfield.NewInputVertex(h.Azimuth, h.Altitude, starColor(s, fade)))
	}

	h := sun.ToHorizontal(obs, t)
	vertices = append(vertices, starfield.NewInputVertex(h.Azimuth, h.Altitude, starfield.PackColor(255, 250, 220)))
	return vertices
}

// starColor tints s by spectral class and scales it by magnitude and fade.
func starColor(s astro.Star, fade float64) uint32 {
	level := (minLevel + (1-minLevel)*s.Intensity(limitMag)) * fade
	r, g, b := s.Tint()
	scale := func(c uint8) uint8 { return uint8(math.Round(float64(c) * level)) }
	return starfield.PackColor(scale(r), scale(g), scale(b))
}
