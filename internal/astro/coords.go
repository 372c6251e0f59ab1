// Package astro provides the sky math behind the built-in bright stars:
// equatorial and horizontal coordinates, sidereal time and the Sun.
package astro

import (
	"math"
	"time"

	"github.com/litescript/ls-starfield/internal/angle"
)

// Equatorial holds J2000 right ascension and declination in degrees.
type Equatorial struct {
	RA  float64 // 0..360
	Dec float64 // -90..+90
}

// Horizontal holds observer-relative coordinates in degrees.
// Azimuth is measured from north through east.
type Horizontal struct {
	Azimuth  float64
	Altitude float64
}

// Observer is a ground-based observing site.
type Observer struct {
	Lat  float64 // degrees, north positive
	Lon  float64 // degrees, east positive
	Name string
}

// ToHorizontal places eq in the sky of obs at time t.
func (eq Equatorial) ToHorizontal(obs Observer, t time.Time) Horizontal {
	lat := angle.ToRadians(obs.Lat)
	dec := angle.ToRadians(eq.Dec)
	ha := angle.ToRadians(LocalSiderealTime(t, obs.Lon) - eq.RA)

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(sinAlt)

	// atan2 keeps the quadrant and stays defined at the poles.
	az := math.Atan2(
		-math.Cos(dec)*math.Sin(ha),
		math.Sin(dec)*math.Cos(lat)-math.Cos(dec)*math.Sin(lat)*math.Cos(ha),
	)

	return Horizontal{
		Azimuth:  angle.UnsignedNormal(angle.Degrees, angle.ToDegrees(az)),
		Altitude: angle.ToDegrees(alt),
	}
}

// LocalSiderealTime returns the local sidereal time in degrees for a UTC
// instant and an east-positive longitude.
func LocalSiderealTime(t time.Time, lon float64) float64 {
	return angle.UnsignedNormal(angle.Degrees, greenwichSiderealTime(t)+lon)
}

// greenwichSiderealTime is GMST in degrees (IAU 1982).
func greenwichSiderealTime(t time.Time) float64 {
	d := julianDate(t) - j2000
	c := d / 36525.0

	gmst := 280.46061837 +
		360.98564736629*d +
		0.000387933*c*c -
		c*c*c/38710000.0

	return angle.UnsignedNormal(angle.Degrees, gmst)
}

const j2000 = 2451545.0

func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	day := float64(t.Day())
	secs := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
	day += secs / 86400

	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian correction
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + day + b - 1524.5
}
