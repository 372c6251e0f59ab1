package astro

import (
	"math"
	"time"

	"github.com/litescript/ls-starfield/internal/angle"
)

// Sun returns the apparent position of the Sun at t, good to a few
// hundredths of a degree.
func Sun(t time.Time) Equatorial {
	c := (julianDate(t) - j2000) / 36525.0

	meanLon := 280.46646 + 36000.76983*c + 0.0003032*c*c
	meanAnom := angle.ToRadians(357.52911 + 35999.05029*c - 0.0001537*c*c)

	center := (1.914602-0.004817*c-0.000014*c*c)*math.Sin(meanAnom) +
		(0.019993-0.000101*c)*math.Sin(2*meanAnom) +
		0.000289*math.Sin(3*meanAnom)

	// Aberration and nutation.
	omega := angle.ToRadians(125.04 - 1934.136*c)
	lon := angle.ToRadians(meanLon + center - 0.00569 - 0.00478*math.Sin(omega))

	obliquity := 23.439291 - 0.0130042*c - 0.00000016*c*c + 0.000000504*c*c*c
	eps := angle.ToRadians(obliquity + 0.00256*math.Cos(omega))

	ra := math.Atan2(math.Cos(eps)*math.Sin(lon), math.Cos(lon))
	dec := math.Asin(math.Sin(eps) * math.Sin(lon))

	return Equatorial{
		RA:  angle.UnsignedNormal(angle.Degrees, angle.ToDegrees(ra)),
		Dec: angle.ToDegrees(dec),
	}
}

// Separation returns the great-circle angle between a and b in degrees.
func Separation(a, b Equatorial) float64 {
	dec1 := angle.ToRadians(a.Dec)
	dec2 := angle.ToRadians(b.Dec)
	dRA := angle.ToRadians(b.RA - a.RA)
	dDec := dec2 - dec1

	h := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1)*math.Cos(dec2)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if h > 1 {
		h = 1
	}

	return angle.ToDegrees(2 * math.Asin(math.Sqrt(h)))
}
