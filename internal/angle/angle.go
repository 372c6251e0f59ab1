// Package angle converts and normalizes angles across unit systems.
package angle

import "math"

// Unit describes an angular unit system by the size of a quarter turn.
type Unit struct {
	halfPi float64
}

// Supported unit systems.
var (
	Degrees   = Unit{halfPi: 90}
	Radians   = Unit{halfPi: math.Pi / 2}
	Rotations = Unit{halfPi: 0.25}
)

// HalfPi returns a quarter turn in this unit.
func (u Unit) HalfPi() float64 { return u.halfPi }

// Pi returns a half turn in this unit.
func (u Unit) Pi() float64 { return u.halfPi * 2 }

// TwicePi returns a full turn in this unit.
func (u Unit) TwicePi() float64 { return u.halfPi * 4 }

// Convert rescales a from one unit system into another.
func Convert(a float64, from, to Unit) float64 {
	return a * (to.halfPi / from.halfPi)
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return Convert(deg, Degrees, Radians)
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return Convert(rad, Radians, Degrees)
}

// SignedNormal reduces a to [-pi, pi).
func SignedNormal(u Unit, a float64) float64 {
	r := math.Remainder(a, u.TwicePi())
	if r >= u.Pi() {
		r = -u.Pi()
	}
	return r
}

// UnsignedNormal reduces a to [0, 2pi).
func UnsignedNormal(u Unit, a float64) float64 {
	full := u.TwicePi()
	r := math.Mod(a, full)
	if r < 0 {
		r += full
	}
	// A tiny negative remainder plus a full turn can round up to the turn itself.
	if r >= full {
		r = 0
	}
	return r
}

// HorizontalPolar normalizes an azimuth/altitude pair. Altitude ends in
// [-halfPi, halfPi]; crossing a pole reflects the altitude and turns the
// azimuth by pi. Azimuth ends in [0, 2pi).
func HorizontalPolar(u Unit, azimuth, altitude float64) (float64, float64) {
	altitude = SignedNormal(u, altitude)
	if altitude > u.HalfPi() {
		altitude = u.Pi() - altitude
		azimuth += u.Pi()
	} else if altitude < -u.HalfPi() {
		altitude = -u.Pi() - altitude
		azimuth += u.Pi()
	}
	return UnsignedNormal(u, azimuth), altitude
}

// Lerp interpolates between two angles in u along the shorter arc.
func Lerp(u Unit, a, b, t float64) float64 {
	return a + SignedNormal(u, b-a)*t
}
