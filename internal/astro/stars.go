package astro

import (
	"math"
	"strings"
)

// Star is a named bright star.
type Star struct {
	Name  string
	Pos   Equatorial // J2000
	Mag   float64    // apparent visual magnitude, lower is brighter
	Class byte       // spectral class letter: O B A F G K M
}

// brightStars is ordered by magnitude, brightest first.
var brightStars = []Star{
	{"Sirius", Equatorial{101.287, -16.716}, -1.46, 'A'},
	{"Canopus", Equatorial{95.988, -52.696}, -0.74, 'F'},
	{"Arcturus", Equatorial{213.915, 19.182}, -0.05, 'K'},
	{"Vega", Equatorial{279.235, 38.784}, 0.03, 'A'},
	{"Capella", Equatorial{79.172, 45.998}, 0.08, 'G'},
	{"Rigel", Equatorial{78.634, -8.202}, 0.13, 'B'},
	{"Procyon", Equatorial{114.826, 5.225}, 0.34, 'F'},
	{"Achernar", Equatorial{24.429, -57.237}, 0.46, 'B'},
	{"Betelgeuse", Equatorial{88.793, 7.407}, 0.50, 'M'},
	{"Hadar", Equatorial{210.956, -60.373}, 0.61, 'B'},
	{"Altair", Equatorial{297.696, 8.868}, 0.76, 'A'},
	{"Acrux", Equatorial{186.650, -63.099}, 0.76, 'B'},
	{"Aldebaran", Equatorial{68.980, 16.509}, 0.85, 'K'},
	{"Antares", Equatorial{247.352, -26.432}, 0.96, 'M'},
	{"Spica", Equatorial{201.298, -11.161}, 0.97, 'B'},
	{"Pollux", Equatorial{116.329, 28.026}, 1.14, 'K'},
	{"Fomalhaut", Equatorial{344.413, -29.622}, 1.16, 'A'},
	{"Deneb", Equatorial{310.358, 45.280}, 1.25, 'A'},
	{"Mimosa", Equatorial{191.930, -59.689}, 1.25, 'B'},
	{"Regulus", Equatorial{152.093, 11.967}, 1.35, 'B'},
	{"Adhara", Equatorial{104.656, -28.972}, 1.50, 'B'},
	{"Castor", Equatorial{113.650, 31.889}, 1.58, 'A'},
	{"Gacrux", Equatorial{187.791, -57.113}, 1.63, 'M'},
	{"Shaula", Equatorial{263.402, -37.104}, 1.63, 'B'},
	{"Bellatrix", Equatorial{81.283, 6.350}, 1.64, 'B'},
	{"Elnath", Equatorial{81.573, 28.608}, 1.65, 'B'},
	{"Miaplacidus", Equatorial{138.300, -69.717}, 1.68, 'A'},
	{"Alnilam", Equatorial{84.053, -1.202}, 1.69, 'B'},
	{"Alnair", Equatorial{332.058, -46.961}, 1.74, 'B'},
	{"Alnitak", Equatorial{85.190, -1.943}, 1.77, 'O'},
	{"Alioth", Equatorial{193.507, 55.960}, 1.77, 'A'},
	{"Dubhe", Equatorial{165.932, 61.751}, 1.79, 'K'},
	{"Mirfak", Equatorial{51.081, 49.861}, 1.79, 'F'},
	{"Wezen", Equatorial{107.098, -26.393}, 1.84, 'F'},
	{"Alkaid", Equatorial{206.885, 49.313}, 1.86, 'B'},
	{"Alphard", Equatorial{141.897, -8.659}, 2.00, 'K'},
	{"Hamal", Equatorial{31.793, 23.463}, 2.00, 'K'},
	{"Polaris", Equatorial{37.954, 89.264}, 2.02, 'F'},
	{"Mizar", Equatorial{200.981, 54.925}, 2.04, 'A'},
	{"Kochab", Equatorial{222.676, 74.156}, 2.08, 'K'},
	{"Rasalhague", Equatorial{263.734, 12.560}, 2.08, 'A'},
	{"Algol", Equatorial{47.042, 40.957}, 2.12, 'B'},
	{"Denebola", Equatorial{177.265, 14.572}, 2.13, 'A'},
	{"Mintaka", Equatorial{83.002, -0.299}, 2.23, 'O'},
	{"Schedar", Equatorial{10.127, 56.537}, 2.23, 'K'},
	{"Eltanin", Equatorial{269.152, 51.489}, 2.23, 'K'},
}

// BrightStars returns a copy of the built-in star list, brightest first.
func BrightStars() []Star {
	out := make([]Star, len(brightStars))
	copy(out, brightStars)
	return out
}

// Lookup finds a star by name, ignoring case.
func Lookup(name string) (Star, bool) {
	for _, s := range brightStars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}

// Intensity maps the magnitude to [0, 1] relative to limitMag: a star at
// limitMag or dimmer gets 0, a star five magnitudes brighter gets 1.
func (s Star) Intensity(limitMag float64) float64 {
	return math.Max(0, math.Min(1, (limitMag-s.Mag)/5))
}

// Tint returns the approximate color of the star's spectral class.
func (s Star) Tint() (r, g, b uint8) {
	switch s.Class {
	case 'O':
		return 155, 176, 255
	case 'B':
		return 170, 191, 255
	case 'A':
		return 202, 215, 255
	case 'F':
		return 248, 247, 255
	case 'G':
		return 255, 244, 234
	case 'K':
		return 255, 210, 161
	case 'M':
		return 255, 204, 111
	default:
		return 255, 255, 255
	}
}
