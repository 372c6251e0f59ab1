package starfield

import "golang.org/x/exp/constraints"

// BitScanner reports one bit of an element's sort key. The state names the
// bit as a single-bit mask.
type BitScanner[T any, K constraints.Unsigned] interface {
	Bit(v T, state K) bool
}

// Radix2Scanner extracts bits from unsigned keys.
type Radix2Scanner[K constraints.Unsigned] struct{}

// Bit reports whether the bit selected by state is set in key.
func (Radix2Scanner[K]) Bit(key K, state K) bool {
	return key&state != 0
}

// TopBit returns the state that selects the most significant of n key bits.
func TopBit[K constraints.Unsigned](n int) K {
	if n <= 0 {
		return 0
	}
	return K(1) << (n - 1)
}

// Radix2InplaceSort orders s by the low n bits of its key, most significant
// bit first, without auxiliary storage. Elements with equal keys end up
// contiguous and runs appear in ascending key order; the order inside a run
// is unspecified.
func Radix2InplaceSort[T any, K constraints.Unsigned](s []T, scanner BitScanner[T, K], n int) {
	radix2Sort(s, scanner, TopBit[K](n))
}

func radix2Sort[T any, K constraints.Unsigned](s []T, scanner BitScanner[T, K], state K) {
	// Recursion depth is bounded by the key width.
	for len(s) > 1 && state != 0 {
		i, j := 0, len(s)
		for i < j {
			if scanner.Bit(s[i], state) {
				j--
				s[i], s[j] = s[j], s[i]
			} else {
				i++
			}
		}
		state >>= 1
		// Recurse into the smaller side and loop on the larger one.
		if i < len(s)-i {
			radix2Sort(s[:i], scanner, state)
			s = s[i:]
		} else {
			radix2Sort(s[i:], scanner, state)
			s = s[:i]
		}
	}
}
