package starfield

// FloodFillStrategy drives FloodFill over an abstract grid addressed by
// cursors of type C.
type FloodFillStrategy[C any] interface {
	// Select tests a cell once. It returns true when the fill should
	// propagate from the cell.
	Select(c C) bool
	// Process marks a cell visited; it returns false if it already was.
	Process(c C) bool

	Left(c C) C
	Right(c C) C
	Up(c C) C
	Down(c C) C

	// Defer pushes a cell for later exploration and Deferred pops one.
	Defer(c C)
	Deferred() (C, bool)
}

// FloodFill visits the 4-connected region of selected cells reachable from
// start. It uses the strategy's explicit stack instead of recursion.
func FloodFill[C any](start C, s FloodFillStrategy[C]) {
	if !s.Select(start) {
		return
	}
	s.Defer(start)

	for {
		c, ok := s.Deferred()
		if !ok {
			return
		}
		if !s.Process(c) {
			continue
		}
		for _, n := range [4]C{s.Left(c), s.Right(c), s.Up(c), s.Down(c)} {
			if s.Select(n) {
				s.Defer(n)
			}
		}
	}
}
