package starfield

// TileFlags are transient per-frame traversal marks.
type TileFlags uint8

const (
	TileChecked TileFlags = 1 << iota // visibility has been tested this frame
	TileVisited                       // neighbors have been explored
	TileRender                        // passed the visibility test
)

// Tile describes one tile's range of the sorted vertex buffer.
type Tile struct {
	Offset int
	Count  int
	Flags  TileFlags
}

// Cursor addresses a tile by altitude row and azimuth column.
type Cursor struct {
	Row, Col int
}

// tileSelection is the flood fill strategy over a renderer's tile grid.
type tileSelection struct {
	r *Renderer
}

func (s tileSelection) tile(c Cursor) *Tile {
	return &s.r.tiles[c.Row*s.r.tiling.AzimuthalTiles()+c.Col]
}

// Select rejects rows beyond the poles and tiles already tested this frame.
// Every tested tile is recorded so its flags can be cleared afterwards.
func (s tileSelection) Select(c Cursor) bool {
	if c.Row < 0 || c.Row >= s.r.tiling.AltitudinalTiles() {
		return false
	}
	t := s.tile(c)
	if t.Flags&TileChecked != 0 {
		return false
	}
	t.Flags |= TileChecked

	index := c.Row*s.r.tiling.AzimuthalTiles() + c.Col
	s.r.visited = append(s.r.visited, index)
	if s.r.isTileVisible(index) {
		t.Flags |= TileRender
		return true
	}
	return false
}

func (s tileSelection) Process(c Cursor) bool {
	t := s.tile(c)
	if t.Flags&TileVisited != 0 {
		return false
	}
	t.Flags |= TileVisited
	return true
}

func (s tileSelection) Left(c Cursor) Cursor {
	if c.Col == 0 {
		c.Col = s.r.tiling.AzimuthalTiles()
	}
	c.Col--
	return c
}

func (s tileSelection) Right(c Cursor) Cursor {
	c.Col++
	if c.Col == s.r.tiling.AzimuthalTiles() {
		c.Col = 0
	}
	return c
}

func (s tileSelection) Up(c Cursor) Cursor {
	c.Row++
	return c
}

func (s tileSelection) Down(c Cursor) Cursor {
	c.Row--
	return c
}

func (s tileSelection) Defer(c Cursor) {
	s.r.stack = append(s.r.stack, c)
}

func (s tileSelection) Deferred() (Cursor, bool) {
	n := len(s.r.stack)
	if n == 0 {
		return Cursor{}, false
	}
	c := s.r.stack[n-1]
	s.r.stack = s.r.stack[:n-1]
	return c, true
}
