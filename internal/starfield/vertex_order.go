package starfield

// VertexOrder extracts tile-index bits of vertices for the radix sort.
type VertexOrder struct {
	tiling  Tiling
	scanner Radix2Scanner[uint32]
}

// NewVertexOrder creates a key extractor for tiling.
func NewVertexOrder(tiling Tiling) VertexOrder {
	return VertexOrder{tiling: tiling}
}

// Bit reports the bit of v's tile index selected by state.
func (o VertexOrder) Bit(v InputVertex, state uint32) bool {
	key := uint32(o.tiling.TileIndex(v.azimuth, v.altitude))
	return o.scanner.Bit(key, state)
}

// SortByTile orders vertices in place so that every tile's vertices are
// contiguous and tiles appear in ascending index order.
func SortByTile(vertices InputVertices, tiling Tiling) {
	Radix2InplaceSort[InputVertex, uint32](vertices, NewVertexOrder(tiling), tiling.TileIndexBits())
}
