// Package starfield renders a large, static field of stars on the celestial
// sphere with cheap per-frame culling.
//
// Stars are bucketed into a grid of azimuth/altitude tiles. The input
// vertices are sorted in place by tile index with a binary radix sort, so
// every tile owns one contiguous range of the vertex buffer. Each frame a
// flood fill starts at the tile under the view direction and spreads to
// neighboring tiles that pass a conservative cone test; the ranges of the
// accepted tiles are handed to a DrawTarget as a single batch.
//
// Nothing in this package is safe for concurrent use. A host that rebuilds
// a field on another goroutine must publish the result itself (see the
// state package).
package starfield
