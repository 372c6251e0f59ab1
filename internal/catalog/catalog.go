// Package catalog reads star catalogs into input vertices for a star field.
//
// The text format has one star per line:
//
//	azimuth altitude #RRGGBB [name...]
//
// Angles are in degrees. Blank lines and lines starting with '#', ';' or '\'
// are comments. Fields after the color are ignored.
package catalog

import (
	"bufio"
	"container/heap"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/litescript/ls-starfield/internal/angle"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
)

var (
	ErrFieldCount = errors.New("want azimuth, altitude and color")
	ErrColor      = errors.New("color must be #RRGGBB")
	ErrNotFinite  = errors.New("angle must be finite")
)

// Options control which stars are kept.
type Options struct {
	// Limit keeps only the Limit brightest stars. Zero keeps all.
	Limit int
	// MinBrightness drops stars whose channel sum is below it.
	MinBrightness int
	Logger        *logging.Logger
}

// Stats describes one catalog read.
type Stats struct {
	Lines   int `json:"lines"`
	Stars   int `json:"stars"`   // stars returned
	Skipped int `json:"skipped"` // malformed lines
	Dimmed  int `json:"dimmed"`  // below MinBrightness
	Evicted int `json:"evicted"` // pushed out by Limit
}

// LineError reports a malformed catalog line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// LoadFile reads the catalog at path.
func LoadFile(path string, opts Options) (starfield.InputVertices, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	vertices, stats, err := Read(f, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return vertices, stats, nil
}

// Read parses a catalog. Malformed lines are logged and skipped; only I/O
// errors are returned. The result keeps the file order of the kept stars.
func Read(r io.Reader, opts Options) (starfield.InputVertices, Stats, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	var (
		stats Stats
		kept  = &brightest{}
		seq   int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		stats.Lines++
		line := strings.TrimSpace(sc.Text())
		if isComment(line) {
			continue
		}

		v, err := ParseLine(line)
		if err != nil {
			stats.Skipped++
			log.Warn("%v", &LineError{Line: stats.Lines, Err: err})
			continue
		}
		if starfield.Brightness(v.Color()) < opts.MinBrightness {
			stats.Dimmed++
			continue
		}

		heap.Push(kept, ranked{vertex: v, seq: seq})
		seq++
		if opts.Limit > 0 && kept.Len() > opts.Limit {
			heap.Pop(kept)
			stats.Evicted++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, stats, err
	}

	entries := []ranked(*kept)
	slices.SortFunc(entries, func(a, b ranked) int { return a.seq - b.seq })

	vertices := make(starfield.InputVertices, len(entries))
	for i, e := range entries {
		vertices[i] = e.vertex
	}
	stats.Stars = len(vertices)

	log.Debug("read %d stars from %d lines (%d skipped, %d dimmed, %d evicted)",
		stats.Stars, stats.Lines, stats.Skipped, stats.Dimmed, stats.Evicted)
	return vertices, stats, nil
}

func isComment(line string) bool {
	if line == "" {
		return true
	}
	switch line[0] {
	case '#', ';', '\\':
		return true
	}
	return false
}

// ParseLine parses a single non-comment catalog line.
func ParseLine(line string) (starfield.InputVertex, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return starfield.InputVertex{}, ErrFieldCount
	}

	az, err := parseAngle(fields[0])
	if err != nil {
		return starfield.InputVertex{}, fmt.Errorf("azimuth: %w", err)
	}
	alt, err := parseAngle(fields[1])
	if err != nil {
		return starfield.InputVertex{}, fmt.Errorf("altitude: %w", err)
	}
	color, err := parseColor(fields[2])
	if err != nil {
		return starfield.InputVertex{}, err
	}

	return starfield.NewInputVertex(az, alt, color), nil
}

// parseAngle parses degrees, rejecting NaN and infinities.
func parseAngle(s string) (float64, error) {
	a, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("%w, got %q", ErrNotFinite, s)
	}
	return a, nil
}

// parseColor turns #RRGGBB into the packed red-low layout.
func parseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("%w, got %q", ErrColor, s)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", ErrColor, s)
	}
	return starfield.PackColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)), nil
}

// FormatLine is the inverse of ParseLine.
func FormatLine(v starfield.InputVertex) string {
	r, g, b, _ := starfield.UnpackColor(v.Color())
	return fmt.Sprintf("%.6f %.6f #%02x%02x%02x",
		angle.ToDegrees(v.Azimuth()), angle.ToDegrees(v.Altitude()), r, g, b)
}

// Write stores vertices in the text format.
func Write(w io.Writer, vertices starfield.InputVertices) error {
	bw := bufio.NewWriter(w)
	for _, v := range vertices {
		if _, err := fmt.Fprintln(bw, FormatLine(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type ranked struct {
	vertex starfield.InputVertex
	seq    int
}

// brightest is a min-heap on brightness, so the root is the first star to
// evict. Among equals the later star goes first.
type brightest []ranked

func (h brightest) Len() int { return len(h) }

func (h brightest) Less(i, j int) bool {
	bi, bj := starfield.Brightness(h[i].vertex.Color()), starfield.Brightness(h[j].vertex.Color())
	if bi != bj {
		return bi < bj
	}
	return h[i].seq > h[j].seq
}

func (h brightest) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *brightest) Push(x any) { *h = append(*h, x.(ranked)) }

func (h *brightest) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
