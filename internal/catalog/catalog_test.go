package catalog

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-starfield/internal/angle"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
)

const sample = `# az alt color
; another comment
\ and another

10 20 #ff8040 Aldebaran-ish
370 -30 #ffffff
45 95 #101010
bogus line
12 34 #12345
`

func TestRead(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelWarn)
	log.SetOutput(&buf)

	vertices, stats, err := Read(strings.NewReader(sample), Options{Logger: log})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := Stats{Lines: 9, Stars: 3, Skipped: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if len(vertices) != 3 {
		t.Fatalf("len(vertices) = %d, want 3", len(vertices))
	}

	if got := vertices[0].Color(); got != 0xff4080ff {
		t.Errorf("vertices[0].Color() = %#x, want 0xff4080ff", got)
	}
	if got := angle.ToDegrees(vertices[1].Azimuth()); math.Abs(got-10) > 1e-9 {
		t.Errorf("azimuth 370 normalized to %v, want 10", got)
	}
	// 95 degrees of altitude reflects over the pole.
	if got := angle.ToDegrees(vertices[2].Altitude()); math.Abs(got-85) > 1e-9 {
		t.Errorf("altitude 95 normalized to %v, want 85", got)
	}

	logged := buf.String()
	for _, want := range []string{"line 8:", "line 9:"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log %q does not mention %s", logged, want)
		}
	}
}

func TestRead_Limit(t *testing.T) {
	input := strings.Join([]string{
		"0 0 #202020",
		"1 0 #ffffff",
		"2 0 #404040",
		"3 0 #404040",
		"4 0 #808080",
		"5 0 #101010",
	}, "\n")

	vertices, stats, err := Read(strings.NewReader(input), Options{Limit: 3})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if stats.Evicted != 3 || stats.Stars != 3 {
		t.Errorf("stats = %+v, want 3 evicted and 3 stars", stats)
	}

	// The brightest three in file order; of the tied pair the earlier wins.
	wantAz := []float64{1, 2, 4}
	if len(vertices) != len(wantAz) {
		t.Fatalf("len(vertices) = %d, want %d", len(vertices), len(wantAz))
	}
	for i, az := range wantAz {
		if got := angle.ToDegrees(vertices[i].Azimuth()); math.Abs(got-az) > 1e-9 {
			t.Errorf("vertices[%d] azimuth = %v, want %v", i, got, az)
		}
	}
}

func TestRead_MinBrightness(t *testing.T) {
	input := "0 0 #010101\n1 0 #808080\n2 0 #000000\n"

	vertices, stats, err := Read(strings.NewReader(input), Options{MinBrightness: 10})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(vertices) != 1 || stats.Dimmed != 2 {
		t.Errorf("kept %d, dimmed %d; want 1 and 2", len(vertices), stats.Dimmed)
	}
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"10 20", ErrFieldCount},
		{"10 20 ff8040", ErrColor},
		{"10 20 #ff80", ErrColor},
		{"10 20 #gg8040", ErrColor},
		{"NaN 10 #ffffff", ErrNotFinite},
		{"10 Inf #ffffff", ErrNotFinite},
		{"-inf 10 #ffffff", ErrNotFinite},
	}

	for _, tt := range tests {
		if _, err := ParseLine(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("ParseLine(%q) error = %v, want %v", tt.line, err, tt.want)
		}
	}

	if _, err := ParseLine("north 20 #ffffff"); err == nil || !strings.Contains(err.Error(), "azimuth") {
		t.Errorf("ParseLine(bad azimuth) error = %v, want azimuth error", err)
	}
}

func TestRead_SkipsNonFinite(t *testing.T) {
	input := "NaN 10 #ffffff\n10 Inf #ffffff\n30 40 #ffffff\n"

	vertices, stats, err := Read(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if stats.Stars != 1 || stats.Skipped != 2 {
		t.Errorf("Stars, Skipped = %d, %d, want 1, 2", stats.Stars, stats.Skipped)
	}
	for _, v := range vertices {
		if math.IsNaN(v.Azimuth()) || math.IsNaN(v.Altitude()) {
			t.Errorf("kept vertex with NaN position: %+v", v)
		}
	}
}

func TestWrite_ReadBack(t *testing.T) {
	original := starfield.ComputeStarPositions(nil, 50, 7)

	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, _, err := Read(&buf, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(back) != len(original) {
		t.Fatalf("read back %d stars, want %d", len(back), len(original))
	}
	for i := range original {
		if back[i].Color() != original[i].Color() {
			t.Errorf("star %d color = %#x, want %#x", i, back[i].Color(), original[i].Color())
		}
		if d := math.Abs(back[i].Altitude() - original[i].Altitude()); d > 1e-6 {
			t.Errorf("star %d altitude off by %v", i, d)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "none.txt"), Options{}); err == nil {
		t.Error("LoadFile of missing file returned nil error")
	}
}
