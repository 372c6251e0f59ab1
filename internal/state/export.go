package state

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-starfield/internal/starfield"
)

// CameraExport describes the view a frame was rendered with, in degrees.
type CameraExport struct {
	FovY     float64 `json:"fov_y"`
	Aspect   float64 `json:"aspect"`
	Azimuth  float64 `json:"azimuth"`
	Altitude float64 `json:"altitude"`
	Alpha    float64 `json:"alpha"`
}

// SnapshotExport is the JSON-serializable representation of one frame.
type SnapshotExport struct {
	Timestamp  time.Time             `json:"timestamp"`
	Generation uint64                `json:"generation"`
	Stars      int                   `json:"stars"`
	Resolution int                   `json:"resolution"`
	Tiles      int                   `json:"tiles"`
	Seed       uint64                `json:"seed,omitempty"`
	Source     string                `json:"source,omitempty"`
	Camera     CameraExport          `json:"camera"`
	Frame      *starfield.FrameStats `json:"frame,omitempty"`
	Ranges     []starfield.DrawRange `json:"ranges"`
	Events     []Event               `json:"events,omitempty"`
}

// ExportSnapshot combines a manager snapshot with the camera and draw
// ranges of its last frame.
func ExportSnapshot(snap Snapshot, camera CameraExport, ranges []starfield.DrawRange, at time.Time) *SnapshotExport {
	export := &SnapshotExport{
		Timestamp:  at,
		Generation: snap.Generation,
		Stars:      snap.Stars,
		Resolution: snap.Resolution,
		Tiles:      snap.Tiles,
		Seed:       snap.Seed,
		Source:     snap.Source,
		Camera:     camera,
		Ranges:     append([]starfield.DrawRange{}, ranges...),
		Events:     snap.Events,
	}
	if snap.LastFrame != nil {
		stats := snap.LastFrame.Stats
		export.Frame = &stats
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one event row in the summary table.
type SummaryRow struct {
	Time       string
	Type       EventType
	Stars      int
	Resolution int
	Build      string
	Detail     string
}

// GenerateSummaryRows creates summary rows from the snapshot's events.
func GenerateSummaryRows(snap Snapshot) []SummaryRow {
	rows := make([]SummaryRow, 0, len(snap.Events))
	for _, e := range snap.Events {
		detail := e.Detail
		if detail == "" && e.Source != "" {
			detail = e.Source
		}
		if detail == "" && e.Type == EventGenerated {
			detail = fmt.Sprintf("seed %d", e.Seed)
		}
		rows = append(rows, SummaryRow{
			Time:       e.Timestamp.Format("15:04:05"),
			Type:       e.Type,
			Stars:      e.Stars,
			Resolution: e.Resolution,
			Build:      formatBuildTime(e.BuildTime),
			Detail:     detail,
		})
	}
	return rows
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, snap Snapshot, timestamp time.Time) {
	fmt.Fprintf(w, "Starfield @ %s\n", timestamp.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 72))

	fmt.Fprintf(w, "%-12s %d\n", "Stars", snap.Stars)
	fmt.Fprintf(w, "%-12s %d (%d tiles)\n", "Resolution", snap.Resolution, snap.Tiles)
	fmt.Fprintf(w, "%-12s %d\n", "Generation", snap.Generation)
	if snap.Source != "" {
		fmt.Fprintf(w, "%-12s %s\n", "Source", snap.Source)
	} else if snap.Loaded {
		fmt.Fprintf(w, "%-12s %d\n", "Seed", snap.Seed)
	}
	if f := snap.LastFrame; f != nil {
		fmt.Fprintf(w, "%-12s %d visited, %d rendered, %d ranges, %d stars in %v\n", "Frame",
			f.Stats.VisitedTiles, f.Stats.RenderedTiles, f.Stats.Ranges, f.Stats.Stars,
			f.Duration.Round(time.Microsecond))
	}

	rows := GenerateSummaryRows(snap)
	fmt.Fprintln(w, strings.Repeat("─", 72))
	if len(rows) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}

	fmt.Fprintf(w, "%-8s %-9s %8s %4s %-10s %s\n", "Time", "Event", "Stars", "Res", "Build", "Detail")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, r := range rows {
		fmt.Fprintf(w, "%-8s %-9s %8d %4d %-10s %s\n",
			r.Time, r.Type, r.Stars, r.Resolution, r.Build, truncateStr(r.Detail, 30))
	}

	fmt.Fprintf(w, "\nTotal: %d events\n", len(rows))
}

func formatBuildTime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Microsecond).String()
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
