// Command ls-starfield is a terminal viewer for a tiled, culled star field.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	miniSkyMode  bool
	pngPath      string
	snapshotPath string
	pngWidth     int
	pngHeight    int
)

// Flags that override the config file. Only flags given on the command
// line are applied.
var (
	configPath    string
	numStars      int
	seed          uint64
	resolution    int
	fovY          float64
	aspect        float64
	alpha         float64
	azimuth       float64
	altitude      float64
	catalogPath   string
	catalogLimit  int
	brightMode    bool
	observeMode   bool
	latitude      float64
	longitude     float64
	observeAtFlag string
)

const (
	miniSkyWidth  = 72
	miniSkyHeight = 20
)

func main() {
	defaults := config.DefaultConfig()

	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&configPath, "config", "", "TOML config file")
	flag.IntVar(&numStars, "stars", defaults.Stars, "Number of random stars to generate")
	flag.Uint64Var(&seed, "seed", defaults.Seed, "Random seed")
	flag.IntVar(&resolution, "resolution", defaults.Resolution, "Tile resolution (tiles per altitude ring, 4-65536)")
	flag.Float64Var(&fovY, "fov", defaults.Camera.FovY, "Vertical field of view in degrees")
	flag.Float64Var(&aspect, "aspect", defaults.Camera.Aspect, "Aspect ratio for headless frames")
	flag.Float64Var(&alpha, "alpha", defaults.Camera.Alpha, "Star opacity (0-1)")
	flag.Float64Var(&azimuth, "az", defaults.Camera.Azimuth, "Camera azimuth in degrees")
	flag.Float64Var(&altitude, "alt", defaults.Camera.Altitude, "Camera altitude in degrees")
	flag.StringVar(&catalogPath, "catalog", "", "Load stars from a plain-text catalog")
	flag.IntVar(&catalogLimit, "catalog-limit", 0, "Keep only the N brightest catalog stars")
	flag.BoolVar(&brightMode, "bright", false, "Use the built-in named bright stars")
	flag.BoolVar(&observeMode, "observe", false, "Place bright stars in the sky of -lat/-lon")
	flag.Float64Var(&latitude, "lat", 0, "Observer latitude in degrees (north positive)")
	flag.Float64Var(&longitude, "lon", 0, "Observer longitude in degrees (east positive)")
	flag.StringVar(&observeAtFlag, "at", "", "Observation time, RFC3339 (default now)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.BoolVar(&miniSkyMode, "mini-sky", false, "Print one frame of the sky view")
	flag.StringVar(&pngPath, "png", "", "Render one frame to a PNG file")
	flag.IntVar(&pngWidth, "png-width", 1024, "PNG width in pixels")
	flag.IntVar(&pngHeight, "png-height", 768, "PNG height in pixels")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := summaryMode || miniSkyMode || pngPath != "" || snapshotPath != ""
	if !headless && !isTTY {
		logger.Info("stdout is not a terminal; printing a summary")
		summaryMode, headless = true, true
	}

	stateCfg := state.DefaultConfig()
	stateCfg.Resolution = cfg.Resolution
	stateCfg.Colorization = cfg.Colorization

	if headless {
		if err := runHeadless(cfg, stateCfg, isTTY, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	canvas := render.NewCanvas(0, 0)
	stateMgr := state.NewManager(stateCfg, canvas, logger.Named("state"))
	generated, targets, err := loadStars(stateMgr, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create TUI model
	model := ui.New(stateMgr, canvas, ui.Options{
		Stars:     cfg.Stars,
		Seed:      cfg.Seed,
		FovY:      cfg.Camera.FovY,
		Azimuth:   cfg.Camera.Azimuth,
		Altitude:  cfg.Camera.Altitude,
		Alpha:     float32(cfg.Camera.Alpha),
		Targets:   targets,
		Generated: generated,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies the flags that
// were set explicitly.
func loadConfig() (config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stars":
			cfg.Stars = numStars
		case "seed":
			cfg.Seed = seed
		case "resolution":
			cfg.Resolution = resolution
		case "fov":
			cfg.Camera.FovY = fovY
		case "aspect":
			cfg.Camera.Aspect = aspect
		case "alpha":
			cfg.Camera.Alpha = alpha
		case "az":
			cfg.Camera.Azimuth = azimuth
		case "alt":
			cfg.Camera.Altitude = altitude
		case "catalog":
			cfg.Catalog.Path = catalogPath
		case "catalog-limit":
			cfg.Catalog.Limit = catalogLimit
		case "bright", "observe":
			cfg.Catalog.Bright = brightMode || observeMode
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadStars publishes the configured star set. It reports whether the stars
// were generated and returns the named stars the viewer can fly to.
func loadStars(mgr *state.Manager, cfg config.Config, logger *logging.Logger) (bool, []ui.Target, error) {
	bright := astro.BrightStars()

	switch {
	case cfg.Catalog.Path != "":
		vertices, stats, err := catalog.LoadFile(cfg.Catalog.Path, catalog.Options{
			Limit:         cfg.Catalog.Limit,
			MinBrightness: cfg.Catalog.MinBrightness,
			Logger:        logger.Named("catalog"),
		})
		if err != nil {
			return false, nil, err
		}
		logger.Info("catalog %s: %d stars (%d skipped, %d dimmed, %d evicted)",
			cfg.Catalog.Path, stats.Stars, stats.Skipped, stats.Dimmed, stats.Evicted)
		if !mgr.Load(vertices, cfg.Catalog.Path) {
			return false, nil, fmt.Errorf("load catalog %s", cfg.Catalog.Path)
		}
		return false, nil, nil

	case cfg.Catalog.Bright && observeMode:
		at, err := observeAt()
		if err != nil {
			return false, nil, err
		}
		obs := astro.Observer{Lat: latitude, Lon: longitude, Name: "observer"}
		if !mgr.Load(catalog.FromStarsObserved(bright, obs, at), "bright stars @ "+at.Format(time.RFC3339)) {
			return false, nil, fmt.Errorf("load bright stars")
		}
		targets := make([]ui.Target, 0, len(bright))
		for _, s := range bright {
			h := s.Pos.ToHorizontal(obs, at)
			targets = append(targets, ui.Target{Name: s.Name, Azimuth: h.Azimuth, Altitude: h.Altitude})
		}
		return false, targets, nil

	case cfg.Catalog.Bright:
		if !mgr.Load(catalog.FromStars(bright), "bright stars") {
			return false, nil, fmt.Errorf("load bright stars")
		}
		return false, equatorialTargets(bright), nil

	default:
		start := time.Now()
		if !mgr.Regenerate(cfg.Stars, cfg.Seed) {
			return false, nil, fmt.Errorf("generate %d stars", cfg.Stars)
		}
		logger.Debug("generated %d stars in %v", cfg.Stars, time.Since(start))
		return true, equatorialTargets(bright), nil
	}
}

// equatorialTargets uses right ascension and declination as azimuth and
// altitude, matching catalog.FromStars.
func equatorialTargets(stars []astro.Star) []ui.Target {
	targets := make([]ui.Target, len(stars))
	for i, s := range stars {
		targets[i] = ui.Target{Name: s.Name, Azimuth: s.Pos.RA, Altitude: s.Pos.Dec}
	}
	return targets
}

func observeAt() (time.Time, error) {
	if observeAtFlag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, observeAtFlag)
	if err != nil {
		return t, fmt.Errorf("parse -at: %w", err)
	}
	return t, nil
}

// runHeadless renders single frames without starting the TUI.
func runHeadless(cfg config.Config, stateCfg state.Config, isTTY bool, logger *logging.Logger) error {
	recorder := &render.Recorder{}
	targets := render.Tee{recorder}

	var canvas *render.Canvas
	if miniSkyMode {
		w, h := miniSkyWidth, miniSkyHeight
		if isTTY {
			if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 && th > 4 {
				w, h = tw, min(th-4, 2*miniSkyHeight)
			}
		}
		canvas = render.NewCanvas(w, h)
		targets = append(targets, canvas)
	}

	var img *render.Image
	if pngPath != "" {
		img = render.NewImage(pngWidth, pngHeight)
		defer img.Close()
		targets = append(targets, img)
	}

	stateMgr := state.NewManager(stateCfg, targets, logger.Named("state"))
	if _, _, err := loadStars(stateMgr, cfg, logger); err != nil {
		return err
	}

	view := ui.NewSkyViewModel(cfg.Camera.Azimuth, cfg.Camera.Altitude, cfg.Camera.FovY, nil).ViewMatrix()
	nearZ := float32(cfg.Camera.NearZ)
	alphaF := float32(cfg.Camera.Alpha)
	frame := func(aspect float32) (starfield.FrameStats, error) {
		stats, err := stateMgr.Render(float32(cfg.Camera.FovY), aspect, nearZ, view, alphaF)
		if err != nil {
			return stats, fmt.Errorf("render: %w", err)
		}
		return stats, nil
	}

	if _, err := frame(float32(cfg.Camera.Aspect)); err != nil {
		return err
	}
	snap := stateMgr.Snapshot()

	// Export JSON if requested
	if snapshotPath != "" {
		export := state.ExportSnapshot(snap, state.CameraExport{
			FovY:     cfg.Camera.FovY,
			Aspect:   cfg.Camera.Aspect,
			Azimuth:  cfg.Camera.Azimuth,
			Altitude: cfg.Camera.Altitude,
			Alpha:    cfg.Camera.Alpha,
		}, recorder.Last().Ranges, time.Now())
		if err := writeSnapshot(export); err != nil {
			return err
		}
	}

	// Print summary table if requested
	if summaryMode {
		state.WriteSummaryTable(os.Stdout, snap, time.Now())
	}

	// Mini sky view
	if canvas != nil {
		stats, err := frame(canvas.Aspect())
		if err != nil {
			return err
		}
		if summaryMode {
			fmt.Println()
		}
		if isTTY {
			fmt.Println(canvas.String())
		} else {
			fmt.Println(canvas.Plain())
		}
		fmt.Printf("%d of %d stars in %d ranges\n", canvas.Stars(), snap.Stars, stats.Ranges)
	}

	if img != nil {
		if _, err := frame(img.Aspect()); err != nil {
			return err
		}
		if err := writePNG(img, pngPath); err != nil {
			return err
		}
		logger.Info("wrote %s (%d stars)", pngPath, img.Stars())
	}
	return nil
}

func writeSnapshot(export *state.SnapshotExport) error {
	if snapshotPath == "-" {
		if err := export.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(snapshotPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

func writePNG(img *render.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := img.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
