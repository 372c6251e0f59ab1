// Package config loads the star field settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-starfield/internal/starfield"
)

// Config holds all settings of a star field session.
type Config struct {
	Stars        int     `toml:"stars"`
	Seed         uint64  `toml:"seed"`
	Resolution   int     `toml:"resolution"`
	Colorization float64 `toml:"colorization"`
	Camera       Camera  `toml:"camera"`
	Catalog      Catalog `toml:"catalog"`
}

// Camera describes the initial view. Angles are in degrees.
type Camera struct {
	FovY     float64 `toml:"fov_y"`
	Aspect   float64 `toml:"aspect"`
	NearZ    float64 `toml:"near_z"`
	Alpha    float64 `toml:"alpha"`
	Azimuth  float64 `toml:"azimuth"`
	Altitude float64 `toml:"altitude"`
}

// Catalog selects a star catalog instead of random generation.
type Catalog struct {
	Path          string `toml:"path"`           // plain-text catalog file
	Limit         int    `toml:"limit"`          // keep the brightest N stars, 0 = all
	MinBrightness int    `toml:"min_brightness"` // drop stars dimmer than this channel sum
	Bright        bool   `toml:"bright"`         // use the built-in named bright stars
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Stars:        50000,
		Seed:         1,
		Resolution:   starfield.DefaultResolution,
		Colorization: starfield.DefaultColorization,
		Camera: Camera{
			FovY:   60,
			Aspect: 4.0 / 3.0,
			NearZ:  0.1,
			Alpha:  1,
		},
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("decode config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings and reports every problem found.
func (c Config) Validate() error {
	var errs []error
	if c.Stars < 0 {
		errs = append(errs, fmt.Errorf("stars must not be negative, got %d", c.Stars))
	}
	if c.Resolution < starfield.MinResolution || c.Resolution > starfield.MaxResolution {
		errs = append(errs, fmt.Errorf("resolution must be in [%d, %d], got %d",
			starfield.MinResolution, starfield.MaxResolution, c.Resolution))
	}
	if c.Colorization < 0 || c.Colorization > 1 {
		errs = append(errs, fmt.Errorf("colorization must be in [0, 1], got %v", c.Colorization))
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov_y must be in (0, 180), got %v", c.Camera.FovY))
	}
	if c.Camera.Aspect <= 0 {
		errs = append(errs, fmt.Errorf("camera.aspect must be positive, got %v", c.Camera.Aspect))
	}
	if c.Camera.NearZ <= 0 {
		errs = append(errs, fmt.Errorf("camera.near_z must be positive, got %v", c.Camera.NearZ))
	}
	if c.Camera.Alpha < 0 || c.Camera.Alpha > 1 {
		errs = append(errs, fmt.Errorf("camera.alpha must be in [0, 1], got %v", c.Camera.Alpha))
	}
	if c.Catalog.Limit < 0 {
		errs = append(errs, fmt.Errorf("catalog.limit must not be negative, got %d", c.Catalog.Limit))
	}
	return errors.Join(errs...)
}

// Encode returns the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
