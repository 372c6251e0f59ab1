// Package state provides thread-safe ownership of the star field for hosts
// that rebuild it on one goroutine while rendering on another.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventGenerated EventType = "GENERATED"
	EventLoaded    EventType = "LOADED"
	EventRetiled   EventType = "RETILED"
	EventRejected  EventType = "REJECTED"
)

// Event records one change to the published field.
type Event struct {
	Type       EventType     `json:"type"`
	Timestamp  time.Time     `json:"timestamp"`
	Stars      int           `json:"stars"`
	Resolution int           `json:"resolution"`
	Seed       uint64        `json:"seed,omitempty"`
	Source     string        `json:"source,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	BuildTime  time.Duration `json:"build_time_ns,omitempty"`
}

// FrameSample is one entry of the frame history.
type FrameSample struct {
	Timestamp time.Time            `json:"timestamp"`
	Stats     starfield.FrameStats `json:"stats"`
	Duration  time.Duration        `json:"duration_ns"`
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen int
	MaxEvents     int
	Resolution    int
	Colorization  float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen: 120,
		MaxEvents:     50,
		Resolution:    starfield.DefaultResolution,
		Colorization:  starfield.DefaultColorization,
	}
}

// Manager owns the published star field. Replacement fields are built
// without holding the render lock and swapped in when complete.
type Manager struct {
	// build serializes rebuilds so they publish in call order.
	build sync.Mutex

	mu         sync.RWMutex
	field      *starfield.Field
	target     starfield.DrawTarget
	seed       uint64
	source     string
	generation uint64

	// Frame history
	history       []FrameSample
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	colorization float64
	logger       *logging.Logger
}

// NewManager creates a manager with an empty field. target may be nil.
func NewManager(cfg Config, target starfield.DrawTarget, logger *logging.Logger) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Manager{
		target:        target,
		maxHistoryLen: cfg.MaxHistoryLen,
		maxEvents:     maxEvents,
		events:        make([]Event, 0, maxEvents),
		colorization:  cfg.Colorization,
		logger:        logger,
	}
	m.field = m.newField(cfg.Resolution)
	if err := m.field.Attach(target); err != nil {
		logger.Error("attach target: %v", err)
	}
	return m
}

// newField builds a detached field; targets are only touched under mu.
func (m *Manager) newField(resolution int) *starfield.Field {
	return starfield.NewField(
		starfield.WithResolution(resolution),
		starfield.WithColorization(m.colorization),
		starfield.WithLogger(m.logger.Named("field")),
	)
}

// Regenerate replaces the stars with numStars random ones drawn from seed.
func (m *Manager) Regenerate(numStars int, seed uint64) bool {
	m.build.Lock()
	defer m.build.Unlock()

	if numStars < 0 {
		m.reject(fmt.Sprintf("negative star count %d", numStars))
		return false
	}

	start := time.Now()
	next := m.newField(m.Resolution())
	if !next.Generate(numStars, seed) {
		m.reject(fmt.Sprintf("generate %d stars", numStars))
		return false
	}

	return m.publish(next, Event{
		Type:      EventGenerated,
		Stars:     numStars,
		Seed:      seed,
		BuildTime: time.Since(start),
	}, func() { m.seed, m.source = seed, "" })
}

// Load replaces the stars with vertices and takes ownership of the slice.
// source names where they came from.
func (m *Manager) Load(vertices starfield.InputVertices, source string) bool {
	m.build.Lock()
	defer m.build.Unlock()

	start := time.Now()
	next := m.newField(m.Resolution())
	if !next.Load(vertices) {
		m.reject(fmt.Sprintf("load %d stars from %s", len(vertices), source))
		return false
	}

	return m.publish(next, Event{
		Type:      EventLoaded,
		Stars:     len(vertices),
		Source:    source,
		BuildTime: time.Since(start),
	}, func() { m.seed, m.source = 0, source })
}

// SetResolution rebuilds the current stars at a new tile resolution. It
// returns false for resolutions outside [starfield.MinResolution,
// starfield.MaxResolution] and for the current resolution.
func (m *Manager) SetResolution(resolution int) bool {
	m.build.Lock()
	defer m.build.Unlock()

	if resolution < starfield.MinResolution {
		m.reject(fmt.Sprintf("tile resolution %d below %d", resolution, starfield.MinResolution))
		return false
	}
	if resolution > starfield.MaxResolution {
		m.reject(fmt.Sprintf("tile resolution %d above %d", resolution, starfield.MaxResolution))
		return false
	}

	m.mu.RLock()
	current := m.field.Controller().Resolution()
	loaded := m.field.IsStarsLoaded()
	vertices := append(starfield.InputVertices(nil), m.field.Controller().Vertices()...)
	m.mu.RUnlock()

	if resolution == current {
		return false
	}

	start := time.Now()
	next := m.newField(resolution)
	if loaded && !next.Load(vertices) {
		m.reject(fmt.Sprintf("retile %d stars at %d", len(vertices), resolution))
		return false
	}

	ev := Event{
		Type:      EventRetiled,
		Stars:     len(vertices),
		Detail:    fmt.Sprintf("%d -> %d", current, resolution),
		BuildTime: time.Since(start),
	}
	if !loaded {
		// Nothing to retile yet; keep the new resolution for the next build.
		ev.Stars = 0
	}
	return m.publish(next, ev, nil)
}

// publish attaches the target to next and makes it current.
func (m *Manager) publish(next *starfield.Field, ev Event, update func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := next.Attach(m.target); err != nil {
		m.logger.Error("publish field: %v", err)
		m.addEvent(Event{Type: EventRejected, Timestamp: time.Now(), Detail: err.Error()})
		// The old field's buffer may have been replaced on the target.
		if err := m.field.Attach(m.target); err != nil {
			m.logger.Error("restore field: %v", err)
		}
		return false
	}

	m.field = next
	m.generation++
	if update != nil {
		update()
	}

	ev.Timestamp = time.Now()
	ev.Resolution = next.Controller().Resolution()
	m.addEvent(ev)
	m.logger.Debug("%s: %d stars at resolution %d in %v", ev.Type, ev.Stars, ev.Resolution, ev.BuildTime)
	return true
}

func (m *Manager) reject(detail string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Warn("rejected: %s", detail)
	m.addEvent(Event{
		Type:       EventRejected,
		Timestamp:  time.Now(),
		Resolution: m.field.Controller().Resolution(),
		Detail:     detail,
	})
}

// addEvent adds an event to the ring buffer. Callers hold mu.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Render draws the published field and records the frame; see
// starfield.Field.Render for the parameters.
func (m *Manager) Render(fovY, aspect, nearZ float32, view mgl32.Mat4, alpha float32) (starfield.FrameStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	stats, err := m.field.Render(fovY, aspect, nearZ, view, alpha)
	if err != nil {
		return stats, err
	}

	if m.maxHistoryLen > 0 {
		m.history = append(m.history, FrameSample{Timestamp: start, Stats: stats, Duration: time.Since(start)})
		if len(m.history) > m.maxHistoryLen {
			m.history = m.history[1:]
		}
	}
	return stats, nil
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Loaded     bool          `json:"loaded"`
	Stars      int           `json:"stars"`
	Resolution int           `json:"resolution"`
	Tiles      int           `json:"tiles"`
	Generation uint64        `json:"generation"`
	Seed       uint64        `json:"seed,omitempty"`
	Source     string        `json:"source,omitempty"`
	LastFrame  *FrameSample  `json:"last_frame,omitempty"`
	Frames     []FrameSample `json:"frames,omitempty"`
	Events     []Event       `json:"events"`
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.field.Controller()
	snap := Snapshot{
		Loaded:     m.field.IsStarsLoaded(),
		Stars:      len(c.Vertices()),
		Resolution: c.Resolution(),
		Tiles:      starfield.NewTiling(c.Resolution()).TileCount(),
		Generation: m.generation,
		Seed:       m.seed,
		Source:     m.source,
		Events:     m.getEventsOrdered(),
	}

	if len(m.history) > 0 {
		snap.Frames = make([]FrameSample, len(m.history))
		copy(snap.Frames, m.history)
		last := snap.Frames[len(snap.Frames)-1]
		snap.LastFrame = &last
	}
	return snap
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Vertices returns a copy of the current input stars in tile order.
func (m *Manager) Vertices() starfield.InputVertices {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(starfield.InputVertices(nil), m.field.Controller().Vertices()...)
}

// Resolution returns the tile resolution of the published field.
func (m *Manager) Resolution() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.field.Controller().Resolution()
}

// HasStars reports whether a star set has been published.
func (m *Manager) HasStars() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.field.IsStarsLoaded()
}
