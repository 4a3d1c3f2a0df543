package resources

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-forager/internal/core"
	"github.com/vovakirdan/tui-forager/internal/inventory"
)

// Config tunes the spawner.
type Config struct {
	EntityW  float64       // Entity bounding box width
	EntityH  float64       // Entity bounding box height
	Margin   float64       // Keep-out distance from the surface edge
	Interval time.Duration // Minimum game time between timed spawns
	MaxLive  int           // Density cap; zero or less means unlimited
	Initial  int           // Spawn requests issued by SpawnInitial
	Weights  WeightTable
}

// DefaultConfig returns the standard spawner settings.
func DefaultConfig() Config {
	return Config{
		EntityW:  32,
		EntityH:  32,
		Margin:   50,
		Interval: 2 * time.Second,
		MaxLive:  30,
		Initial:  20,
		Weights:  DefaultWeights(),
	}
}

// Entity is a live collectible.
type Entity struct {
	ID        uint64         `json:"id"`
	Kind      inventory.Item `json:"kind"`
	Box       core.Rect      `json:"box"`
	Collected bool           `json:"-"`
}

// Boxed is anything with a bounding box, typically the actor.
type Boxed interface {
	Bounds() core.Rect
}

// Collector receives collected items. *inventory.Store implements it.
type Collector interface {
	Add(item inventory.Item, qty int) bool
}

// Field owns the live entity set and the spawn timer.
type Field struct {
	cfg       Config
	rng       Source
	logger    *log.Logger
	live      []Entity
	lastSpawn time.Duration
	collected int
	nextID    uint64
}

// NewField creates an empty field. A nil logger discards output.
func NewField(cfg Config, rng Source, logger *log.Logger) *Field {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Field{cfg: cfg, rng: rng, logger: logger}
}

// Config returns the spawner settings.
func (f *Field) Config() Config {
	return f.cfg
}

// SpawnOne admits one entity unless the density cap is reached.
// The entity's whole box lies inside bounds.
func (f *Field) SpawnOne(bounds core.Rect) (Entity, bool) {
	if f.cfg.MaxLive > 0 && len(f.live) >= f.cfg.MaxLive {
		f.logger.Debug("spawn declined: field full", "live", len(f.live))
		return Entity{}, false
	}
	kind, ok := f.cfg.Weights.Pick(f.rng)
	if !ok {
		return Entity{}, false
	}

	area := bounds.Inset(f.cfg.Margin)
	box := core.Rect{
		X: area.X + f.rng.Float64()*maxF(area.W-f.cfg.EntityW, 0),
		Y: area.Y + f.rng.Float64()*maxF(area.H-f.cfg.EntityH, 0),
		W: f.cfg.EntityW,
		H: f.cfg.EntityH,
	}
	box = bounds.ClampInside(box)

	f.nextID++
	e := Entity{ID: f.nextID, Kind: kind, Box: box}
	f.live = append(f.live, e)
	return e, true
}

// SpawnInitial issues count spawn requests, each subject to the cap.
// It returns how many entities were admitted.
func (f *Field) SpawnInitial(bounds core.Rect, count int) int {
	n := 0
	for i := 0; i < count; i++ {
		if _, ok := f.SpawnOne(bounds); ok {
			n++
		}
	}
	return n
}

// Tick spawns one entity when more than Interval of game time has passed
// since the previous timed spawn.
func (f *Field) Tick(bounds core.Rect, now time.Duration) (Entity, bool) {
	if now-f.lastSpawn <= f.cfg.Interval {
		return Entity{}, false
	}
	f.lastSpawn = now
	return f.SpawnOne(bounds)
}

// CheckCollision collects at most one entity overlapping the actor.
// Entities are scanned newest first.
func (f *Field) CheckCollision(actor Boxed, c Collector) (Entity, bool) {
	box := actor.Bounds()
	for i := len(f.live) - 1; i >= 0; i-- {
		e := f.live[i]
		if e.Collected || !box.Intersects(e.Box) {
			continue
		}
		if !c.Add(e.Kind, 1) {
			f.logger.Warn("collector rejected item", "kind", e.Kind)
		}
		e.Collected = true
		f.live = append(f.live[:i], f.live[i+1:]...)
		f.collected++
		f.logger.Debug("collected", "kind", e.Kind, "total", f.collected)
		return e, true
	}
	return Entity{}, false
}

// Live returns a copy of the live entities in spawn order.
func (f *Field) Live() []Entity {
	out := make([]Entity, len(f.live))
	copy(out, f.live)
	return out
}

// Len returns the number of live entities.
func (f *Field) Len() int {
	return len(f.live)
}

// Collected returns how many entities have been collected.
func (f *Field) Collected() int {
	return f.collected
}

// Reset empties the field and restarts the spawn timer.
func (f *Field) Reset() {
	f.live = f.live[:0]
	f.lastSpawn = 0
	f.collected = 0
	f.nextID = 0
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
