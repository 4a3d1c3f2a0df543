// Package forager implements the resource gathering simulation: an actor
// roams a bounded field, collects spawned resources into an inventory and
// crafts tools from them.
package forager

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-forager/internal/actor"
	"github.com/vovakirdan/tui-forager/internal/assets"
	"github.com/vovakirdan/tui-forager/internal/config"
	"github.com/vovakirdan/tui-forager/internal/core"
	"github.com/vovakirdan/tui-forager/internal/crafting"
	"github.com/vovakirdan/tui-forager/internal/inventory"
	"github.com/vovakirdan/tui-forager/internal/registry"
	"github.com/vovakirdan/tui-forager/internal/resources"
)

// Mode identifiers.
const (
	ModeStandard = "forager"
	ModeClassic  = "forager_classic"
)

const (
	// maxStep bounds the time one Step may simulate, so a stalled host
	// does not teleport the actor.
	maxStep = 250 * time.Millisecond
	// maxEvents is how many notifications the snapshot keeps.
	maxEvents = 5
)

// Game runs one forager session.
type Game struct {
	id     string
	title  string
	cfg    config.ForagerConfig
	logger *log.Logger
	assets *assets.Library

	session *Session
	rt      core.RuntimeConfig

	actor  *actor.Actor
	field  *resources.Field
	store  *inventory.Store
	engine *crafting.Engine

	clock     time.Duration
	tick      uint64
	paused    bool
	craftOpen bool
	crafted   int
	events    []Event
	eventSeq  uint64
}

// New creates a game for the given mode. The config must be valid.
func New(id, title string, cfg config.ForagerConfig, logger *log.Logger, lib *assets.Library) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{id: id, title: title, cfg: cfg, logger: logger, assets: lib}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a new session: empty inventory and field, actor centered.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.session = NewSession(g.id, g.cfg, rt.Seed, g.logger, g.assets)
	s := g.session

	catalog, err := s.Config.Catalog()
	if err != nil {
		// Validated in New.
		panic(err)
	}

	acfg := s.Config.ActorSettings()
	cx, cy := s.Bounds.Center()
	start := core.Vec2{X: cx - acfg.Width/2, Y: cy - acfg.Height/2}

	g.actor = actor.New(acfg, start, s.Logger)
	g.field = resources.NewField(s.Config.FieldSettings(), s.Rand, s.Logger)
	g.store = inventory.NewStore(s.Config.Inventory.Capacity)
	g.engine = crafting.NewEngine(catalog, s.Logger)

	g.clock = 0
	g.tick = 0
	g.paused = false
	g.craftOpen = false
	g.crafted = 0
	g.events = nil
	g.eventSeq = 0

	g.field.SpawnInitial(s.Bounds, g.field.Config().Initial)
	s.Logger.Debug("session started", "resources", g.field.Len())
}

// Step runs one tick: commands, then input, movement, spawning and
// collection, in that order. Paused ticks only process commands.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if in.Pressed(core.ActionPause) {
		g.TogglePause()
	}
	if in.Pressed(core.ActionCraft) {
		g.craftOpen = !g.craftOpen
	}
	if in.Pressed(core.ActionReset) {
		g.ClearInventory()
	}

	if g.paused {
		return g.result()
	}

	if dt <= 0 {
		dt = g.rt.FrameInterval()
	}
	if dt > maxStep {
		dt = maxStep
	}
	g.clock += dt
	g.tick++

	bounds := g.session.Bounds
	g.actor.HandleInput(in)
	g.actor.Advance(bounds, dt)
	g.field.Tick(bounds, g.clock)

	if e, ok := g.field.CheckCollision(g.actor, g.store); ok {
		g.emit(EventCollected, e.Kind, fmt.Sprintf("+1 %s", e.Kind.Info().Name))
		if levels := g.actor.OnCollect(); levels > 0 {
			g.emit(EventLevelUp, "", fmt.Sprintf("Level up! Now level %d", g.actor.Level()))
		}
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Tick: g.tick, Clock: g.clock}
}

// Craft crafts the recipe at index in catalog order.
func (g *Game) Craft(index int) bool {
	r, ok := g.engine.CraftIndex(g.store, index)
	return g.afterCraft(r, ok, index >= 0 && index < g.engine.Catalog().Len())
}

// CraftID crafts the recipe with the given identifier.
func (g *Game) CraftID(id string) bool {
	r, ok := g.engine.CraftID(g.store, id)
	_, known := g.engine.Catalog().Lookup(id)
	return g.afterCraft(r, ok, known)
}

func (g *Game) afterCraft(r crafting.Recipe, ok, known bool) bool {
	switch {
	case ok:
		g.crafted++
		g.emit(EventCrafted, r.Result, fmt.Sprintf("Crafted %s!", r.Name))
	case known:
		g.emit(EventCraftFailed, r.Result, fmt.Sprintf("Not enough resources for %s", r.Name))
	}
	return ok
}

// ClearInventory zeroes every inventory counter.
func (g *Game) ClearInventory() {
	g.store.Clear()
	g.emit(EventCleared, "", "Inventory cleared")
}

// TogglePause flips the paused flag. While paused, Step skips movement,
// animation and spawning and the game clock stands still.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// CraftOpen reports whether the crafting panel is shown.
func (g *Game) CraftOpen() bool {
	return g.craftOpen
}

// SessionID returns the identifier of the current session.
func (g *Game) SessionID() string {
	return g.session.ID
}

// Clock returns the game time simulated so far.
func (g *Game) Clock() time.Duration {
	return g.clock
}

// Store exposes the inventory for read-only inspection.
func (g *Game) Store() *inventory.Store {
	return g.store
}

// Actor exposes the actor for read-only inspection.
func (g *Game) Actor() *actor.Actor {
	return g.actor
}

// Field exposes the resource field for read-only inspection.
func (g *Game) Field() *resources.Field {
	return g.field
}

// Catalog returns the recipe catalog.
func (g *Game) Catalog() *crafting.Catalog {
	return g.engine.Catalog()
}

// Crafted returns how many items were crafted this session.
func (g *Game) Crafted() int {
	return g.crafted
}

// Summary reports the run totals recorded when the session ends.
func (g *Game) Summary() registry.RunSummary {
	return registry.RunSummary{
		Collected: g.field.Collected(),
		Level:     g.actor.Level(),
		Crafted:   g.crafted,
		Duration:  g.clock,
	}
}

// Observe returns the spectator snapshot.
func (g *Game) Observe() any {
	return g.Snapshot()
}

func (g *Game) emit(kind EventKind, item inventory.Item, msg string) {
	g.eventSeq++
	g.events = append(g.events, Event{
		Seq:     g.eventSeq,
		Kind:    kind,
		Item:    item,
		Message: msg,
		At:      g.clock,
	})
	if len(g.events) > maxEvents {
		g.events = g.events[len(g.events)-maxEvents:]
	}
	g.session.Logger.Debug(msg, "event", kind)
}

// State returns the current game state. The score is the collection count;
// a forager session never ends on its own.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.field.Collected(),
		GameOver: false,
		Paused:   g.paused,
	}
}

func factory(id, title string, classic bool) registry.Factory {
	return func(opts registry.Options) (registry.Game, error) {
		cfg := opts.Config
		if classic {
			cfg = config.ClassicConfig(cfg)
		}
		g, err := New(id, title, cfg, opts.Logger, opts.Assets)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

// Register the modes with the registry
func init() {
	registry.Register(ModeStandard, "Forager", factory(ModeStandard, "Forager", false))
	registry.Register(ModeClassic, "Forager Classic", factory(ModeClassic, "Forager Classic", true))
}
