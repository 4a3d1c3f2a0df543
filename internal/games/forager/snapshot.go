package forager

import (
	"time"

	"github.com/vovakirdan/tui-forager/internal/actor"
	"github.com/vovakirdan/tui-forager/internal/inventory"
)

// EventKind classifies a notification.
type EventKind string

const (
	EventCollected   EventKind = "collected"
	EventLevelUp     EventKind = "level_up"
	EventCrafted     EventKind = "crafted"
	EventCraftFailed EventKind = "craft_failed"
	EventCleared     EventKind = "inventory_cleared"
)

// Event is a notification for the presentation layer.
type Event struct {
	Seq     uint64         `json:"seq"`
	Kind    EventKind      `json:"kind"`
	Item    inventory.Item `json:"item,omitempty"`
	Message string         `json:"message"`
	At      time.Duration  `json:"at_ns"`
}

// ResourceView is one live resource in a snapshot.
type ResourceView struct {
	ID   uint64         `json:"id"`
	Kind inventory.Item `json:"kind"`
	X    float64        `json:"x"`
	Y    float64        `json:"y"`
	W    float64        `json:"w"`
	H    float64        `json:"h"`
}

// RecipeView is one crafting panel entry.
type RecipeView struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cost     string `json:"cost"`
	CanCraft bool   `json:"can_craft"`
}

// Snapshot is the world state emitted after every tick.
// It is a copy; mutating it does not affect the game.
type Snapshot struct {
	Session   string            `json:"session"`
	Mode      string            `json:"mode"`
	Tick      uint64            `json:"tick"`
	ClockMs   int64             `json:"clock_ms"`
	Paused    bool              `json:"paused"`
	CraftOpen bool              `json:"craft_open"`
	WorldW    float64           `json:"world_w"`
	WorldH    float64           `json:"world_h"`
	Actor     actor.Snapshot    `json:"actor"`
	Resources []ResourceView    `json:"resources"`
	Inventory inventory.Summary `json:"inventory"`
	Recipes   []RecipeView      `json:"recipes"`
	Collected int               `json:"collected"`
	Crafted   int               `json:"crafted"`
	Events    []Event           `json:"events"`
}

// Snapshot returns the current world state.
func (g *Game) Snapshot() Snapshot {
	live := g.field.Live()
	res := make([]ResourceView, len(live))
	for i, e := range live {
		res[i] = ResourceView{ID: e.ID, Kind: e.Kind, X: e.Box.X, Y: e.Box.Y, W: e.Box.W, H: e.Box.H}
	}

	afford := g.engine.Affordability(g.store)
	recipes := make([]RecipeView, len(afford))
	for i, a := range afford {
		recipes[i] = RecipeView{
			Index:    i,
			ID:       a.Recipe.ID,
			Name:     a.Recipe.Name,
			Cost:     a.Recipe.CostString(),
			CanCraft: a.CanCraft,
		}
	}

	events := make([]Event, len(g.events))
	copy(events, g.events)

	return Snapshot{
		Session:   g.session.ID,
		Mode:      g.id,
		Tick:      g.tick,
		ClockMs:   g.clock.Milliseconds(),
		Paused:    g.paused,
		CraftOpen: g.craftOpen,
		WorldW:    g.session.Bounds.W,
		WorldH:    g.session.Bounds.H,
		Actor:     g.actor.Snapshot(),
		Resources: res,
		Inventory: g.store.Summary(),
		Recipes:   recipes,
		Collected: g.field.Collected(),
		Crafted:   g.crafted,
		Events:    events,
	}
}
