// Package config provides YAML-based configuration loading and presets
// for the forager simulation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-forager/internal/actor"
	"github.com/vovakirdan/tui-forager/internal/crafting"
	"github.com/vovakirdan/tui-forager/internal/inventory"
	"github.com/vovakirdan/tui-forager/internal/resources"
)

// ErrInvalid marks configuration values the simulation cannot run with.
var ErrInvalid = errors.New("invalid config")

// ForagerConfig contains all configuration for a forager session.
type ForagerConfig struct {
	World      WorldConfig                `yaml:"world"`
	Actor      ActorConfig                `yaml:"actor"`
	Animations map[string]AnimationConfig `yaml:"animations"`
	Resources  ResourcesConfig            `yaml:"resources"`
	Inventory  InventoryConfig            `yaml:"inventory"`
	Recipes    []RecipeConfig             `yaml:"recipes"`
}

// WorldConfig defines the play surface in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ActorConfig defines the controllable entity.
type ActorConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`           // World units per 1/60 s
	SpeedPerLevel float64 `yaml:"speed_per_level"` // Added on every level-up
	ExpToNext     int     `yaml:"exp_to_next"`
	Growth        float64 `yaml:"growth"`
	CollectReward int     `yaml:"collect_reward"`
	AttackPolicy  string  `yaml:"attack_policy"`  // "freeze" or "damped"
	AttackDamping float64 `yaml:"attack_damping"` // Speed factor for "damped"
}

// AnimationConfig defines one animation's frame timing.
type AnimationConfig struct {
	Frames       int  `yaml:"frames"`
	FrameDelayMs int  `yaml:"frame_delay_ms"`
	Loop         bool `yaml:"loop"`
}

// ResourcesConfig defines the spawner.
type ResourcesConfig struct {
	Width           float64        `yaml:"width"`
	Height          float64        `yaml:"height"`
	Margin          float64        `yaml:"margin"`
	SpawnIntervalMs int            `yaml:"spawn_interval_ms"`
	MaxLive         int            `yaml:"max_live"` // 0 = unlimited
	Initial         int            `yaml:"initial"`
	Weights         []WeightConfig `yaml:"weights"`
}

// WeightConfig is one entry of the spawn weight table.
type WeightConfig struct {
	Kind   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
}

// InventoryConfig defines the inventory display.
type InventoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// RecipeConfig defines one crafting recipe.
type RecipeConfig struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Result      string         `yaml:"result"`
	Ingredients map[string]int `yaml:"ingredients"`
	Description string         `yaml:"description"`
}

// Bounds returns the play surface size.
func (c ForagerConfig) Bounds() (float64, float64) {
	return c.World.Width, c.World.Height
}

// ActorSettings converts the actor and animation sections.
func (c ForagerConfig) ActorSettings() actor.Config {
	anims := actor.DefaultAnimations()
	for name, a := range c.Animations {
		state, ok := actor.ParseState(name)
		if !ok {
			continue
		}
		anims[state] = actor.Animation{
			Frames:     a.Frames,
			FrameDelay: time.Duration(a.FrameDelayMs) * time.Millisecond,
			Loop:       a.Loop,
		}
	}
	return actor.Config{
		Width:         c.Actor.Width,
		Height:        c.Actor.Height,
		Speed:         c.Actor.Speed,
		SpeedPerLevel: c.Actor.SpeedPerLevel,
		ExpToNext:     c.Actor.ExpToNext,
		Growth:        c.Actor.Growth,
		CollectReward: c.Actor.CollectReward,
		AttackPolicy:  actor.MovePolicy(c.Actor.AttackPolicy),
		AttackDamping: c.Actor.AttackDamping,
		Animations:    anims,
	}
}

// FieldSettings converts the resources section.
func (c ForagerConfig) FieldSettings() resources.Config {
	weights := make(resources.WeightTable, 0, len(c.Resources.Weights))
	for _, w := range c.Resources.Weights {
		weights = append(weights, resources.Weight{Kind: inventory.Item(w.Kind), Weight: w.Weight})
	}
	return resources.Config{
		EntityW:  c.Resources.Width,
		EntityH:  c.Resources.Height,
		Margin:   c.Resources.Margin,
		Interval: time.Duration(c.Resources.SpawnIntervalMs) * time.Millisecond,
		MaxLive:  c.Resources.MaxLive,
		Initial:  c.Resources.Initial,
		Weights:  weights,
	}
}

// RecipeList converts the recipes section. An empty section yields the
// built-in recipes.
func (c ForagerConfig) RecipeList() []crafting.Recipe {
	if len(c.Recipes) == 0 {
		return crafting.DefaultRecipes()
	}
	out := make([]crafting.Recipe, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		cost := make(inventory.Cost, len(r.Ingredients))
		for item, qty := range r.Ingredients {
			cost[inventory.Item(item)] = qty
		}
		out = append(out, crafting.Recipe{
			ID:          r.ID,
			Name:        r.Name,
			Result:      inventory.Item(r.Result),
			Ingredients: cost,
			Description: r.Description,
		})
	}
	return out
}

// Catalog builds the recipe catalog.
func (c ForagerConfig) Catalog() (*crafting.Catalog, error) {
	cat, err := crafting.NewCatalog(c.RecipeList())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cat, nil
}

// Validate reports the first value the simulation cannot run with.
func (c ForagerConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	if c.World.Width <= 0 || c.World.Height <= 0 {
		return invalid("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if err := c.ActorSettings().Validate(); err != nil {
		return invalid("actor: %v", err)
	}
	if c.Actor.Width > c.World.Width || c.Actor.Height > c.World.Height {
		return invalid("actor does not fit in the world")
	}
	for name := range c.Animations {
		if _, ok := actor.ParseState(name); !ok {
			return invalid("unknown animation %q", name)
		}
	}

	r := c.Resources
	if r.Width <= 0 || r.Height <= 0 {
		return invalid("resource size must be positive")
	}
	if r.Width > c.World.Width || r.Height > c.World.Height {
		return invalid("resources do not fit in the world")
	}
	if r.Margin < 0 || r.SpawnIntervalMs < 0 || r.MaxLive < 0 || r.Initial < 0 {
		return invalid("resource margin, interval, max_live and initial must not be negative")
	}
	if err := c.FieldSettings().Weights.Validate(); err != nil {
		return invalid("resources: %v", err)
	}

	if c.Inventory.Capacity < 0 {
		return invalid("inventory capacity must not be negative")
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}
