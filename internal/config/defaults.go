package config

import (
	_ "embed"
)

//go:embed defaults/forager.yaml
var defaultForagerYAML []byte

// DefaultForagerConfig returns the default forager configuration.
func DefaultForagerConfig() ForagerConfig {
	return ForagerConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Actor: ActorConfig{
			Width:         40,
			Height:        40,
			Speed:         4,
			SpeedPerLevel: 0.2,
			ExpToNext:     100,
			Growth:        1.5,
			CollectReward: 10,
			AttackPolicy:  "freeze",
			AttackDamping: 0.5,
		},
		Animations: map[string]AnimationConfig{
			"idle":   {Frames: 4, FrameDelayMs: 200, Loop: true},
			"walk":   {Frames: 6, FrameDelayMs: 100, Loop: true},
			"attack": {Frames: 4, FrameDelayMs: 80, Loop: false},
		},
		Resources: ResourcesConfig{
			Width:           32,
			Height:          32,
			Margin:          50,
			SpawnIntervalMs: 2000,
			MaxLive:         30,
			Initial:         20,
			Weights: []WeightConfig{
				{Kind: "apple", Weight: 30},
				{Kind: "grass", Weight: 50},
				{Kind: "stone", Weight: 15},
				{Kind: "wood", Weight: 5},
			},
		},
		Inventory: InventoryConfig{
			Capacity: 20,
		},
		Recipes: []RecipeConfig{
			{
				ID:          "axe",
				Name:        "Axe",
				Result:      "axe",
				Ingredients: map[string]int{"stone": 2, "grass": 3},
				Description: "Basic tool for cutting trees",
			},
			{
				ID:          "pickaxe",
				Name:        "Pickaxe",
				Result:      "pickaxe",
				Ingredients: map[string]int{"stone": 5, "grass": 1},
				Description: "Tool for mining stone",
			},
			{
				ID:          "rope",
				Name:        "Rope",
				Result:      "rope",
				Ingredients: map[string]int{"grass": 10},
				Description: "Useful for climbing and building",
			},
		},
	}
}

// ClassicMaxLive is the density cap of the classic rule set.
const ClassicMaxLive = 200

// ClassicConfig returns the early rule set: uniform apple, grass and stone
// spawns every 3 seconds anywhere on the surface. The cap is loose enough
// that a normal session never reaches it.
func ClassicConfig(base ForagerConfig) ForagerConfig {
	base.Resources.Margin = 0
	base.Resources.SpawnIntervalMs = 3000
	base.Resources.MaxLive = ClassicMaxLive
	base.Resources.Initial = 0
	base.Resources.Weights = []WeightConfig{
		{Kind: "apple", Weight: 1},
		{Kind: "grass", Weight: 1},
		{Kind: "stone", Weight: 1},
	}
	return base
}
