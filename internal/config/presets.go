package config

import "fmt"

// Preset represents a named tuning of the spawner.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Presets lists the accepted preset names.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard}
}

// ParsePreset validates a preset name. An empty name is normal.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetEasy:
		return PresetEasy, nil
	case PresetHard:
		return PresetHard, nil
	}
	return "", fmt.Errorf("unknown preset %q (valid: easy, normal, hard)", s)
}

// ApplyPreset tunes spawn cadence and density for a preset.
// Normal leaves the config unchanged.
func ApplyPreset(cfg *ForagerConfig, preset Preset) {
	r := &cfg.Resources
	switch preset {
	case PresetEasy:
		r.SpawnIntervalMs = r.SpawnIntervalMs * 3 / 4
		r.MaxLive = scaleCap(r.MaxLive, 4, 3)
		r.Initial = scaleCap(r.Initial, 5, 4)
	case PresetHard:
		r.SpawnIntervalMs = r.SpawnIntervalMs * 3 / 2
		r.MaxLive = scaleCap(r.MaxLive, 1, 2)
		r.Initial = scaleCap(r.Initial, 1, 2)
	}
}

// scaleCap multiplies n by num/den, keeping 0 (unlimited) as is and never
// dropping a positive value to zero.
func scaleCap(n, num, den int) int {
	if n <= 0 {
		return n
	}
	return max(1, n*num/den)
}
