// Package resources spawns collectible entities on the play surface and
// detects when the actor picks them up.
package resources

import (
	"fmt"

	"github.com/vovakirdan/tui-forager/internal/inventory"
)

// Source is the random source used for kind selection and placement.
// *rand.Rand satisfies it; tests supply fixed sequences.
type Source interface {
	Float64() float64
}

// Weight assigns a relative spawn weight to a kind.
type Weight struct {
	Kind   inventory.Item `yaml:"kind" json:"kind"`
	Weight float64        `yaml:"weight" json:"weight"`
}

// WeightTable is an ordered list of kinds with relative weights.
// Weights need not sum to any particular value.
type WeightTable []Weight

// DefaultWeights is the standard spawn mix.
func DefaultWeights() WeightTable {
	return WeightTable{
		{Kind: inventory.Apple, Weight: 30},
		{Kind: inventory.Grass, Weight: 50},
		{Kind: inventory.Stone, Weight: 15},
		{Kind: inventory.Wood, Weight: 5},
	}
}

// ClassicWeights is the uniform three-kind mix of the classic mode.
func ClassicWeights() WeightTable {
	return WeightTable{
		{Kind: inventory.Apple, Weight: 1},
		{Kind: inventory.Grass, Weight: 1},
		{Kind: inventory.Stone, Weight: 1},
	}
}

// Total returns the sum of all positive weights.
func (t WeightTable) Total() float64 {
	total := 0.0
	for _, w := range t {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	return total
}

// Validate rejects empty tables, unknown kinds and negative weights.
func (t WeightTable) Validate() error {
	if t.Total() <= 0 {
		return fmt.Errorf("weight table has no positive weight")
	}
	for _, w := range t {
		if !w.Kind.Valid() {
			return fmt.Errorf("unknown resource kind %q", w.Kind)
		}
		if w.Weight < 0 {
			return fmt.Errorf("resource %q has negative weight", w.Kind)
		}
	}
	return nil
}

// Pick draws a kind proportionally to its weight.
//
// r is drawn in [0, total); the table is walked with a running threshold and
// the first kind whose cumulative weight exceeds r wins. The result depends
// only on the value returned by src.
func (t WeightTable) Pick(src Source) (inventory.Item, bool) {
	total := t.Total()
	if total <= 0 {
		return "", false
	}
	r := src.Float64() * total

	var last inventory.Item
	cumulative := 0.0
	for _, w := range t {
		if w.Weight <= 0 {
			continue
		}
		cumulative += w.Weight
		last = w.Kind
		if cumulative > r {
			return w.Kind, true
		}
	}
	// Floating point rounding can leave r == total.
	return last, true
}

// Share returns the expected probability of each kind.
func (t WeightTable) Share() map[inventory.Item]float64 {
	total := t.Total()
	out := make(map[inventory.Item]float64, len(t))
	if total <= 0 {
		return out
	}
	for _, w := range t {
		if w.Weight > 0 {
			out[w.Kind] += w.Weight / total
		}
	}
	return out
}
