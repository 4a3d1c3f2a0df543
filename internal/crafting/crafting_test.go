package crafting

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-forager/internal/inventory"
)

func snapshotCounts(s *inventory.Store) map[inventory.Item]int {
	out := make(map[inventory.Item]int)
	for _, item := range inventory.Known() {
		out[item] = s.Count(item)
	}
	out["_total"] = s.Total()
	return out
}

func sameCounts(a, b map[inventory.Item]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func TestCraftAxe(t *testing.T) {
	s := inventory.NewStore(20)
	s.Add(inventory.Stone, 2)
	s.Add(inventory.Grass, 3)

	axe, _ := DefaultCatalog().Lookup("axe")
	if !Craft(s, axe) {
		t.Fatal("Craft(axe) should succeed with exact ingredients")
	}
	if s.Count(inventory.Stone) != 0 || s.Count(inventory.Grass) != 0 || s.Count(inventory.Axe) != 1 {
		t.Errorf("counts after craft: stone=%d grass=%d axe=%d",
			s.Count(inventory.Stone), s.Count(inventory.Grass), s.Count(inventory.Axe))
	}
	if s.Total() != 1 {
		t.Errorf("Total() = %d, expected 1", s.Total())
	}
}

func TestCraftFailureIsAtomic(t *testing.T) {
	tests := []struct {
		name  string
		fill  inventory.Cost
		recip string
	}{
		{"empty store", inventory.Cost{}, "axe"},
		{"first ingredient short", inventory.Cost{inventory.Stone: 4, inventory.Grass: 1}, "pickaxe"},
		{"second ingredient short", inventory.Cost{inventory.Stone: 2, inventory.Grass: 2}, "axe"},
		{"single ingredient short", inventory.Cost{inventory.Grass: 9}, "rope"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := inventory.NewStore(20)
			for item, qty := range tc.fill {
				s.Add(item, qty)
			}
			before := snapshotCounts(s)

			r, _ := DefaultCatalog().Lookup(tc.recip)
			if Craft(s, r) {
				t.Fatal("Craft should fail")
			}
			if !sameCounts(before, snapshotCounts(s)) {
				t.Errorf("store changed after failed craft: %v -> %v", before, snapshotCounts(s))
			}
		})
	}
}

func TestCraftRejectsMalformedCost(t *testing.T) {
	tests := []struct {
		name string
		cost inventory.Cost
	}{
		{"zero quantity", inventory.Cost{inventory.Stone: 0}},
		{"negative quantity", inventory.Cost{inventory.Stone: 2, inventory.Grass: -1}},
		{"no ingredients", inventory.Cost{}},
		{"unknown ingredient", inventory.Cost{inventory.Item("gold"): 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := inventory.NewStore(20)
			s.Add(inventory.Stone, 2)
			before := snapshotCounts(s)

			r := Recipe{ID: "free_axe", Result: inventory.Axe, Ingredients: tc.cost}
			if Craft(s, r) {
				t.Fatal("Craft should reject the recipe")
			}
			if !sameCounts(before, snapshotCounts(s)) {
				t.Errorf("store changed: %v -> %v", before, snapshotCounts(s))
			}
		})
	}
}

func TestCraftConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := NewEngine(nil, nil)
	s := inventory.NewStore(20)
	raw := []inventory.Item{inventory.Apple, inventory.Grass, inventory.Stone, inventory.Wood}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			s.Add(raw[rng.Intn(len(raw))], rng.Intn(4)+1)
		case 1:
			s.Remove(raw[rng.Intn(len(raw))], rng.Intn(3)+1)
		default:
			e.CraftIndex(s, rng.Intn(e.Catalog().Len()+1))
		}
		sum := 0
		for _, item := range inventory.Known() {
			sum += s.Count(item)
		}
		if sum != s.Total() {
			t.Fatalf("step %d: Total()=%d, sum=%d", i, s.Total(), sum)
		}
	}
}

func TestEngineCraftIndexOutOfRange(t *testing.T) {
	e := NewEngine(nil, nil)
	s := inventory.NewStore(20)
	s.Add(inventory.Grass, 50)
	s.Add(inventory.Stone, 50)

	for _, idx := range []int{-1, e.Catalog().Len(), 99} {
		if _, ok := e.CraftIndex(s, idx); ok {
			t.Errorf("CraftIndex(%d) should fail closed", idx)
		}
	}
	if s.Total() != 100 {
		t.Errorf("out of range craft mutated the store: total=%d", s.Total())
	}

	r, ok := e.CraftIndex(s, 2)
	if !ok || r.Result != inventory.Rope {
		t.Errorf("CraftIndex(2) = %v, %v, expected rope", r.ID, ok)
	}
}

func TestEngineCraftID(t *testing.T) {
	e := NewEngine(nil, nil)
	s := inventory.NewStore(20)
	s.Add(inventory.Stone, 5)
	s.Add(inventory.Grass, 1)

	if _, ok := e.CraftID(s, "pickax"); ok {
		t.Error("CraftID with unknown id should fail")
	}
	if _, ok := e.CraftID(s, " Pickaxe "); !ok {
		t.Error("CraftID should match case-insensitively")
	}
	if s.Count(inventory.Pickaxe) != 1 {
		t.Errorf("pickaxe count = %d, expected 1", s.Count(inventory.Pickaxe))
	}
}

func TestEngineAffordability(t *testing.T) {
	e := NewEngine(nil, nil)
	s := inventory.NewStore(20)
	s.Add(inventory.Stone, 2)
	s.Add(inventory.Grass, 3)

	report := e.Affordability(s)
	if len(report) != 3 {
		t.Fatalf("len(report) = %d, expected 3", len(report))
	}

	want := map[string]bool{"axe": true, "pickaxe": false, "rope": false}
	for _, a := range report {
		if a.CanCraft != want[a.Recipe.ID] {
			t.Errorf("%s CanCraft = %v, expected %v", a.Recipe.ID, a.CanCraft, want[a.Recipe.ID])
		}
		for _, ing := range a.Ingredients {
			if ing.Have != s.Count(ing.Item) {
				t.Errorf("%s/%s Have = %d", a.Recipe.ID, ing.Item, ing.Have)
			}
		}
	}

	// Ingredients follow inventory display order: grass before stone.
	axe := report[0]
	if axe.Ingredients[0].Item != inventory.Grass || axe.Ingredients[1].Item != inventory.Stone {
		t.Errorf("axe ingredients order = %+v", axe.Ingredients)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		recipes []Recipe
	}{
		{"missing id", []Recipe{{Result: inventory.Axe, Ingredients: inventory.Cost{inventory.Stone: 1}}}},
		{"unknown result", []Recipe{{ID: "x", Result: "sword", Ingredients: inventory.Cost{inventory.Stone: 1}}}},
		{"unknown ingredient", []Recipe{{ID: "x", Result: inventory.Axe, Ingredients: inventory.Cost{"iron": 1}}}},
		{"zero quantity", []Recipe{{ID: "x", Result: inventory.Axe, Ingredients: inventory.Cost{inventory.Stone: 0}}}},
		{"no ingredients", []Recipe{{ID: "x", Result: inventory.Axe}}},
		{"duplicate", append(DefaultRecipes(), DefaultRecipes()[0])},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCatalog(tc.recipes); err == nil {
				t.Error("NewCatalog should fail")
			}
		})
	}
}

func TestCatalogLookupAndSuggest(t *testing.T) {
	c := DefaultCatalog()

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", c.Len())
	}
	if r, ok := c.At(0); !ok || r.ID != "axe" {
		t.Errorf("At(0) = %v, %v", r.ID, ok)
	}
	if _, ok := c.At(3); ok {
		t.Error("At(3) should be out of range")
	}

	got := c.Suggest("pickax", 2)
	if len(got) == 0 || got[0] != "pickaxe" {
		t.Errorf("Suggest(pickax) = %v, expected pickaxe first", got)
	}
	if got := c.Suggest("zzzzzzzz", 3); len(got) != 0 {
		t.Errorf("Suggest(zzzzzzzz) = %v, expected none", got)
	}

	all := c.All()
	all[0].ID = "mutated"
	if r, _ := c.At(0); r.ID != "axe" {
		t.Error("All() must return a copy")
	}
}

func TestRecipeCostString(t *testing.T) {
	r, _ := DefaultCatalog().Lookup("axe")
	if got := r.CostString(); got != "3 grass, 2 stone" {
		t.Errorf("CostString() = %q", got)
	}
}
