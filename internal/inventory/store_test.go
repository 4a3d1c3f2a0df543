package inventory

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
)

func sumCounts(s *Store) int {
	sum := 0
	for _, item := range Known() {
		sum += s.Count(item)
	}
	return sum
}

func TestNewStoreStartsEmpty(t *testing.T) {
	s := NewStore(20)

	for _, item := range Known() {
		if s.Count(item) != 0 {
			t.Errorf("Count(%s) = %d, expected 0", item, s.Count(item))
		}
	}
	if s.Total() != 0 {
		t.Errorf("Total() = %d, expected 0", s.Total())
	}
	if s.Capacity() != 20 {
		t.Errorf("Capacity() = %d, expected 20", s.Capacity())
	}
	if NewStore(0).Capacity() != DefaultCapacity {
		t.Error("non-positive capacity should fall back to the default")
	}
}

func TestStoreAdd(t *testing.T) {
	tests := []struct {
		name  string
		item  Item
		qty   int
		ok    bool
		total int
	}{
		{"known item", Stone, 2, true, 2},
		{"unknown item", Item("diamond"), 1, false, 0},
		{"zero quantity", Stone, 0, false, 0},
		{"negative quantity", Stone, -3, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(20)
			if got := s.Add(tc.item, tc.qty); got != tc.ok {
				t.Errorf("Add(%s, %d) = %v, expected %v", tc.item, tc.qty, got, tc.ok)
			}
			if s.Total() != tc.total {
				t.Errorf("Total() = %d, expected %d", s.Total(), tc.total)
			}
		})
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore(20)
	s.Add(Grass, 3)

	if s.Remove(Grass, 4) {
		t.Error("Remove more than held should fail")
	}
	if s.Count(Grass) != 3 || s.Total() != 3 {
		t.Error("failed Remove must not mutate")
	}
	if s.Remove(Item("diamond"), 1) {
		t.Error("Remove of unknown item should fail")
	}
	if !s.Remove(Grass, 3) {
		t.Error("Remove of exactly held quantity should succeed")
	}
	if s.Count(Grass) != 0 || s.Total() != 0 {
		t.Errorf("after Remove: count=%d total=%d", s.Count(Grass), s.Total())
	}
}

func TestStoreHas(t *testing.T) {
	s := NewStore(20)
	s.Add(Stone, 2)
	s.Add(Grass, 3)

	if !s.Has(Cost{Stone: 2, Grass: 3}) {
		t.Error("Has should be true with exact quantities")
	}
	if s.Has(Cost{Stone: 5, Grass: 1}) {
		t.Error("Has should be false when one ingredient is short")
	}
	if s.Has(Cost{Item("diamond"): 1}) {
		t.Error("Has should be false for unknown ingredients")
	}
	if !s.Has(Cost{}) {
		t.Error("empty cost is always affordable")
	}
}

func TestStoreNonEmptyOrder(t *testing.T) {
	s := NewStore(20)
	s.Add(Rope, 1)
	s.Add(Apple, 2)
	s.Add(Stone, 1)
	s.Remove(Stone, 1)

	got := s.NonEmpty()
	want := []Stack{{Apple, 2}, {Rope, 1}}
	if len(got) != len(want) {
		t.Fatalf("NonEmpty() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NonEmpty()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	sum := s.Summary()
	if sum.Total != 3 || sum.Capacity != 20 || len(sum.Items) != 2 {
		t.Errorf("Summary() = %+v", sum)
	}
}

func TestStoreNonEmptyNeverNil(t *testing.T) {
	s := NewStore(20)
	if got := s.NonEmpty(); got == nil || len(got) != 0 {
		t.Errorf("NonEmpty() on empty store = %#v, expected an empty slice", got)
	}

	data, err := json.Marshal(s.Summary())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("empty summary encodes as %s", data)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore(20)
	s.Add(Wood, 4)
	s.Add(Axe, 1)
	s.Clear()

	if s.Total() != 0 || sumCounts(s) != 0 {
		t.Errorf("Clear left total=%d sum=%d", s.Total(), sumCounts(s))
	}
	if !s.Add(Wood, 1) {
		t.Error("items must remain recognized after Clear")
	}
}

func TestStoreConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := append(Known(), Item("bogus"))
	s := NewStore(20)

	for i := 0; i < 5000; i++ {
		item := items[rng.Intn(len(items))]
		qty := rng.Intn(5) - 1
		if rng.Intn(2) == 0 {
			s.Add(item, qty)
		} else {
			s.Remove(item, qty)
		}
		if s.Total() != sumCounts(s) {
			t.Fatalf("step %d: Total()=%d, sum=%d", i, s.Total(), sumCounts(s))
		}
		for _, it := range Known() {
			if s.Count(it) < 0 {
				t.Fatalf("step %d: negative count for %s", i, it)
			}
		}
	}
}

func TestItemInfo(t *testing.T) {
	if !Apple.Valid() || Item("bogus").Valid() {
		t.Error("Valid() disagrees with the known item table")
	}
	if Apple.Info().Name != "Apple" {
		t.Errorf("Apple.Info().Name = %q", Apple.Info().Name)
	}
	if Item("bogus").Info().Glyph != '?' {
		t.Error("unknown items should render as '?'")
	}
	if _, ok := Parse("pickaxe"); !ok {
		t.Error("Parse(pickaxe) should succeed")
	}
}
