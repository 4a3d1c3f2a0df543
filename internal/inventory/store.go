package inventory

// DefaultCapacity is the slot count shown by the UI.
const DefaultCapacity = 20

// Cost is an ingredient multiset: item to required quantity.
type Cost map[Item]int

// Stack is a (item, quantity) pair used for display.
type Stack struct {
	Item Item `json:"item"`
	Qty  int  `json:"qty"`
}

// Summary is a read-only view of the store for the presentation layer.
type Summary struct {
	Items    []Stack `json:"items"`
	Total    int     `json:"total"`
	Capacity int     `json:"capacity"`
}

// Store owns item counters and slot accounting.
//
// total always equals the sum of counts. capacity is informational and is
// not enforced as a cap on total.
type Store struct {
	counts   map[Item]int
	total    int
	capacity int
}

// NewStore creates a store with every known item at zero.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		counts:   make(map[Item]int, len(known)),
		capacity: capacity,
	}
	for _, item := range known {
		s.counts[item] = 0
	}
	return s
}

// Add increments item by qty. It fails without mutation for unknown items
// and non-positive quantities.
func (s *Store) Add(item Item, qty int) bool {
	if qty <= 0 {
		return false
	}
	if _, ok := s.counts[item]; !ok {
		return false
	}
	s.counts[item] += qty
	s.total += qty
	return true
}

// Remove decrements item by qty if at least qty are held.
func (s *Store) Remove(item Item, qty int) bool {
	if qty <= 0 {
		return false
	}
	have, ok := s.counts[item]
	if !ok || have < qty {
		return false
	}
	s.counts[item] = have - qty
	s.total -= qty
	return true
}

// Has reports whether every ingredient of cost is available.
// Unknown ingredients are never available.
func (s *Store) Has(cost Cost) bool {
	for item, qty := range cost {
		have, ok := s.counts[item]
		if !ok || have < qty {
			return false
		}
	}
	return true
}

// Count returns how many of item are held.
func (s *Store) Count(item Item) int {
	return s.counts[item]
}

// Total returns the sum of all counts.
func (s *Store) Total() int {
	return s.total
}

// Capacity returns the display slot count.
func (s *Store) Capacity() int {
	return s.capacity
}

// NonEmpty returns held items in display order, quantities above zero only.
// The result is never nil.
func (s *Store) NonEmpty() []Stack {
	out := make([]Stack, 0, len(known))
	for _, item := range known {
		if qty := s.counts[item]; qty > 0 {
			out = append(out, Stack{Item: item, Qty: qty})
		}
	}
	return out
}

// Summary returns the display projection of the store.
func (s *Store) Summary() Summary {
	return Summary{
		Items:    s.NonEmpty(),
		Total:    s.total,
		Capacity: s.capacity,
	}
}

// Clear zeroes every counter.
func (s *Store) Clear() {
	for item := range s.counts {
		s.counts[item] = 0
	}
	s.total = 0
}
