// Package inventory tracks aggregate item counts for a forager session.
package inventory

import "github.com/vovakirdan/tui-forager/internal/core"

// Item identifies a kind of item. Items have no identity of their own;
// only aggregate counts exist.
type Item string

// Known items. Raw resources come first, crafted items after.
const (
	Apple   Item = "apple"
	Grass   Item = "grass"
	Stone   Item = "stone"
	Wood    Item = "wood"
	Axe     Item = "axe"
	Pickaxe Item = "pickaxe"
	Rope    Item = "rope"
)

// Info holds display metadata for an item.
type Info struct {
	Name  string
	Glyph rune
	Color core.Color
}

// known lists items in display order.
var known = []Item{Apple, Grass, Stone, Wood, Axe, Pickaxe, Rope}

var infos = map[Item]Info{
	Apple:   {Name: "Apple", Glyph: 'a', Color: core.ColorRed},
	Grass:   {Name: "Grass", Glyph: '"', Color: core.ColorBrightGreen},
	Stone:   {Name: "Stone", Glyph: 'o', Color: core.ColorGray},
	Wood:    {Name: "Wood", Glyph: '=', Color: core.ColorBrown},
	Axe:     {Name: "Axe", Glyph: 'P', Color: core.ColorCyan},
	Pickaxe: {Name: "Pickaxe", Glyph: 'T', Color: core.ColorCyan},
	Rope:    {Name: "Rope", Glyph: '&', Color: core.ColorYellow},
}

// Known returns every recognized item in display order.
func Known() []Item {
	out := make([]Item, len(known))
	copy(out, known)
	return out
}

// Valid reports whether the item is a recognized identifier.
func (i Item) Valid() bool {
	_, ok := infos[i]
	return ok
}

// Info returns display metadata; unknown items get a '?' placeholder.
func (i Item) Info() Info {
	if info, ok := infos[i]; ok {
		return info
	}
	return Info{Name: string(i), Glyph: '?', Color: core.ColorDefault}
}

// String returns the identifier.
func (i Item) String() string {
	return string(i)
}

// Parse converts an identifier into a known item.
func Parse(s string) (Item, bool) {
	item := Item(s)
	return item, item.Valid()
}
