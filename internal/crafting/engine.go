package crafting

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-forager/internal/inventory"
)

// Craft applies r to store. Ingredients are checked before anything is
// removed, so a failed craft leaves the store untouched. Recipes with no
// ingredients or a non-positive quantity never craft.
func Craft(store *inventory.Store, r Recipe) bool {
	if !r.Result.Valid() || len(r.Ingredients) == 0 {
		return false
	}
	for item, qty := range r.Ingredients {
		if qty <= 0 || !item.Valid() {
			return false
		}
	}
	if !store.Has(r.Ingredients) {
		return false
	}
	for item, qty := range r.Ingredients {
		store.Remove(item, qty)
	}
	return store.Add(r.Result, 1)
}

// Ingredient is one line of an affordability report.
type Ingredient struct {
	Item inventory.Item `json:"item"`
	Need int            `json:"need"`
	Have int            `json:"have"`
}

// Enough reports whether the held quantity covers the requirement.
func (i Ingredient) Enough() bool {
	return i.Have >= i.Need
}

// Affordability describes whether a recipe can be crafted right now.
type Affordability struct {
	Recipe      Recipe       `json:"recipe"`
	Ingredients []Ingredient `json:"ingredients"`
	CanCraft    bool         `json:"can_craft"`
}

// Engine resolves craft requests against a catalog.
type Engine struct {
	catalog *Catalog
	logger  *log.Logger
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(catalog *Catalog, logger *log.Logger) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{catalog: catalog, logger: logger}
}

// Catalog returns the engine's recipe table.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// CraftIndex crafts the recipe at index. Out of range indexes fail closed.
func (e *Engine) CraftIndex(store *inventory.Store, index int) (Recipe, bool) {
	r, ok := e.catalog.At(index)
	if !ok {
		e.logger.Debug("craft request out of range", "index", index, "recipes", e.catalog.Len())
		return Recipe{}, false
	}
	return r, e.craft(store, r)
}

// CraftID crafts the recipe with the given identifier.
func (e *Engine) CraftID(store *inventory.Store, id string) (Recipe, bool) {
	r, ok := e.catalog.Lookup(id)
	if !ok {
		e.logger.Debug("unknown recipe", "id", id, "suggest", e.catalog.Suggest(id, 1))
		return Recipe{}, false
	}
	return r, e.craft(store, r)
}

func (e *Engine) craft(store *inventory.Store, r Recipe) bool {
	if !Craft(store, r) {
		e.logger.Debug("not enough resources", "recipe", r.ID, "cost", r.CostString())
		return false
	}
	e.logger.Debug("crafted", "recipe", r.ID, "result", r.Result)
	return true
}

// Affordability reports per-recipe ingredient availability in catalog order.
func (e *Engine) Affordability(store *inventory.Store) []Affordability {
	out := make([]Affordability, 0, e.catalog.Len())
	for _, r := range e.catalog.recipes {
		a := Affordability{Recipe: r, CanCraft: store.Has(r.Ingredients)}
		for _, s := range r.SortedIngredients() {
			a.Ingredients = append(a.Ingredients, Ingredient{
				Item: s.Item,
				Need: s.Qty,
				Have: store.Count(s.Item),
			})
		}
		out = append(out, a)
	}
	return out
}
