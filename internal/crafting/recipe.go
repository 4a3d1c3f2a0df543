// Package crafting holds the recipe catalog and applies recipes to an
// inventory store.
package crafting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/vovakirdan/tui-forager/internal/inventory"
)

// Recipe maps an ingredient multiset to one unit of a result item.
type Recipe struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Result      inventory.Item `json:"result"`
	Ingredients inventory.Cost `json:"ingredients"`
	Description string         `json:"description,omitempty"`
}

// Validate checks that the recipe refers to known items with positive quantities.
func (r Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe has no id")
	}
	if !r.Result.Valid() {
		return fmt.Errorf("recipe %q: unknown result %q", r.ID, r.Result)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe %q: no ingredients", r.ID)
	}
	for item, qty := range r.Ingredients {
		if !item.Valid() {
			return fmt.Errorf("recipe %q: unknown ingredient %q", r.ID, item)
		}
		if qty <= 0 {
			return fmt.Errorf("recipe %q: ingredient %q has quantity %d", r.ID, item, qty)
		}
	}
	return nil
}

// SortedIngredients returns the ingredients in inventory display order.
func (r Recipe) SortedIngredients() []inventory.Stack {
	out := make([]inventory.Stack, 0, len(r.Ingredients))
	for _, item := range inventory.Known() {
		if qty, ok := r.Ingredients[item]; ok {
			out = append(out, inventory.Stack{Item: item, Qty: qty})
		}
	}
	return out
}

// CostString formats the ingredients as "2 stone, 3 grass".
func (r Recipe) CostString() string {
	parts := make([]string, 0, len(r.Ingredients))
	for _, s := range r.SortedIngredients() {
		parts = append(parts, fmt.Sprintf("%d %s", s.Qty, s.Item))
	}
	return strings.Join(parts, ", ")
}

// Catalog is an immutable, ordered recipe table.
type Catalog struct {
	recipes []Recipe
	byID    map[string]int
}

// NewCatalog builds a catalog, rejecting invalid or duplicate recipes.
func NewCatalog(recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	for _, r := range recipes {
		r.ID = strings.ToLower(strings.TrimSpace(r.ID))
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("crafting: %w", err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("crafting: duplicate recipe %q", r.ID)
		}
		ing := make(inventory.Cost, len(r.Ingredients))
		for item, qty := range r.Ingredients {
			ing[item] = qty
		}
		r.Ingredients = ing
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}
	return c, nil
}

// DefaultRecipes returns the built-in recipe table.
func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			ID:          "axe",
			Name:        "Axe",
			Result:      inventory.Axe,
			Ingredients: inventory.Cost{inventory.Stone: 2, inventory.Grass: 3},
			Description: "Basic tool for cutting trees",
		},
		{
			ID:          "pickaxe",
			Name:        "Pickaxe",
			Result:      inventory.Pickaxe,
			Ingredients: inventory.Cost{inventory.Stone: 5, inventory.Grass: 1},
			Description: "Tool for mining stone",
		},
		{
			ID:          "rope",
			Name:        "Rope",
			Result:      inventory.Rope,
			Ingredients: inventory.Cost{inventory.Grass: 10},
			Description: "Useful for climbing and building",
		},
	}
}

// DefaultCatalog returns a catalog of DefaultRecipes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultRecipes())
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// At returns the recipe at index i.
func (c *Catalog) At(i int) (Recipe, bool) {
	if i < 0 || i >= len(c.recipes) {
		return Recipe{}, false
	}
	return c.recipes[i], true
}

// Lookup finds a recipe by identifier.
func (c *Catalog) Lookup(id string) (Recipe, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}

// All returns a copy of the recipe table in catalog order.
func (c *Catalog) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Suggest returns up to n recipe ids close to id by edit distance,
// nearest first.
func (c *Catalog) Suggest(id string, n int) []string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || n <= 0 {
		return nil
	}

	type candidate struct {
		id   string
		dist int
	}
	var cands []candidate
	for _, r := range c.recipes {
		dist := levenshtein.ComputeDistance(id, r.ID)
		if dist > suggestLimit(len(r.ID)) {
			continue
		}
		cands = append(cands, candidate{id: r.ID, dist: dist})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].id < cands[j].id
		}
		return cands[i].dist < cands[j].dist
	})

	out := make([]string, 0, n)
	for _, cand := range cands {
		if len(out) == n {
			break
		}
		out = append(out, cand.id)
	}
	return out
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
