// Package ingredient holds the fridge inventory: the ingredient model, the
// expiry classifier and the sqlite-backed repository.
package ingredient

import "time"

// Category is the closed set of ingredient categories.
type Category string

const (
	CategoryDairy      Category = "DAIRY"
	CategoryMeat       Category = "MEAT"
	CategoryPantry     Category = "PANTRY"
	CategoryFrozen     Category = "FROZEN"
	CategoryVegetables Category = "VEGETABLES"
	CategoryFruits     Category = "FRUITS"
	CategoryOther      Category = "OTHER"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryDairy,
	CategoryMeat,
	CategoryPantry,
	CategoryFrozen,
	CategoryVegetables,
	CategoryFruits,
	CategoryOther,
}

// CategoryIcons maps categories to their display emoji.
var CategoryIcons = map[Category]string{
	CategoryDairy:      "🥛",
	CategoryMeat:       "🥩",
	CategoryPantry:     "📦",
	CategoryFrozen:     "❄️",
	CategoryVegetables: "🥬",
	CategoryFruits:     "🍎",
	CategoryOther:      "⭕",
}

// ParseCategory maps a stored string back to a Category. Unknown values
// resolve to CategoryOther; a bad row must never fail a read.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// CommonUnits are the quantity units offered by the add screen.
var CommonUnits = []string{"pcs", "kg", "g", "L", "ml", "tbsp", "tsp", "cup", "oz", "lb"}

// Ingredient is a single perishable item in the inventory. Quantity and Unit
// are free text; ExpiryDate nil means the item does not expire.
type Ingredient struct {
	ID         string
	Name       string
	Quantity   string
	Unit       string
	Category   Category
	ExpiryDate *time.Time
	AddedDate  time.Time
	Notes      string
	ImageURL   string
}
