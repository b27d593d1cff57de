package packages

import (
	"fmt"
	"slices"
)

// DefaultCategoryIcon is shown for categories that have no icon, or are unknown to the catalog.
const DefaultCategoryIcon = "📦"

// Category groups servers in the catalog.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

// Categories is a wrapper for a collection of Category entries.
type Categories []Category

// Find returns the category with the given ID.
func (c Categories) Find(id string) (Category, bool) {
	idx := slices.IndexFunc(c, func(cat Category) bool { return cat.ID == id })
	if idx < 0 {
		return Category{}, false
	}
	return c[idx], true
}

// Label returns a display label for the category ID.
// Servers may reference categories that the catalog doesn't define, so unknown IDs fall back to the raw ID.
func (c Categories) Label(id string) string {
	cat, ok := c.Find(id)
	if !ok {
		return fmt.Sprintf("%s %s", DefaultCategoryIcon, id)
	}

	icon := cat.Icon
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	name := cat.Name
	if name == "" {
		name = cat.ID
	}

	return fmt.Sprintf("%s %s", icon, name)
}
