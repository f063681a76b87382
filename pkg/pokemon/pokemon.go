package pokemon

import "slices"

// PlaceholderSprite is shown when an entry has no front sprite.
const PlaceholderSprite = "https://via.placeholder.com/120?text=No+Image"

// TypeAll is the filter sentinel selecting every entry.
const TypeAll = "all"

// excludedTypes are returned by the type list but never carried by a
// regular entry, so they are useless as filters.
var excludedTypes = []string{"unknown", "shadow"}

// Pokemon is a single catalog entry. Values are immutable once fetched.
type Pokemon struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Sprite    string   `json:"sprite"`
	Types     []string `json:"types"`
	Weight    int      `json:"weight"` // hectograms
	Height    int      `json:"height"` // decimetres
	Abilities []string `json:"abilities"`
	Stats     []Stat   `json:"stats"`
}

// Stat is a named base statistic, e.g. hp or special-attack.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Stub is one row of the paginated list: a name and the detail URL.
type Stub struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Type is a category tag used both for filtering and as a badge.
type Type struct {
	Name string `json:"name"`
}

// HasType reports whether p carries the given type tag.
func (p Pokemon) HasType(name string) bool {
	return slices.Contains(p.Types, name)
}

// SpriteOrPlaceholder returns the sprite URL, falling back to the placeholder.
func (p Pokemon) SpriteOrPlaceholder() string {
	if p.Sprite == "" {
		return PlaceholderSprite
	}
	return p.Sprite
}

// UsableTypes drops the types no regular entry can carry.
func UsableTypes(types []Type) []Type {
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if slices.Contains(excludedTypes, t.Name) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByType returns the entries carrying typeName, preserving order.
// TypeAll returns a copy of the whole list.
func FilterByType(list []Pokemon, typeName string) []Pokemon {
	if typeName == TypeAll {
		return slices.Clone(list)
	}
	out := make([]Pokemon, 0, len(list))
	for _, p := range list {
		if p.HasType(typeName) {
			out = append(out, p)
		}
	}
	return out
}
