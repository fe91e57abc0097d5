package recipe

import (
	"fmt"
	"strconv"
	"strings"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient is a named quantity of something that goes into a dish.
// Two ingredients are the same when all their fields are equal.
type Ingredient struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
}

// String renders the ingredient as a shopping-list style line,
// e.g. "1.5 cup flour (sifted)"
func (i Ingredient) String() string {
	parts := []string{strconv.FormatFloat(i.Quantity, 'f', -1, 64)}
	if i.Unit != "" {
		parts = append(parts, i.Unit)
	}
	parts = append(parts, i.Name)
	line := strings.Join(parts, " ")
	if i.Notes != "" {
		line += fmt.Sprintf(" (%s)", i.Notes)
	}
	return line
}

// DietaryTag is one of the closed set of labels a saved recipe may carry
type DietaryTag string

const (
	DietaryTagVegetarian DietaryTag = "vegetarian"
	DietaryTagVegan      DietaryTag = "vegan"
	DietaryTagGlutenFree DietaryTag = "gluten_free"
	DietaryTagDairyFree  DietaryTag = "dairy_free"
	DietaryTagNutFree    DietaryTag = "nut_free"
	DietaryTagLowCarb    DietaryTag = "low_carb"
	DietaryTagKeto       DietaryTag = "keto"
	DietaryTagPaleo      DietaryTag = "paleo"
)

// DietaryTags lists every known tag in display order
var DietaryTags = []DietaryTag{
	DietaryTagVegetarian,
	DietaryTagVegan,
	DietaryTagGlutenFree,
	DietaryTagDairyFree,
	DietaryTagNutFree,
	DietaryTagLowCarb,
	DietaryTagKeto,
	DietaryTagPaleo,
}

// ParseDietaryTag matches s exactly, after trimming surrounding space,
// against the known tags.
func ParseDietaryTag(s string) (DietaryTag, error) {
	candidate := DietaryTag(strings.TrimSpace(s))
	for _, tag := range DietaryTags {
		if tag == candidate {
			return tag, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDietaryTag, s)
}

// KnownDietaryTags keeps the tags of raw that parse, in order, without duplicates
func KnownDietaryTags(raw []string) []DietaryTag {
	out := make([]DietaryTag, 0, len(raw))
	seen := make(map[DietaryTag]bool, len(raw))
	for _, s := range raw {
		tag, err := ParseDietaryTag(s)
		if err != nil || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
