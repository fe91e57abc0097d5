// Package recipe defines recipe suggestions produced by the assistant and
// the recipes users keep in their library.
package recipe

import (
	"time"

	"github.com/chefwise/chefwise/internal/domain/shared"
)

// DefaultServings is used when a suggestion does not state a serving count
const DefaultServings = 4

// RecipeSuggestion is a recipe proposed by the model that has not been saved.
// Dietary tags are free-form here; only known tags survive saving.
type RecipeSuggestion struct {
	Title           string       `json:"title" validate:"required"`
	Description     string       `json:"description"`
	Ingredients     []Ingredient `json:"ingredients" validate:"dive"`
	Instructions    []string     `json:"instructions"`
	PrepTimeMinutes *int         `json:"prep_time_minutes,omitempty" validate:"omitempty,gte=0"`
	CookTimeMinutes *int         `json:"cook_time_minutes,omitempty" validate:"omitempty,gte=0"`
	Servings        int          `json:"servings" validate:"min=1"`
	DietaryTags     []string     `json:"dietary_tags"`
	Cuisine         string       `json:"cuisine,omitempty"`
	Difficulty      string       `json:"difficulty,omitempty"`
	Tips            string       `json:"tips,omitempty"`
	Rationale       string       `json:"rationale,omitempty"`
}

// Validate checks field constraints
func (s *RecipeSuggestion) Validate() error {
	s.normalize()
	return shared.Validate(s)
}

// TotalTimeMinutes returns prep plus cook time, or nil when neither is known
func (s RecipeSuggestion) TotalTimeMinutes() *int {
	return totalTime(s.PrepTimeMinutes, s.CookTimeMinutes)
}

func (s *RecipeSuggestion) normalize() {
	if s.Ingredients == nil {
		s.Ingredients = []Ingredient{}
	}
	if s.Instructions == nil {
		s.Instructions = []string{}
	}
	if s.DietaryTags == nil {
		s.DietaryTags = []string{}
	}
}

// Recipe is a saved recipe. ID is assigned by the store on creation and is
// never reused.
type Recipe struct {
	ID              uint         `json:"id"`
	Title           string       `json:"title" validate:"required"`
	Description     string       `json:"description"`
	Ingredients     []Ingredient `json:"ingredients" validate:"dive"`
	Instructions    []string     `json:"instructions"`
	PrepTimeMinutes *int         `json:"prep_time_minutes,omitempty" validate:"omitempty,gte=0"`
	CookTimeMinutes *int         `json:"cook_time_minutes,omitempty" validate:"omitempty,gte=0"`
	Servings        int          `json:"servings" validate:"min=1"`
	DietaryTags     []DietaryTag `json:"dietary_tags" validate:"dive,oneof=vegetarian vegan gluten_free dairy_free nut_free low_carb keto paleo"`
	Cuisine         string       `json:"cuisine,omitempty"`
	Difficulty      string       `json:"difficulty,omitempty"`
	Tips            string       `json:"tips,omitempty"`
	Rationale       string       `json:"rationale,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// FromSuggestion builds an unsaved Recipe. Dietary tags outside the known
// set are dropped.
func FromSuggestion(s RecipeSuggestion) *Recipe {
	r := &Recipe{
		Title:           s.Title,
		Description:     s.Description,
		Ingredients:     append([]Ingredient(nil), s.Ingredients...),
		Instructions:    append([]string(nil), s.Instructions...),
		PrepTimeMinutes: copyInt(s.PrepTimeMinutes),
		CookTimeMinutes: copyInt(s.CookTimeMinutes),
		Servings:        s.Servings,
		DietaryTags:     KnownDietaryTags(s.DietaryTags),
		Cuisine:         s.Cuisine,
		Difficulty:      s.Difficulty,
		Tips:            s.Tips,
		Rationale:       s.Rationale,
	}
	if r.Servings <= 0 {
		r.Servings = DefaultServings
	}
	r.normalize()
	return r
}

// Validate checks field constraints
func (r *Recipe) Validate() error {
	r.normalize()
	return shared.Validate(r)
}

// TotalTimeMinutes returns prep plus cook time, or nil when neither is known
func (r Recipe) TotalTimeMinutes() *int {
	return totalTime(r.PrepTimeMinutes, r.CookTimeMinutes)
}

// HasTag reports whether the recipe carries tag
func (r Recipe) HasTag(tag DietaryTag) bool {
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (r *Recipe) normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.DietaryTags == nil {
		r.DietaryTags = []DietaryTag{}
	}
}

func totalTime(prep, cook *int) *int {
	if prep == nil && cook == nil {
		return nil
	}
	total := 0
	if prep != nil {
		total += *prep
	}
	if cook != nil {
		total += *cook
	}
	return &total
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
