// Package preferences defines the per-installation cooking preferences
package preferences

import (
	"fmt"
	"strings"
	"time"

	"github.com/chefwise/chefwise/internal/domain/shared"
)

// SingletonID is the fixed identity of the only preferences record
const SingletonID uint = 1

// DefaultServingSize applies when nothing has been saved yet
const DefaultServingSize = 4

// SkillLevel describes how confident the cook is
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// ParseSkillLevel matches s case-insensitively against the known levels
func ParseSkillLevel(s string) (SkillLevel, error) {
	switch level := SkillLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return level, nil
	}
	return "", fmt.Errorf("unknown skill level %q", s)
}

// UserPreferences holds everything the assistant should take into account.
// List fields are never nil.
type UserPreferences struct {
	DietaryRestrictions []string   `json:"dietary_restrictions"`
	Allergies           []string   `json:"allergies"`
	DislikedIngredients []string   `json:"disliked_ingredients"`
	FavoriteCuisines    []string   `json:"favorite_cuisines"`
	SkillLevel          SkillLevel `json:"skill_level" validate:"oneof=beginner intermediate advanced"`
	ServingSize         int        `json:"serving_size" validate:"min=1"`
	MaxCookTimeMinutes  *int       `json:"max_cook_time_minutes,omitempty" validate:"omitempty,min=1"`
	PreferQuickMeals    bool       `json:"prefer_quick_meals"`
	BudgetConscious     bool       `json:"budget_conscious"`
	UpdatedAt           time.Time  `json:"updated_at,omitempty"`
}

// Default returns the preferences of a fresh installation
func Default() UserPreferences {
	return UserPreferences{
		DietaryRestrictions: []string{},
		Allergies:           []string{},
		DislikedIngredients: []string{},
		FavoriteCuisines:    []string{},
		SkillLevel:          SkillIntermediate,
		ServingSize:         DefaultServingSize,
	}
}

// Validate checks field constraints
func (p *UserPreferences) Validate() error {
	p.Normalize()
	return shared.Validate(p)
}

// Normalize replaces nil lists with empty ones
func (p *UserPreferences) Normalize() {
	if p.DietaryRestrictions == nil {
		p.DietaryRestrictions = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.DislikedIngredients == nil {
		p.DislikedIngredients = []string{}
	}
	if p.FavoriteCuisines == nil {
		p.FavoriteCuisines = []string{}
	}
}

// RestrictionPhrases flattens restrictions, allergies and dislikes into the
// phrases used when asking the assistant for food, e.g. "vegan",
// "allergic to peanuts", "no cilantro".
func (p UserPreferences) RestrictionPhrases() []string {
	out := make([]string, 0, len(p.DietaryRestrictions)+len(p.Allergies)+len(p.DislikedIngredients))
	out = append(out, p.DietaryRestrictions...)
	for _, a := range p.Allergies {
		out = append(out, "allergic to "+a)
	}
	for _, d := range p.DislikedIngredients {
		out = append(out, "no "+d)
	}
	return out
}
