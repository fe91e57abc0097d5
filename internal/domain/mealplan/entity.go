// Package mealplan defines meal plans, their slots, and shopping lists
package mealplan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chefwise/chefwise/internal/domain/shared"
)

// DateLayout is the ISO calendar date format used in prompts and replies
const DateLayout = "2006-01-02"

// MealType is the meal a slot belongs to
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypes lists every meal type in the order meals happen in a day
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

// DefaultMealTypes are planned when the caller does not choose
func DefaultMealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}
}

// ParseMealType matches s case-insensitively against the known meal types
func ParseMealType(s string) (MealType, error) {
	candidate := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, mt := range MealTypes {
		if mt == candidate {
			return mt, nil
		}
	}
	return "", fmt.Errorf("unknown meal type %q", s)
}

func (m MealType) order() int {
	for i, mt := range MealTypes {
		if mt == m {
			return i
		}
	}
	return len(MealTypes)
}

// MealSlot is one meal on one day. RecipeTitle is kept even when RecipeID
// is set so the slot stays displayable after the recipe is deleted.
type MealSlot struct {
	ID          uint      `json:"id,omitempty"`
	Date        time.Time `json:"date" validate:"required"`
	MealType    MealType  `json:"meal_type" validate:"oneof=breakfast lunch dinner snack"`
	RecipeID    *uint     `json:"recipe_id,omitempty"`
	RecipeTitle string    `json:"recipe_title"`
	Notes       string    `json:"notes,omitempty"`
}

// MealPlan is a named span of days with the meals planned for them.
// A plan owns its slots.
type MealPlan struct {
	ID        uint       `json:"id,omitempty"`
	Name      string     `json:"name" validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   time.Time  `json:"end_date" validate:"required,gtefield=StartDate"`
	Meals     []MealSlot `json:"meals" validate:"dive"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// Validate checks field constraints
func (p *MealPlan) Validate() error {
	if p.Meals == nil {
		p.Meals = []MealSlot{}
	}
	return shared.Validate(p)
}

// Covers reports whether day falls within the plan, inclusive
func (p MealPlan) Covers(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(p.StartDate)) && !d.After(DateOf(p.EndDate))
}

// DayPlan is the meals of a single date
type DayPlan struct {
	Date  time.Time  `json:"date"`
	Meals []MealSlot `json:"meals"`
}

// Days groups the slots by date, earliest first, with each day's meals in
// breakfast, lunch, dinner, snack order.
func (p MealPlan) Days() []DayPlan {
	slots := append([]MealSlot(nil), p.Meals...)
	sort.SliceStable(slots, func(i, j int) bool {
		di, dj := DateOf(slots[i].Date), DateOf(slots[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return slots[i].MealType.order() < slots[j].MealType.order()
	})

	days := make([]DayPlan, 0)
	for _, slot := range slots {
		d := DateOf(slot.Date)
		if n := len(days); n > 0 && days[n-1].Date.Equal(d) {
			days[n-1].Meals = append(days[n-1].Meals, slot)
			continue
		}
		days = append(days, DayPlan{Date: d, Meals: []MealSlot{slot}})
	}
	return days
}

// ShoppingListItem is one line of the list produced alongside a plan.
// Checked is only tracked by the front end.
type ShoppingListItem struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Category string  `json:"category,omitempty"`
	Checked  bool    `json:"checked"`
}

// EndDateFor returns the last day of a plan of the given length
func EndDateFor(start time.Time, days int) time.Time {
	return DateOf(start).AddDate(0, 0, days-1)
}

// DateOf strips the clock from t, keeping its calendar date in UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate renders t as an ISO calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
