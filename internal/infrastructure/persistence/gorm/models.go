// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(255);not null;index"`
	Description string `gorm:"type:text"`

	// Recipe details
	Ingredients  IngredientList `gorm:"type:json"`
	Instructions StringSlice    `gorm:"type:json"`

	// Timing (stored in minutes)
	PrepTimeMinutes *int `gorm:"column:prep_time_minutes"`
	CookTimeMinutes *int `gorm:"column:cook_time_minutes"`
	Servings        int  `gorm:"not null"`

	// Categorization
	DietaryTags StringSlice `gorm:"type:json"`
	Cuisine     string      `gorm:"type:varchar(100)"`
	Difficulty  string      `gorm:"type:varchar(50)"`

	// AI-generated content
	Tips      string `gorm:"type:text"`
	Rationale string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// MealPlanModel represents the GORM model for meal plans
type MealPlanModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null"`
	StartDate time.Time `gorm:"type:date;not null;index"`
	EndDate   time.Time `gorm:"type:date;not null;index"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Meals []MealSlotModel `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE"`
}

// MealSlotModel represents the GORM model for a single planned meal
type MealSlotModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	MealPlanID  uint      `gorm:"not null;index"`
	Date        time.Time `gorm:"type:date;not null"`
	MealType    string    `gorm:"type:varchar(20);not null"`
	RecipeID    *uint     `gorm:"index"`
	RecipeTitle string    `gorm:"type:varchar(255)"`
	Notes       string    `gorm:"type:text"`

	// Relationships
	Recipe *RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL"`
}

// UserPreferencesModel represents the single preferences row
type UserPreferencesModel struct {
	ID                  uint        `gorm:"primaryKey;autoIncrement:false"`
	DietaryRestrictions StringSlice `gorm:"type:json"`
	Allergies           StringSlice `gorm:"type:json"`
	DislikedIngredients StringSlice `gorm:"type:json"`
	FavoriteCuisines    StringSlice `gorm:"type:json"`
	SkillLevel          string      `gorm:"type:varchar(20);not null"`
	ServingSize         int         `gorm:"not null"`
	MaxCookTimeMinutes  *int
	PreferQuickMeals    bool
	BudgetConscious     bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName overrides
func (RecipeModel) TableName() string          { return "recipes" }
func (MealPlanModel) TableName() string        { return "meal_plans" }
func (MealSlotModel) TableName() string        { return "meal_slots" }
func (UserPreferencesModel) TableName() string { return "user_preferences" }

// Models lists every model in migration order
func Models() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&MealPlanModel{},
		&MealSlotModel{},
		&UserPreferencesModel{},
	}
}

// StringSlice is a JSON-encoded list of strings
type StringSlice []string

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	out := []string{}
	if err := scanJSON(value, &out); err != nil {
		return err
	}
	*s = out
	return nil
}

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	return string(b), err
}

// IngredientRecord is the stored form of one ingredient
type IngredientRecord struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
}

// IngredientList is a JSON-encoded list of ingredients
type IngredientList []IngredientRecord

// Scan implements sql.Scanner
func (l *IngredientList) Scan(value interface{}) error {
	out := []IngredientRecord{}
	if err := scanJSON(value, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// Value implements driver.Valuer
func (l IngredientList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]IngredientRecord(l))
	return string(b), err
}

func scanJSON(value interface{}, dest interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into a JSON column", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
