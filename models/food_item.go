package models

import "time"

// FoodItem is a global catalog entry. NameKey is the lower-cased name and
// carries the uniqueness constraint.
type FoodItem struct {
	ID        uint     `gorm:"primaryKey"`
	Name      string   `gorm:"not null"`
	NameKey   string   `gorm:"uniqueIndex;not null"`
	Detail    string
	Calories  *int
	Protein   *float64
	Carbs     *float64
	Fat       *float64
	CreatedAt time.Time
}
