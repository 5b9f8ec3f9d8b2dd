package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile is the nutrition profile of one user. The *Target fields are
// derived from the others and are always written together with them.
type Profile struct {
	ID            uint                        `gorm:"primaryKey"`
	UserEmail     string                      `gorm:"uniqueIndex;not null"`
	Goal          string
	Weight        float64                     // kg
	Height        float64                     // cm
	Age           int
	Sex           string
	ActivityLevel string
	Allergies     datatypes.JSONSlice[string]

	CaloriesTarget int // kcal
	ProteinTarget  int // g
	CarbsTarget    int // g
	FatTarget      int // g

	CreatedAt time.Time
	UpdatedAt time.Time
}
