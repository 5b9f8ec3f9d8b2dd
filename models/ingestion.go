package models

import "time"

// Ingestion is an append-only food log entry.
type Ingestion struct {
	ID        uint      `gorm:"primaryKey"`
	UserEmail string    `gorm:"index;not null"`
	FoodID    uint
	FoodName  string    `gorm:"not null"`
	Calories  int
	LoggedAt  time.Time `gorm:"index;not null"`
}
