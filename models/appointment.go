package models

import "time"

type Appointment struct {
	ID        uint   `gorm:"primaryKey"`
	UserEmail string `gorm:"index;not null"`
	Date      string `gorm:"size:10"` // YYYY-MM-DD
	Time      string `gorm:"size:5"`  // HH:MM
	Type      string
	Status    string `gorm:"size:20;default:scheduled"`
	CreatedAt time.Time
}
