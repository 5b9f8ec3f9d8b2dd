package models

import "time"

type Notification struct {
	ID          uint      `gorm:"primaryKey"`
	UserEmail   string    `gorm:"index;not null"`
	Type        string    `gorm:"size:20"` // "alert" | "goal" | "info"
	Title       string
	Description string    `gorm:"type:text"`
	IsRead      bool      `gorm:"default:false"`
	CreatedAt   time.Time
}
