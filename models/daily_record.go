package models

import "time"

const (
	DailyStatusInProgress = "inprogress"
	DailyStatusSuccess    = "success"
)

// DailyRecord accumulates the calories one user logged on one calendar day.
type DailyRecord struct {
	ID               uint   `gorm:"primaryKey"`
	UserEmail        string `gorm:"uniqueIndex:idx_daily_user_date;not null"`
	Date             string `gorm:"uniqueIndex:idx_daily_user_date;size:10;not null"` // YYYY-MM-DD
	CaloriesConsumed int    `gorm:"not null;default:0"`
	CaloriesTarget   int    `gorm:"not null"` // snapshot taken when the row is created
	Status           string `gorm:"size:20;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
