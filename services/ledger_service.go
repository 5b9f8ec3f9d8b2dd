package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vonvha/Nutri-Smart/models"
	"github.com/vonvha/Nutri-Smart/utils"
)

const DefaultHistoryLimit = 7

// FoodRef identifies what was eaten. ID is UnlistedFoodID for foods that are
// not in the catalog.
type FoodRef struct {
	ID   uint
	Name string
}

type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// LogIntake appends an ingestion and adds calories to the (user, day) record.
// The record is created on the first log of the day with the profile target
// at that moment; later logs only increment calories_consumed. Both happen in
// one transaction and the increment is a single INSERT ... ON CONFLICT, so
// concurrent logs never lose an update.
func (s *LedgerService) LogIntake(ctx context.Context, email string, food FoodRef, calories int, now time.Time) (*models.DailyRecord, error) {
	day := utils.ISODate(now)

	var rec models.DailyRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ing := models.Ingestion{
			UserEmail: email,
			FoodID:    food.ID,
			FoodName:  food.Name,
			Calories:  calories,
			LoggedAt:  now,
		}
		if err := tx.Create(&ing).Error; err != nil {
			return fmt.Errorf("failed to record ingestion: %w", err)
		}

		targets, _, err := lookupTargets(tx, email)
		if err != nil {
			return err
		}

		row := models.DailyRecord{
			UserEmail:        email,
			Date:             day,
			CaloriesConsumed: calories,
			CaloriesTarget:   targets.Calories,
			Status:           models.DailyStatusInProgress,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_email"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"calories_consumed": gorm.Expr("daily_records.calories_consumed + excluded.calories_consumed"),
				"updated_at":        now,
			}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to update daily record: %w", err)
		}

		return tx.Where("user_email = ? AND date = ?", email, day).First(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Today returns the record for the day of now, or nil if nothing was logged.
func (s *LedgerService) Today(ctx context.Context, email string, now time.Time) (*models.DailyRecord, error) {
	var recs []models.DailyRecord
	err := s.db.WithContext(ctx).
		Where("user_email = ? AND date = ?", email, utils.ISODate(now)).
		Limit(1).
		Find(&recs).Error
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

// History lists the most recent records, newest first.
func (s *LedgerService) History(ctx context.Context, email string, limit int) ([]models.DailyRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var recs []models.DailyRecord
	err := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("date desc").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
