package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vonvha/Nutri-Smart/models"
	"github.com/vonvha/Nutri-Smart/utils"
)

// Placeholder label reported for the enum fields of a missing profile.
const UnsetLabel = "No definido"

// ProfileInput is the profile as submitted by (and returned to) clients.
type ProfileInput struct {
	Goal          string   `json:"goal" yaml:"goal"`
	Weight        float64  `json:"weight" yaml:"weight" binding:"gte=0"`
	Height        float64  `json:"height" yaml:"height" binding:"gte=0"`
	Age           int      `json:"age" yaml:"age" binding:"gte=0"`
	Sex           string   `json:"sex" yaml:"sex"`
	ActivityLevel string   `json:"activityLevel" yaml:"activityLevel"`
	Allergies     []string `json:"allergies" yaml:"allergies"`
}

func (in ProfileInput) metabolicInput() utils.MetabolicInput {
	return utils.MetabolicInput{
		Weight:   in.Weight,
		Height:   in.Height,
		Age:      in.Age,
		Sex:      utils.ParseSex(in.Sex),
		Activity: utils.ParseActivityLevel(in.ActivityLevel),
		Goal:     utils.ParseGoal(in.Goal),
	}
}

type ProfileService struct {
	db     *gorm.DB
	notify Notifier
}

// NewProfileService wires the profile store. notify may be nil.
func NewProfileService(db *gorm.DB, notify Notifier) *ProfileService {
	return &ProfileService{db: db, notify: notify}
}

// GetProfile returns the stored profile or the unset placeholder.
func (s *ProfileService) GetProfile(ctx context.Context, email string) (*ProfileInput, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ProfileInput{
			Goal:          UnsetLabel,
			Sex:           UnsetLabel,
			ActivityLevel: UnsetLabel,
			Allergies:     []string{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	allergies := []string(p.Allergies)
	if allergies == nil {
		allergies = []string{}
	}
	return &ProfileInput{
		Goal:          p.Goal,
		Weight:        p.Weight,
		Height:        p.Height,
		Age:           p.Age,
		Sex:           p.Sex,
		ActivityLevel: p.ActivityLevel,
		Allergies:     allergies,
	}, nil
}

// SaveProfile recomputes the targets and upserts the whole profile in a
// single statement, so the derived fields are never partially replaced.
func (s *ProfileService) SaveProfile(ctx context.Context, email string, in ProfileInput) (*utils.Targets, error) {
	targets := utils.ComputeTargets(in.metabolicInput())

	previous, hadProfile, err := lookupTargets(s.db.WithContext(ctx), email)
	if err != nil {
		return nil, err
	}

	allergies := in.Allergies
	if allergies == nil {
		allergies = []string{}
	}

	p := models.Profile{
		UserEmail:      email,
		Goal:           in.Goal,
		Weight:         in.Weight,
		Height:         in.Height,
		Age:            in.Age,
		Sex:            in.Sex,
		ActivityLevel:  in.ActivityLevel,
		Allergies:      datatypes.JSONSlice[string](allergies),
		CaloriesTarget: targets.Calories,
		ProteinTarget:  targets.Protein,
		CarbsTarget:    targets.Carbs,
		FatTarget:      targets.Fat,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"goal", "weight", "height", "age", "sex", "activity_level", "allergies",
			"calories_target", "protein_target", "carbs_target", "fat_target", "updated_at",
		}),
	}).Create(&p).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if s.notify != nil && (!hadProfile || previous.Calories != targets.Calories) {
		s.notify.Emit(ctx, email, NotificationGoal, "Meta actualizada",
			fmt.Sprintf("Tu nueva meta diaria es de %d Kcal.", targets.Calories))
	}
	return &targets, nil
}

// Targets returns the stored targets, or the defaults when the user has no
// profile yet.
func (s *ProfileService) Targets(ctx context.Context, email string) (utils.Targets, error) {
	t, _, err := lookupTargets(s.db.WithContext(ctx), email)
	return t, err
}

// Allergies returns the declared allergies, empty without a profile.
func (s *ProfileService) Allergies(ctx context.Context, email string) ([]string, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Select("allergies").Where("user_email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []string(p.Allergies), nil
}

// Goal returns the submitted goal label, empty without a profile.
func (s *ProfileService) Goal(ctx context.Context, email string) (string, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Select("goal").Where("user_email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return p.Goal, err
}

// lookupTargets takes a *gorm.DB so the ledger can call it inside its
// transaction.
func lookupTargets(db *gorm.DB, email string) (utils.Targets, bool, error) {
	var p models.Profile
	err := db.Select("calories_target", "protein_target", "carbs_target", "fat_target").
		Where("user_email = ?", email).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.DefaultTargets(), false, nil
	}
	if err != nil {
		return utils.Targets{}, false, err
	}
	return utils.Targets{
		Calories: p.CaloriesTarget,
		Protein:  p.ProteinTarget,
		Carbs:    p.CarbsTarget,
		Fat:      p.FatTarget,
	}, true, nil
}
