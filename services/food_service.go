package services

import (
	"context"
	"time"

	"github.com/vonvha/Nutri-Smart/utils"
)

const DefaultLoggedCalories = 300

// LoggedFood is the response to a food log: the catalog-shaped item plus any
// allergy warnings for the user.
type LoggedFood struct {
	CatalogItem
	Warnings []utils.Warning `json:"warnings,omitempty"`
}

// FoodService ties the catalog, the ledger and the profile together for the
// food-log flow.
type FoodService struct {
	catalog  *CatalogService
	ledger   *LedgerService
	profiles *ProfileService
}

func NewFoodService(catalog *CatalogService, ledger *LedgerService, profiles *ProfileService) *FoodService {
	return &FoodService{catalog: catalog, ledger: ledger, profiles: profiles}
}

func (s *FoodService) LogFood(ctx context.Context, email, foodName string, calories int, now time.Time) (*LoggedFood, error) {
	ref := FoodRef{ID: UnlistedFoodID, Name: foodName}
	food, err := s.catalog.FindByName(ctx, foodName)
	if err != nil {
		return nil, err
	}
	if food != nil {
		ref.ID = food.ID
	}

	if _, err := s.ledger.LogIntake(ctx, email, ref, calories, now); err != nil {
		return nil, err
	}

	allergies, err := s.profiles.Allergies(ctx, email)
	if err != nil {
		return nil, err
	}

	return &LoggedFood{
		CatalogItem: CatalogItem{ID: ref.ID, Name: foodName, Detail: servingDetail(&calories)},
		Warnings:    utils.AssessAllergens(foodName, allergies),
	}, nil
}
