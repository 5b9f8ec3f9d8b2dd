package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vonvha/Nutri-Smart/models"
)

const (
	SearchPageSize     = 100
	DefaultRecentLimit = 10
	recentFallbackSize = 5
	// how many ingestions are scanned to fill a deduplicated recent list
	recentScanWindow = 100

	// UnlistedFoodID is reported for logged foods missing from the catalog.
	UnlistedFoodID uint = 9999
)

// CatalogItem is the catalog shape returned to clients.
type CatalogItem struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// NutritionEstimate carries optional per-serving values.
type NutritionEstimate struct {
	// Detail overrides the generated "1 porción • N Kcal" description.
	Detail   string
	Calories *int
	Protein  *float64
	Carbs    *float64
	Fat      *float64
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Search matches the query case-insensitively anywhere in the name. An empty
// query returns the first page of the catalog.
func (s *CatalogService) Search(ctx context.Context, query string) ([]CatalogItem, error) {
	q := s.db.WithContext(ctx).Order("id").Limit(SearchPageSize)
	if key := nameKey(query); key != "" {
		q = q.Where("name_key LIKE ? ESCAPE '\\'", "%"+escapeLike(key)+"%")
	}

	var foods []models.FoodItem
	if err := q.Find(&foods).Error; err != nil {
		return nil, err
	}
	return toCatalogItems(foods), nil
}

// RecentForUser lists the user's latest distinct foods, or a small catalog
// sample when nothing was logged yet.
func (s *CatalogService) RecentForUser(ctx context.Context, email string, limit int) ([]CatalogItem, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var ings []models.Ingestion
	err := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("logged_at desc, id desc").
		Limit(recentScanWindow).
		Find(&ings).Error
	if err != nil {
		return nil, err
	}

	items := make([]CatalogItem, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, ing := range ings {
		key := nameKey(ing.FoodName)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, CatalogItem{ID: ing.FoodID, Name: ing.FoodName, Detail: servingDetail(&ing.Calories)})
		if len(items) == limit {
			break
		}
	}
	if len(items) > 0 {
		return items, nil
	}

	var foods []models.FoodItem
	if err := s.db.WithContext(ctx).Order("id").Limit(recentFallbackSize).Find(&foods).Error; err != nil {
		return nil, err
	}
	return toCatalogItems(foods), nil
}

// FindByName is a case-insensitive exact lookup. It returns nil when absent.
func (s *CatalogService) FindByName(ctx context.Context, name string) (*models.FoodItem, error) {
	var foods []models.FoodItem
	err := s.db.WithContext(ctx).Where("name_key = ?", nameKey(name)).Limit(1).Find(&foods).Error
	if err != nil || len(foods) == 0 {
		return nil, err
	}
	return &foods[0], nil
}

// ResolveOrCreate returns the entry named name (case-insensitively), creating
// it when missing. Ids come from the table sequence and the unique name_key
// index settles concurrent creations of the same name.
func (s *CatalogService) ResolveOrCreate(ctx context.Context, name string, est NutritionEstimate) (*models.FoodItem, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, errors.New("food name is required")
	}

	existing, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	detail := est.Detail
	if detail == "" {
		detail = servingDetail(est.Calories)
	}
	item := models.FoodItem{
		Name:     name,
		NameKey:  nameKey(name),
		Detail:   detail,
		Calories: est.Calories,
		Protein:  est.Protein,
		Carbs:    est.Carbs,
		Fat:      est.Fat,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name_key"}}, DoNothing: true}).
		Create(&item)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to create food %q: %w", name, res.Error)
	}
	if res.RowsAffected == 1 {
		return &item, true, nil
	}

	// another writer inserted the same name first
	existing, err = s.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("food %q vanished after conflict", name)
	}
	return existing, false, nil
}

func toCatalogItems(foods []models.FoodItem) []CatalogItem {
	out := make([]CatalogItem, 0, len(foods))
	for _, f := range foods {
		out = append(out, CatalogItem{ID: f.ID, Name: f.Name, Detail: f.Detail})
	}
	return out
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func servingDetail(calories *int) string {
	if calories == nil {
		return "1 porción"
	}
	return fmt.Sprintf("1 porción • %d Kcal", *calories)
}
