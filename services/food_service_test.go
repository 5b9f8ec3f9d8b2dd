package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFood(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	catalog := NewCatalogService(db)
	ledger := NewLedgerService(db)
	profiles := NewProfileService(db, nil)
	svc := NewFoodService(catalog, ledger, profiles)
	now := day("2025-03-10")

	yogur, _, err := catalog.ResolveOrCreate(ctx, "Yogur Griego (1 taza)", NutritionEstimate{Calories: intPtr(120)})
	require.NoError(t, err)
	_, err = profiles.SaveProfile(ctx, carla, carlaProfile)
	require.NoError(t, err)

	listed, err := svc.LogFood(ctx, carla, "yogur griego (1 taza)", 120, now)
	require.NoError(t, err)
	assert.Equal(t, yogur.ID, listed.ID)
	assert.Equal(t, "1 porción • 120 Kcal", listed.Detail)
	require.Len(t, listed.Warnings, 1)
	assert.Equal(t, "Lactosa", listed.Warnings[0].Allergen)

	unlisted, err := svc.LogFood(ctx, carla, "Ceviche", DefaultLoggedCalories, now)
	require.NoError(t, err)
	assert.Equal(t, UnlistedFoodID, unlisted.ID)
	assert.Equal(t, "Ceviche", unlisted.Name)
	assert.Empty(t, unlisted.Warnings)

	rec, err := ledger.Today(ctx, carla, now)
	require.NoError(t, err)
	assert.Equal(t, 420, rec.CaloriesConsumed)
	assert.Equal(t, 1773, rec.CaloriesTarget)
}
