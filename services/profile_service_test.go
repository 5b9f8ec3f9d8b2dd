package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vonvha/Nutri-Smart/models"
	"github.com/vonvha/Nutri-Smart/utils"
)

var carlaProfile = ProfileInput{
	Goal:          "Perder peso",
	Weight:        70.5,
	Height:        170,
	Age:           28,
	Sex:           "Femenino",
	ActivityLevel: "Moderado",
	Allergies:     []string{"Lactosa"},
}

func TestGetProfile_Placeholder(t *testing.T) {
	p, err := NewProfileService(newTestDB(t), nil).GetProfile(context.Background(), carla)
	require.NoError(t, err)
	assert.Equal(t, UnsetLabel, p.Goal)
	assert.Equal(t, UnsetLabel, p.Sex)
	assert.Equal(t, UnsetLabel, p.ActivityLevel)
	assert.Zero(t, p.Weight)
	assert.NotNil(t, p.Allergies)
	assert.Empty(t, p.Allergies)
}

func TestSaveProfile_StoresInputsAndTargets(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db, nil)

	targets, err := svc.SaveProfile(ctx, carla, carlaProfile)
	require.NoError(t, err)
	assert.Equal(t, utils.Targets{Calories: 1773, Protein: 132, Carbs: 177, Fat: 59}, *targets)

	got, err := svc.GetProfile(ctx, carla)
	require.NoError(t, err)
	assert.Equal(t, carlaProfile, *got)

	stored, err := svc.Targets(ctx, carla)
	require.NoError(t, err)
	assert.Equal(t, *targets, stored)

	allergies, err := svc.Allergies(ctx, carla)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lactosa"}, allergies)
}

func TestSaveProfile_UpsertsOneRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db, nil)

	_, err := svc.SaveProfile(ctx, carla, carlaProfile)
	require.NoError(t, err)

	updated := carlaProfile
	updated.Goal = "Ganar músculo"
	updated.Allergies = nil
	targets, err := svc.SaveProfile(ctx, carla, updated)
	require.NoError(t, err)
	// 2273.075 + 300
	assert.Equal(t, 2573, targets.Calories)

	var n int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	got, err := svc.GetProfile(ctx, carla)
	require.NoError(t, err)
	assert.Equal(t, "Ganar músculo", got.Goal)
	assert.Empty(t, got.Allergies)

	goal, err := svc.Goal(ctx, carla)
	require.NoError(t, err)
	assert.Equal(t, "Ganar músculo", goal)
}

func TestSaveProfile_NotifiesOnTargetChange(t *testing.T) {
	ctx := context.Background()
	notes := &recordingNotifier{}
	svc := NewProfileService(newTestDB(t), notes)

	_, err := svc.SaveProfile(ctx, carla, carlaProfile)
	require.NoError(t, err)

	same := carlaProfile
	same.Allergies = []string{"Gluten"}
	_, err = svc.SaveProfile(ctx, carla, same)
	require.NoError(t, err)

	heavier := carlaProfile
	heavier.Weight = 80
	_, err = svc.SaveProfile(ctx, carla, heavier)
	require.NoError(t, err)

	calls := notes.all()
	require.Len(t, calls, 2)
	assert.Equal(t, NotificationGoal, calls[0].Type)
	assert.Contains(t, calls[0].Description, "1773")
}

func TestTargets_DefaultsWithoutProfile(t *testing.T) {
	svc := NewProfileService(newTestDB(t), nil)
	got, err := svc.Targets(context.Background(), carla)
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultTargets(), got)

	goal, err := svc.Goal(context.Background(), carla)
	require.NoError(t, err)
	assert.Empty(t, goal)
}
