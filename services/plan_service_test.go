package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealPlan(t *testing.T) {
	ctx := context.Background()
	profiles := NewProfileService(newTestDB(t), nil)
	plans := NewPlanService(profiles)

	meals, err := plans.MealPlan(ctx, carla)
	require.NoError(t, err)
	require.Len(t, meals, 4)
	assert.Equal(t, "Avena con proteína", meals[0].Name)

	muscle := carlaProfile
	muscle.Goal = "Ganar músculo"
	_, err = profiles.SaveProfile(ctx, carla, muscle)
	require.NoError(t, err)

	meals, err = plans.MealPlan(ctx, carla)
	require.NoError(t, err)
	assert.Equal(t, "4 Huevos y Pan Integral", meals[0].Name)

	// callers get a copy
	meals[0].Name = "changed"
	again, err := plans.MealPlan(ctx, carla)
	require.NoError(t, err)
	assert.Equal(t, "4 Huevos y Pan Integral", again[0].Name)
}

func TestAppointments(t *testing.T) {
	ctx := context.Background()
	svc := NewAppointmentService(newTestDB(t))

	latest, err := svc.Latest(ctx, carla)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = svc.Schedule(ctx, carla, AppointmentRequest{Date: "2025-03-12", Time: "10:00", Type: "Nutricionista"})
	require.NoError(t, err)
	_, err = svc.Schedule(ctx, carla, AppointmentRequest{Date: "2025-03-01", Time: "08:30", Type: "Control"})
	require.NoError(t, err)

	latest, err = svc.Latest(ctx, carla)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "Control", latest.Type)

	none, err := svc.Latest(ctx, "renzo.strong@smartfit.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}
