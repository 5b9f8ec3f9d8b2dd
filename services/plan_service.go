package services

import (
	"context"

	"github.com/vonvha/Nutri-Smart/utils"
)

type Meal struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Kcal   int    `json:"kcal"`
	Macros string `json:"macros"`
}

var weightLossPlan = []Meal{
	{Type: "Desayuno", Name: "Avena con proteína", Kcal: 450, Macros: "30P • 50C • 10G"},
	{Type: "Almuerzo", Name: "Pollo a la plancha y arroz", Kcal: 600, Macros: "45P • 60C • 15G"},
	{Type: "Snack", Name: "Manzana y almendras", Kcal: 200, Macros: "5P • 25C • 10G"},
	{Type: "Cena", Name: "Ensalada con atún", Kcal: 350, Macros: "35P • 10C • 15G"},
}

var musclePlan = []Meal{
	{Type: "Desayuno", Name: "4 Huevos y Pan Integral", Kcal: 600, Macros: "40P • 40C • 20G"},
	{Type: "Almuerzo", Name: "Carne con Pasta", Kcal: 800, Macros: "50P • 90C • 25G"},
	{Type: "Snack", Name: "Batido y Plátano", Kcal: 400, Macros: "30P • 50C • 5G"},
	{Type: "Cena", Name: "Salmón y Papa", Kcal: 600, Macros: "40P • 40C • 20G"},
}

type PlanService struct {
	profiles *ProfileService
}

func NewPlanService(profiles *ProfileService) *PlanService {
	return &PlanService{profiles: profiles}
}

// MealPlan picks the muscle plan for gain-muscle goals and the weight-loss
// plan for everything else, including users without a profile.
func (s *PlanService) MealPlan(ctx context.Context, email string) ([]Meal, error) {
	goal, err := s.profiles.Goal(ctx, email)
	if err != nil {
		return nil, err
	}
	src := weightLossPlan
	if utils.ParseGoal(goal) == utils.GoalGainMuscle {
		src = musclePlan
	}
	out := make([]Meal, len(src))
	copy(out, src)
	return out, nil
}
