package utils

import (
	"math"
	"strings"
)

type Goal string

const (
	GoalLoseWeight Goal = "lose-weight"
	GoalGainMuscle Goal = "gain-muscle"
	GoalOther      Goal = "other"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityIntense   ActivityLevel = "intense"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary: DefaultActivityMultiplier,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityIntense:   1.725,
}

// MetabolicInput is the part of a profile the calculator needs.
// Weight in kg, height in cm, age in years.
type MetabolicInput struct {
	Weight   float64
	Height   float64
	Age      int
	Sex      Sex
	Activity ActivityLevel
	Goal     Goal
}

// Targets are the daily calorie (kcal) and macro (g) targets.
type Targets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// ComputeTargets applies Mifflin-St Jeor, the activity multiplier and the goal
// adjustment, then splits the result 30/40/30 into protein/carbs/fat.
func ComputeTargets(in MetabolicInput) Targets {
	bmr := 10*in.Weight + 6.25*in.Height - 5*float64(in.Age)
	if in.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * ActivityMultiplier(in.Activity)

	switch in.Goal {
	case GoalLoseWeight:
		tdee -= 500
	case GoalGainMuscle:
		tdee += 300
	}

	kcal := int(math.Floor(tdee))
	return Targets{
		Calories: kcal,
		Protein:  int(math.Floor(0.30 * float64(kcal) / 4)),
		Carbs:    int(math.Floor(0.40 * float64(kcal) / 4)),
		Fat:      int(math.Floor(0.30 * float64(kcal) / 9)),
	}
}

// ActivityMultiplier falls back to the sedentary factor for unknown levels.
func ActivityMultiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return DefaultActivityMultiplier
}

// The front end submits Spanish labels; API clients may send English slugs.

func ParseGoal(s string) Goal {
	switch normalizeLabel(s) {
	case "perder peso", "lose-weight", "lose weight", "lose_weight":
		return GoalLoseWeight
	case "ganar músculo", "ganar musculo", "gain-muscle", "gain muscle", "gain_muscle":
		return GoalGainMuscle
	default:
		return GoalOther
	}
}

func ParseSex(s string) Sex {
	switch normalizeLabel(s) {
	case "masculino", "hombre", "male", "m":
		return SexMale
	case "femenino", "mujer", "female", "f":
		return SexFemale
	default:
		return SexOther
	}
}

func ParseActivityLevel(s string) ActivityLevel {
	switch normalizeLabel(s) {
	case "ligero", "light":
		return ActivityLight
	case "moderado", "moderate":
		return ActivityModerate
	case "intenso", "intense":
		return ActivityIntense
	default:
		return ActivitySedentary
	}
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
