package utils

// Fallback values used whenever a user has no stored profile. The calculator,
// the ledger and the dashboard all read them from here.
const (
	DefaultCalorieTarget = 1800 // kcal
	DefaultProteinTarget = 140  // g
	DefaultCarbsTarget   = 180  // g
	DefaultFatTarget     = 60   // g

	DefaultActivityMultiplier = 1.2 // sedentary
)

// DefaultTargets is the target set reported for users without a profile.
func DefaultTargets() Targets {
	return Targets{
		Calories: DefaultCalorieTarget,
		Protein:  DefaultProteinTarget,
		Carbs:    DefaultCarbsTarget,
		Fat:      DefaultFatTarget,
	}
}
