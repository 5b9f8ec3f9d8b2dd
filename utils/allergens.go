package utils

import (
	"fmt"
	"strings"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding returned next to a logged food.
type Warning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
	Allergen string          `json:"allergen,omitempty"`
}

// allergenKeywords maps a declared allergy to food-name fragments that
// usually contain it. Keys and fragments are lower case.
var allergenKeywords = map[string][]string{
	"lactosa":  {"leche", "yogur", "queso", "mantequilla", "crema", "helado", "milk", "yogurt", "cheese", "butter", "cream", "whey"},
	"lactose":  {"leche", "yogur", "queso", "mantequilla", "crema", "helado", "milk", "yogurt", "cheese", "butter", "cream", "whey"},
	"gluten":   {"pan", "pasta", "trigo", "avena", "cebada", "centeno", "bread", "wheat", "oat", "barley", "rye"},
	"maní":     {"maní", "cacahuate", "peanut"},
	"mani":     {"maní", "cacahuate", "peanut"},
	"peanut":   {"maní", "cacahuate", "peanut"},
	"nueces":   {"almendra", "nuez", "nueces", "avellana", "pistacho", "almond", "walnut", "hazelnut", "pistachio"},
	"huevo":    {"huevo", "egg"},
	"egg":      {"huevo", "egg"},
	"mariscos": {"camarón", "langostino", "cangrejo", "mejillón", "shrimp", "prawn", "crab", "mussel"},
	"pescado":  {"atún", "salmón", "pescado", "tuna", "salmon", "fish"},
	"soya":     {"soya", "soja", "tofu", "soy"},
}

// AssessAllergens flags foods whose name mentions one of the user's
// allergies, either directly or through a known ingredient keyword.
func AssessAllergens(foodName string, allergies []string) []Warning {
	name := strings.ToLower(foodName)
	warnings := []Warning{}

	for _, a := range allergies {
		allergy := strings.ToLower(strings.TrimSpace(a))
		if allergy == "" {
			continue
		}
		if strings.Contains(name, allergy) || containsAny(name, allergenKeywords[allergy]...) {
			warnings = append(warnings, Warning{
				Code:     "allergen_match",
				Severity: High,
				Message:  fmt.Sprintf("Este alimento puede contener %s.", a),
				Allergen: a,
			})
		}
	}
	return warnings
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
