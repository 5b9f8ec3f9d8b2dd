package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type rawAnalysis struct {
	Name     *string  `json:"name"`
	FoodName *string  `json:"food_name"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Fat      *float64 `json:"fat"`
	Message  *string  `json:"message"`
}

// ParseFoodAnalysis reads the JSON object a model was asked to answer with.
// Markdown fences and prose around the object are ignored. An object with a
// "message" key is a non-food answer.
func ParseFoodAnalysis(text string) (FoodAnalysis, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return FoodAnalysis{}, fmt.Errorf("%w: no JSON object in %q", ErrMalformedAnalysis, truncate(text, 120))
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return FoodAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedAnalysis, err)
	}

	if raw.Message != nil {
		return FoodAnalysis{IsFood: false, Message: *raw.Message}, nil
	}

	out := FoodAnalysis{
		IsFood:   true,
		Calories: roundPtr(raw.Calories),
		Protein:  roundPtr(raw.Protein),
		Fat:      roundPtr(raw.Fat),
	}
	switch {
	case raw.Name != nil:
		out.Name = strings.TrimSpace(*raw.Name)
	case raw.FoodName != nil:
		out.Name = strings.TrimSpace(*raw.FoodName)
	}
	return out, nil
}

func roundPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
