package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessAllergens(t *testing.T) {
	t.Run("keyword match", func(t *testing.T) {
		w := AssessAllergens("Yogur Griego (1 taza)", []string{"Lactosa"})
		require.Len(t, w, 1)
		assert.Equal(t, High, w[0].Severity)
		assert.Equal(t, "Lactosa", w[0].Allergen)
		assert.Equal(t, "Este alimento puede contener Lactosa.", w[0].Message)
	})

	t.Run("name contains the allergy itself", func(t *testing.T) {
		w := AssessAllergens("Pan de centeno con sésamo", []string{"sésamo"})
		assert.Len(t, w, 1)
	})

	t.Run("no match is an empty slice", func(t *testing.T) {
		w := AssessAllergens("Arroz Integral (1 taza)", []string{"Lactosa", "Mariscos"})
		assert.NotNil(t, w)
		assert.Empty(t, w)
	})

	t.Run("no allergies", func(t *testing.T) {
		assert.Empty(t, AssessAllergens("Salmón (100g)", nil))
	})
}
