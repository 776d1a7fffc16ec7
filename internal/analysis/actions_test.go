package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Action {
	return []Action{
		{ID: "reforestation", Category: "biodiversity", Links: map[string]int{"fire_risk": 2, "flooding": 2, "hydric_stress": 1}},
		{ID: "urban_drainage", Category: "climate", Links: map[string]int{"flooding": 3, "diarrhea": 2}},
		{ID: "vector_surveillance", Category: "health", Links: map[string]int{"dengue": 3, "leishmaniasis": 3}},
		{ID: "water_management", Category: "climate", Links: map[string]int{"hydric_stress": 3, "flooding": 1}},
		{ID: "social_protection", Category: "social", Links: map[string]int{"poverty": 3, "vulnerability": 3}},
	}
}

func TestMatchActions(t *testing.T) {
	severities := map[string]float64{
		"fire_risk":     0.8,
		"flooding":      0.9,
		"hydric_stress": 0.5,
		"dengue":        0.3,
		"poverty":       0.2,
		"vulnerability": 0.2,
	}

	t.Run("ranks by severity weighted evidence", func(t *testing.T) {
		match, err := MatchActions(testCatalog(), severities, nil, 3)
		require.NoError(t, err)
		require.Len(t, match.Suggested, 3)

		// reforestation: 2*0.8 + 2*0.9 + 1*0.5 = 3.9
		// urban_drainage: 3*0.9 + 2*0.3(diarrhea=0) -> 2.7
		// water_management: 3*0.5 + 1*0.9 = 2.4
		assert.Equal(t, "reforestation", match.Suggested[0].ID)
		assert.Equal(t, "urban_drainage", match.Suggested[1].ID)
		assert.Equal(t, "water_management", match.Suggested[2].ID)

		assert.InDelta(t, 1.0, match.Suggested[0].RelevanceScore, 1e-9)
		assert.InDelta(t, 2.7/3.9, match.Suggested[1].RelevanceScore, 1e-9)
		assert.Greater(t, match.Suggested[1].RelevanceScore, match.Suggested[2].RelevanceScore)
	})

	t.Run("stronger coverage never ranks below weaker", func(t *testing.T) {
		catalog := []Action{
			{ID: "weak", Links: map[string]int{"flooding": 1}},
			{ID: "strong", Links: map[string]int{"flooding": 3}},
			{ID: "broad", Links: map[string]int{"flooding": 3, "fire_risk": 1}},
		}

		match, err := MatchActions(catalog, severities, nil, 3)
		require.NoError(t, err)

		assert.Equal(t, "broad", match.Suggested[0].ID)
		assert.Equal(t, "strong", match.Suggested[1].ID)
		assert.Equal(t, "weak", match.Suggested[2].ID)
	})

	t.Run("overlap over suggested set", func(t *testing.T) {
		selected := []string{"urban_drainage", "vector_surveillance"}

		match, err := MatchActions(testCatalog(), severities, selected, 3)
		require.NoError(t, err)

		// Only urban_drainage is among the 3 suggestions.
		assert.InDelta(t, 100.0/3.0, match.Overlap, 1e-9)
	})

	t.Run("duplicate selections count once", func(t *testing.T) {
		selected := []string{"urban_drainage", "urban_drainage"}

		match, err := MatchActions(testCatalog(), severities, selected, 3)
		require.NoError(t, err)

		assert.InDelta(t, 100.0/3.0, match.Overlap, 1e-9)
	})

	t.Run("empty selection gives zero overlap", func(t *testing.T) {
		match, err := MatchActions(testCatalog(), severities, nil, 3)
		require.NoError(t, err)

		assert.Zero(t, match.Overlap)
		assert.NotEmpty(t, match.Suggested)
	})

	t.Run("overlap stays within bounds", func(t *testing.T) {
		selected := []string{"reforestation", "urban_drainage", "water_management", "unknown"}

		match, err := MatchActions(testCatalog(), severities, selected, 3)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, match.Overlap, 0.0)
		assert.LessOrEqual(t, match.Overlap, 100.0)
		assert.InDelta(t, 100.0, match.Overlap, 1e-9)
	})

	t.Run("limit larger than candidates", func(t *testing.T) {
		match, err := MatchActions(testCatalog(), severities, nil, 50)
		require.NoError(t, err)

		// social_protection and vector_surveillance still qualify via their
		// low-severity dimensions; every candidate scores > 0.
		assert.Len(t, match.Suggested, 5)
	})

	t.Run("empty catalog fails", func(t *testing.T) {
		_, err := MatchActions(nil, severities, nil, 5)
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})

	t.Run("non-positive limit fails", func(t *testing.T) {
		_, err := MatchActions(testCatalog(), severities, nil, 0)
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})

	t.Run("severity profile matching nothing fails", func(t *testing.T) {
		_, err := MatchActions(testCatalog(), map[string]float64{"unrelated": 1}, nil, 5)
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})
}
