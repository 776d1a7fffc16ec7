package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlatform() []PlatformRankingEntry {
	return []PlatformRankingEntry{
		{Code: "A", Name: "Alfa", Position: 1, CompositeScore: 1.8},
		{Code: "B", Name: "Bravo", Position: 2, CompositeScore: 1.2},
		{Code: "C", Name: "Charlie", Position: 3, CompositeScore: 0.7},
	}
}

func testComparisonInput() ComparisonInput {
	return ComparisonInput{
		Initial: []RankingEntry{
			{Code: "C", Position: 1},
			{Code: "A", Position: 2},
			{Code: "B", Position: 3},
		},
		Revised: []RankingEntry{
			{Code: "A", Position: 1},
			{Code: "B", Position: 2},
			{Code: "C", Position: 3},
		},
		Platform: testPlatform(),
		Catalog: []Action{
			{ID: "urban_drainage", Category: "climate", Links: map[string]int{"flooding": 3}},
			{ID: "water_management", Category: "climate", Links: map[string]int{"hydric_stress": 3, "flooding": 1}},
			{ID: "social_protection", Category: "social", Links: map[string]int{"poverty": 3}},
		},
		Severities:      map[string]float64{"flooding": 0.9, "hydric_stress": 0.4, "poverty": 0.1},
		SelectedActions: []string{"urban_drainage", "social_protection"},
		SuggestionLimit: 2,
	}
}

func TestComputeComparison(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		result, err := ComputeComparison(testComparisonInput())
		require.NoError(t, err)

		// Revised ranking matches the platform order exactly.
		assert.InDelta(t, 1.0, result.Correlation.Spearman, 1e-9)
		assert.InDelta(t, 1.0, result.Correlation.Kendall, 1e-9)
		assert.Less(t, result.InitialCorrelation.Spearman, 1.0)

		require.Len(t, result.PositionDifferences, 3)
		for _, d := range result.PositionDifferences {
			assert.Zero(t, d.Difference)
		}

		// urban_drainage (2.7) ahead of water_management (1.6).
		require.Len(t, result.SuggestedActions, 2)
		assert.Equal(t, "urban_drainage", result.SuggestedActions[0].ID)
		assert.InDelta(t, 1.0, result.SuggestedActions[0].RelevanceScore, 1e-9)

		// One of two suggestions selected.
		assert.InDelta(t, 50.0, result.ActionOverlap, 1e-9)

		assert.True(t, result.Shift.Meaningful)
		assert.Equal(t, 3, result.Shift.TotalPositionChanges)
		assert.Positive(t, result.Shift.Convergence.Improvement)
	})

	t.Run("position differences sorted by magnitude", func(t *testing.T) {
		in := testComparisonInput()
		in.Revised = []RankingEntry{
			{Code: "C", Position: 1},
			{Code: "B", Position: 2},
			{Code: "A", Position: 3},
		}

		result, err := ComputeComparison(in)
		require.NoError(t, err)

		require.Len(t, result.PositionDifferences, 3)
		assert.Equal(t, 2, absInt(result.PositionDifferences[0].Difference))
		assert.Equal(t, 0, result.PositionDifferences[2].Difference)
	})

	t.Run("default suggestion limit applies", func(t *testing.T) {
		in := testComparisonInput()
		in.SuggestionLimit = 0

		result, err := ComputeComparison(in)
		require.NoError(t, err)

		// All three catalog actions qualify; default limit is larger.
		assert.Len(t, result.SuggestedActions, 3)
	})

	t.Run("mismatched universe aborts everything", func(t *testing.T) {
		in := testComparisonInput()
		in.Revised[2] = RankingEntry{Code: "X", Position: 3}

		result, err := ComputeComparison(in)
		assert.ErrorIs(t, err, ErrMismatchedUniverse)
		assert.Nil(t, result)
	})

	t.Run("empty catalog aborts everything", func(t *testing.T) {
		in := testComparisonInput()
		in.Catalog = nil

		result, err := ComputeComparison(in)
		assert.ErrorIs(t, err, ErrEmptyCatalog)
		assert.Nil(t, result)
	})

	t.Run("inputs are copied, not aliased", func(t *testing.T) {
		in := testComparisonInput()

		result, err := ComputeComparison(in)
		require.NoError(t, err)

		in.Revised[0].Position = 99
		in.SelectedActions[0] = "tampered"
		assert.Equal(t, 1, result.UserRanking[0].Position)
		assert.Equal(t, "urban_drainage", result.UserActions[0])
	})
}
