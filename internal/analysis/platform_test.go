package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRiskDims       = []string{"fire_risk", "flooding"}
	testProtectiveDims = []string{"governance"}
)

func TestComputePlatformRanking(t *testing.T) {
	t.Run("highest combined risk ranks first", func(t *testing.T) {
		data := []MunicipalityData{
			{Code: "1", Name: "Low", Dimensions: map[string]float64{"fire_risk": 0, "flooding": 0, "governance": 100}},
			{Code: "2", Name: "Mid", Dimensions: map[string]float64{"fire_risk": 5, "flooding": 5, "governance": 50}},
			{Code: "3", Name: "High", Dimensions: map[string]float64{"fire_risk": 10, "flooding": 10, "governance": 0}},
		}

		entries, err := ComputePlatformRanking(data, testRiskDims, testProtectiveDims)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "3", entries[0].Code)
		assert.Equal(t, 1, entries[0].Position)
		assert.InDelta(t, 2.0, entries[0].CompositeScore, 1e-9)

		assert.Equal(t, "2", entries[1].Code)
		assert.Equal(t, 2, entries[1].Position)

		assert.Equal(t, "1", entries[2].Code)
		assert.Equal(t, 3, entries[2].Position)
		assert.InDelta(t, 0.0, entries[2].CompositeScore, 1e-9)
	})

	t.Run("positions form a permutation", func(t *testing.T) {
		data := []MunicipalityData{
			{Code: "A", Dimensions: map[string]float64{"fire_risk": 3}},
			{Code: "B", Dimensions: map[string]float64{"fire_risk": 1}},
			{Code: "C", Dimensions: map[string]float64{"fire_risk": 2}},
			{Code: "D", Dimensions: map[string]float64{"fire_risk": 5}},
		}

		entries, err := ComputePlatformRanking(data, testRiskDims, testProtectiveDims)
		require.NoError(t, err)

		seen := map[int]bool{}
		for _, e := range entries {
			seen[e.Position] = true
		}
		for p := 1; p <= len(data); p++ {
			assert.True(t, seen[p], "position %d missing", p)
		}
	})

	t.Run("constant dimension pins to neutral", func(t *testing.T) {
		data := []MunicipalityData{
			{Code: "A", Dimensions: map[string]float64{"fire_risk": 7}},
			{Code: "B", Dimensions: map[string]float64{"fire_risk": 7}},
		}

		entries, err := ComputePlatformRanking(data, testRiskDims, nil)
		require.NoError(t, err)

		assert.InDelta(t, 0.5, entries[0].RiskScore, 1e-9)
		assert.InDelta(t, 0.5, entries[1].RiskScore, 1e-9)
	})

	t.Run("missing value takes the dimension median", func(t *testing.T) {
		data := []MunicipalityData{
			{Code: "A", Dimensions: map[string]float64{"fire_risk": 0}},
			{Code: "B", Dimensions: map[string]float64{"fire_risk": 10}},
			{Code: "C", Dimensions: map[string]float64{}},
		}

		entries, err := ComputePlatformRanking(data, testRiskDims, nil)
		require.NoError(t, err)

		var c PlatformRankingEntry
		for _, e := range entries {
			if e.Code == "C" {
				c = e
			}
		}
		// Median of {0, 10} is 5, normalized to 0.5.
		assert.InDelta(t, 0.5, c.RiskScore, 1e-9)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := ComputePlatformRanking(nil, testRiskDims, testProtectiveDims)
		assert.ErrorIs(t, err, ErrNoMunicipalities)
	})
}

func TestDimensionSeverities(t *testing.T) {
	data := []MunicipalityData{
		{Code: "A", Dimensions: map[string]float64{"fire_risk": 0, "flooding": 2}},
		{Code: "B", Dimensions: map[string]float64{"fire_risk": 10, "flooding": 2}},
	}

	severities := DimensionSeverities(data, testRiskDims)

	// fire_risk normalizes to {0, 1}; flooding is constant, pinned to 0.5.
	assert.InDelta(t, 0.5, severities["fire_risk"], 1e-9)
	assert.InDelta(t, 0.5, severities["flooding"], 1e-9)
	assert.NotContains(t, severities, "governance")
}
