package analysis

import (
	"math"
	"sort"
)

// ComputePlatformRanking derives the composite-risk ranking for the workshop
// municipality set from their raw indicator values.
//
// Each dimension is min-max normalized across the set (a constant series pins
// to 0.5, missing values take the dimension median). The composite is the
// mean of the normalized risk dimensions plus the mean of the inverted
// protective dimensions, so the highest-priority municipality gets position 1.
func ComputePlatformRanking(data []MunicipalityData, riskDims, protectiveDims []string) ([]PlatformRankingEntry, error) {
	if len(data) == 0 {
		return nil, ErrNoMunicipalities
	}

	normalized := normalizeDimensions(data, append(append([]string{}, riskDims...), protectiveDims...))

	entries := make([]PlatformRankingEntry, 0, len(data))
	for i, m := range data {
		var riskSum float64
		var riskCount int
		for _, dim := range riskDims {
			if values, ok := normalized[dim]; ok {
				riskSum += values[i]
				riskCount++
			}
		}
		riskScore := 0.0
		if riskCount > 0 {
			riskScore = riskSum / float64(riskCount)
		}

		var protSum float64
		var protCount int
		for _, dim := range protectiveDims {
			if values, ok := normalized[dim]; ok {
				protSum += 1 - values[i]
				protCount++
			}
		}
		protectiveScore := 0.0
		if protCount > 0 {
			protectiveScore = protSum / float64(protCount)
		}

		dimScores := make(map[string]float64, len(m.Dimensions))
		for dim, v := range m.Dimensions {
			dimScores[dim] = v
		}

		entries = append(entries, PlatformRankingEntry{
			Code:            m.Code,
			Name:            m.Name,
			CompositeScore:  round4(riskScore + protectiveScore),
			RiskScore:       round4(riskScore),
			ProtectiveScore: round4(protectiveScore),
			DimensionScores: dimScores,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CompositeScore != entries[j].CompositeScore {
			return entries[i].CompositeScore > entries[j].CompositeScore
		}
		return entries[i].Code < entries[j].Code
	})
	for i := range entries {
		entries[i].Position = i + 1
	}

	return entries, nil
}

// DimensionSeverities returns the mean normalized value of each risk
// dimension across the municipality set. The action relevance matcher uses
// them as weights, so dimensions that run hot across the whole workshop area
// pull their linked actions up.
func DimensionSeverities(data []MunicipalityData, riskDims []string) map[string]float64 {
	normalized := normalizeDimensions(data, riskDims)

	severities := make(map[string]float64, len(normalized))
	for dim, values := range normalized {
		var sum float64
		for _, v := range values {
			sum += v
		}
		severities[dim] = sum / float64(len(values))
	}
	return severities
}

// normalizeDimensions min-max normalizes each listed dimension across the
// municipality slice. The result maps dimension → per-municipality values in
// input order. Dimensions with no data at all are omitted.
func normalizeDimensions(data []MunicipalityData, dims []string) map[string][]float64 {
	out := make(map[string][]float64, len(dims))

	for _, dim := range dims {
		raw := make([]float64, len(data))
		present := make([]float64, 0, len(data))
		missing := make([]int, 0)
		for i, m := range data {
			if v, ok := m.Dimensions[dim]; ok && !math.IsNaN(v) {
				raw[i] = v
				present = append(present, v)
			} else {
				missing = append(missing, i)
			}
		}
		if len(present) == 0 {
			continue
		}

		med := median(present)
		for _, i := range missing {
			raw[i] = med
		}

		minV, maxV := raw[0], raw[0]
		for _, v := range raw[1:] {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		values := make([]float64, len(raw))
		if maxV == minV {
			for i := range values {
				values[i] = 0.5
			}
		} else {
			for i, v := range raw {
				values[i] = (v - minV) / (maxV - minV)
			}
		}
		out[dim] = values
	}

	return out
}

func median(values []float64) float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
