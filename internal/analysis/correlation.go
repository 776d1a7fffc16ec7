package analysis

import "fmt"

// Correlate computes Spearman and Kendall rank correlation between two
// rankings over the same municipality codes.
//
// Positions are permutations of 1..N by the data-model invariant, so the
// untied Spearman formula and Kendall tau-a apply. With fewer than two common
// entries correlation is undefined; it is reported as the neutral {0, 0}
// rather than an error, so a degenerate exercise still produces a comparison.
func Correlate(a, b []RankingEntry) (RankingCorrelation, error) {
	if len(a) != len(b) {
		return RankingCorrelation{}, fmt.Errorf("%w: %d vs %d entries", ErrMismatchedUniverse, len(a), len(b))
	}

	posB := make(map[string]int, len(b))
	for _, e := range b {
		posB[e.Code] = e.Position
	}

	type pair struct{ ra, rb int }
	pairs := make([]pair, 0, len(a))
	for _, e := range a {
		pb, ok := posB[e.Code]
		if !ok {
			return RankingCorrelation{}, fmt.Errorf("%w: code %s", ErrMismatchedUniverse, e.Code)
		}
		pairs = append(pairs, pair{ra: e.Position, rb: pb})
	}

	n := len(pairs)
	if n < 2 {
		return RankingCorrelation{}, nil
	}

	// Spearman: 1 - 6*sum(d^2) / (n*(n^2-1)).
	var dSquaredSum float64
	for _, p := range pairs {
		d := float64(p.ra - p.rb)
		dSquaredSum += d * d
	}
	spearman := 1 - (6*dSquaredSum)/float64(n*(n*n-1))

	// Kendall tau-a: (concordant - discordant) over all C(n,2) pairs.
	concordant, discordant := 0, 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := (pairs[j].ra - pairs[i].ra) * (pairs[j].rb - pairs[i].rb)
			switch {
			case s > 0:
				concordant++
			case s < 0:
				discordant++
			}
		}
	}
	kendall := float64(concordant-discordant) / float64(n*(n-1)/2)

	return RankingCorrelation{Spearman: spearman, Kendall: kendall}, nil
}

// platformEntries projects a platform ranking onto the plain code/position
// form used by Correlate.
func platformEntries(platform []PlatformRankingEntry) []RankingEntry {
	out := make([]RankingEntry, len(platform))
	for i, p := range platform {
		out[i] = RankingEntry{Code: p.Code, Position: p.Position}
	}
	return out
}
