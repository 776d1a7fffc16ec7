package analysis

import (
	"fmt"
	"sort"
)

// ComparisonInput bundles the snapshots the orchestrator works on. All fields
// except SuggestionLimit are required.
type ComparisonInput struct {
	Initial         []RankingEntry
	Revised         []RankingEntry
	Platform        []PlatformRankingEntry
	Catalog         []Action
	Severities      map[string]float64
	SelectedActions []string

	// SuggestionLimit caps the suggested-action list; zero or negative means
	// DefaultSuggestionLimit.
	SuggestionLimit int
}

// ComputeComparison runs the full comparison pipeline: both correlations
// against the platform ranking, the initial-vs-revised delta analysis and
// shift summary, and the action relevance match, assembled into a single
// RankingComparison. The first failing component aborts the whole request; no
// partial result is ever returned.
func ComputeComparison(in ComparisonInput) (*RankingComparison, error) {
	initialVsPlatform, err := Correlate(in.Initial, platformEntries(in.Platform))
	if err != nil {
		return nil, fmt.Errorf("correlate initial vs platform: %w", err)
	}

	revisedVsPlatform, err := Correlate(in.Revised, platformEntries(in.Platform))
	if err != nil {
		return nil, fmt.Errorf("correlate revised vs platform: %w", err)
	}

	initialVsRevised, err := Correlate(in.Initial, in.Revised)
	if err != nil {
		return nil, fmt.Errorf("correlate initial vs revised: %w", err)
	}

	names := make(map[string]string, len(in.Platform))
	platformPos := make(map[string]int, len(in.Platform))
	for _, p := range in.Platform {
		names[p.Code] = p.Name
		platformPos[p.Code] = p.Position
	}

	changes, err := AnalyzeDeltas(in.Initial, in.Revised, names)
	if err != nil {
		return nil, fmt.Errorf("analyze deltas: %w", err)
	}

	shift := SummarizeShift(changes, initialVsRevised, initialVsPlatform, revisedVsPlatform)

	limit := in.SuggestionLimit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	match, err := MatchActions(in.Catalog, in.Severities, in.SelectedActions, limit)
	if err != nil {
		return nil, fmt.Errorf("match actions: %w", err)
	}

	// Largest movers first, as the comparison view lists them.
	differences := make([]PositionDifference, 0, len(in.Revised))
	for _, e := range in.Revised {
		differences = append(differences, PositionDifference{
			Code:             e.Code,
			Name:             names[e.Code],
			UserPosition:     e.Position,
			PlatformPosition: platformPos[e.Code],
			Difference:       e.Position - platformPos[e.Code],
		})
	}
	sort.SliceStable(differences, func(i, j int) bool {
		return absInt(differences[i].Difference) > absInt(differences[j].Difference)
	})

	return &RankingComparison{
		UserRanking:         append([]RankingEntry{}, in.Revised...),
		PlatformRanking:     append([]PlatformRankingEntry{}, in.Platform...),
		Correlation:         revisedVsPlatform,
		InitialCorrelation:  initialVsPlatform,
		PositionDifferences: differences,
		UserActions:         append([]string{}, in.SelectedActions...),
		SuggestedActions:    match.Suggested,
		ActionOverlap:       match.Overlap,
		Shift:               shift,
	}, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
