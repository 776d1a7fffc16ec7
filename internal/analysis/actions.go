package analysis

import "sort"

// DefaultSuggestionLimit caps how many actions the matcher suggests when the
// caller does not configure a limit.
const DefaultSuggestionLimit = 5

// MatchActions scores every catalog action against the severity profile of
// the risk dimensions and returns the top-limit suggestions together with the
// overlap against the user's selected action IDs.
//
// The raw score of an action is the sum over its links of
// evidence * severity(dimension). Severities and evidence strengths are
// non-negative, so covering more high-severity dimensions, or the same ones
// with stronger evidence, never lowers an action's rank. Scores are then
// normalized by the maximum so the leading suggestion lands at 1.0.
//
// Overlap is 100 * |selected ∩ suggested| / |suggested|. An empty selection
// yields 0. An empty catalog, a non-positive limit, or a severity profile no
// action matches fails with ErrEmptyCatalog: suggesting nothing is a
// deployment problem, not a user result.
func MatchActions(catalog []Action, severities map[string]float64, selected []string, limit int) (ActionMatch, error) {
	if len(catalog) == 0 || limit <= 0 {
		return ActionMatch{}, ErrEmptyCatalog
	}

	type scored struct {
		action Action
		raw    float64
		risks  []MatchingRisk
	}

	candidates := make([]scored, 0, len(catalog))
	for _, action := range catalog {
		var raw float64
		var risks []MatchingRisk
		for dim, evidence := range action.Links {
			severity := severities[dim]
			if severity <= 0 {
				continue
			}
			raw += float64(evidence) * severity
			risks = append(risks, MatchingRisk{Dimension: dim, Evidence: evidence})
		}
		if raw > 0 {
			sort.Slice(risks, func(i, j int) bool { return risks[i].Dimension < risks[j].Dimension })
			candidates = append(candidates, scored{action: action, raw: raw, risks: risks})
		}
	}

	if len(candidates) == 0 {
		return ActionMatch{}, ErrEmptyCatalog
	}

	// Descending by raw score; ID breaks ties so suggestions are stable.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].raw != candidates[j].raw {
			return candidates[i].raw > candidates[j].raw
		}
		return candidates[i].action.ID < candidates[j].action.ID
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	maxRaw := candidates[0].raw
	suggested := make([]SuggestedAction, limit)
	suggestedIDs := make(map[string]struct{}, limit)
	for i, c := range candidates[:limit] {
		suggested[i] = SuggestedAction{
			ID:             c.action.ID,
			Category:       c.action.Category,
			RelevanceScore: c.raw / maxRaw,
			MatchingRisks:  c.risks,
		}
		suggestedIDs[c.action.ID] = struct{}{}
	}

	var overlapCount int
	seen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := suggestedIDs[id]; ok {
			overlapCount++
		}
	}

	var overlap float64
	if len(selected) > 0 {
		overlap = 100 * float64(overlapCount) / float64(len(suggested))
	}

	return ActionMatch{Suggested: suggested, Overlap: overlap}, nil
}
