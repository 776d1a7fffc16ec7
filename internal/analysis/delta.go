package analysis

import "fmt"

// AnalyzeDeltas pairs the initial and revised rankings by code and computes
// the signed position change for every municipality, ordered as in the
// revised ranking. Names are resolved through the supplied code→name map and
// fall back to the code itself.
//
// Both rankings are defined over the same curated municipality set by
// workshop design; a code present on only one side fails fast with
// ErrMissingCode instead of silently defaulting.
func AnalyzeDeltas(initial, revised []RankingEntry, names map[string]string) ([]MunicipalityChange, error) {
	if len(initial) != len(revised) {
		return nil, fmt.Errorf("%w: %d initial vs %d revised entries", ErrMissingCode, len(initial), len(revised))
	}

	initialPos := make(map[string]int, len(initial))
	for _, e := range initial {
		initialPos[e.Code] = e.Position
	}

	changes := make([]MunicipalityChange, 0, len(revised))
	for _, e := range revised {
		initPos, ok := initialPos[e.Code]
		if !ok {
			return nil, fmt.Errorf("%w: code %s not in initial ranking", ErrMissingCode, e.Code)
		}

		// Positive = moved toward rank 1.
		diff := initPos - e.Position
		changeType := ChangeUnchanged
		switch {
		case diff > 0:
			changeType = ChangePromoted
		case diff < 0:
			changeType = ChangeDemoted
		}

		name := names[e.Code]
		if name == "" {
			name = e.Code
		}

		changes = append(changes, MunicipalityChange{
			Code:            e.Code,
			Name:            name,
			InitialPosition: initPos,
			RevisedPosition: e.Position,
			PositionChange:  diff,
			ChangeType:      changeType,
		})
	}

	return changes, nil
}
