package analysis

// SummarizeShift aggregates a computed change set into the perspective-shift
// summary shown after the revised ranking is submitted.
//
// AveragePositionShift is the mean of |positionChange| over all N entries,
// with unchanged municipalities contributing zero. Improvement is the
// Spearman convergence toward the platform ranking between the two phases,
// expressed in percentage points.
func SummarizeShift(changes []MunicipalityChange, initialVsRevised, initialVsPlatform, revisedVsPlatform RankingCorrelation) PerspectiveShift {
	shift := PerspectiveShift{
		InitialVsRevised:    initialVsRevised,
		MunicipalityChanges: changes,
	}

	n := len(changes)
	var totalAbsShift int
	for _, c := range changes {
		abs := c.PositionChange
		if abs < 0 {
			abs = -abs
		}
		totalAbsShift += abs
		if abs > shift.MaxPositionShift {
			shift.MaxPositionShift = abs
		}

		switch c.ChangeType {
		case ChangePromoted:
			shift.Promotions++
		case ChangeDemoted:
			shift.Demotions++
		default:
			shift.UnchangedCount++
		}

		// A band change means the municipality crossed into or out of the
		// top three (or bottom three) between phases.
		if (c.InitialPosition <= 3) != (c.RevisedPosition <= 3) {
			shift.TopThreeChanges = true
		}
		if (c.InitialPosition > n-3) != (c.RevisedPosition > n-3) {
			shift.BottomThreeChanges = true
		}
	}

	shift.TotalPositionChanges = shift.Promotions + shift.Demotions
	if n > 0 {
		shift.AveragePositionShift = float64(totalAbsShift) / float64(n)
	}

	shift.Convergence = Convergence{
		InitialSpearman: initialVsPlatform.Spearman,
		RevisedSpearman: revisedVsPlatform.Spearman,
		Improvement:     (revisedVsPlatform.Spearman - initialVsPlatform.Spearman) * 100,
	}

	shift.Meaningful = shift.TotalPositionChanges != 0 || shift.Convergence.Improvement != 0

	return shift
}
