// Package analysis implements the ranking-comparison and perspective-shift
// computations for the workshop: rank correlation between user and platform
// rankings, position deltas between the initial and revised phases, and the
// overlap between selected and suggested PEARC actions.
//
// Everything in this package is pure: inputs are taken as immutable snapshots,
// outputs are freshly allocated, and no function reads ambient state.
package analysis

// RankingEntry is a single row of a user-submitted ranking. Positions within a
// ranking are a permutation of 1..N.
type RankingEntry struct {
	Code     string `json:"code"`
	Position int    `json:"position"`
}

// PlatformRankingEntry is one row of the platform-computed composite ranking.
type PlatformRankingEntry struct {
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	Position        int                `json:"position"`
	CompositeScore  float64            `json:"compositeScore"`
	RiskScore       float64            `json:"riskScore"`
	ProtectiveScore float64            `json:"protectiveScore"`
	DimensionScores map[string]float64 `json:"dimensionScores"`
}

// RankingCorrelation holds both rank-correlation coefficients for a pair of
// rankings over the same municipality set.
type RankingCorrelation struct {
	Spearman float64 `json:"spearman"`
	Kendall  float64 `json:"kendall"`
}

// ChangeType classifies how a municipality moved between the initial and
// revised rankings.
type ChangeType string

const (
	ChangePromoted  ChangeType = "promoted"
	ChangeDemoted   ChangeType = "demoted"
	ChangeUnchanged ChangeType = "unchanged"
)

// MunicipalityChange is the position delta for one municipality. A positive
// PositionChange means the municipality moved toward rank 1.
type MunicipalityChange struct {
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	InitialPosition int        `json:"initialPosition"`
	RevisedPosition int        `json:"revisedPosition"`
	PositionChange  int        `json:"positionChange"`
	ChangeType      ChangeType `json:"changeType"`
}

// Convergence reports how much closer the revised ranking sits to the platform
// ranking than the initial one did. Improvement is a percentage-point delta.
type Convergence struct {
	InitialSpearman float64 `json:"initialSpearman"`
	RevisedSpearman float64 `json:"revisedSpearman"`
	Improvement     float64 `json:"improvement"`
}

// PerspectiveShift aggregates the delta analysis of the two user rankings.
type PerspectiveShift struct {
	TotalPositionChanges int                  `json:"totalPositionChanges"`
	AveragePositionShift float64              `json:"averagePositionShift"`
	MaxPositionShift     int                  `json:"maxPositionShift"`
	Promotions           int                  `json:"promotions"`
	Demotions            int                  `json:"demotions"`
	UnchangedCount       int                  `json:"unchangedCount"`
	TopThreeChanges      bool                 `json:"topThreeChanges"`
	BottomThreeChanges   bool                 `json:"bottomThreeChanges"`
	InitialVsRevised     RankingCorrelation   `json:"initialVsRevisedCorrelation"`
	MunicipalityChanges  []MunicipalityChange `json:"municipalityChanges"`
	Convergence          Convergence          `json:"convergenceWithPlatform"`

	// Meaningful is false when nothing moved and convergence did not change.
	// The presentation layer uses it to suppress the perspective card.
	Meaningful bool `json:"meaningful"`
}

// Action is a PEARC catalog entry: a mitigation action with evidence-rated
// links to risk dimensions. Evidence strength is 1 (weak) to 3 (strong).
type Action struct {
	ID       string         `json:"id"`
	Category string         `json:"category"`
	Links    map[string]int `json:"links"`
}

// MatchingRisk records one dimension through which a suggested action matched
// the high-severity risk profile.
type MatchingRisk struct {
	Dimension string `json:"layerId"`
	Evidence  int    `json:"evidence"`
}

// SuggestedAction is an action recommended for the analyzed municipalities.
// RelevanceScore is normalized to (0, 1] with the strongest suggestion at 1.
type SuggestedAction struct {
	ID             string         `json:"id"`
	Category       string         `json:"category"`
	RelevanceScore float64        `json:"relevanceScore"`
	MatchingRisks  []MatchingRisk `json:"matchingRisks"`
}

// ActionMatch is the output of the action relevance matcher.
type ActionMatch struct {
	Suggested []SuggestedAction `json:"suggestedActions"`
	// Overlap is 100 * |selected ∩ suggested| / |suggested|, in [0, 100].
	Overlap float64 `json:"actionOverlap"`
}

// PositionDifference compares one municipality's user position against its
// platform position.
type PositionDifference struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	UserPosition     int    `json:"userPosition"`
	PlatformPosition int    `json:"platformPosition"`
	Difference       int    `json:"difference"`
}

// RankingComparison is the composite result returned to the presentation
// layer. It is recomputed on every request and never persisted.
type RankingComparison struct {
	UserRanking         []RankingEntry         `json:"userRanking"`
	PlatformRanking     []PlatformRankingEntry `json:"platformRanking"`
	Correlation         RankingCorrelation     `json:"rankingCorrelation"`
	InitialCorrelation  RankingCorrelation     `json:"initialCorrelation"`
	PositionDifferences []PositionDifference   `json:"positionDifferences"`
	UserActions         []string               `json:"userActions"`
	SuggestedActions    []SuggestedAction      `json:"suggestedActions"`
	ActionOverlap       float64                `json:"actionOverlap"`
	Shift               PerspectiveShift       `json:"perspectiveShift"`
}

// MunicipalityData carries the raw per-dimension indicator values for one
// municipality, as loaded from the integrated dataset. Dimensions without data
// are absent from the map.
type MunicipalityData struct {
	Code       string
	Name       string
	Quadrant   string
	Dimensions map[string]float64
}
