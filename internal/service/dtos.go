package service

import "github.com/terrarisk/workshop-server/internal/analysis"

// Ranking phases a group submits during the workshop.
const (
	PhaseInitial = "initial"
	PhaseRevised = "revised"
)

// MunicipalitySummary is a workshop municipality with its per-category risk
// summary, shown before any ranking is made.
type MunicipalitySummary struct {
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Quadrant    string             `json:"quadrant"`
	Description string             `json:"description"`
	RiskSummary map[string]float64 `json:"riskSummary"`
}

// GroupRankings bundles everything the ranking screen needs: both user
// phases (nil when not yet submitted) and the platform ranking.
type GroupRankings struct {
	Initial  []analysis.RankingEntry         `json:"initial"`
	Revised  []analysis.RankingEntry         `json:"revised"`
	Platform []analysis.PlatformRankingEntry `json:"platform"`
}

// PerspectiveReport is the perspective-shift summary enriched with the
// group's exploration effort.
type PerspectiveReport struct {
	analysis.PerspectiveShift
	DataLayersUsed int `json:"dataLayersUsed"`
	CreditsSpent   int `json:"creditsSpent"`
}
