package catalog

import (
	"math"

	"github.com/terrarisk/workshop-server/internal/analysis"
)

// pearcActions is the 15-action PEARC catalog. Link values are evidence
// strengths 1..3 against the risk dimensions each action mitigates.
var pearcActions = []analysis.Action{
	{
		ID:       "reforestation",
		Category: CategoryBiodiversity,
		Links: map[string]int{
			DimNaturalHabitat: 3, DimBiodiversity: 3, DimPollination: 3,
			DimFireRisk: 2, DimFlooding: 2, DimRespHosp: 2, DimHydricStress: 1,
		},
	},
	{
		ID:       "urban_drainage",
		Category: CategoryClimate,
		Links:    map[string]int{DimFlooding: 3, DimDiarrhea: 2, DimCVMortality: 1},
	},
	{
		ID:       "vector_surveillance",
		Category: CategoryHealth,
		Links:    map[string]int{DimDengue: 3, DimLeishmaniasis: 3},
	},
	{
		ID:       "water_management",
		Category: CategoryClimate,
		Links:    map[string]int{DimHydricStress: 3, DimDiarrhea: 2, DimFlooding: 1},
	},
	{
		ID:       "protected_areas",
		Category: CategoryBiodiversity,
		Links:    map[string]int{DimBiodiversity: 3, DimNaturalHabitat: 3, DimPollination: 2, DimFireRisk: 1},
	},
	{
		ID:       "climate_agriculture",
		Category: CategoryClimate,
		Links:    map[string]int{DimFireRisk: 2, DimPollination: 2, DimHydricStress: 2, DimPoverty: 1},
	},
	{
		ID:       "community_health",
		Category: CategoryHealth,
		Links:    map[string]int{DimCVMortality: 3, DimRespHosp: 3, DimDiarrhea: 2, DimDengue: 1},
	},
	{
		ID:       "green_infrastructure",
		Category: CategoryClimate,
		Links:    map[string]int{DimCVMortality: 2, DimRespHosp: 2, DimFlooding: 2, DimBiodiversity: 1},
	},
	{
		ID:       "environmental_monitoring",
		Category: CategoryGovernance,
		Links:    map[string]int{DimFireRisk: 2, DimFlooding: 2, DimHydricStress: 2},
	},
	{
		ID:       "land_use_zoning",
		Category: CategoryGovernance,
		Links:    map[string]int{DimNaturalHabitat: 3, DimFireRisk: 2, DimFlooding: 2, DimBiodiversity: 1},
	},
	{
		ID:       "social_protection",
		Category: CategorySocial,
		Links:    map[string]int{DimPoverty: 3, DimVulnerability: 3, DimCVMortality: 1, DimDiarrhea: 1},
	},
	{
		ID:       "emergency_response",
		Category: CategoryClimate,
		Links:    map[string]int{DimFlooding: 3, DimFireRisk: 3, DimCVMortality: 2},
	},
	{
		ID:       "biodiversity_corridors",
		Category: CategoryBiodiversity,
		Links:    map[string]int{DimBiodiversity: 3, DimNaturalHabitat: 2, DimPollination: 2, DimLeishmaniasis: 1},
	},
	{
		ID:       "pollution_control",
		Category: CategoryHealth,
		Links:    map[string]int{DimRespHosp: 3, DimCVMortality: 2, DimDiarrhea: 2},
	},
	{
		ID:       "climate_education",
		Category: CategoryGovernance,
		Links:    map[string]int{DimGovernanceGeneral: 2, DimGovernanceClimatic: 2, DimVulnerability: 1},
	},
}

// ActionWithStats is a catalog action enriched with the aggregate figures the
// action selector displays.
type ActionWithStats struct {
	ID            string         `json:"id"`
	Category      string         `json:"category"`
	Links         map[string]int `json:"links"`
	TotalLinks    int            `json:"totalLinks"`
	TotalEvidence int            `json:"totalEvidence"`
	AvgEvidence   float64        `json:"avgEvidence"`
}

// Actions returns a fresh copy of the PEARC catalog.
func Actions() []analysis.Action {
	out := make([]analysis.Action, len(pearcActions))
	for i, a := range pearcActions {
		links := make(map[string]int, len(a.Links))
		for k, v := range a.Links {
			links[k] = v
		}
		out[i] = analysis.Action{ID: a.ID, Category: a.Category, Links: links}
	}
	return out
}

// ActionsWithStats returns the catalog with per-action link statistics.
func ActionsWithStats() []ActionWithStats {
	actions := Actions()
	out := make([]ActionWithStats, len(actions))
	for i, a := range actions {
		totalEvidence := 0
		for _, evidence := range a.Links {
			totalEvidence += evidence
		}
		avg := 0.0
		if len(a.Links) > 0 {
			avg = math.Round(float64(totalEvidence)/float64(len(a.Links))*100) / 100
		}
		out[i] = ActionWithStats{
			ID:            a.ID,
			Category:      a.Category,
			Links:         a.Links,
			TotalLinks:    len(a.Links),
			TotalEvidence: totalEvidence,
			AvgEvidence:   avg,
		}
	}
	return out
}

// ActionIDs returns the set of valid action identifiers.
func ActionIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(pearcActions))
	for _, a := range pearcActions {
		ids[a.ID] = struct{}{}
	}
	return ids
}
