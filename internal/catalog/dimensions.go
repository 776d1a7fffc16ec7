// Package catalog holds the static workshop reference data: the risk
// dimension identifiers, the PEARC action catalog, the purchasable map layer
// definitions and the curated workshop municipality set. Everything here is
// read-only and compiled in.
package catalog

// Risk dimension identifiers. The set is closed: rankings, layers and PEARC
// action links only ever reference these.
const (
	DimGovernanceGeneral  = "governance_general"
	DimGovernanceClimatic = "governance_climatic"
	DimBiodiversity       = "biodiversity"
	DimNaturalHabitat     = "natural_habitat"
	DimPollination        = "pollination"
	DimFireRisk           = "fire_risk"
	DimFlooding           = "flooding"
	DimHydricStress       = "hydric_stress"
	DimDengue             = "dengue"
	DimDiarrhea           = "diarrhea"
	DimCVMortality        = "cv_mortality"
	DimRespHosp           = "resp_hosp"
	DimLeishmaniasis      = "leishmaniasis"
	DimPoverty            = "poverty"
	DimVulnerability      = "vulnerability"
)

// Thematic categories grouping dimensions, layers and actions.
const (
	CategoryGovernance   = "governance"
	CategoryBiodiversity = "biodiversity"
	CategoryClimate      = "climate"
	CategoryHealth       = "health"
	CategorySocial       = "social"
)

// RiskDimensions are the dimensions where a higher value means a worse
// situation. They feed the risk component of the composite score.
var RiskDimensions = []string{
	DimFireRisk, DimFlooding, DimHydricStress, DimDengue, DimDiarrhea,
	DimCVMortality, DimRespHosp, DimLeishmaniasis, DimPoverty, DimVulnerability,
}

// ProtectiveDimensions are the dimensions where a lower value means a worse
// situation; they enter the composite inverted.
var ProtectiveDimensions = []string{
	DimGovernanceGeneral, DimGovernanceClimatic, DimBiodiversity, DimNaturalHabitat,
}

// CategoryDimensions maps each thematic category to its member dimensions,
// used for the per-municipality risk summaries.
var CategoryDimensions = map[string][]string{
	CategoryGovernance:   {DimGovernanceGeneral, DimGovernanceClimatic},
	CategoryBiodiversity: {DimBiodiversity, DimNaturalHabitat, DimPollination},
	CategoryClimate:      {DimFireRisk, DimFlooding, DimHydricStress},
	CategoryHealth:       {DimDengue, DimDiarrhea, DimCVMortality, DimRespHosp, DimLeishmaniasis},
	CategorySocial:       {DimPoverty, DimVulnerability},
}
