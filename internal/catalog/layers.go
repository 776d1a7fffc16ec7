package catalog

// Workshop economy settings.
const (
	InitialCredits   = 10
	MaxActiveLayers  = 2
	DefaultLayerCost = 1
)

// Layer is a purchasable map layer in the workshop economy.
type Layer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Variable    string `json:"variable"`
	ColorScale  string `json:"colorScale"`
	Free        bool   `json:"isFree"`
}

var layers = []Layer{
	{ID: DimGovernanceClimatic, Name: "Gobernanza Riesgo Climatico", Category: CategoryGovernance,
		Description: "Indice UAI de capacidad adaptativa frente al cambio climatico",
		Cost:        DefaultLayerCost, Variable: "UAI_Crisk", ColorScale: "positive"},
	{ID: DimGovernanceGeneral, Name: "Gobernanza General", Category: CategoryGovernance,
		Description: "Indice UAI general de capacidad institucional",
		Cost:        0, Variable: "gobernanza_100", ColorScale: "positive", Free: true},
	{ID: DimBiodiversity, Name: "Riqueza de Especies", Category: CategoryBiodiversity,
		Description: "Indice de biodiversidad basado en riqueza de especies",
		Cost:        DefaultLayerCost, Variable: "biodiversity", ColorScale: "positive"},
	{ID: DimNaturalHabitat, Name: "Habitat Natural", Category: CategoryBiodiversity,
		Description: "Porcentaje de vegetacion natural remanente",
		Cost:        DefaultLayerCost, Variable: "natural_habitat", ColorScale: "positive"},
	{ID: DimPollination, Name: "Deficit de Polinizacion", Category: CategoryBiodiversity,
		Description: "Deficit de servicios de polinizacion agricola",
		Cost:        DefaultLayerCost, Variable: "pollination_deficit", ColorScale: "negative"},
	{ID: DimFlooding, Name: "Riesgo de Inundacion", Category: CategoryClimate,
		Description: "Indice de riesgo de inundaciones",
		Cost:        DefaultLayerCost, Variable: "flooding_risk", ColorScale: "negative"},
	{ID: DimFireRisk, Name: "Riesgo de Incendio", Category: CategoryClimate,
		Description: "Indice de riesgo de incendios forestales",
		Cost:        DefaultLayerCost, Variable: "fire_risk_index", ColorScale: "negative"},
	{ID: DimHydricStress, Name: "Estres Hidrico", Category: CategoryClimate,
		Description: "Indice de estres hidrico por sequia",
		Cost:        DefaultLayerCost, Variable: "hydric_stress_r", ColorScale: "negative"},
	{ID: DimDengue, Name: "Incidencia de Dengue", Category: CategoryHealth,
		Description: "Tasa de incidencia de dengue por 100,000 hab",
		Cost:        DefaultLayerCost, Variable: "dengue", ColorScale: "negative"},
	{ID: DimDiarrhea, Name: "Incidencia de Diarrea", Category: CategoryHealth,
		Description: "Tasa de hospitalizacion por enfermedades diarreicas",
		Cost:        DefaultLayerCost, Variable: "incidence_diarr", ColorScale: "negative"},
	{ID: DimCVMortality, Name: "Mortalidad Cardiovascular", Category: CategoryHealth,
		Description: "Tasa de mortalidad por enfermedades cardiovasculares",
		Cost:        DefaultLayerCost, Variable: "death_circ_mean", ColorScale: "negative"},
	{ID: DimRespHosp, Name: "Hospitalizacion Respiratoria", Category: CategoryHealth,
		Description: "Tasa de hospitalizacion por enfermedades respiratorias",
		Cost:        DefaultLayerCost, Variable: "hosp_resp_mean", ColorScale: "negative"},
	{ID: DimPoverty, Name: "Porcentaje de Pobreza", Category: CategorySocial,
		Description: "Porcentaje de poblacion en situacion de pobreza",
		Cost:        DefaultLayerCost, Variable: "pct_pobreza", ColorScale: "negative"},
	{ID: DimVulnerability, Name: "Indice de Vulnerabilidad", Category: CategorySocial,
		Description: "Indice compuesto de vulnerabilidad socioeconomica",
		Cost:        0, Variable: "vulnerabilidad", ColorScale: "negative", Free: true},
	{ID: "rural", Name: "Poblacion Rural", Category: CategorySocial,
		Description: "Porcentaje de poblacion en areas rurales",
		Cost:        DefaultLayerCost, Variable: "pct_rural", ColorScale: "neutral"},
	{ID: DimLeishmaniasis, Name: "Incidencia de Leishmaniasis", Category: CategoryHealth,
		Description: "Tasa de incidencia de leishmaniasis visceral",
		Cost:        DefaultLayerCost, Variable: "leishmaniose", ColorScale: "negative"},
}

// Layers returns a copy of the layer catalog.
func Layers() []Layer {
	return append([]Layer{}, layers...)
}

// LayerByID looks up a layer definition.
func LayerByID(id string) (Layer, bool) {
	for _, l := range layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

// FreeLayers returns the identifiers of the always-available layers.
func FreeLayers() []string {
	var ids []string
	for _, l := range layers {
		if l.Free {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// Municipality is one of the pre-selected workshop municipalities. The
// quadrant classifies it on the governance/biodiversity plane.
type Municipality struct {
	Name     string `json:"name"`
	Quadrant string `json:"quadrant"`
}

// WorkshopMunicipalities is the curated 10-municipality exercise set.
var WorkshopMunicipalities = []Municipality{
	{Name: "Iporanga", Quadrant: "Q3"},
	{Name: "Campinas", Quadrant: "Q1"},
	{Name: "Santos", Quadrant: "Q1"},
	{Name: "São Joaquim da Barra", Quadrant: "Q3"},
	{Name: "Miracatu", Quadrant: "Q3"},
	{Name: "Eldorado", Quadrant: "Q4"},
	{Name: "Francisco Morato", Quadrant: "Q4"},
	{Name: "São Paulo", Quadrant: "Q1"},
	{Name: "Arujá", Quadrant: "Q2"},
	{Name: "Cerquilho", Quadrant: "Q2"},
}

// QuadrantDescriptions explains each governance/biodiversity quadrant.
var QuadrantDescriptions = map[string]string{
	"Q1": "Alta gobernanza, alta biodiversidad",
	"Q2": "Alta gobernanza, baja biodiversidad",
	"Q3": "Baja gobernanza, alta biodiversidad",
	"Q4": "Baja gobernanza, baja biodiversidad",
}
