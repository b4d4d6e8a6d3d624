package types

// Accepted categorical values for project proposals.
const (
	TypeSolar  = "Solar"
	TypeWind   = "Wind"
	TypeHybrid = "Hybrid"

	RegionUrban     = "Urban"
	RegionRural     = "Rural"
	RegionSemiUrban = "Semi-Urban"
)

var (
	ProjectTypes = []string{TypeSolar, TypeWind, TypeHybrid}
	Regions      = []string{RegionUrban, RegionRural, RegionSemiUrban}
)

// ProjectRecord is a single renewable-energy project proposal. Once validated
// it is treated as immutable; every downstream computation is a pure function
// of the record.
type ProjectRecord struct {
	ProjectName           string  `json:"project_name,omitempty"`
	ProjectType           string  `json:"project_type"`
	Region                string  `json:"region"`
	CapacityMW            float64 `json:"capacity_mw"`
	SetupCost             float64 `json:"setup_cost"`
	MaintenanceCost       float64 `json:"maintenance_cost"`
	DurationYears         int     `json:"duration_years"`
	ExpectedGenerationMWH float64 `json:"expected_generation_mwh"`
	CO2SavedTonsPerYear   float64 `json:"co2_saved_tons_per_year"`
	BeneficiaryCount      int     `json:"beneficiary_count"`
	RiskScore             float64 `json:"risk_score"`
	SubsidyEligible       bool    `json:"subsidy_eligible"`
	JobCreationCount      int     `json:"job_creation_count"`
}
