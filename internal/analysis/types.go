package analysis

// Result is the full evaluation document returned for one project. Field
// names are part of the API contract.
type Result struct {
	MLScore        float64        `json:"ml_score"`
	CostBenefit    CostBenefit    `json:"cost_benefit_analysis"`
	ROI            ROIAnalysis    `json:"roi_analysis"`
	Risk           RiskAnalysis   `json:"risk_analysis"`
	SocialImpact   SocialImpact   `json:"social_impact"`
	Recommendation Recommendation `json:"recommendation"`
}

type CostBenefit struct {
	TotalCost        float64       `json:"total_cost"`
	TotalBenefit     float64       `json:"total_benefit"`
	CostBenefitRatio float64       `json:"cost_benefit_ratio"`
	Breakdown        CostBreakdown `json:"breakdown"`
}

// CostBreakdown itemizes lifetime costs and benefits. MaintenanceCost here is
// the lifetime total, not the annual figure from the request.
type CostBreakdown struct {
	SetupCost            float64 `json:"setup_cost"`
	MaintenanceCost      float64 `json:"maintenance_cost"`
	EnergyRevenue        float64 `json:"energy_revenue"`
	EnvironmentalBenefit float64 `json:"environmental_benefit"`
	SocialBenefit        float64 `json:"social_benefit"`
}

type ROIAnalysis struct {
	AnnualRevenue   float64          `json:"annual_revenue"`
	TotalRevenue    float64          `json:"total_revenue"`
	TotalInvestment float64          `json:"total_investment"`
	ROIPercentage   float64          `json:"roi_percentage"`
	RiskAdjustedROI float64          `json:"risk_adjusted_roi"`
	Projection      []ProjectionYear `json:"projection"`
}

// ProjectionYear is one entry of the year-by-year ROI projection, ordered by
// Year starting at 1.
type ProjectionYear struct {
	Year              int     `json:"year"`
	ROI               float64 `json:"roi"`
	CumulativeRevenue float64 `json:"cumulative_revenue"`
	CumulativeCost    float64 `json:"cumulative_cost"`
}

type RiskAnalysis struct {
	RiskScore  float64 `json:"risk_score"`
	RiskFactor float64 `json:"risk_factor"`
	RiskLevel  string  `json:"risk_level"`
}

type SocialImpact struct {
	Beneficiaries     int     `json:"beneficiaries"`
	JobCreation       int     `json:"job_creation"`
	CO2Saved          float64 `json:"co2_saved"`
	SocialImpactScore float64 `json:"social_impact_score"`
}

type Recommendation struct {
	FundingRecommendation string   `json:"funding_recommendation"`
	Confidence            float64  `json:"confidence"`
	KeyFactors            []string `json:"key_factors"`
}
