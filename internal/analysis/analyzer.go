// Package analysis computes the deterministic cost-benefit, ROI, risk, and
// social impact breakdown for a validated project. Everything here is a pure
// function of the record and the model score.
package analysis

import (
	"math"

	"github.com/gridsight/greenscore/internal/types"
)

// Energy prices in dollars per kWh by project type, before the regional and
// subsidy adjustments.
const (
	basePrice   = 0.12
	solarPrice  = 0.15
	windPrice   = 0.13
	hybridPrice = 0.14
)

// Regional price multipliers. Semi-Urban stays at the base rate.
const (
	urbanMultiplier   = 1.2
	ruralMultiplier   = 0.9
	subsidyMultiplier = 1.1
)

// Dollar value assigned to one ton of CO2 avoided per year.
const co2ValuePerTon = 50

// Benefit and ROI bounds.
const (
	ratioCap = 2.0
	roiFloor = -20
	roiCeil  = 50
)

// EnergyPrice returns the effective price per kWh for a project: the per-type
// rate adjusted multiplicatively by region and subsidy eligibility.
func EnergyPrice(rec types.ProjectRecord) float64 {
	price := basePrice
	switch rec.ProjectType {
	case types.TypeSolar:
		price = solarPrice
	case types.TypeWind:
		price = windPrice
	case types.TypeHybrid:
		price = hybridPrice
	}

	switch rec.Region {
	case types.RegionUrban:
		price *= urbanMultiplier
	case types.RegionRural:
		price *= ruralMultiplier
	}

	if rec.SubsidyEligible {
		price *= subsidyMultiplier
	}
	return price
}

// Analyze produces the full evaluation for one validated project. mlScore is
// taken as-is; the caller owns clamping it to the 0-100 scale.
func Analyze(rec types.ProjectRecord, mlScore float64) Result {
	years := float64(rec.DurationYears)
	price := EnergyPrice(rec)

	totalCost := rec.SetupCost + rec.MaintenanceCost*years

	energyRevenue := rec.ExpectedGenerationMWH * price * years
	environmentalBenefit := rec.CO2SavedTonsPerYear * co2ValuePerTon * years
	socialBenefit := float64(rec.BeneficiaryCount) * 0.01
	totalBenefit := energyRevenue + environmentalBenefit + socialBenefit

	ratio := 0.0
	if totalCost > 0 {
		ratio = math.Min(ratioCap, totalBenefit/totalCost)
	}

	annualRevenue := rec.ExpectedGenerationMWH * price
	totalRevenue := annualRevenue * years

	roiPct := 0.0
	if totalCost > 0 {
		roiPct = clamp((totalRevenue-totalCost)/totalCost*100, roiFloor, roiCeil)
	}

	riskFactor := (100 - rec.RiskScore) / 100

	socialImpactScore := math.Min(100,
		float64(rec.BeneficiaryCount)/1000+float64(rec.JobCreationCount)*2+rec.CO2SavedTonsPerYear/1000)

	projection := make([]ProjectionYear, 0, rec.DurationYears)
	for year := 1; year <= rec.DurationYears; year++ {
		cumRevenue := annualRevenue * float64(year)
		cumCost := rec.SetupCost + rec.MaintenanceCost*float64(year)
		yearROI := 0.0
		if cumCost > 0 {
			yearROI = clamp((cumRevenue-cumCost)/cumCost*100, roiFloor, roiCeil)
		}
		projection = append(projection, ProjectionYear{
			Year:              year,
			ROI:               yearROI,
			CumulativeRevenue: cumRevenue,
			CumulativeCost:    cumCost,
		})
	}

	return Result{
		MLScore: mlScore,
		CostBenefit: CostBenefit{
			TotalCost:        totalCost,
			TotalBenefit:     totalBenefit,
			CostBenefitRatio: ratio,
			Breakdown: CostBreakdown{
				SetupCost:            rec.SetupCost,
				MaintenanceCost:      rec.MaintenanceCost * years,
				EnergyRevenue:        energyRevenue,
				EnvironmentalBenefit: environmentalBenefit,
				SocialBenefit:        socialBenefit,
			},
		},
		ROI: ROIAnalysis{
			AnnualRevenue:   annualRevenue,
			TotalRevenue:    totalRevenue,
			TotalInvestment: totalCost,
			ROIPercentage:   roiPct,
			RiskAdjustedROI: roiPct * riskFactor,
			Projection:      projection,
		},
		Risk: RiskAnalysis{
			RiskScore:  rec.RiskScore,
			RiskFactor: riskFactor,
			RiskLevel:  riskLevel(rec.RiskScore),
		},
		SocialImpact: SocialImpact{
			Beneficiaries:     rec.BeneficiaryCount,
			JobCreation:       rec.JobCreationCount,
			CO2Saved:          rec.CO2SavedTonsPerYear,
			SocialImpactScore: socialImpactScore,
		},
		Recommendation: Recommendation{
			FundingRecommendation: recommendationTier(mlScore),
			Confidence:            math.Min(100, mlScore+ratio*10),
			KeyFactors:            keyFactors(rec, roiPct, socialImpactScore, ratio),
		},
	}
}

func riskLevel(riskScore float64) string {
	switch {
	case riskScore > 70:
		return "High"
	case riskScore > 40:
		return "Medium"
	default:
		return "Low"
	}
}

func recommendationTier(mlScore float64) string {
	switch {
	case mlScore > 80:
		return "Strongly Recommend"
	case mlScore > 60:
		return "Recommend"
	case mlScore > 40:
		return "Consider"
	default:
		return "Not Recommended"
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
