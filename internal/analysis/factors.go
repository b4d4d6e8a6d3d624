package analysis

import "github.com/gridsight/greenscore/internal/types"

// keyFactors derives the ten qualitative labels shown alongside the funding
// recommendation. Both the ordering and the thresholds are part of the
// response contract.
func keyFactors(rec types.ProjectRecord, roiPct, socialImpactScore, ratio float64) []string {
	factors := make([]string, 0, 10)

	switch {
	case roiPct > 15:
		factors = append(factors, "High ROI potential")
	case roiPct > 5:
		factors = append(factors, "Moderate ROI")
	default:
		factors = append(factors, "Low ROI potential")
	}

	switch {
	case rec.RiskScore < 30:
		factors = append(factors, "Low risk profile")
	case rec.RiskScore < 60:
		factors = append(factors, "Moderate risk")
	default:
		factors = append(factors, "High risk profile")
	}

	switch {
	case socialImpactScore > 70:
		factors = append(factors, "Strong social impact")
	case socialImpactScore > 40:
		factors = append(factors, "Moderate social impact")
	default:
		factors = append(factors, "Limited social impact")
	}

	switch {
	case rec.CO2SavedTonsPerYear > 1000:
		factors = append(factors, "Significant environmental benefits")
	case rec.CO2SavedTonsPerYear > 500:
		factors = append(factors, "Moderate environmental benefits")
	default:
		factors = append(factors, "Limited environmental impact")
	}

	switch {
	case rec.JobCreationCount > 100:
		factors = append(factors, "High job creation potential")
	case rec.JobCreationCount > 50:
		factors = append(factors, "Moderate job creation")
	default:
		factors = append(factors, "Limited job creation")
	}

	switch rec.Region {
	case types.RegionUrban:
		factors = append(factors, "Urban development focus")
	case types.RegionRural:
		factors = append(factors, "Rural development focus")
	default:
		factors = append(factors, "Semi-urban development")
	}

	switch rec.ProjectType {
	case types.TypeSolar:
		factors = append(factors, "Solar energy benefits")
	case types.TypeWind:
		factors = append(factors, "Wind energy benefits")
	default:
		factors = append(factors, "Hybrid energy benefits")
	}

	if rec.SubsidyEligible {
		factors = append(factors, "Government subsidy eligible")
	} else {
		factors = append(factors, "No subsidy benefits")
	}

	switch {
	case rec.BeneficiaryCount > 10000:
		factors = append(factors, "Large beneficiary base")
	case rec.BeneficiaryCount > 5000:
		factors = append(factors, "Moderate beneficiary base")
	default:
		factors = append(factors, "Limited beneficiary reach")
	}

	switch {
	case ratio > 1.5:
		factors = append(factors, "Cost-effective investment")
	case ratio > 1.0:
		factors = append(factors, "Moderate cost efficiency")
	default:
		factors = append(factors, "High cost investment")
	}

	return factors
}
