package scoring

import (
	"math"

	"github.com/gridsight/greenscore/internal/types"
)

// Flat energy price used for labeling, in dollars per kWh of expected annual
// generation. Labeling intentionally ignores regional and subsidy pricing so
// the target reflects the project itself rather than tariff policy.
const labelEnergyPrice = 0.12

// Component weights of the viability label.
const (
	roiWeight    = 0.5
	socialWeight = 0.3
	riskWeight   = 0.2
)

// Caps applied before weighting.
const (
	roiCapPct           = 30
	beneficiarySaturate = 50000
	jobSaturate         = 1000
	co2Saturate         = 50000
)

// Label computes the ground-truth viability score in [0,100] for one project.
// ROI is capped at 30% before weighting: a project with an enormous nominal
// return is labeled as if it returned 30%, and a negative return contributes
// zero rather than dragging the score down further.
func Label(rec types.ProjectRecord) float64 {
	years := float64(rec.DurationYears)
	totalCost := rec.SetupCost + rec.MaintenanceCost*years

	annualRevenue := rec.ExpectedGenerationMWH * labelEnergyPrice
	totalRevenue := annualRevenue * years

	roi := 0.0
	if totalCost > 0 {
		roi = math.Min((totalRevenue-totalCost)/totalCost*100, roiCapPct)
	}
	roiScore := math.Max(0, roi)

	socialScore := math.Min(float64(rec.BeneficiaryCount)/beneficiarySaturate, 1)*40 +
		math.Min(float64(rec.JobCreationCount)/jobSaturate, 1)*30 +
		math.Min(rec.CO2SavedTonsPerYear/co2Saturate, 1)*30

	riskComponent := 100 - rec.RiskScore

	score := roiWeight*roiScore + socialWeight*socialScore + riskWeight*riskComponent
	return clamp(score, 0, 100)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
