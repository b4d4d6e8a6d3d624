package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridsight/greenscore/internal/types"
)

func baseRecord() types.ProjectRecord {
	return types.ProjectRecord{
		ProjectType:           types.TypeSolar,
		Region:                types.RegionUrban,
		CapacityMW:            50,
		SetupCost:             500000,
		MaintenanceCost:       10000,
		DurationYears:         10,
		ExpectedGenerationMWH: 1000000,
		CO2SavedTonsPerYear:   25000,
		BeneficiaryCount:      25000,
		RiskScore:             40,
		SubsidyEligible:       true,
		JobCreationCount:      500,
	}
}

func TestLabelKnownValue(t *testing.T) {
	// total cost 600000, total revenue 1.2M, nominal ROI 100% capped at 30.
	// Social components each sit at half saturation: 20 + 15 + 15 = 50.
	// Risk component 60. Final = 0.5*30 + 0.3*50 + 0.2*60 = 42.
	rec := baseRecord()
	assert.InDelta(t, 42.0, Label(rec), 1e-9)
}

func TestLabelBounded(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ProjectRecord)
	}{
		{"base", func(r *types.ProjectRecord) {}},
		{"huge revenue", func(r *types.ProjectRecord) { r.ExpectedGenerationMWH = 1e12 }},
		{"huge social", func(r *types.ProjectRecord) {
			r.BeneficiaryCount = 10000000
			r.JobCreationCount = 1000000
			r.CO2SavedTonsPerYear = 1e9
		}},
		{"worst case", func(r *types.ProjectRecord) {
			r.ExpectedGenerationMWH = 1
			r.BeneficiaryCount = 1
			r.JobCreationCount = 1
			r.CO2SavedTonsPerYear = 1
			r.RiskScore = 100
		}},
		{"max everything", func(r *types.ProjectRecord) {
			r.ExpectedGenerationMWH = 1e12
			r.BeneficiaryCount = 10000000
			r.JobCreationCount = 1000000
			r.CO2SavedTonsPerYear = 1e9
			r.RiskScore = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := baseRecord()
			tt.mutate(&rec)
			score := Label(rec)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}

func TestLabelROICapLimitsContribution(t *testing.T) {
	// Two projects identical except for revenue far past the cap must score
	// the same: the ROI component saturates at 30, worth 15 points.
	rec := baseRecord()
	rec.ExpectedGenerationMWH = 1e6
	capped := Label(rec)

	rec.ExpectedGenerationMWH = 1e9
	assert.InDelta(t, capped, Label(rec), 1e-9)
}

func TestLabelNegativeROIContributesZero(t *testing.T) {
	rec := baseRecord()
	rec.ExpectedGenerationMWH = 100 // revenue far below cost

	expected := 0.3*50 + 0.2*60
	assert.InDelta(t, expected, Label(rec), 1e-9)
}

func TestLabelRiskMonotonic(t *testing.T) {
	rec := baseRecord()
	prev := Label(rec)
	for _, risk := range []float64{50, 60, 70, 80, 90, 100} {
		rec.RiskScore = risk
		score := Label(rec)
		assert.Less(t, score, prev, "risk %v should lower the label", risk)
		prev = score
	}
}

func TestLabelDeterministic(t *testing.T) {
	rec := baseRecord()
	first := Label(rec)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Label(rec))
	}
}
