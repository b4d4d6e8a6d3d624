package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridsight/greenscore/internal/types"
)

func validRecord() types.ProjectRecord {
	return types.ProjectRecord{
		ProjectName:           "Test Farm",
		ProjectType:           types.TypeWind,
		Region:                types.RegionRural,
		CapacityMW:            80,
		SetupCost:             2500000,
		MaintenanceCost:       60000,
		DurationYears:         25,
		ExpectedGenerationMWH: 90000,
		CO2SavedTonsPerYear:   5000,
		BeneficiaryCount:      12000,
		RiskScore:             45,
		SubsidyEligible:       false,
		JobCreationCount:      220,
	}
}

func TestValidateAcceptsValidRecord(t *testing.T) {
	result := Validate(validRecord())
	assert.True(t, result.Valid())
	assert.Empty(t, result.Fields)
}

func TestValidateRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ProjectRecord)
		field  string
	}{
		{"unknown project type", func(r *types.ProjectRecord) { r.ProjectType = "Geothermal" }, "project_type"},
		{"empty project type", func(r *types.ProjectRecord) { r.ProjectType = "" }, "project_type"},
		{"unknown region", func(r *types.ProjectRecord) { r.Region = "Offshore" }, "region"},
		{"zero capacity", func(r *types.ProjectRecord) { r.CapacityMW = 0 }, "capacity_mw"},
		{"negative setup cost", func(r *types.ProjectRecord) { r.SetupCost = -1 }, "setup_cost"},
		{"zero maintenance", func(r *types.ProjectRecord) { r.MaintenanceCost = 0 }, "maintenance_cost"},
		{"zero generation", func(r *types.ProjectRecord) { r.ExpectedGenerationMWH = 0 }, "expected_generation_mwh"},
		{"zero co2", func(r *types.ProjectRecord) { r.CO2SavedTonsPerYear = 0 }, "co2_saved_tons_per_year"},
		{"zero beneficiaries", func(r *types.ProjectRecord) { r.BeneficiaryCount = 0 }, "beneficiary_count"},
		{"zero jobs", func(r *types.ProjectRecord) { r.JobCreationCount = 0 }, "job_creation_count"},
		{"duration too short", func(r *types.ProjectRecord) { r.DurationYears = 0 }, "duration_years"},
		{"duration too long", func(r *types.ProjectRecord) { r.DurationYears = 51 }, "duration_years"},
		{"risk below range", func(r *types.ProjectRecord) { r.RiskScore = -0.1 }, "risk_score"},
		{"risk above range", func(r *types.ProjectRecord) { r.RiskScore = 100.1 }, "risk_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			result := Validate(rec)
			assert.False(t, result.Valid())
			assert.Contains(t, result.Fields, tt.field)
		})
	}
}

func TestValidateBoundaryValues(t *testing.T) {
	rec := validRecord()
	rec.DurationYears = 1
	rec.RiskScore = 0
	assert.True(t, Validate(rec).Valid())

	rec.DurationYears = 50
	rec.RiskScore = 100
	assert.True(t, Validate(rec).Valid())
}

func TestValidateCollectsAllFailures(t *testing.T) {
	rec := validRecord()
	rec.ProjectType = "Coal"
	rec.CapacityMW = -5
	rec.RiskScore = 200

	result := Validate(rec)
	assert.Len(t, result.Fields, 3)
}
