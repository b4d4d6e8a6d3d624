package validation

import (
	"fmt"
	"strings"

	"github.com/gridsight/greenscore/internal/types"
)

// Result collects validation failures for a ProjectRecord. Fields maps each
// offending field name to a human-readable message. An empty map means the
// record is acceptable.
type Result struct {
	Fields map[string]string
}

// Valid reports whether the record passed every check.
func (r Result) Valid() bool { return len(r.Fields) == 0 }

// Validate checks a ProjectRecord against the input contract. It is pure and
// transport-agnostic; callers decide how to surface the field messages.
func Validate(rec types.ProjectRecord) Result {
	fields := make(map[string]string)

	if !containsString(types.ProjectTypes, rec.ProjectType) {
		fields["project_type"] = oneOfMessage(types.ProjectTypes)
	}
	if !containsString(types.Regions, rec.Region) {
		fields["region"] = oneOfMessage(types.Regions)
	}

	requirePositive(fields, "capacity_mw", rec.CapacityMW)
	requirePositive(fields, "setup_cost", rec.SetupCost)
	requirePositive(fields, "maintenance_cost", rec.MaintenanceCost)
	requirePositive(fields, "expected_generation_mwh", rec.ExpectedGenerationMWH)
	requirePositive(fields, "co2_saved_tons_per_year", rec.CO2SavedTonsPerYear)
	requirePositive(fields, "beneficiary_count", float64(rec.BeneficiaryCount))
	requirePositive(fields, "job_creation_count", float64(rec.JobCreationCount))

	if rec.DurationYears < 1 || rec.DurationYears > 50 {
		fields["duration_years"] = "must be between 1 and 50"
	}
	if rec.RiskScore < 0 || rec.RiskScore > 100 {
		fields["risk_score"] = "must be between 0 and 100"
	}

	return Result{Fields: fields}
}

func requirePositive(fields map[string]string, name string, value float64) {
	if value <= 0 {
		fields[name] = "must be greater than 0"
	}
}

func oneOfMessage(allowed []string) string {
	return fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
