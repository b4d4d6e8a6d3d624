package scoring

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gridsight/greenscore/internal/types"
)

// requiredColumns are the CSV columns the loader insists on, in no particular
// order. project_name is carried through when present but never required.
var requiredColumns = []string{
	"project_type",
	"region",
	"capacity_mw",
	"setup_cost",
	"maintenance_cost",
	"duration_years",
	"expected_generation_mwh",
	"co2_saved_tons_per_year",
	"beneficiary_count",
	"risk_score",
	"subsidy_eligible",
	"job_creation_count",
}

// LoadDataset reads the historical project CSV. Any structural problem is
// returned as an error the caller treats as startup-fatal: the service must
// not come up without trainable data.
func LoadDataset(path string) ([]types.ProjectRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scoring: opening dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("scoring: reading dataset header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("scoring: dataset is missing required column %q", col)
		}
	}

	var records []types.ProjectRecord
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("scoring: reading dataset row %d: %w", line, err)
		}
		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("scoring: dataset row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("scoring: dataset %s contains no data rows", path)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (types.ProjectRecord, error) {
	var rec types.ProjectRecord
	cell := func(col string) string { return strings.TrimSpace(row[index[col]]) }

	if i, ok := index["project_name"]; ok && i < len(row) {
		rec.ProjectName = strings.TrimSpace(row[i])
	}
	rec.ProjectType = cell("project_type")
	rec.Region = cell("region")

	var err error
	if rec.CapacityMW, err = parseFloatCell(cell("capacity_mw"), "capacity_mw"); err != nil {
		return rec, err
	}
	if rec.SetupCost, err = parseFloatCell(cell("setup_cost"), "setup_cost"); err != nil {
		return rec, err
	}
	if rec.MaintenanceCost, err = parseFloatCell(cell("maintenance_cost"), "maintenance_cost"); err != nil {
		return rec, err
	}
	if rec.DurationYears, err = parseIntCell(cell("duration_years"), "duration_years"); err != nil {
		return rec, err
	}
	if rec.ExpectedGenerationMWH, err = parseFloatCell(cell("expected_generation_mwh"), "expected_generation_mwh"); err != nil {
		return rec, err
	}
	if rec.CO2SavedTonsPerYear, err = parseFloatCell(cell("co2_saved_tons_per_year"), "co2_saved_tons_per_year"); err != nil {
		return rec, err
	}
	if rec.BeneficiaryCount, err = parseIntCell(cell("beneficiary_count"), "beneficiary_count"); err != nil {
		return rec, err
	}
	if rec.RiskScore, err = parseFloatCell(cell("risk_score"), "risk_score"); err != nil {
		return rec, err
	}
	if rec.SubsidyEligible, err = parseBoolCell(cell("subsidy_eligible"), "subsidy_eligible"); err != nil {
		return rec, err
	}
	if rec.JobCreationCount, err = parseIntCell(cell("job_creation_count"), "job_creation_count"); err != nil {
		return rec, err
	}
	return rec, nil
}

func parseFloatCell(s, col string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", col, s)
	}
	return v, nil
}

func parseIntCell(s, col string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not an integer", col, s)
	}
	return v, nil
}

func parseBoolCell(s, col string) (bool, error) {
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return false, fmt.Errorf("column %s: %q is not a boolean", col, s)
	}
	return v, nil
}
