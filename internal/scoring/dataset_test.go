package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/greenscore/internal/types"
)

const datasetHeader = "project_name,project_type,region,capacity_mw,setup_cost,maintenance_cost,duration_years,expected_generation_mwh,co2_saved_tons_per_year,beneficiary_count,risk_score,subsidy_eligible,job_creation_count"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDataset(t *testing.T) {
	path := writeDataset(t, datasetHeader+"\n"+
		"Desert Sun,Solar,Urban,50,1000000,20000,20,25000,2000,50000,20,True,150\n"+
		"Coastal Wind,Wind,Rural,80,2500000,60000,25,90000,5000,12000,45,False,220\n")

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Desert Sun", first.ProjectName)
	assert.Equal(t, types.TypeSolar, first.ProjectType)
	assert.Equal(t, types.RegionUrban, first.Region)
	assert.Equal(t, 50.0, first.CapacityMW)
	assert.Equal(t, 20, first.DurationYears)
	assert.True(t, first.SubsidyEligible)
	assert.Equal(t, 150, first.JobCreationCount)

	assert.False(t, records[1].SubsidyEligible)
	assert.Equal(t, 45.0, records[1].RiskScore)
}

func TestLoadDatasetMissingColumn(t *testing.T) {
	path := writeDataset(t, "project_type,region,capacity_mw\nSolar,Urban,50\n")

	_, err := LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestLoadDatasetEmpty(t *testing.T) {
	path := writeDataset(t, datasetHeader+"\n")

	_, err := LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestLoadDatasetBadCell(t *testing.T) {
	path := writeDataset(t, datasetHeader+"\n"+
		"Bad Row,Solar,Urban,not-a-number,1000000,20000,20,25000,2000,50000,20,True,150\n")

	_, err := LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity_mw")
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
