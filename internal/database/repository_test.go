package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/greenscore/internal/analysis"
	"github.com/gridsight/greenscore/internal/types"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func sampleEvaluation() (types.ProjectRecord, analysis.Result) {
	rec := types.ProjectRecord{
		ProjectName:           "Valley Wind",
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
		JobCreationCount:      220,
	}
	return rec, analysis.Analyze(rec, 72.5)
}

func TestSaveAndListEvaluations(t *testing.T) {
	repo := testRepository(t)

	rec, res := sampleEvaluation()
	require.NoError(t, repo.SaveEvaluation(rec, res))

	rows, err := repo.RecentEvaluations(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Valley Wind", row.ProjectName)
	assert.Equal(t, types.TypeWind, row.ProjectType)
	assert.Equal(t, types.RegionRural, row.Region)
	assert.Equal(t, 80.0, row.CapacityMW)
	assert.Equal(t, 72.5, row.MLScore)
	assert.Equal(t, res.Recommendation.FundingRecommendation, row.Recommendation)
	assert.WithinDuration(t, time.Now().UTC(), row.CreatedAt, time.Minute)
}

func TestRecentEvaluationsLimit(t *testing.T) {
	repo := testRepository(t)

	rec, res := sampleEvaluation()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveEvaluation(rec, res))
	}

	rows, err := repo.RecentEvaluations(3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestRecentEvaluationsEmpty(t *testing.T) {
	repo := testRepository(t)

	rows, err := repo.RecentEvaluations(10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
