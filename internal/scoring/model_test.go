package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/greenscore/internal/types"
)

func syntheticRecords(n int) []types.ProjectRecord {
	projectTypes := []string{types.TypeSolar, types.TypeWind, types.TypeHybrid}
	regions := []string{types.RegionUrban, types.RegionRural, types.RegionSemiUrban}

	rng := rand.New(rand.NewSource(7))
	records := make([]types.ProjectRecord, n)
	for i := range records {
		setup := 200000 + rng.Float64()*4800000
		records[i] = types.ProjectRecord{
			ProjectType:           projectTypes[rng.Intn(len(projectTypes))],
			Region:                regions[rng.Intn(len(regions))],
			CapacityMW:            5 + rng.Float64()*195,
			SetupCost:             setup,
			MaintenanceCost:       setup * (0.01 + rng.Float64()*0.04),
			DurationYears:         5 + rng.Intn(26),
			ExpectedGenerationMWH: 1000 + rng.Float64()*499000,
			CO2SavedTonsPerYear:   100 + rng.Float64()*49900,
			BeneficiaryCount:      500 + rng.Intn(99500),
			RiskScore:             rng.Float64() * 100,
			SubsidyEligible:       rng.Intn(2) == 1,
			JobCreationCount:      10 + rng.Intn(990),
		}
	}
	return records
}

func TestTrainSplitSizes(t *testing.T) {
	model, err := Train(syntheticRecords(200))
	require.NoError(t, err)

	report := model.Report()
	assert.Equal(t, 160, report.TrainSamples)
	assert.Equal(t, 40, report.TestSamples)
}

func TestTrainLearnsLabelFunction(t *testing.T) {
	records := syntheticRecords(200)
	model, err := Train(records)
	require.NoError(t, err)

	report := model.Report()
	assert.Greater(t, report.R2, 0.5, "held-out R2")
	assert.Less(t, report.MAE, 10.0, "held-out MAE")
	assert.Greater(t, report.RMSE, 0.0)

	for _, rec := range records[:20] {
		pred, err := model.Predict(rec)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(pred))
		assert.Greater(t, pred, -50.0)
		assert.Less(t, pred, 150.0)
	}
}

func TestTrainDeterministic(t *testing.T) {
	records := syntheticRecords(120)

	first, err := Train(records)
	require.NoError(t, err)
	second, err := Train(records)
	require.NoError(t, err)

	for _, rec := range records[:10] {
		p1, err := first.Predict(rec)
		require.NoError(t, err)
		p2, err := second.Predict(rec)
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
	}
}

func TestTrainEmptyDataset(t *testing.T) {
	_, err := Train(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestPredictConcurrentSafe(t *testing.T) {
	records := syntheticRecords(100)
	model, err := Train(records)
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for _, rec := range records[:25] {
				if _, err := model.Predict(rec); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
