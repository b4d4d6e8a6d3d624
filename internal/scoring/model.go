// Package scoring owns the viability label, the feature pipeline, and the
// trained model. Training happens once at startup; the resulting Model is
// read-only and safe for concurrent prediction.
package scoring

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/gridsight/greenscore/internal/ml"
	"github.com/gridsight/greenscore/internal/types"
)

const (
	splitSeed    = 42
	testFraction = 0.2
)

// EvalReport summarizes held-out regression quality. Diagnostic only: the
// model is deployed regardless of these numbers.
type EvalReport struct {
	R2           float64 `json:"r2"`
	MAE          float64 `json:"mae"`
	RMSE         float64 `json:"rmse"`
	TrainSamples int     `json:"train_samples"`
	TestSamples  int     `json:"test_samples"`
}

// Model is the trained scoring artifact: a frozen feature encoder plus a
// fitted gradient-boosted regressor.
type Model struct {
	encoder *FeatureEncoder
	booster *ml.GradientBooster
	report  EvalReport
}

// Train labels the historical records, splits them 80/20 with a fixed shuffle
// seed, fits the feature pipeline and the regressor on the training split, and
// evaluates on the held-out split.
func Train(records []types.ProjectRecord) (*Model, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("scoring: training dataset is empty")
	}

	labels := make([]float64, len(records))
	for i, rec := range records {
		labels[i] = Label(rec)
	}

	perm := rand.New(rand.NewSource(splitSeed)).Perm(len(records))
	testSize := int(float64(len(records)) * testFraction)

	trainRecs := make([]types.ProjectRecord, 0, len(records)-testSize)
	trainLabels := make([]float64, 0, len(records)-testSize)
	for _, i := range perm[testSize:] {
		trainRecs = append(trainRecs, records[i])
		trainLabels = append(trainLabels, labels[i])
	}
	testRecs := make([]types.ProjectRecord, 0, testSize)
	testLabels := make([]float64, 0, testSize)
	for _, i := range perm[:testSize] {
		testRecs = append(testRecs, records[i])
		testLabels = append(testLabels, labels[i])
	}

	encoder := &FeatureEncoder{}
	encoder.Fit(trainRecs)

	x := make([][]float64, len(trainRecs))
	for i, rec := range trainRecs {
		x[i] = encoder.Transform(rec)
	}

	booster := ml.NewGradientBooster(ml.DefaultConfig())
	if err := booster.Fit(x, trainLabels); err != nil {
		return nil, fmt.Errorf("scoring: fitting regressor: %w", err)
	}

	m := &Model{encoder: encoder, booster: booster}
	m.report = m.evaluate(testRecs, testLabels)
	m.report.TrainSamples = len(trainRecs)
	m.report.TestSamples = len(testRecs)
	return m, nil
}

// Predict returns the raw regressor output for one record. Callers clamp to
// the 0-100 scale at the API boundary.
func (m *Model) Predict(rec types.ProjectRecord) (float64, error) {
	return m.booster.Predict(m.encoder.Transform(rec))
}

// Report returns the held-out evaluation computed at training time.
func (m *Model) Report() EvalReport { return m.report }

func (m *Model) evaluate(recs []types.ProjectRecord, labels []float64) EvalReport {
	if len(recs) == 0 {
		return EvalReport{}
	}

	preds := make([]float64, len(recs))
	var absSum, sqSum float64
	for i, rec := range recs {
		p, err := m.Predict(rec)
		if err != nil {
			p = 0
		}
		preds[i] = p
		diff := p - labels[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
	}

	n := float64(len(recs))
	return EvalReport{
		R2:   stat.RSquaredFrom(preds, labels, nil),
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
	}
}
