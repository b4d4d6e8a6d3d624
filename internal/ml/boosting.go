// Package ml implements least-squares gradient boosting over regression
// trees. A fitted booster is immutable and safe for concurrent prediction.
package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

var (
	ErrNotFitted  = errors.New("ml: booster is not fitted")
	ErrEmptyInput = errors.New("ml: training input is empty")
)

// Config holds the boosting hyperparameters.
type Config struct {
	Stages       int
	MaxDepth     int
	LearningRate float64
	RowSubsample float64
	ColSubsample float64
	Seed         int64
}

// DefaultConfig is the production training setup: 300 stages of depth-8 trees,
// learning rate 0.1, 80% row and column subsampling per stage, fixed seed.
func DefaultConfig() Config {
	return Config{
		Stages:       300,
		MaxDepth:     8,
		LearningRate: 0.1,
		RowSubsample: 0.8,
		ColSubsample: 0.8,
		Seed:         42,
	}
}

// GradientBooster is a stage-wise ensemble of regression trees fitted to
// squared-error residuals.
type GradientBooster struct {
	cfg   Config
	base  float64
	width int
	trees []*regressionTree
}

func NewGradientBooster(cfg Config) *GradientBooster {
	return &GradientBooster{cfg: cfg}
}

// Fit trains the ensemble. The base score is the mean of y; each stage fits a
// subsampled tree to the current residuals and is added with shrinkage. Fit is
// deterministic for a given Config.Seed and input.
func (g *GradientBooster) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return ErrEmptyInput
	}
	g.width = len(x[0])

	rng := rand.New(rand.NewSource(g.cfg.Seed))

	var sum float64
	for _, v := range y {
		sum += v
	}
	g.base = sum / float64(len(y))

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = g.base
	}
	residual := make([]float64, len(y))

	rowCount := sampleSize(g.cfg.RowSubsample, len(x))
	colCount := sampleSize(g.cfg.ColSubsample, g.width)

	g.trees = make([]*regressionTree, 0, g.cfg.Stages)
	for stage := 0; stage < g.cfg.Stages; stage++ {
		for i := range y {
			residual[i] = y[i] - pred[i]
		}

		rows := sampleWithoutReplacement(rng, len(x), rowCount)
		cols := sampleWithoutReplacement(rng, g.width, colCount)

		tree := fitTree(x, residual, rows, cols, g.cfg.MaxDepth)
		g.trees = append(g.trees, tree)

		for i := range pred {
			pred[i] += g.cfg.LearningRate * tree.predict(x[i])
		}
	}
	return nil
}

// Predict returns the raw ensemble output for one feature vector. Callers own
// any range clamping.
func (g *GradientBooster) Predict(v []float64) (float64, error) {
	if len(g.trees) == 0 {
		return 0, ErrNotFitted
	}
	if len(v) != g.width {
		return 0, fmt.Errorf("ml: feature vector has width %d, want %d", len(v), g.width)
	}

	out := g.base
	for _, t := range g.trees {
		out += g.cfg.LearningRate * t.predict(v)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("ml: prediction is not finite")
	}
	return out, nil
}

func sampleSize(fraction float64, n int) int {
	k := int(fraction * float64(n))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

func sampleWithoutReplacement(rng *rand.Rand, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	out := idx[:k]
	sort.Ints(out)
	return out
}
