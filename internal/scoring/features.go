package scoring

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/gridsight/greenscore/internal/types"
)

// numericFeatureCount is the number of standardized numeric columns; see
// numericValues for the ordering.
const numericFeatureCount = 9

// FeatureEncoder turns a ProjectRecord into the numeric vector the regressor
// consumes. All statistics and category mappings are computed once in Fit and
// frozen afterwards; Transform never mutates the encoder, so a fitted encoder
// is safe for concurrent use.
type FeatureEncoder struct {
	means  []float64
	scales []float64

	// Observed categories per one-hot feature, sorted. The first category of
	// each group is the dropped reference level.
	typeCategories    []string
	regionCategories  []string
	subsidyCategories []string
}

func numericValues(rec types.ProjectRecord) [numericFeatureCount]float64 {
	return [numericFeatureCount]float64{
		rec.CapacityMW,
		rec.SetupCost,
		rec.MaintenanceCost,
		float64(rec.DurationYears),
		rec.ExpectedGenerationMWH,
		rec.CO2SavedTonsPerYear,
		float64(rec.BeneficiaryCount),
		rec.RiskScore,
		float64(rec.JobCreationCount),
	}
}

// Fit computes standardization statistics and category mappings from the
// training records. Zero-variance columns keep scale 1 so Transform stays
// finite.
func (e *FeatureEncoder) Fit(records []types.ProjectRecord) {
	e.means = make([]float64, numericFeatureCount)
	e.scales = make([]float64, numericFeatureCount)

	column := make([]float64, len(records))
	for j := 0; j < numericFeatureCount; j++ {
		for i, rec := range records {
			column[i] = numericValues(rec)[j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		e.means[j] = mean
		e.scales[j] = std
	}

	e.typeCategories = observedCategories(records, func(r types.ProjectRecord) string { return r.ProjectType })
	e.regionCategories = observedCategories(records, func(r types.ProjectRecord) string { return r.Region })
	e.subsidyCategories = observedCategories(records, func(r types.ProjectRecord) string {
		return strconv.FormatBool(r.SubsidyEligible)
	})
}

// Transform encodes one record using the frozen fit-time statistics. A
// categorical value never seen during Fit encodes as all zeros for that
// feature group.
func (e *FeatureEncoder) Transform(rec types.ProjectRecord) []float64 {
	nums := numericValues(rec)
	out := make([]float64, 0, e.Width())
	for j, v := range nums {
		out = append(out, (v-e.means[j])/e.scales[j])
	}
	out = append(out, oneHot(rec.ProjectType, e.typeCategories)...)
	out = append(out, oneHot(rec.Region, e.regionCategories)...)
	out = append(out, oneHot(strconv.FormatBool(rec.SubsidyEligible), e.subsidyCategories)...)
	return out
}

// Width returns the length of the encoded vector.
func (e *FeatureEncoder) Width() int {
	return numericFeatureCount + dummyWidth(e.typeCategories) +
		dummyWidth(e.regionCategories) + dummyWidth(e.subsidyCategories)
}

func dummyWidth(cats []string) int {
	if len(cats) < 2 {
		return 0
	}
	return len(cats) - 1
}

// oneHot encodes value against the sorted category list with the first
// category dropped as the reference level.
func oneHot(value string, cats []string) []float64 {
	if len(cats) < 2 {
		return nil
	}
	cols := make([]float64, len(cats)-1)
	for i, c := range cats[1:] {
		if value == c {
			cols[i] = 1
		}
	}
	return cols
}

func observedCategories(records []types.ProjectRecord, key func(types.ProjectRecord) string) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		seen[key(rec)] = struct{}{}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
