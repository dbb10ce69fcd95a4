package xrd

import (
	"math"
	"sort"

	"github.com/gonum/stat"
)

// SuggestStep derives an auto-offset step from the data itself: the given
// quantile of the per-sample intensity maxima. Stacking each pattern roughly
// one "typical tallest peak" above the previous keeps combined plots
// separated without a hand-picked step. Quantiles outside (0, 1] fall back
// to the median. Returns DefaultAutoStep when the table holds no finite
// intensities.
func SuggestStep(t *MergedTable, quantile float64) float64 {
	if t == nil || len(t.Samples) == 0 {
		return DefaultAutoStep
	}

	maxes := make([]float64, 0, len(t.Samples))
	for _, sample := range t.Samples {
		best := math.Inf(-1)
		for _, v := range t.Columns[sample] {
			if !math.IsNaN(v) && v > best {
				best = v
			}
		}
		if !math.IsInf(best, -1) {
			maxes = append(maxes, best)
		}
	}
	if len(maxes) == 0 {
		return DefaultAutoStep
	}

	if quantile <= 0 || quantile > 1 {
		quantile = 0.5
	}

	sort.Float64s(maxes)

	return stat.Quantile(quantile, stat.Empirical, maxes, nil)
}
