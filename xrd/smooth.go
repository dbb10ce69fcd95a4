package xrd

import (
	"math"

	"github.com/montanaflynn/stats"
)

// DefaultSmoothWindow is the moving-average window used by the plotting
// tools when none is given.
const DefaultSmoothWindow = 7

// Smooth computes a centered moving average over values with the given
// window size. Positions within window/2 of either edge, where the full
// window does not fit, keep the raw value rather than a truncated-window
// average — this matters visually at scan boundaries. Missing (NaN) values
// are skipped when averaging a window, and a missing center stays missing.
//
// The window is centered on each point, so an even size behaves like the
// next odd size up. A window below 2 returns a copy of the input.
func Smooth(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	if window < 2 {
		return out
	}

	half := window / 2
	win := make([]float64, 0, 2*half+1)
	for i := half; i+half < len(values); i++ {
		if math.IsNaN(values[i]) {
			continue
		}

		win = win[:0]
		for j := i - half; j <= i+half; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			win = append(win, values[j])
		}

		mean, err := stats.Mean(win)
		if err != nil {
			// Unreachable: the center value is always in the window.
			continue
		}
		out[i] = mean
	}

	return out
}
