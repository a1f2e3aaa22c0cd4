package indicator

import (
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// RollingMax computes the maximum of values over a trailing window.
// When shifted is true the window covers entries [i-window, i-1], excluding
// the current entry. Breakout tests must use the shifted variant so a bar
// is never compared against its own high.
func RollingMax(values []float64, window int, shifted bool) (Column, error) {
	return rollingExtremum(values, window, shifted, func(a, b float64) bool { return a > b })
}

// RollingMin computes the minimum of values over a trailing window, with
// the same shifted semantics as RollingMax.
func RollingMin(values []float64, window int, shifted bool) (Column, error) {
	return rollingExtremum(values, window, shifted, func(a, b float64) bool { return a < b })
}

func rollingExtremum(values []float64, window int, shifted bool, better func(a, b float64) bool) (Column, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "rolling window must be a positive integer, got %d", window)
	}

	out := NewColumn(len(values))

	for i := range values {
		end := i + 1
		if shifted {
			end = i
		}

		start := end - window
		if start < 0 {
			continue
		}

		best := values[start]
		for j := start + 1; j < end; j++ {
			if better(values[j], best) {
				best = values[j]
			}
		}

		out[i] = best
	}

	return out, nil
}
