package indicator

import (
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// RSI computes the Relative Strength Index of values using trailing simple
// means of gains and losses over period entries (Wilder-style, not
// exponentially smoothed). The first period entries are undefined because
// the first close-to-close delta needs a prior bar.
//
// When the average loss over the window is exactly zero the ratio RS is
// unbounded; the result is reported as 100 instead of propagating a
// division by zero.
func RSI(values []float64, period int) (Column, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "RSI period must be a positive integer, got %d", period)
	}

	out := NewColumn(len(values))
	if len(values) < 2 {
		return out, nil
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))

	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	gainSum := 0.0
	lossSum := 0.0

	for i := 1; i < len(values); i++ {
		gainSum += gains[i]
		lossSum += losses[i]

		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}

		if i < period {
			continue
		}

		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)

		if avgLoss == 0 {
			out[i] = 100
			continue
		}

		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}

	return out, nil
}
