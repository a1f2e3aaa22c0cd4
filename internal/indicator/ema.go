package indicator

import (
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// EMA computes the exponentially weighted moving average of values with
// smoothing factor 2/(period+1). The recursion is seeded with the first
// input, so every entry of the result is defined.
func EMA(values []float64, period int) (Column, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "EMA period must be a positive integer, got %d", period)
	}

	out := NewColumn(len(values))
	if len(values) == 0 {
		return out, nil
	}

	alpha := 2.0 / (float64(period) + 1.0)

	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out, nil
}
