package indicator

import (
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// SMA computes the simple moving average of values over the trailing
// period entries, inclusive of the current one. The first period-1 entries
// of the result are undefined.
func SMA(values []float64, period int) (Column, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "SMA period must be a positive integer, got %d", period)
	}

	out := NewColumn(len(values))

	sum := 0.0

	for i, v := range values {
		sum += v

		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out, nil
}
