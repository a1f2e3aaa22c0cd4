package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// TrueRange computes the per-bar true range: the greatest of high-low,
// |high-previous close| and |low-previous close|. The first bar has no
// previous close, so its true range is simply high-low.
func TrueRange(bars []types.Bar) Column {
	out := NewColumn(len(bars))

	for i, bar := range bars {
		if i == 0 {
			out[i] = bar.High - bar.Low
			continue
		}

		prevClose := bars[i-1].Close
		out[i] = math.Max(
			math.Max(
				bar.High-bar.Low,
				math.Abs(bar.High-prevClose),
			),
			math.Abs(bar.Low-prevClose),
		)
	}

	return out
}

// ATR computes the Average True Range: the trailing simple mean of the
// true range over period bars. The first period-1 entries are undefined.
func ATR(bars []types.Bar, period int) (Column, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ATR period must be a positive integer, got %d", period)
	}

	tr := TrueRange(bars)

	return SMA(tr, period)
}
