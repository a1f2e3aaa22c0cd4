package indicator

import (
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// MACDResult bundles the three MACD output columns.
type MACDResult struct {
	// Line is EMA(fast) - EMA(slow).
	Line Column
	// Signal is EMA(signal) of the MACD line.
	Signal Column
	// Histogram is Line - Signal.
	Histogram Column
}

// MACD computes the Moving Average Convergence Divergence of values.
// All three columns are defined from the first entry onward because the
// underlying EMAs are seeded recursions.
func MACD(values []float64, fast, slow, signal int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDResult{}, errors.Newf(errors.ErrCodeInvalidPeriod,
			"MACD periods must be positive integers, got fast=%d slow=%d signal=%d", fast, slow, signal)
	}

	if fast >= slow {
		return MACDResult{}, errors.Newf(errors.ErrCodeInvalidPeriod,
			"MACD fast period must be shorter than slow period, got fast=%d slow=%d", fast, slow)
	}

	emaFast, err := EMA(values, fast)
	if err != nil {
		return MACDResult{}, err
	}

	emaSlow, err := EMA(values, slow)
	if err != nil {
		return MACDResult{}, err
	}

	line := make(Column, len(values))
	for i := range values {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signalLine, err := EMA(line, signal)
	if err != nil {
		return MACDResult{}, err
	}

	histogram := make(Column, len(values))
	for i := range values {
		histogram[i] = line[i] - signalLine[i]
	}

	return MACDResult{
		Line:      line,
		Signal:    signalLine,
		Histogram: histogram,
	}, nil
}
