// Package strategy contains the strategy contract and the concrete rule
// sets evaluated by the screener. A strategy is a pure function from a bar
// series to a signal series aligned to the same index; it holds immutable
// configuration and no evaluation state.
package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Strategy is the contract every variant implements.
type Strategy interface {
	// Name returns the stable strategy identifier.
	Name() string
	// Evaluate computes the full signal series for the given bar series.
	// The input is never mutated. Evaluate fails loudly on a malformed
	// series and on invalid indicator parameters; insufficient history is
	// not an error and simply yields flat rows.
	Evaluate(series types.BarSeries) (types.SignalSeries, error)
}

// LatestSignal evaluates the strategy and inspects only the final row.
// It returns None when the series is empty or the final row is flat.
func LatestSignal(s Strategy, series types.BarSeries) (optional.Option[types.ScanResult], error) {
	signals, err := s.Evaluate(series)
	if err != nil {
		return optional.None[types.ScanResult](), err
	}

	row, ok := signals.Last()
	if !ok || row.IsFlat() {
		return optional.None[types.ScanResult](), nil
	}

	return optional.Some(types.ScanResult{
		Symbol:       series.Symbol,
		Strategy:     s.Name(),
		Time:         row.Time,
		Direction:    row.Direction,
		EntryPrice:   row.EntryPrice,
		StopPrice:    row.StopPrice,
		RiskPerShare: row.RiskPerShare(),
		Reason:       row.Reason,
		Pattern:      row.Pattern,
		Metrics:      row.Metrics,
	}), nil
}

// ScreenFailure records a symbol whose evaluation failed during a screen.
type ScreenFailure struct {
	Symbol string
	Err    error
}

// Screen applies LatestSignal to every series in the batch and collects
// the non-none results. A failing symbol does not abort the screen; it is
// reported as a typed failure alongside the results. There is no shared
// mutable state between symbols.
func Screen(s Strategy, batch []types.BarSeries) ([]types.ScanResult, []ScreenFailure) {
	var (
		results  []types.ScanResult
		failures []ScreenFailure
	)

	for _, series := range batch {
		result, err := LatestSignal(s, series)
		if err != nil {
			failures = append(failures, ScreenFailure{Symbol: series.Symbol, Err: err})
			continue
		}

		if result.IsSome() {
			results = append(results, result.Unwrap())
		}
	}

	return results, failures
}

// auxMetrics collects the auxiliary metric columns that are defined at
// bar i. Returns nil when none are.
func auxMetrics(i int, cols map[string]indicator.Column) map[string]float64 {
	var metrics map[string]float64

	for name, col := range cols {
		if !col.Defined(i) {
			continue
		}

		if metrics == nil {
			metrics = make(map[string]float64)
		}

		metrics[name] = col[i]
	}

	return metrics
}
