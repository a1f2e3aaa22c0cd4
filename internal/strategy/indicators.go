package strategy

import (
	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// IndicatorKind identifies an indicator family in a requirement list.
type IndicatorKind string

const (
	KindSMA         IndicatorKind = "sma"
	KindEMA         IndicatorKind = "ema"
	KindRSI         IndicatorKind = "rsi"
	KindATR         IndicatorKind = "atr"
	KindMACD        IndicatorKind = "macd"
	KindHighestHigh IndicatorKind = "highest_high"
	KindLowestLow   IndicatorKind = "lowest_low"
)

// Default MACD parameters, used whenever a requirement list asks for MACD.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// IndicatorSpec is one entry of a strategy's declarative indicator
// requirement list: a typed (kind, period) pair instead of a textual form
// like "SMA(200)". Shifted applies to the extremum kinds only and excludes
// the current bar from the window.
type IndicatorSpec struct {
	Kind    IndicatorKind
	Period  int
	Shifted bool
}

// IndicatorSet holds the columns computed for a bar series from a
// requirement list.
type IndicatorSet struct {
	columns map[IndicatorSpec]indicator.Column
	macd    *indicator.MACDResult
}

// ComputeIndicators validates the series and computes one column per
// requirement. Requirements with an unknown kind are ignored, not errors:
// the requirement convention is shared across variants and a list may name
// indicators this library does not provide.
func ComputeIndicators(series types.BarSeries, specs []IndicatorSpec) (*IndicatorSet, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()

	highs := make([]float64, series.Len())
	lows := make([]float64, series.Len())

	for i, bar := range series.Bars {
		highs[i] = bar.High
		lows[i] = bar.Low
	}

	set := &IndicatorSet{columns: make(map[IndicatorSpec]indicator.Column)}

	for _, spec := range specs {
		if _, done := set.columns[spec]; done {
			continue
		}

		var (
			col indicator.Column
			err error
		)

		switch spec.Kind {
		case KindSMA:
			col, err = indicator.SMA(closes, spec.Period)
		case KindEMA:
			col, err = indicator.EMA(closes, spec.Period)
		case KindRSI:
			col, err = indicator.RSI(closes, spec.Period)
		case KindATR:
			col, err = indicator.ATR(series.Bars, spec.Period)
		case KindHighestHigh:
			col, err = indicator.RollingMax(highs, spec.Period, spec.Shifted)
		case KindLowestLow:
			col, err = indicator.RollingMin(lows, spec.Period, spec.Shifted)
		case KindMACD:
			result, macdErr := indicator.MACD(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
			if macdErr != nil {
				return nil, macdErr
			}

			set.macd = &result

			continue
		default:
			// Unknown kinds are ignored by the requirement convention.
			continue
		}

		if err != nil {
			return nil, err
		}

		set.columns[spec] = col
	}

	return set, nil
}

// Column returns the computed column for the given requirement.
func (s *IndicatorSet) Column(spec IndicatorSpec) (indicator.Column, bool) {
	col, ok := s.columns[spec]

	return col, ok
}

// MACD returns the computed MACD columns when the requirement list asked
// for them.
func (s *IndicatorSet) MACD() (indicator.MACDResult, bool) {
	if s.macd == nil {
		return indicator.MACDResult{}, false
	}

	return *s.macd, true
}

// SMA is shorthand for Column with a KindSMA spec.
func (s *IndicatorSet) SMA(period int) (indicator.Column, bool) {
	return s.Column(IndicatorSpec{Kind: KindSMA, Period: period})
}

// EMA is shorthand for Column with a KindEMA spec.
func (s *IndicatorSet) EMA(period int) (indicator.Column, bool) {
	return s.Column(IndicatorSpec{Kind: KindEMA, Period: period})
}

// RSI is shorthand for Column with a KindRSI spec.
func (s *IndicatorSet) RSI(period int) (indicator.Column, bool) {
	return s.Column(IndicatorSpec{Kind: KindRSI, Period: period})
}

// ATR is shorthand for Column with a KindATR spec.
func (s *IndicatorSet) ATR(period int) (indicator.Column, bool) {
	return s.Column(IndicatorSpec{Kind: KindATR, Period: period})
}
