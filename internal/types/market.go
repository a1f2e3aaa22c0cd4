package types

import (
	"time"

	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// Bar is a single daily OHLCV observation.
type Bar struct {
	Time   time.Time `csv:"time" json:"time"`
	Open   float64   `csv:"open" json:"open"`
	High   float64   `csv:"high" json:"high"`
	Low    float64   `csv:"low" json:"low"`
	Close  float64   `csv:"close" json:"close"`
	Volume float64   `csv:"volume" json:"volume"`
}

// BarSeries is the per-symbol input of a strategy evaluation: bars in
// strictly ascending date order, one per trading day.
type BarSeries struct {
	Symbol string
	Bars   []Bar
}

// NewBarSeries wraps the given bars for a symbol. It performs no
// validation; call Validate before feeding the series to an indicator.
func NewBarSeries(symbol string, bars []Bar) BarSeries {
	return BarSeries{Symbol: symbol, Bars: bars}
}

// Len returns the number of bars.
func (s BarSeries) Len() int {
	return len(s.Bars)
}

// Last returns the final bar, or false when the series is empty.
func (s BarSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}

	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the close column as a fresh slice.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Validate checks the series invariants: positive prices, non-negative
// volume, low never above high, and strictly ascending dates. An empty
// series is valid.
func (s BarSeries) Validate() error {
	for i, bar := range s.Bars {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return errors.Newf(errors.ErrCodeMalformedSeries,
				"%s: non-positive price at bar %d (%s)", s.Symbol, i, bar.Time.Format("2006-01-02"))
		}

		if bar.Volume < 0 {
			return errors.Newf(errors.ErrCodeMalformedSeries,
				"%s: negative volume at bar %d (%s)", s.Symbol, i, bar.Time.Format("2006-01-02"))
		}

		if bar.Low > bar.High {
			return errors.Newf(errors.ErrCodeMalformedSeries,
				"%s: low above high at bar %d (%s)", s.Symbol, i, bar.Time.Format("2006-01-02"))
		}

		if i > 0 && !s.Bars[i-1].Time.Before(bar.Time) {
			return errors.Newf(errors.ErrCodeMalformedSeries,
				"%s: bar dates not strictly ascending at bar %d (%s)", s.Symbol, i, bar.Time.Format("2006-01-02"))
		}
	}

	return nil
}
