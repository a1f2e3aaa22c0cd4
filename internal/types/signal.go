package types

import (
	"math"
	"time"
)

// Direction is the per-bar stance of a strategy.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
	DirectionFlat  Direction = "flat"
)

// SignalRow is one row of a signal series, aligned to the bar at the same
// index. Flat rows carry NaN prices; entry and stop are meaningful only
// when the direction is long or short.
type SignalRow struct {
	Time       time.Time          `json:"time"`
	Direction  Direction          `json:"direction"`
	EntryPrice float64            `json:"entry_price"`
	StopPrice  float64            `json:"stop_price"`
	Reason     string             `json:"reason,omitempty"`
	Pattern    string             `json:"pattern,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// FlatRow returns the flat row for a bar time.
func FlatRow(t time.Time) SignalRow {
	return SignalRow{
		Time:       t,
		Direction:  DirectionFlat,
		EntryPrice: math.NaN(),
		StopPrice:  math.NaN(),
	}
}

// IsFlat reports whether the row carries no signal.
func (r SignalRow) IsFlat() bool {
	return r.Direction == DirectionFlat || r.Direction == ""
}

// RiskPerShare is the absolute distance between entry and stop. It can be
// zero when a stop rule degenerates onto the entry price.
func (r SignalRow) RiskPerShare() float64 {
	return math.Abs(r.EntryPrice - r.StopPrice)
}

// SignalSeries is the output of one strategy evaluation over one symbol:
// exactly one row per input bar, same order.
type SignalSeries struct {
	Symbol string
	Rows   []SignalRow
}

// Last returns the final row, or false when the series is empty.
func (s SignalSeries) Last() (SignalRow, bool) {
	if len(s.Rows) == 0 {
		return SignalRow{}, false
	}

	return s.Rows[len(s.Rows)-1], true
}

// ScanResult is one actionable hit of a screen: the latest-bar signal of
// one strategy on one symbol, flattened for reporting.
type ScanResult struct {
	Symbol       string             `json:"symbol"`
	Strategy     string             `json:"strategy"`
	Time         time.Time          `json:"time"`
	Direction    Direction          `json:"direction"`
	EntryPrice   float64            `json:"entry_price"`
	StopPrice    float64            `json:"stop_price"`
	RiskPerShare float64            `json:"risk_per_share"`
	Reason       string             `json:"reason,omitempty"`
	Pattern      string             `json:"pattern,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}
