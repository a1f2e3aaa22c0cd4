package strategy

import (
	"math"

	"github.com/shopspring/decimal"
)

// Default risk parameters shared by all variants.
const (
	DefaultRiskPct        = 0.01
	DefaultMaxPositionPct = 0.02
)

// PositionSize computes the whole number of shares to buy for a signal:
// the risk budget is equity*riskPct dollars, divided by the per-share risk
// |entry-stop| and floored, then clamped so the position value never
// exceeds equity*maxPositionPct. A degenerate signal with zero per-share
// risk sizes to zero shares rather than dividing by zero.
func PositionSize(entryPrice, stopPrice float64, equity decimal.Decimal, riskPct, maxPositionPct float64) int64 {
	if entryPrice <= 0 || riskPct <= 0 || maxPositionPct <= 0 {
		return 0
	}

	perShareRisk := math.Abs(entryPrice - stopPrice)
	if perShareRisk == 0 {
		return 0
	}

	riskDollars := equity.Mul(decimal.NewFromFloat(riskPct))
	shares := riskDollars.Div(decimal.NewFromFloat(perShareRisk)).Floor().IntPart()

	maxShares := equity.
		Mul(decimal.NewFromFloat(maxPositionPct)).
		Div(decimal.NewFromFloat(entryPrice)).
		Floor().
		IntPart()

	if shares > maxShares {
		shares = maxShares
	}

	if shares < 0 {
		return 0
	}

	return shares
}
