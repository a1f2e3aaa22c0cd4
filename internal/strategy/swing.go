package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/utils"
)

// NameSwing is the strategy identifier of the multi-pattern swing variant.
const NameSwing = "swing_multi_pattern"

// Entry modes of the swing strategy. EntryModeAll evaluates the three
// patterns in declared order with first-match-wins per bar.
const (
	EntryModeCrossover = "crossover"
	EntryModeDip50     = "dip_50"
	EntryModeDip200    = "dip_200"
	EntryModeAll       = "all"
)

// Entry pattern tags reported on signal rows.
const (
	PatternCrossover = "crossover"
	PatternDip50     = "dip_50"
	PatternDip200    = "dip_200"
)

// SwingConfig configures the multi-pattern swing strategy.
type SwingConfig struct {
	// FastEMA is the fast crossover EMA period.
	FastEMA int `yaml:"fast_ema" json:"fastEma" jsonschema:"title=Fast EMA" validate:"gt=0"`
	// SlowEMA is the slow crossover EMA period, also the crossover stop.
	SlowEMA int `yaml:"slow_ema" json:"slowEma" jsonschema:"title=Slow EMA" validate:"gt=0"`
	// DipSMA is the pullback-support SMA period for the shallow dip-buy.
	DipSMA int `yaml:"dip_sma" json:"dipSma" jsonschema:"title=Dip SMA,description=Support SMA period for the shallow dip-buy" validate:"gt=0"`
	// DeepSMA is the SMA period for the deep-pullback dip-buy.
	DeepSMA int `yaml:"deep_sma" json:"deepSma" jsonschema:"title=Deep SMA,description=Support SMA period for the deep dip-buy" validate:"gt=0"`
	// RSIPeriod is the RSI period reported as an auxiliary metric.
	RSIPeriod int `yaml:"rsi_period" json:"rsiPeriod" jsonschema:"title=RSI Period" validate:"gt=0"`
	// ATRPeriod is the ATR period reported as an auxiliary metric.
	ATRPeriod int `yaml:"atr_period" json:"atrPeriod" jsonschema:"title=ATR Period" validate:"gt=0"`
	// EntryMode restricts evaluation to a single pattern or enables all
	// three.
	EntryMode string `yaml:"entry_mode" json:"entryMode" jsonschema:"title=Entry Mode,enum=crossover,enum=dip_50,enum=dip_200,enum=all" validate:"oneof=crossover dip_50 dip_200 all"`
}

// DefaultSwingConfig returns the documented defaults.
func DefaultSwingConfig() SwingConfig {
	return SwingConfig{
		FastEMA:   5,
		SlowEMA:   20,
		DipSMA:    50,
		DeepSMA:   200,
		RSIPeriod: 14,
		ATRPeriod: 14,
		EntryMode: EntryModeAll,
	}
}

// Swing is a hybrid trend/swing strategy with three independent entry
// patterns: a fast/slow EMA cross-above, a dip to the shallow support SMA
// that closes back above it, and the same dip pattern against the deep
// SMA. Patterns are evaluated in that order and the first match per bar
// wins; later patterns never overwrite an earlier signal.
type Swing struct {
	config SwingConfig
}

// NewSwing creates the strategy and validates its configuration.
func NewSwing(config SwingConfig) (*Swing, error) {
	if err := utils.DecodeYAMLConfig(nil, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid swing config", err)
	}

	if config.FastEMA >= config.SlowEMA {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError,
			"fast EMA period (%d) must be shorter than slow EMA period (%d)", config.FastEMA, config.SlowEMA)
	}

	return &Swing{config: config}, nil
}

// NewSwingFromYAML creates the strategy from a YAML document applied on
// top of the defaults.
func NewSwingFromYAML(source []byte) (*Swing, error) {
	config := DefaultSwingConfig()
	if err := utils.DecodeYAMLConfig(source, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid swing config", err)
	}

	return NewSwing(config)
}

// Name implements Strategy.
func (s *Swing) Name() string {
	return NameSwing
}

// Config returns a copy of the strategy configuration.
func (s *Swing) Config() SwingConfig {
	return s.config
}

// Evaluate implements Strategy.
func (s *Swing) Evaluate(series types.BarSeries) (types.SignalSeries, error) {
	cfg := s.config

	set, err := ComputeIndicators(series, []IndicatorSpec{
		{Kind: KindEMA, Period: cfg.FastEMA},
		{Kind: KindEMA, Period: cfg.SlowEMA},
		{Kind: KindSMA, Period: cfg.DipSMA},
		{Kind: KindSMA, Period: cfg.DeepSMA},
		{Kind: KindRSI, Period: cfg.RSIPeriod},
		{Kind: KindATR, Period: cfg.ATRPeriod},
	})
	if err != nil {
		return types.SignalSeries{}, err
	}

	fastEMA, _ := set.EMA(cfg.FastEMA)
	slowEMA, _ := set.EMA(cfg.SlowEMA)
	dipSMA, _ := set.SMA(cfg.DipSMA)
	deepSMA, _ := set.SMA(cfg.DeepSMA)
	rsi, _ := set.RSI(cfg.RSIPeriod)
	atr, _ := set.ATR(cfg.ATRPeriod)

	aux := map[string]indicator.Column{"rsi": rsi, "atr": atr}

	rows := make([]types.SignalRow, series.Len())

	for i, bar := range series.Bars {
		rows[i] = types.FlatRow(bar.Time)

		// Pattern order is fixed: crossover, then the shallow dip, then
		// the deep dip. First match wins per bar.
		if s.modeEnables(EntryModeCrossover) {
			crossAbove := i > 0 &&
				fastEMA.Defined(i) && slowEMA.Defined(i) &&
				fastEMA.Defined(i-1) && slowEMA.Defined(i-1) &&
				fastEMA[i-1] <= slowEMA[i-1] && fastEMA[i] > slowEMA[i]

			if crossAbove {
				rows[i].Direction = types.DirectionLong
				rows[i].EntryPrice = bar.Close
				rows[i].StopPrice = slowEMA[i]
				rows[i].Reason = fmt.Sprintf("EMA %d/%d bullish cross", cfg.FastEMA, cfg.SlowEMA)
				rows[i].Pattern = PatternCrossover
				rows[i].Metrics = auxMetrics(i, aux)

				continue
			}
		}

		if s.modeEnables(EntryModeDip50) && dipBuy(series.Bars, dipSMA, i) {
			rows[i].Direction = types.DirectionLong
			rows[i].EntryPrice = bar.Close
			rows[i].StopPrice = dipSMA[i] * 0.98
			rows[i].Reason = fmt.Sprintf("%d-day MA dip-buy (bounce)", cfg.DipSMA)
			rows[i].Pattern = PatternDip50
			rows[i].Metrics = auxMetrics(i, aux)

			continue
		}

		if s.modeEnables(EntryModeDip200) && dipBuy(series.Bars, deepSMA, i) {
			rows[i].Direction = types.DirectionLong
			rows[i].EntryPrice = bar.Close
			rows[i].StopPrice = deepSMA[i] * 0.97
			rows[i].Reason = fmt.Sprintf("%d-day MA deep dip-buy", cfg.DeepSMA)
			rows[i].Pattern = PatternDip200
			rows[i].Metrics = auxMetrics(i, aux)
		}
	}

	return types.SignalSeries{Symbol: series.Symbol, Rows: rows}, nil
}

func (s *Swing) modeEnables(pattern string) bool {
	return s.config.EntryMode == EntryModeAll || s.config.EntryMode == pattern
}

// dipBuy reports whether bar i dips to or through the moving average
// intrabar but closes back above it, having closed above the average on
// the prior bar as well.
func dipBuy(bars []types.Bar, ma indicator.Column, i int) bool {
	if i == 0 || !ma.Defined(i) || !ma.Defined(i-1) {
		return false
	}

	return bars[i].Low <= ma[i] &&
		bars[i].Close > ma[i] &&
		bars[i-1].Close > ma[i-1]
}
