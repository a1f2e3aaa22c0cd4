package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/utils"
)

// NameMACrossover is the strategy identifier of the MA crossover variant.
const NameMACrossover = "ma_crossover"

// MACrossoverConfig configures the moving-average crossover strategy.
// Unrecognized YAML keys are ignored when decoding.
type MACrossoverConfig struct {
	// RegimeSMA is the long-horizon regime filter period: entries only
	// fire when the close is above this SMA.
	RegimeSMA int `yaml:"regime_sma" json:"regimeSma" jsonschema:"title=Regime SMA,description=Long regime filter SMA period" validate:"gt=0"`
	// FastEMA is the fast crossover EMA period.
	FastEMA int `yaml:"fast_ema" json:"fastEma" jsonschema:"title=Fast EMA,description=Fast crossover EMA period" validate:"gt=0"`
	// SlowEMA is the slow crossover EMA period.
	SlowEMA int `yaml:"slow_ema" json:"slowEma" jsonschema:"title=Slow EMA,description=Slow crossover EMA period" validate:"gt=0"`
	// StopEMA is the EMA period used as the initial stop price.
	StopEMA int `yaml:"stop_ema" json:"stopEma" jsonschema:"title=Stop EMA,description=EMA period used for the initial stop" validate:"gt=0"`
	// RSIPeriod is the RSI period reported as an auxiliary metric.
	RSIPeriod int `yaml:"rsi_period" json:"rsiPeriod" jsonschema:"title=RSI Period" validate:"gt=0"`
	// ATRPeriod is the ATR period reported as an auxiliary metric.
	ATRPeriod int `yaml:"atr_period" json:"atrPeriod" jsonschema:"title=ATR Period" validate:"gt=0"`
}

// DefaultMACrossoverConfig returns the documented defaults.
func DefaultMACrossoverConfig() MACrossoverConfig {
	return MACrossoverConfig{
		RegimeSMA: 200,
		FastEMA:   10,
		SlowEMA:   30,
		StopEMA:   10,
		RSIPeriod: 14,
		ATRPeriod: 14,
	}
}

// MACrossover is a long-only trend-following strategy: enter when the fast
// EMA crosses above the slow EMA while the close is above the regime SMA.
// The regime filter suppresses entries in long-term downtrends; there is
// no short side.
type MACrossover struct {
	config MACrossoverConfig
}

// NewMACrossover creates the strategy and validates its configuration.
func NewMACrossover(config MACrossoverConfig) (*MACrossover, error) {
	if err := utils.DecodeYAMLConfig(nil, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid ma_crossover config", err)
	}

	if config.FastEMA >= config.SlowEMA {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError,
			"fast EMA period (%d) must be shorter than slow EMA period (%d)", config.FastEMA, config.SlowEMA)
	}

	return &MACrossover{config: config}, nil
}

// NewMACrossoverFromYAML creates the strategy from a YAML document applied
// on top of the defaults.
func NewMACrossoverFromYAML(source []byte) (*MACrossover, error) {
	config := DefaultMACrossoverConfig()
	if err := utils.DecodeYAMLConfig(source, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid ma_crossover config", err)
	}

	return NewMACrossover(config)
}

// Name implements Strategy.
func (s *MACrossover) Name() string {
	return NameMACrossover
}

// Config returns a copy of the strategy configuration.
func (s *MACrossover) Config() MACrossoverConfig {
	return s.config
}

// Evaluate implements Strategy.
func (s *MACrossover) Evaluate(series types.BarSeries) (types.SignalSeries, error) {
	cfg := s.config

	set, err := ComputeIndicators(series, []IndicatorSpec{
		{Kind: KindSMA, Period: cfg.RegimeSMA},
		{Kind: KindEMA, Period: cfg.FastEMA},
		{Kind: KindEMA, Period: cfg.SlowEMA},
		{Kind: KindEMA, Period: cfg.StopEMA},
		{Kind: KindRSI, Period: cfg.RSIPeriod},
		{Kind: KindATR, Period: cfg.ATRPeriod},
	})
	if err != nil {
		return types.SignalSeries{}, err
	}

	regimeSMA, _ := set.SMA(cfg.RegimeSMA)
	fastEMA, _ := set.EMA(cfg.FastEMA)
	slowEMA, _ := set.EMA(cfg.SlowEMA)
	stopEMA, _ := set.EMA(cfg.StopEMA)
	rsi, _ := set.RSI(cfg.RSIPeriod)
	atr, _ := set.ATR(cfg.ATRPeriod)

	rows := make([]types.SignalRow, series.Len())

	for i, bar := range series.Bars {
		rows[i] = types.FlatRow(bar.Time)

		crossAbove := i > 0 &&
			fastEMA.Defined(i) && slowEMA.Defined(i) &&
			fastEMA.Defined(i-1) && slowEMA.Defined(i-1) &&
			fastEMA[i-1] <= slowEMA[i-1] && fastEMA[i] > slowEMA[i]

		regime := regimeSMA.Defined(i) && bar.Close > regimeSMA[i]

		if !crossAbove || !regime || !stopEMA.Defined(i) {
			continue
		}

		rows[i].Direction = types.DirectionLong
		rows[i].EntryPrice = bar.Close
		rows[i].StopPrice = stopEMA[i]
		rows[i].Reason = fmt.Sprintf("EMA %d/%d cross above, price > SMA %d", cfg.FastEMA, cfg.SlowEMA, cfg.RegimeSMA)
		rows[i].Metrics = auxMetrics(i, map[string]indicator.Column{
			"atr": atr,
			"rsi": rsi,
		})
	}

	return types.SignalSeries{Symbol: series.Symbol, Rows: rows}, nil
}
