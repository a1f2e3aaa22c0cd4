package strategy

import (
	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/utils"
)

// NameHTF is the strategy identifier of the high-tight-flag variant.
const NameHTF = "htf_breakout"

// PatternHTF is the entry pattern tag reported on HTF signal rows.
const PatternHTF = "high_tight_flag"

// HTFConfig configures the high-tight-flag breakout strategy.
type HTFConfig struct {
	// EMAPeriod is the short consolidation EMA the close must hold.
	EMAPeriod int `yaml:"ema_period" json:"emaPeriod" jsonschema:"title=EMA Period" validate:"gt=0"`
	// FlagSMAPeriod is the consolidation SMA the close must hold.
	FlagSMAPeriod int `yaml:"flag_sma_period" json:"flagSmaPeriod" jsonschema:"title=Flag SMA Period" validate:"gt=0"`
	// TrendSMAPeriod is the uptrend filter SMA period.
	TrendSMAPeriod int `yaml:"trend_sma_period" json:"trendSmaPeriod" jsonschema:"title=Trend SMA Period" validate:"gt=0"`
	// HighWindow is the rolling-high window for the near-high and
	// breakout tests.
	HighWindow int `yaml:"high_window" json:"highWindow" jsonschema:"title=High Window" validate:"gt=0"`
	// VolumeLookback is the window for average volume and average dollar
	// volume.
	VolumeLookback int `yaml:"volume_lookback" json:"volumeLookback" jsonschema:"title=Volume Lookback" validate:"gt=0"`
	// VolumeMultiplier is the minimum ratio of breakout volume to its
	// trailing average.
	VolumeMultiplier float64 `yaml:"volume_multiplier" json:"volumeMultiplier" jsonschema:"title=Volume Multiplier" validate:"gt=0"`
	// MinDollarVolume is the minimum trailing average dollar volume.
	MinDollarVolume float64 `yaml:"min_dollar_volume" json:"minDollarVolume" jsonschema:"title=Min Dollar Volume" validate:"gte=0"`
	// PoleLookback is the lookback in bars for the pole move.
	PoleLookback int `yaml:"pole_lookback" json:"poleLookback" jsonschema:"title=Pole Lookback" validate:"gt=0"`
	// MinPoleMove is the minimum trailing percentage move, as a fraction
	// (0.5 means +50%).
	MinPoleMove float64 `yaml:"min_pole_move" json:"minPoleMove" jsonschema:"title=Min Pole Move" validate:"gte=0"`
	// MaxDistanceFromHigh is how far below the rolling high the close may
	// sit, as a fraction (0.1 means within 10%).
	MaxDistanceFromHigh float64 `yaml:"max_distance_from_high" json:"maxDistanceFromHigh" jsonschema:"title=Max Distance From High" validate:"gte=0,lt=1"`
}

// DefaultHTFConfig returns the documented defaults.
func DefaultHTFConfig() HTFConfig {
	return HTFConfig{
		EMAPeriod:           10,
		FlagSMAPeriod:       20,
		TrendSMAPeriod:      50,
		HighWindow:          20,
		VolumeLookback:      20,
		VolumeMultiplier:    1.5,
		MinDollarVolume:     50_000_000,
		PoleLookback:        40,
		MinPoleMove:         0.50,
		MaxDistanceFromHigh: 0.10,
	}
}

// HTF detects high-tight-flag continuation breakouts: a strong prior move
// (the pole), a tight consolidation near the highs (the flag), and a
// volume-confirmed breakout of the prior rolling high. All six filters
// must hold on the same bar; any single false filter suppresses the
// signal.
type HTF struct {
	config HTFConfig
}

// NewHTF creates the strategy and validates its configuration.
func NewHTF(config HTFConfig) (*HTF, error) {
	if err := utils.DecodeYAMLConfig(nil, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid htf config", err)
	}

	return &HTF{config: config}, nil
}

// NewHTFFromYAML creates the strategy from a YAML document applied on top
// of the defaults.
func NewHTFFromYAML(source []byte) (*HTF, error) {
	config := DefaultHTFConfig()
	if err := utils.DecodeYAMLConfig(source, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid htf config", err)
	}

	return NewHTF(config)
}

// Name implements Strategy.
func (s *HTF) Name() string {
	return NameHTF
}

// Config returns a copy of the strategy configuration.
func (s *HTF) Config() HTFConfig {
	return s.config
}

// Evaluate implements Strategy.
func (s *HTF) Evaluate(series types.BarSeries) (types.SignalSeries, error) {
	cfg := s.config

	set, err := ComputeIndicators(series, []IndicatorSpec{
		{Kind: KindEMA, Period: cfg.EMAPeriod},
		{Kind: KindSMA, Period: cfg.FlagSMAPeriod},
		{Kind: KindSMA, Period: cfg.TrendSMAPeriod},
	})
	if err != nil {
		return types.SignalSeries{}, err
	}

	ema, _ := set.EMA(cfg.EMAPeriod)
	flagSMA, _ := set.SMA(cfg.FlagSMAPeriod)
	trendSMA, _ := set.SMA(cfg.TrendSMAPeriod)

	n := series.Len()

	closes := series.Closes()

	highs := make([]float64, n)
	volumes := make([]float64, n)
	dollarVolume := make([]float64, n)

	for i, bar := range series.Bars {
		highs[i] = bar.High
		volumes[i] = bar.Volume
		dollarVolume[i] = bar.Close * bar.Volume
	}

	avgVolume, err := indicator.SMA(volumes, cfg.VolumeLookback)
	if err != nil {
		return types.SignalSeries{}, err
	}

	avgDollarVolume, err := indicator.SMA(dollarVolume, cfg.VolumeLookback)
	if err != nil {
		return types.SignalSeries{}, err
	}

	rollingHigh, err := indicator.RollingMax(highs, cfg.HighWindow, false)
	if err != nil {
		return types.SignalSeries{}, err
	}

	// Breakout threshold: the rolling high over strictly prior bars.
	priorHigh, err := indicator.RollingMax(highs, cfg.HighWindow, true)
	if err != nil {
		return types.SignalSeries{}, err
	}

	rows := make([]types.SignalRow, n)

	for i, bar := range series.Bars {
		rows[i] = types.FlatRow(bar.Time)

		// Filter 1: liquidity.
		if !avgDollarVolume.Defined(i) || avgDollarVolume[i] < cfg.MinDollarVolume {
			continue
		}

		// Filter 2: uptrend.
		if !trendSMA.Defined(i) || bar.Close <= trendSMA[i] {
			continue
		}

		// Filter 3: pole.
		if i < cfg.PoleLookback {
			continue
		}

		poleMove := closes[i]/closes[i-cfg.PoleLookback] - 1
		if poleMove < cfg.MinPoleMove {
			continue
		}

		// Filter 4: near the highs.
		if !rollingHigh.Defined(i) || bar.Close < rollingHigh[i]*(1-cfg.MaxDistanceFromHigh) {
			continue
		}

		// Filter 5: tight consolidation.
		if !ema.Defined(i) || !flagSMA.Defined(i) || bar.Close < ema[i] || bar.Close < flagSMA[i] {
			continue
		}

		// Filter 6: volume-confirmed breakout of the prior high.
		if !priorHigh.Defined(i) || bar.High <= priorHigh[i] {
			continue
		}

		if !avgVolume.Defined(i) || avgVolume[i] <= 0 {
			continue
		}

		volumeRatio := bar.Volume / avgVolume[i]
		if volumeRatio < cfg.VolumeMultiplier {
			continue
		}

		rows[i].Direction = types.DirectionLong
		rows[i].EntryPrice = bar.High
		rows[i].StopPrice = bar.Low
		rows[i].Reason = "HTF breakout: strong leader, pole+flag, volume expansion"
		rows[i].Pattern = PatternHTF
		rows[i].Metrics = map[string]float64{
			"volume_ratio":      volumeRatio,
			"pole_move_pct":     poleMove * 100,
			"avg_dollar_volume": avgDollarVolume[i],
		}
	}

	return types.SignalSeries{Symbol: series.Symbol, Rows: rows}, nil
}
