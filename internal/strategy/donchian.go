package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/utils"
)

// NameDonchian is the strategy identifier of the Donchian breakout variant.
const NameDonchian = "donchian_breakout"

// DonchianConfig configures the Donchian channel breakout strategy.
type DonchianConfig struct {
	// EntryPeriod is the breakout channel lookback in bars.
	EntryPeriod int `yaml:"entry_period" json:"entryPeriod" jsonschema:"title=Entry Period,description=Breakout channel lookback in bars" validate:"gt=0"`
	// ExitPeriod is the opposite channel lookback used for the stop.
	ExitPeriod int `yaml:"exit_period" json:"exitPeriod" jsonschema:"title=Exit Period,description=Opposite channel lookback used for the stop" validate:"gt=0"`
	// ATRPeriod is the ATR period used for the optional ATR stop.
	ATRPeriod int `yaml:"atr_period" json:"atrPeriod" jsonschema:"title=ATR Period" validate:"gt=0"`
	// ATRStopMultiple is the ATR multiple subtracted from the close when
	// the ATR stop mode is enabled.
	ATRStopMultiple float64 `yaml:"atr_stop_multiple" json:"atrStopMultiple" jsonschema:"title=ATR Stop Multiple" validate:"gte=0"`
	// UseATRStop switches the stop from the exit channel to close -/+
	// ATRStopMultiple * ATR.
	UseATRStop bool `yaml:"use_atr_stop" json:"useAtrStop" jsonschema:"title=Use ATR Stop"`
	// AllowShorts enables the symmetric short side: close below the
	// lowest low of the entry channel.
	AllowShorts bool `yaml:"allow_shorts" json:"allowShorts" jsonschema:"title=Allow Shorts"`
}

// DefaultDonchianConfig returns the documented 50/25 defaults.
func DefaultDonchianConfig() DonchianConfig {
	return DonchianConfig{
		EntryPeriod:     50,
		ExitPeriod:      25,
		ATRPeriod:       14,
		ATRStopMultiple: 3.0,
		UseATRStop:      false,
		AllowShorts:     false,
	}
}

// Donchian is a channel breakout strategy: enter long when the close
// exceeds the highest high of the trailing entry window. The channel
// always excludes the current bar, so a bar is never tested against its
// own high.
type Donchian struct {
	config DonchianConfig
}

// NewDonchian creates the strategy and validates its configuration.
func NewDonchian(config DonchianConfig) (*Donchian, error) {
	if err := utils.DecodeYAMLConfig(nil, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid donchian config", err)
	}

	return &Donchian{config: config}, nil
}

// NewDonchianFromYAML creates the strategy from a YAML document applied on
// top of the defaults.
func NewDonchianFromYAML(source []byte) (*Donchian, error) {
	config := DefaultDonchianConfig()
	if err := utils.DecodeYAMLConfig(source, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid donchian config", err)
	}

	return NewDonchian(config)
}

// Name implements Strategy.
func (s *Donchian) Name() string {
	return NameDonchian
}

// Config returns a copy of the strategy configuration.
func (s *Donchian) Config() DonchianConfig {
	return s.config
}

// Evaluate implements Strategy.
func (s *Donchian) Evaluate(series types.BarSeries) (types.SignalSeries, error) {
	cfg := s.config

	set, err := ComputeIndicators(series, []IndicatorSpec{
		{Kind: KindHighestHigh, Period: cfg.EntryPeriod, Shifted: true},
		{Kind: KindLowestLow, Period: cfg.EntryPeriod, Shifted: true},
		{Kind: KindHighestHigh, Period: cfg.ExitPeriod, Shifted: true},
		{Kind: KindLowestLow, Period: cfg.ExitPeriod, Shifted: true},
		{Kind: KindATR, Period: cfg.ATRPeriod},
	})
	if err != nil {
		return types.SignalSeries{}, err
	}

	entryHigh, _ := set.Column(IndicatorSpec{Kind: KindHighestHigh, Period: cfg.EntryPeriod, Shifted: true})
	entryLow, _ := set.Column(IndicatorSpec{Kind: KindLowestLow, Period: cfg.EntryPeriod, Shifted: true})
	exitHigh, _ := set.Column(IndicatorSpec{Kind: KindHighestHigh, Period: cfg.ExitPeriod, Shifted: true})
	exitLow, _ := set.Column(IndicatorSpec{Kind: KindLowestLow, Period: cfg.ExitPeriod, Shifted: true})
	atr, _ := set.ATR(cfg.ATRPeriod)

	rows := make([]types.SignalRow, series.Len())

	for i, bar := range series.Bars {
		rows[i] = types.FlatRow(bar.Time)

		if entryHigh.Defined(i) && bar.Close > entryHigh[i] {
			stop, ok := s.longStop(bar, exitLow, atr, i)
			if !ok {
				continue
			}

			rows[i].Direction = types.DirectionLong
			rows[i].EntryPrice = bar.Close
			rows[i].StopPrice = stop
			rows[i].Reason = fmt.Sprintf("%d-day breakout high", cfg.EntryPeriod)
			rows[i].Metrics = auxMetrics(i, map[string]indicator.Column{"atr": atr})

			continue
		}

		if cfg.AllowShorts && entryLow.Defined(i) && bar.Close < entryLow[i] {
			stop, ok := s.shortStop(bar, exitHigh, atr, i)
			if !ok {
				continue
			}

			rows[i].Direction = types.DirectionShort
			rows[i].EntryPrice = bar.Close
			rows[i].StopPrice = stop
			rows[i].Reason = fmt.Sprintf("%d-day breakdown low", cfg.EntryPeriod)
			rows[i].Metrics = auxMetrics(i, map[string]indicator.Column{"atr": atr})
		}
	}

	return types.SignalSeries{Symbol: series.Symbol, Rows: rows}, nil
}

func (s *Donchian) longStop(bar types.Bar, exitLow, atr indicator.Column, i int) (float64, bool) {
	if s.config.UseATRStop {
		if !atr.Defined(i) {
			return 0, false
		}

		return bar.Close - s.config.ATRStopMultiple*atr[i], true
	}

	if !exitLow.Defined(i) {
		return 0, false
	}

	return exitLow[i], true
}

func (s *Donchian) shortStop(bar types.Bar, exitHigh, atr indicator.Column, i int) (float64, bool) {
	if s.config.UseATRStop {
		if !atr.Defined(i) {
			return 0, false
		}

		return bar.Close + s.config.ATRStopMultiple*atr[i], true
	}

	if !exitHigh.Defined(i) {
		return 0, false
	}

	return exitHigh[i], true
}
