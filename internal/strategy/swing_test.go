package strategy

import (
	"testing"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SwingTestSuite struct {
	suite.Suite
}

func TestSwingSuite(t *testing.T) {
	suite.Run(t, new(SwingTestSuite))
}

// dipSeries converges every average at 100, nudges up for one bar so the
// prior close sits above the support SMAs, then prints a bounce bar whose
// low pierces both SMAs but closes back above them. Both dip patterns
// match on the final bar; the crossover fired one bar earlier.
func (suite *SwingTestSuite) dipSeries() types.BarSeries {
	closes := constantCloses(212, 100)
	closes[210] = 101
	closes[211] = 102

	series := seriesFromCloses("DIP", closes, 1e6)
	series.Bars[211].Low = 99

	return series
}

func (suite *SwingTestSuite) TestConfigValidation() {
	config := DefaultSwingConfig()
	config.EntryMode = "bogus"

	_, err := NewSwing(config)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	config = DefaultSwingConfig()
	config.FastEMA = 20
	config.SlowEMA = 5

	_, err = NewSwing(config)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *SwingTestSuite) TestCrossoverPattern() {
	closes := constantCloses(41, 100)
	closes[40] = 105

	s, err := NewSwing(DefaultSwingConfig())
	suite.NoError(err)

	signals, err := s.Evaluate(seriesFromCloses("X", closes, 1e6))
	suite.NoError(err)

	row := signals.Rows[40]
	suite.Equal(types.DirectionLong, row.Direction)
	suite.Equal(PatternCrossover, row.Pattern)
	suite.Equal(105.0, row.EntryPrice)
	// Stop is the 20-bar EMA after the pop bar.
	suite.InDelta(100+5*2.0/21.0, row.StopPrice, 1e-9)
	suite.Contains(row.Reason, "EMA 5/20")
}

func (suite *SwingTestSuite) TestFirstMatchWinsOnDipBar() {
	// Both dip patterns hold on the final bar; the shallow dip is
	// declared first and wins.
	s, err := NewSwing(DefaultSwingConfig())
	suite.NoError(err)

	signals, err := s.Evaluate(suite.dipSeries())
	suite.NoError(err)

	row := signals.Rows[211]
	suite.Equal(types.DirectionLong, row.Direction)
	suite.Equal(PatternDip50, row.Pattern)
	suite.Contains(row.Reason, "50-day MA dip-buy")

	// The nudge bar itself is a fresh EMA cross.
	suite.Equal(PatternCrossover, signals.Rows[210].Pattern)
}

func (suite *SwingTestSuite) TestDip200ModeSelectsDeepPattern() {
	config := DefaultSwingConfig()
	config.EntryMode = EntryModeDip200

	s, err := NewSwing(config)
	suite.NoError(err)

	signals, err := s.Evaluate(suite.dipSeries())
	suite.NoError(err)

	row := signals.Rows[211]
	suite.Equal(types.DirectionLong, row.Direction)
	suite.Equal(PatternDip200, row.Pattern)
	suite.Contains(row.Reason, "200-day MA deep dip-buy")

	// Crossover is disabled in this mode.
	suite.True(signals.Rows[210].IsFlat())
}

func (suite *SwingTestSuite) TestCrossoverModeIgnoresDips() {
	config := DefaultSwingConfig()
	config.EntryMode = EntryModeCrossover

	s, err := NewSwing(config)
	suite.NoError(err)

	signals, err := s.Evaluate(suite.dipSeries())
	suite.NoError(err)

	suite.True(signals.Rows[211].IsFlat())
	suite.Equal(PatternCrossover, signals.Rows[210].Pattern)
}

func (suite *SwingTestSuite) TestDipStopsSitBelowSupport() {
	s, err := NewSwing(DefaultSwingConfig())
	suite.NoError(err)

	signals, err := s.Evaluate(suite.dipSeries())
	suite.NoError(err)

	row := signals.Rows[211]
	// 2% below the 50-bar SMA on the signal bar.
	sma50 := (48*100.0 + 101 + 102) / 50
	suite.InDelta(sma50*0.98, row.StopPrice, 1e-9)
	suite.Less(row.StopPrice, row.EntryPrice)
}

func (suite *SwingTestSuite) TestDipRequiresPriorCloseAboveSupport() {
	// Without the nudge bar, the prior close equals the SMA rather than
	// exceeding it, so the bounce bar is not a dip-buy.
	closes := constantCloses(212, 100)
	closes[211] = 102

	series := seriesFromCloses("DIP", closes, 1e6)
	series.Bars[211].Low = 99

	config := DefaultSwingConfig()
	config.EntryMode = EntryModeDip50

	s, err := NewSwing(config)
	suite.NoError(err)

	signals, err := s.Evaluate(series)
	suite.NoError(err)
	suite.True(signals.Rows[211].IsFlat())
}

func (suite *SwingTestSuite) TestFromYAMLOverridesMode() {
	s, err := NewSwingFromYAML([]byte("entry_mode: dip_50\n"))
	suite.NoError(err)
	suite.Equal(EntryModeDip50, s.Config().EntryMode)
	suite.Equal(5, s.Config().FastEMA)
}
