package main

import (
	"testing"

	"github.com/rxtech-lab/argo-screener/internal/strategy"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const validConfig = `
version: v1.2.9
equity: 250000
risk_pct: 0.005
data: ./data/bars.csv
universe: [AAPL, MSFT]
scanner:
  workers: 4
  max_risk_per_share: 25
strategies:
  donchian_breakout:
    enabled: true
    config:
      entry_period: 20
      exit_period: 10
  htf_breakout:
    enabled: true
  ma_crossover:
    enabled: false
`

type ScanConfigTestSuite struct {
	suite.Suite
}

func TestScanConfigSuite(t *testing.T) {
	suite.Run(t, new(ScanConfigTestSuite))
}

func (suite *ScanConfigTestSuite) TestLoadAppliesOverDefaults() {
	config, err := LoadScanConfig([]byte(validConfig))
	suite.NoError(err)

	suite.Equal(250000.0, config.Equity)
	suite.Equal(0.005, config.RiskPct)
	// Untouched fields keep their defaults.
	suite.Equal(strategy.DefaultMaxPositionPct, config.MaxPositionPct)
	suite.Equal(4, config.Scanner.Workers)
	suite.Equal(25.0, config.Scanner.MaxRiskPerShare)
	suite.Equal([]string{"AAPL", "MSFT"}, config.Universe)
}

func (suite *ScanConfigTestSuite) TestLoadRejectsIncompatibleVersion() {
	_, err := LoadScanConfig([]byte("version: v9.0.0\nequity: 1000\ndata: x.csv\n"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeVersionMismatch))
}

func (suite *ScanConfigTestSuite) TestLoadRejectsMissingData() {
	_, err := LoadScanConfig([]byte("version: v1.2.0\nequity: 1000\n"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeScanConfigError))
}

func (suite *ScanConfigTestSuite) TestBuildStrategiesHonorsEnabledAndOrder() {
	config, err := LoadScanConfig([]byte(validConfig))
	suite.Require().NoError(err)

	strategies, err := config.BuildStrategies()
	suite.NoError(err)
	suite.Require().Len(strategies, 2)

	// Name order, disabled entries skipped.
	suite.Equal(strategy.NameDonchian, strategies[0].Name())
	suite.Equal(strategy.NameHTF, strategies[1].Name())
}

func (suite *ScanConfigTestSuite) TestBuildStrategiesAppliesConfigBlock() {
	config, err := LoadScanConfig([]byte(validConfig))
	suite.Require().NoError(err)

	strategies, err := config.BuildStrategies()
	suite.Require().NoError(err)

	donchian, ok := strategies[0].(*strategy.Donchian)
	suite.Require().True(ok)
	suite.Equal(20, donchian.Config().EntryPeriod)
	suite.Equal(10, donchian.Config().ExitPeriod)
	// Absent keys keep their defaults.
	suite.Equal(14, donchian.Config().ATRPeriod)

	// An entry without a config block uses pure defaults.
	htf, ok := strategies[1].(*strategy.HTF)
	suite.Require().True(ok)
	suite.Equal(strategy.DefaultHTFConfig(), htf.Config())
}

func (suite *ScanConfigTestSuite) TestBuildStrategiesRejectsUnknownName() {
	config, err := LoadScanConfig([]byte("version: v1.2.0\nequity: 1000\ndata: x.csv\nstrategies:\n  bogus:\n    enabled: true\n"))
	suite.Require().NoError(err)

	_, err = config.BuildStrategies()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *ScanConfigTestSuite) TestBuildStrategiesRejectsBadBlock() {
	source := `
version: v1.2.0
equity: 1000
data: x.csv
strategies:
  ma_crossover:
    enabled: true
    config:
      fast_ema: 50
      slow_ema: 10
`

	config, err := LoadScanConfig([]byte(source))
	suite.Require().NoError(err)

	_, err = config.BuildStrategies()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}
