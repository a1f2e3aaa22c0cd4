package strategy

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type IndicatorSetTestSuite struct {
	suite.Suite
}

func TestIndicatorSetSuite(t *testing.T) {
	suite.Run(t, new(IndicatorSetTestSuite))
}

func (suite *IndicatorSetTestSuite) series() types.BarSeries {
	return seriesFromCloses("AAPL", risingCloses(60, 100, 1), 1e6)
}

func (suite *IndicatorSetTestSuite) TestComputesRequestedColumns() {
	set, err := ComputeIndicators(suite.series(), []IndicatorSpec{
		{Kind: KindSMA, Period: 20},
		{Kind: KindEMA, Period: 10},
		{Kind: KindRSI, Period: 14},
		{Kind: KindATR, Period: 14},
		{Kind: KindHighestHigh, Period: 20, Shifted: true},
	})
	suite.NoError(err)

	_, ok := set.SMA(20)
	suite.True(ok)
	_, ok = set.EMA(10)
	suite.True(ok)
	_, ok = set.RSI(14)
	suite.True(ok)
	_, ok = set.ATR(14)
	suite.True(ok)
	_, ok = set.Column(IndicatorSpec{Kind: KindHighestHigh, Period: 20, Shifted: true})
	suite.True(ok)
}

func (suite *IndicatorSetTestSuite) TestMissingColumnsReportFalse() {
	set, err := ComputeIndicators(suite.series(), []IndicatorSpec{{Kind: KindSMA, Period: 20}})
	suite.NoError(err)

	_, ok := set.SMA(50)
	suite.False(ok)
	_, ok = set.MACD()
	suite.False(ok)
}

func (suite *IndicatorSetTestSuite) TestUnknownKindsAreIgnored() {
	set, err := ComputeIndicators(suite.series(), []IndicatorSpec{
		{Kind: IndicatorKind("bollinger"), Period: 20},
		{Kind: KindSMA, Period: 20},
	})
	suite.NoError(err)

	_, ok := set.SMA(20)
	suite.True(ok)
}

func (suite *IndicatorSetTestSuite) TestDuplicateSpecsComputedOnce() {
	set, err := ComputeIndicators(suite.series(), []IndicatorSpec{
		{Kind: KindSMA, Period: 20},
		{Kind: KindSMA, Period: 20},
	})
	suite.NoError(err)

	col, ok := set.SMA(20)
	suite.True(ok)
	suite.Len(col, 60)
}

func (suite *IndicatorSetTestSuite) TestMACDUsesDefaultParameters() {
	set, err := ComputeIndicators(suite.series(), []IndicatorSpec{{Kind: KindMACD}})
	suite.NoError(err)

	macd, ok := set.MACD()
	suite.True(ok)
	suite.Len(macd.Line, 60)
	suite.Len(macd.Signal, 60)
	suite.Len(macd.Histogram, 60)
}

func (suite *IndicatorSetTestSuite) TestRejectsMalformedSeries() {
	bars := []types.Bar{
		{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: 10, High: 11, Low: 9, Close: 10, Volume: 100},
		{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: 10, High: 11, Low: 9, Close: 10, Volume: 100},
	}

	_, err := ComputeIndicators(types.NewBarSeries("BAD", bars), []IndicatorSpec{{Kind: KindSMA, Period: 2}})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedSeries))
}

func (suite *IndicatorSetTestSuite) TestRejectsInvalidPeriod() {
	_, err := ComputeIndicators(suite.series(), []IndicatorSpec{{Kind: KindSMA, Period: 0}})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
