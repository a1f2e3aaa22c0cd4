package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BarSeriesTestSuite struct {
	suite.Suite
}

func TestBarSeriesSuite(t *testing.T) {
	suite.Run(t, new(BarSeriesTestSuite))
}

func (suite *BarSeriesTestSuite) day(offset int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func (suite *BarSeriesTestSuite) validBars(n int) []Bar {
	bars := make([]Bar, n)
	for i := range bars {
		bars[i] = Bar{
			Time:   suite.day(i),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100,
			Volume: 1000,
		}
	}

	return bars
}

func (suite *BarSeriesTestSuite) TestValidateAcceptsWellFormedSeries() {
	series := NewBarSeries("AAPL", suite.validBars(5))
	suite.NoError(series.Validate())
}

func (suite *BarSeriesTestSuite) TestValidateAcceptsEmptySeries() {
	series := NewBarSeries("AAPL", nil)
	suite.NoError(series.Validate())
}

func (suite *BarSeriesTestSuite) TestValidateRejectsNonPositivePrice() {
	bars := suite.validBars(3)
	bars[1].Close = 0

	err := NewBarSeries("AAPL", bars).Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedSeries))
}

func (suite *BarSeriesTestSuite) TestValidateRejectsNegativeVolume() {
	bars := suite.validBars(3)
	bars[2].Volume = -1

	err := NewBarSeries("AAPL", bars).Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedSeries))
}

func (suite *BarSeriesTestSuite) TestValidateRejectsLowAboveHigh() {
	bars := suite.validBars(3)
	bars[0].Low = 102

	err := NewBarSeries("AAPL", bars).Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedSeries))
}

func (suite *BarSeriesTestSuite) TestValidateRejectsDuplicateDates() {
	bars := suite.validBars(3)
	bars[2].Time = bars[1].Time

	err := NewBarSeries("AAPL", bars).Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedSeries))
}

func (suite *BarSeriesTestSuite) TestLastAndLen() {
	series := NewBarSeries("AAPL", suite.validBars(3))
	suite.Equal(3, series.Len())

	last, ok := series.Last()
	suite.True(ok)
	suite.Equal(suite.day(2), last.Time)

	_, ok = NewBarSeries("EMPTY", nil).Last()
	suite.False(ok)
}

func (suite *BarSeriesTestSuite) TestClosesReturnsFreshSlice() {
	series := NewBarSeries("AAPL", suite.validBars(3))

	closes := series.Closes()
	suite.Equal([]float64{100, 100, 100}, closes)

	closes[0] = 1
	suite.Equal(100.0, series.Bars[0].Close)
}

func (suite *BarSeriesTestSuite) TestFlatRow() {
	row := FlatRow(suite.day(0))
	suite.True(row.IsFlat())
	suite.True(math.IsNaN(row.EntryPrice))
	suite.True(math.IsNaN(row.StopPrice))
}

func (suite *BarSeriesTestSuite) TestRiskPerShareIsAbsolute() {
	long := SignalRow{Direction: DirectionLong, EntryPrice: 100, StopPrice: 95}
	suite.Equal(5.0, long.RiskPerShare())

	short := SignalRow{Direction: DirectionShort, EntryPrice: 95, StopPrice: 100}
	suite.Equal(5.0, short.RiskPerShare())
}

func (suite *BarSeriesTestSuite) TestSignalSeriesLast() {
	series := SignalSeries{Symbol: "AAPL", Rows: []SignalRow{FlatRow(suite.day(0)), FlatRow(suite.day(1))}}

	last, ok := series.Last()
	suite.True(ok)
	suite.Equal(suite.day(1), last.Time)

	_, ok = SignalSeries{}.Last()
	suite.False(ok)
}
