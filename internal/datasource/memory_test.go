package datasource

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/stretchr/testify/suite"
)

func testSeries(symbol string, n int) types.BarSeries {
	bars := make([]types.Bar, n)
	for i := range bars {
		bars[i] = types.Bar{
			Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100,
			Volume: 1000,
		}
	}

	return types.NewBarSeries(symbol, bars)
}

type MemorySourceTestSuite struct {
	suite.Suite
	source *MemorySource
}

func TestMemorySourceSuite(t *testing.T) {
	suite.Run(t, new(MemorySourceTestSuite))
}

func (suite *MemorySourceTestSuite) SetupTest() {
	suite.source = NewMemorySource(
		testSeries("MSFT", 5),
		testSeries("AAPL", 3),
	)
}

func (suite *MemorySourceTestSuite) TestSymbolsSorted() {
	symbols, err := suite.source.Symbols()
	suite.NoError(err)
	suite.Equal([]string{"AAPL", "MSFT"}, symbols)
}

func (suite *MemorySourceTestSuite) TestGetBarSeries() {
	series, err := suite.source.GetBarSeries("AAPL")
	suite.NoError(err)
	suite.Equal("AAPL", series.Symbol)
	suite.Equal(3, series.Len())
}

func (suite *MemorySourceTestSuite) TestUnknownSymbolIsError() {
	_, err := suite.source.GetBarSeries("TSLA")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *MemorySourceTestSuite) TestCount() {
	count, err := suite.source.Count()
	suite.NoError(err)
	suite.Equal(8, count)
}

func (suite *MemorySourceTestSuite) TestLaterSeriesReplacesEarlier() {
	source := NewMemorySource(testSeries("AAPL", 3), testSeries("AAPL", 7))

	series, err := source.GetBarSeries("AAPL")
	suite.NoError(err)
	suite.Equal(7, series.Len())

	count, err := source.Count()
	suite.NoError(err)
	suite.Equal(7, count)
}
