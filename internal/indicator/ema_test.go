package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestEMASeededWithFirstValue() {
	values := []float64{2, 4, 8}

	col, err := EMA(values, 3)
	suite.NoError(err)

	// alpha = 2/(3+1) = 0.5
	suite.InDelta(2.0, col[0], 1e-9)
	suite.InDelta(3.0, col[1], 1e-9)
	suite.InDelta(5.5, col[2], 1e-9)
}

func (suite *EMATestSuite) TestEMADefinedFromFirstBar() {
	col, err := EMA([]float64{1, 2, 3, 4}, 20)
	suite.NoError(err)

	for i := range col {
		suite.True(col.Defined(i))
	}
}

func (suite *EMATestSuite) TestEMAPeriodOneEqualsInput() {
	// With period 1 the smoothing factor is 1, so the EMA tracks the
	// input exactly on every bar.
	values := []float64{3.5, 7.25, 1.0, 9.9, 4.2}

	col, err := EMA(values, 1)
	suite.NoError(err)

	for i, v := range values {
		suite.InDelta(v, col[i], 1e-9)
	}
}

func (suite *EMATestSuite) TestEMAConstantSeries() {
	values := []float64{5, 5, 5, 5, 5}

	col, err := EMA(values, 3)
	suite.NoError(err)

	for i := range col {
		suite.InDelta(5.0, col[i], 1e-9)
	}
}

func (suite *EMATestSuite) TestEMAEmptyInput() {
	col, err := EMA(nil, 10)
	suite.NoError(err)
	suite.Len(col, 0)
}

func (suite *EMATestSuite) TestEMAInvalidPeriod() {
	_, err := EMA([]float64{1, 2}, 0)
	suite.Error(err)
}
