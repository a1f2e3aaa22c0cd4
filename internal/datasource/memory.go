package datasource

import (
	"sort"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// MemorySource serves bar series held in memory.
type MemorySource struct {
	series map[string]types.BarSeries
}

// NewMemorySource builds a source over the given series, keyed by symbol.
// A later series with the same symbol replaces an earlier one.
func NewMemorySource(series ...types.BarSeries) *MemorySource {
	bySymbol := make(map[string]types.BarSeries, len(series))
	for _, s := range series {
		bySymbol[s.Symbol] = s
	}

	return &MemorySource{series: bySymbol}
}

// Symbols implements Source.
func (m *MemorySource) Symbols() ([]string, error) {
	symbols := make([]string, 0, len(m.series))
	for symbol := range m.series {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols, nil
}

// GetBarSeries implements Source.
func (m *MemorySource) GetBarSeries(symbol string) (types.BarSeries, error) {
	series, ok := m.series[symbol]
	if !ok {
		return types.BarSeries{}, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for %s", symbol)
	}

	return series, nil
}

// Count implements Source.
func (m *MemorySource) Count() (int, error) {
	total := 0
	for _, series := range m.series {
		total += series.Len()
	}

	return total, nil
}

// Close implements Source.
func (m *MemorySource) Close() error {
	return nil
}
