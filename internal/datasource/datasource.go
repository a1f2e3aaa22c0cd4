// Package datasource loads daily bar history for the screener. The DuckDB
// source reads CSV or Parquet files through a SQL view; the memory source
// backs tests and programmatic use.
package datasource

import (
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Source provides per-symbol daily bar history.
type Source interface {
	// Symbols lists every symbol the source can serve, sorted ascending.
	Symbols() ([]string, error)
	// GetBarSeries returns the full daily history for one symbol in
	// ascending date order. Unknown symbols are an error, not an empty
	// series.
	GetBarSeries(symbol string) (types.BarSeries, error)
	// Count returns the total number of bars across all symbols.
	Count() (int, error)
	// Close releases the underlying resources.
	Close() error
}
