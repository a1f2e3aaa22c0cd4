// Package indicator provides pure, series-oriented technical indicator
// computations. Every function maps an input slice to a Column of the same
// length; entries whose lookback window is not yet filled are undefined.
// No function mutates its input or keeps state between calls.
package indicator

import (
	"math"

	"github.com/moznion/go-optional"
)

// Column is a derived per-bar series aligned index-for-index with its
// source bar series. Undefined entries (insufficient history) are stored
// as NaN; use Defined or Value to access safely.
type Column []float64

// NewColumn returns a column of the given length with every entry undefined.
func NewColumn(n int) Column {
	c := make(Column, n)
	for i := range c {
		c[i] = math.NaN()
	}

	return c
}

// Defined reports whether the entry at i exists and holds a value.
func (c Column) Defined(i int) bool {
	return i >= 0 && i < len(c) && !math.IsNaN(c[i])
}

// Value returns the entry at i, or None when the entry is undefined or out
// of range.
func (c Column) Value(i int) optional.Option[float64] {
	if !c.Defined(i) {
		return optional.None[float64]()
	}

	return optional.Some(c[i])
}

// Last returns the final entry of the column, or None when the column is
// empty or its final entry is undefined.
func (c Column) Last() optional.Option[float64] {
	return c.Value(len(c) - 1)
}
