// Package frame provides a small labelled table of float64 cells, enough to
// reshape provider statements (transpose, inner join, column selection and
// dropping incomplete rows). Missing cells hold NaN.
package frame

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownColumn is returned when a column lookup misses.
	ErrUnknownColumn = errors.New("frame: unknown column")
	// ErrUnknownRow is returned when a row lookup misses.
	ErrUnknownRow = errors.New("frame: unknown row")
	// ErrOverlappingColumns is returned by Join when both sides share a column name.
	ErrOverlappingColumns = errors.New("frame: overlapping columns")
)

// Frame is a row-major table with string row and column labels.
type Frame struct {
	index   []string
	columns []string
	rowPos  map[string]int
	colPos  map[string]int
	data    [][]float64
}

// New creates a frame with the given labels and every cell missing.
// Duplicate labels are collapsed, keeping the first occurrence.
func New(index, columns []string) *Frame {
	f := &Frame{
		rowPos: make(map[string]int, len(index)),
		colPos: make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, ok := f.colPos[c]; ok {
			continue
		}
		f.colPos[c] = len(f.columns)
		f.columns = append(f.columns, c)
	}
	for _, r := range index {
		if _, ok := f.rowPos[r]; ok {
			continue
		}
		f.rowPos[r] = len(f.index)
		f.index = append(f.index, r)
		f.data = append(f.data, nanRow(len(f.columns)))
	}
	return f
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}

// Index returns a copy of the row labels in order.
func (f *Frame) Index() []string { return append([]string(nil), f.index...) }

// Columns returns a copy of the column labels in order.
func (f *Frame) Columns() []string { return append([]string(nil), f.columns...) }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// HasColumn reports whether the column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colPos[name]
	return ok
}

// Set stores a value in an existing cell.
func (f *Frame) Set(row, col string, v float64) error {
	r, ok := f.rowPos[row]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRow, row)
	}
	c, ok := f.colPos[col]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	f.data[r][c] = v
	return nil
}

// At returns the cell value and whether it is present (known and not NaN).
func (f *Frame) At(row, col string) (float64, bool) {
	r, ok := f.rowPos[row]
	if !ok {
		return math.NaN(), false
	}
	c, ok := f.colPos[col]
	if !ok {
		return math.NaN(), false
	}
	v := f.data[r][c]
	return v, !math.IsNaN(v)
}

// Column returns a copy of a column's values in row order.
func (f *Frame) Column(name string) ([]float64, error) {
	c, ok := f.colPos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(f.index))
	for i, row := range f.data {
		out[i] = row[c]
	}
	return out, nil
}

// Transpose swaps rows and columns.
func (f *Frame) Transpose() *Frame {
	t := New(f.columns, f.index)
	for r := range f.index {
		for c := range f.columns {
			t.data[c][r] = f.data[r][c]
		}
	}
	return t
}

// Join performs an inner join on the row index: the result keeps the rows
// present in both frames, in f's order, with f's columns followed by other's.
func (f *Frame) Join(other *Frame) (*Frame, error) {
	for _, c := range other.columns {
		if f.HasColumn(c) {
			return nil, fmt.Errorf("%w: %q", ErrOverlappingColumns, c)
		}
	}

	var index []string
	for _, r := range f.index {
		if _, ok := other.rowPos[r]; ok {
			index = append(index, r)
		}
	}

	columns := append(f.Columns(), other.columns...)
	out := New(index, columns)
	for i, r := range out.index {
		left := f.data[f.rowPos[r]]
		right := other.data[other.rowPos[r]]
		copy(out.data[i], left)
		copy(out.data[i][len(left):], right)
	}
	return out, nil
}

// Select returns a frame holding only the named columns, in the given order.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	pos := make([]int, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	var unique []string
	for _, c := range cols {
		p, ok := f.colPos[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
		pos = append(pos, p)
	}
	cols = unique
	out := New(f.index, cols)
	for r := range out.index {
		for i, p := range pos {
			out.data[r][i] = f.data[r][p]
		}
	}
	return out, nil
}

// DropNA returns a frame without the rows that have any missing cell.
func (f *Frame) DropNA() *Frame {
	var index []string
	for r, row := range f.data {
		if !floats.HasNaN(row) {
			index = append(index, f.index[r])
		}
	}
	out := New(index, f.columns)
	for i, r := range out.index {
		copy(out.data[i], f.data[f.rowPos[r]])
	}
	return out
}
