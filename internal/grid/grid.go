// Package grid loads comma-delimited numeric text into a 2-D float32 grid
// and rescales it to the unit interval.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned by Load when the input path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrParse is returned when input cannot be read as a numeric grid.
	ErrParse = errors.New("parse error")
)

// ParseError reports where a grid could not be parsed. It unwraps to ErrParse.
type ParseError struct {
	Line int // 1-based physical line, 0 when not tied to a line
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error: line %d: %s", e.Line, e.Msg)
	}
	return "parse error: " + e.Msg
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Grid is a rows x cols matrix of float32 values stored row-major.
type Grid struct {
	Rows   int
	Cols   int
	Values []float32 // len = Rows * Cols
}

// New returns a zero-filled grid.
func New(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Values: make([]float32, rows*cols)}
}

// FromRows builds a grid from equal-length rows. It panics on ragged input;
// use Parse for untrusted data.
func FromRows(rows [][]float32) *Grid {
	if len(rows) == 0 {
		return &Grid{}
	}
	g := New(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.Cols {
			panic(fmt.Sprintf("grid: row %d has %d values, want %d", r, len(row), g.Cols))
		}
		copy(g.Values[r*g.Cols:], row)
	}
	return g
}

// At returns the value at row r, column c.
func (g *Grid) At(r, c int) float32 { return g.Values[r*g.Cols+c] }

// Row returns row r as a slice sharing the grid's storage.
func (g *Grid) Row(r int) []float32 { return g.Values[r*g.Cols : (r+1)*g.Cols] }

// Normalized is a grid rescaled to [0,1]. Min and Max are the extrema the
// values were scaled against.
type Normalized struct {
	Rows   int
	Cols   int
	Values []float32
	Min    float32
	Max    float32

	// Degenerate is set when every finite value was equal; all outputs are 0.
	Degenerate bool
	// Undefined is set when the grid held no finite value; Min/Max default to 0/1.
	Undefined bool
}

// At returns the normalized value at row r, column c.
func (n *Normalized) At(r, c int) float32 { return n.Values[r*n.Cols+c] }
