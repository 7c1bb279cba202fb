package grid

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the value distribution of a grid.
type Summary struct {
	Rows      int
	Cols      int
	Finite    int // cells holding a finite value
	NonFinite int // NaN or ±Inf cells
	Zeros     int // cells equal to 0, including filled-in blanks
	Min       float64
	Max       float64
	Mean      float64
	StdDev    float64
}

// Summarize computes statistics over the finite cells of g. When g has no
// finite cell only the counts are populated.
func Summarize(g *Grid) Summary {
	s := Summary{Rows: g.Rows, Cols: g.Cols}

	finite := make([]float64, 0, len(g.Values))
	for _, v := range g.Values {
		if !isFinite(v) {
			s.NonFinite++
			continue
		}
		if v == 0 {
			s.Zeros++
		}
		finite = append(finite, float64(v))
	}
	s.Finite = len(finite)
	if s.Finite == 0 {
		return s
	}

	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	if s.Finite > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)
	} else {
		s.Mean = finite[0]
	}
	return s
}
