package grid

import "math"

// Normalize rescales g to [0,1] against its own finite extrema.
//
// NaN and ±Inf cells are ignored when finding the extrema. A grid with no
// finite cells is scaled against 0 and 1; a constant grid maps to all
// zeros. Any non-finite result is folded back into range (NaN and -Inf to 0,
// +Inf to 1). g is not modified.
func Normalize(g *Grid) *Normalized {
	n := &Normalized{
		Rows:   g.Rows,
		Cols:   g.Cols,
		Values: make([]float32, len(g.Values)),
	}

	lo, hi, ok := finiteRange(g.Values)
	if !ok {
		lo, hi = 0, 1
		n.Undefined = true
	}
	n.Min, n.Max = lo, hi

	if lo == hi {
		n.Degenerate = true
		return n
	}

	span := hi - lo
	if math.IsInf(float64(span), 0) {
		// The range overflows float32; scale in float64 and narrow.
		wide := float64(hi) - float64(lo)
		for i, v := range g.Values {
			n.Values[i] = clampUnit(float32((float64(v) - float64(lo)) / wide))
		}
		return n
	}
	for i, v := range g.Values {
		n.Values[i] = clampUnit((v - lo) / span)
	}
	return n
}

// finiteRange returns the minimum and maximum finite values in vs.
// ok is false when vs holds no finite value.
func finiteRange(vs []float32) (lo, hi float32, ok bool) {
	for _, v := range vs {
		if !isFinite(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clampUnit(v float32) float32 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
