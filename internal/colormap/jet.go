// Package colormap holds the jet false-colour table and applies it to
// normalized grids.
//
// The table is built the same way as the classic 256-entry "jet" lookup
// table: each channel is a piecewise-linear function over a handful of
// anchors, sampled at 256 evenly spaced points and clipped to [0,1]. A
// normalized value v selects entry floor(v*256) (v == 1 selects the last
// entry) and each channel is truncated to a byte after scaling by 255.
package colormap

import "math"

// Size is the number of entries in the lookup table.
const Size = 256

type anchor struct{ x, y float64 }

// Channel anchors for jet, blue -> cyan -> green -> yellow -> red.
var (
	jetRed = []anchor{
		{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5},
	}
	jetGreen = []anchor{
		{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0},
	}
	jetBlue = []anchor{
		{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0},
	}
)

var (
	levels [Size][3]float64 // channel intensities in [0,1]
	table  [Size][3]uint8
)

func init() {
	for c, anchors := range [3][]anchor{jetRed, jetGreen, jetBlue} {
		for i, v := range sample(anchors, Size) {
			levels[i][c] = v
			table[i][c] = uint8(v * 255)
		}
	}
}

// sample evaluates the piecewise-linear function through anchors at n
// evenly spaced points. Positions are worked in table units (0..n-1) so the
// breakpoints fall where the reference table puts them.
func sample(anchors []anchor, n int) []float64 {
	out := make([]float64, n)
	out[0] = anchors[0].y
	out[n-1] = anchors[len(anchors)-1].y

	last := float64(n - 1)
	step := 1.0 / last
	xs := make([]float64, len(anchors))
	for i, a := range anchors {
		xs[i] = a.x * last
	}

	for i := 1; i < n-1; i++ {
		x := last * (float64(i) * step)
		k := 1
		for k < len(xs)-1 && xs[k] < x {
			k++
		}
		lo, hi := anchors[k-1], anchors[k]
		d := (x - xs[k-1]) / (xs[k] - xs[k-1])
		// Explicit conversion keeps the multiply and add separately rounded.
		v := float64(d*(hi.y-lo.y)) + lo.y
		out[i] = math.Max(0, math.Min(1, v))
	}
	return out
}

// Index returns the table entry for a normalized value. Values outside
// [0,1] clamp to the ends; NaN selects entry 0.
func Index(v float32) int {
	if v != v {
		return 0
	}
	x := v * Size
	if x == Size {
		return Size - 1
	}
	if x < 0 {
		return 0
	}
	if x >= Size {
		return Size - 1
	}
	return int(x)
}

// RGB returns the jet colour for a normalized value.
func RGB(v float32) (r, g, b uint8) {
	e := table[Index(v)]
	return e[0], e[1], e[2]
}

// Table returns a copy of the byte lookup table.
func Table() [Size][3]uint8 { return table }
