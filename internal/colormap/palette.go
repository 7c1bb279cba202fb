package colormap

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

var _ palette.ColorMap = (*Jet)(nil)

// Jet exposes the jet table as a gonum/plot palette.ColorMap so the same
// colours can be used by plot.HeatMap and friends. Values between Min and
// Max are mapped linearly onto the table.
type Jet struct {
	min, max float64
	alpha    float64
}

// NewJet returns a Jet colour map over [0,1] with full opacity.
func NewJet() *Jet {
	return &Jet{min: 0, max: 1, alpha: 1}
}

// At returns the colour for v. It returns palette.ErrNaN, ErrUnderflow or
// ErrOverflow for NaN or values outside [Min, Max].
func (j *Jet) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < j.min:
		return nil, palette.ErrUnderflow
	case v > j.max:
		return nil, palette.ErrOverflow
	}

	var t float64
	if j.max > j.min {
		t = (v - j.min) / (j.max - j.min)
	}
	r, g, b := RGB(float32(t))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(j.alpha * 255))}, nil
}

func (j *Jet) Max() float64       { return j.max }
func (j *Jet) SetMax(v float64)   { j.max = v }
func (j *Jet) Min() float64       { return j.min }
func (j *Jet) SetMin(v float64)   { j.min = v }
func (j *Jet) Alpha() float64     { return j.alpha }
func (j *Jet) SetAlpha(a float64) { j.alpha = math.Max(0, math.Min(1, a)) }

// Palette samples n evenly spaced colours from Min to Max.
func (j *Jet) Palette(n int) palette.Palette {
	cols := make(colors, n)
	for i := range cols {
		v := j.min
		if n > 1 {
			v = j.min + (j.max-j.min)*float64(i)/float64(n-1)
		}
		c, err := j.At(v)
		if err != nil {
			// Rounding can push the last sample a hair past Max.
			c, _ = j.At(j.max)
		}
		cols[i] = c
	}
	return cols
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }
