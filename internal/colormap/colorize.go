package colormap

import (
	"github.com/OtaniMakoto/CSV2img/internal/grid"
	"github.com/OtaniMakoto/CSV2img/internal/ir"
)

// Colorize maps every cell of n through the jet table. Grid row 0 becomes
// the top row of the image and grid columns run left to right.
func Colorize(n *grid.Normalized) *ir.RGBImage {
	img := ir.NewRGBImage(n.Cols, n.Rows)
	for i, v := range n.Values {
		e := table[Index(v)]
		copy(img.Pixels[i*3:i*3+3], e[:])
	}
	return img
}
