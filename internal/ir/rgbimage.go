package ir

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
)

// RGBImage is the intermediate representation passed between the colorizer
// and the JPEG encoder. Pixels are stored as interleaved R,G,B bytes
// (3 bytes per pixel, row-major order, row 0 at the top).
type RGBImage struct {
	Width  int
	Height int
	Pixels []byte // len = Width * Height * 3
}

// NewRGBImage returns a black image of the given size.
func NewRGBImage(width, height int) *RGBImage {
	return &RGBImage{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*3),
	}
}

// RGBAt returns the channels of the pixel at column x, row y.
func (m *RGBImage) RGBAt(x, y int) (r, g, b uint8) {
	i := (y*m.Width + x) * 3
	return m.Pixels[i], m.Pixels[i+1], m.Pixels[i+2]
}

// SetRGB sets the pixel at column x, row y.
func (m *RGBImage) SetRGB(x, y int, r, g, b uint8) {
	i := (y*m.Width + x) * 3
	m.Pixels[i], m.Pixels[i+1], m.Pixels[i+2] = r, g, b
}

// ColorModel implements image.Image.
func (m *RGBImage) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *RGBImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image.
func (m *RGBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := m.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ToRGBA copies m into an opaque *image.RGBA.
func (m *RGBImage) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(m.Bounds())
	for i, j := 0, 0; i < len(m.Pixels); i, j = i+3, j+4 {
		dst.Pix[j] = m.Pixels[i]
		dst.Pix[j+1] = m.Pixels[i+1]
		dst.Pix[j+2] = m.Pixels[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}

// FromImage flattens any image into an RGBImage, dropping alpha.
func FromImage(src image.Image) *RGBImage {
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}

	out := NewRGBImage(b.Dx(), b.Dy())
	for y := 0; y < out.Height; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < out.Width; x++ {
			out.SetRGB(x, y, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}

// Scale enlarges m by an integer factor using nearest-neighbour sampling so
// every grid cell becomes a factor x factor block. A factor of 1 returns m.
func Scale(m *RGBImage, factor int) (*RGBImage, error) {
	if factor < 1 {
		return nil, fmt.Errorf("scale factor must be >= 1, got %d", factor)
	}
	if factor == 1 {
		return m, nil
	}
	w, h := m.Width*factor, m.Height*factor
	scaled := resize.Resize(uint(w), uint(h), m.ToRGBA(), resize.NearestNeighbor)
	return FromImage(scaled), nil
}
