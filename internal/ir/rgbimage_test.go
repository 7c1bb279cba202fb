package ir

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker() *RGBImage {
	m := NewRGBImage(2, 2)
	m.SetRGB(0, 0, 255, 0, 0)
	m.SetRGB(1, 0, 0, 255, 0)
	m.SetRGB(0, 1, 0, 0, 255)
	m.SetRGB(1, 1, 10, 20, 30)
	return m
}

func TestRGBImage_ImageInterface(t *testing.T) {
	t.Parallel()

	var img image.Image = checker()
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, img.At(1, 0))
	assert.Equal(t, color.RGBA{}, img.At(5, 5))
}

func TestRGBImage_RGBARoundTrip(t *testing.T) {
	t.Parallel()

	m := checker()
	back := FromImage(m.ToRGBA())
	assert.Equal(t, m, back)
}

func TestFromImage_OffsetBounds(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(3, 4, 5, 5))
	src.Set(3, 4, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src.Set(4, 4, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	m := FromImage(src)
	require.Equal(t, 2, m.Width)
	require.Equal(t, 1, m.Height)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, m.Pixels)
}

func TestScale(t *testing.T) {
	t.Parallel()

	m := checker()

	same, err := Scale(m, 1)
	require.NoError(t, err)
	assert.Same(t, m, same)

	big, err := Scale(m, 4)
	require.NoError(t, err)
	assert.Equal(t, 8, big.Width)
	assert.Equal(t, 8, big.Height)
	assert.Len(t, big.Pixels, 8*8*3)

	// Block interiors keep the source colour.
	r, g, b := big.RGBAt(1, 1)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = big.RGBAt(6, 6)
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})

	_, err = Scale(m, 0)
	assert.Error(t, err)
}
