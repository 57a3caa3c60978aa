// Package raster provides the scalar-lightness pixel grid the groove
// estimators and the spiral sampler read from. It reduces a decoded
// color image to one lightness value per pixel so that all downstream
// thresholding works on a single channel.
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// HighlightLightness is the lightness value painted onto overlay pixels
// visited by the spiral sampler.
const HighlightLightness = 255

// Image is an addressable 2-D grid of lightness values in the 0-255 range.
// Dimensions are fixed at creation time.
type Image struct {
	width  int
	height int
	pix    []uint8
}

// New creates a blank raster of the given dimensions with every pixel at
// lightness zero.
func New(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

// FromImage converts a decoded image into a lightness raster.
//
// Lightness is the HSL lightness of the pixel: the mean of the largest
// and smallest color components. This keeps the value independent of hue,
// so a scan of a colored disc thresholds the same way a grayscale scan does.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	m := New(bounds.Dx(), bounds.Dy())

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			m.pix[y*m.width+x] = lightness(r, g, b)
		}
	}

	return m
}

// Load reads and decodes an image file into a lightness raster.
// JPEG, PNG, BMP and TIFF inputs are accepted.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %v", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %v", path, err)
	}

	return FromImage(img), nil
}

// Width returns the raster width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the raster height in pixels.
func (m *Image) Height() int {
	return m.height
}

// Lightness returns the lightness value at the given coordinate.
// Coordinates must be in bounds: the grid is flat-indexed, so an
// out-of-range x reads from an adjacent row rather than failing.
func (m *Image) Lightness(x, y int) int {
	return int(m.pix[y*m.width+x])
}

// SetLightness overwrites the lightness value at the given coordinate.
func (m *Image) SetLightness(x, y, value int) {
	m.pix[y*m.width+x] = uint8(value)
}

// Highlight marks the given coordinate with the overlay highlight value.
func (m *Image) Highlight(x, y int) {
	m.pix[y*m.width+x] = HighlightLightness
}

// Clone returns an independent copy of the raster. The spiral sampler
// paints visited pixels onto a clone so the source stays untouched.
func (m *Image) Clone() *Image {
	c := New(m.width, m.height)
	copy(c.pix, m.pix)
	return c
}

// Gray converts the raster to a stdlib grayscale image for encoding.
func (m *Image) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			img.SetGray(x, y, color.Gray{Y: m.pix[y*m.width+x]})
		}
	}
	return img
}

// lightness reduces 16-bit color components to an 8-bit HSL lightness.
func lightness(r, g, b uint32) uint8 {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}

	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}

	return uint8(((max + min) / 2) >> 8)
}
