package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/channel"
	"github.com/lucasb-eyer/go-colorful"
)

// FromImage converts a decoded image into a raster.
//
// Grayscale images (*image.Gray, *image.Gray16) produce a single channel.
// Everything else produces three channels in R, G, B order; alpha is
// dropped. Samples are 8-bit values (0-255).
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		r := &Image{Width: width, Height: height, Channels: [][]float64{make([]float64, width*height)}}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				g := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
				r.Channels[0][y*width+x] = float64(g.Y)
			}
		}
		return r
	}

	r := &Image{Width: width, Height: height, Channels: make([][]float64, 3)}
	for c, ch := range []channel.Channel{channel.Red, channel.Green, channel.Blue} {
		r.Channels[c] = grayPlane(channel.Extract(img, ch), width, height)
	}
	return r
}

// LuminanceFromImage converts a decoded image into a single-channel raster
// holding CIE L* lightness scaled to 0-255.
//
// Registering on lightness is less sensitive to colour casts between frames
// than registering on a single RGB plane.
func LuminanceFromImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	plane := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				// fully transparent
				continue
			}
			l, _, _ := c.Lab()
			plane[y*width+x] = clamp8(l * 255)
		}
	}
	return &Image{Width: width, Height: height, Channels: [][]float64{plane}}
}

// ToImage renders the raster as an 8-bit image.
//
// A single channel yields *image.Gray. Two or more channels yield an opaque
// *image.NRGBA built from the first three planes (missing planes are black).
// Samples are rounded and clamped to 0-255.
func (img *Image) ToImage() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)

	if len(img.Channels) == 1 {
		out := image.NewGray(rect)
		for i, v := range img.Channels[0] {
			out.Pix[(i/img.Width)*out.Stride+i%img.Width] = uint8(clamp8(v))
		}
		return out
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			off := y*out.Stride + x*4
			for c := 0; c < 3 && c < len(img.Channels); c++ {
				out.Pix[off+c] = uint8(clamp8(img.Channels[c][y*img.Width+x]))
			}
			out.Pix[off+3] = 255
		}
	}
	return out
}

// grayPlane copies a bild channel extraction into a float plane.
func grayPlane(g *image.Gray, width, height int) []float64 {
	b := g.Bounds()
	plane := make([]float64, width*height)
	for y := 0; y < height && y < b.Dy(); y++ {
		for x := 0; x < width && x < b.Dx(); x++ {
			plane[y*width+x] = float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
	}
	return plane
}

// clamp8 rounds v and clamps it into the 8-bit range.
func clamp8(v float64) float64 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
