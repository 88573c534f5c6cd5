package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// RotatePlane rotates a plane about its centre by angle radians and returns
// the rotated plane with its new width and height.
//
// Positive angles turn content from +X toward +Y (clockwise on screen). The
// output canvas is the bounding box of the rotated plane, so it is usually
// larger than the input; uncovered pixels are zero.
//
// Resampling is delegated to imaging.Rotate, which works on 8-bit images:
// samples are rounded and clamped to 0-255 on the way in.
func RotatePlane(plane []float64, width, height int, angle float64) ([]float64, int, int) {
	src := image.NewGray(image.Rect(0, 0, width, height))
	for i, v := range plane {
		src.Pix[(i/width)*src.Stride+i%width] = uint8(clamp8(v))
	}

	// imaging rotates counter-clockwise on screen
	rotated := imaging.Rotate(src, -angle*180/math.Pi, color.Black)

	b := rotated.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = float64(rotated.Pix[y*rotated.Stride+x*4])
		}
	}
	return out, w, h
}
