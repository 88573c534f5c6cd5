package raster

import "fmt"

// Align selects which edge of a canvas content stays attached to when the
// canvas changes size.
type Align int

const (
	// AlignStart keeps content on the left (X) or top (Y) edge.
	AlignStart Align = iota
	// AlignCenter keeps content centred.
	AlignCenter
	// AlignEnd keeps content on the right (X) or bottom (Y) edge.
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// offset returns where content of size src lands on a canvas of size dst.
// Negative offsets mean content is cut on the leading edge.
func (a Align) offset(src, dst int) int {
	switch a {
	case AlignCenter:
		return (dst - src) / 2
	case AlignEnd:
		return dst - src
	default:
		return 0
	}
}

// ResizeCanvas returns a copy of img on a canvas of width x height.
//
// Content is not resampled: it keeps its pixel size and is anchored
// according to alignX and alignY. Growing the canvas pads with zeros,
// shrinking it cuts the side opposite the anchor.
func (img *Image) ResizeCanvas(width, height int, alignX, alignY Align) (*Image, error) {
	out, err := New(width, height, len(img.Channels))
	if err != nil {
		return nil, err
	}

	ox := alignX.offset(img.Width, width)
	oy := alignY.offset(img.Height, height)
	for c := range img.Channels {
		PastePlane(out.Channels[c], width, height, img.Channels[c], img.Width, img.Height, ox, oy)
	}
	return out, nil
}

// Crop returns the region of width x height whose top-left corner is (x, y).
//
// The region must lie inside the raster.
func (img *Image) Crop(x, y, width, height int) (*Image, error) {
	if x < 0 || y < 0 || x+width > img.Width || y+height > img.Height {
		return nil, fmt.Errorf("%w: crop (%d,%d) %dx%d outside %dx%d",
			ErrInvalidGeometry, x, y, width, height, img.Width, img.Height)
	}
	out, err := New(width, height, len(img.Channels))
	if err != nil {
		return nil, err
	}
	for c := range img.Channels {
		out.Channels[c] = CropPlane(img.Channels[c], img.Width, x, y, width, height)
	}
	return out, nil
}

// CropPlane copies the width x height region at (x, y) out of a plane whose
// row length is stride. The caller guarantees the region fits.
func CropPlane(plane []float64, stride, x, y, width, height int) []float64 {
	out := make([]float64, width*height)
	for row := 0; row < height; row++ {
		start := (y+row)*stride + x
		copy(out[row*width:(row+1)*width], plane[start:start+width])
	}
	return out
}

// PastePlane copies src (srcW x srcH) into dst (dstW x dstH) with its
// top-left corner at (ox, oy). Parts falling outside dst are clipped.
func PastePlane(dst []float64, dstW, dstH int, src []float64, srcW, srcH int, ox, oy int) {
	x0 := max(0, -ox)
	x1 := min(srcW, dstW-ox)
	if x0 >= x1 {
		return
	}
	for y := max(0, -oy); y < srcH && y+oy < dstH; y++ {
		copy(dst[(y+oy)*dstW+x0+ox:(y+oy)*dstW+x1+ox], src[y*srcW+x0:y*srcW+x1])
	}
}
