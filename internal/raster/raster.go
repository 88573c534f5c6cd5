package raster

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when a raster is created or reshaped with
// non-positive dimensions or a region that does not fit.
var ErrInvalidGeometry = errors.New("invalid raster geometry")

// Image is a multi-channel raster with one float64 plane per channel.
//
// All planes share the same Width x Height and are indexed row-major
// (offset = y*Width + x).
type Image struct {
	// Width is the raster width in pixels.
	Width int

	// Height is the raster height in pixels.
	Height int

	// Channels holds one plane per channel, each of length Width*Height.
	Channels [][]float64
}

// New allocates a zero-filled raster.
//
// Returns an error wrapping ErrInvalidGeometry if any dimension or the
// channel count is not positive.
func New(width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidGeometry, width, height)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidGeometry, channels)
	}

	planes := make([][]float64, channels)
	for c := range planes {
		planes[c] = make([]float64, width*height)
	}
	return &Image{Width: width, Height: height, Channels: planes}, nil
}

// NumChannels returns the number of planes.
func (img *Image) NumChannels() int {
	return len(img.Channels)
}

// Channel returns the plane for channel c. The slice is shared, not copied.
func (img *Image) Channel(c int) []float64 {
	return img.Channels[c]
}

// HasChannel reports whether c is a valid channel index.
func (img *Image) HasChannel(c int) bool {
	return c >= 0 && c < len(img.Channels)
}

// SameSize reports whether both rasters have identical width and height.
func (img *Image) SameSize(other *Image) bool {
	return img.Width == other.Width && img.Height == other.Height
}

// At returns the sample of channel c at (x, y).
func (img *Image) At(c, x, y int) float64 {
	return img.Channels[c][y*img.Width+x]
}

// Set stores v in channel c at (x, y).
func (img *Image) Set(c, x, y int, v float64) {
	img.Channels[c][y*img.Width+x] = v
}

// Clone returns a deep copy of the raster.
func (img *Image) Clone() *Image {
	planes := make([][]float64, len(img.Channels))
	for c, p := range img.Channels {
		planes[c] = append([]float64(nil), p...)
	}
	return &Image{Width: img.Width, Height: img.Height, Channels: planes}
}

// String implements fmt.Stringer.
func (img *Image) String() string {
	return fmt.Sprintf("raster[%dx%d, %d ch]", img.Width, img.Height, len(img.Channels))
}
