package registration

import (
	"math"

	"github.com/ironsheep/image-registration-mcp/internal/raster"
)

// ApplyTranslation shifts the selected channel (or all channels) of img by
// d, rounded to whole pixels, and returns the result.
//
// A zero rounded displacement returns img itself. Otherwise the canvas grows
// to (W+|dx|) x (H+|dy|): the selected channels land at
// (max(0,dx), max(0,dy)) and any other channel at (max(0,-dx), max(0,-dy)),
// so a single channel can be moved relative to the rest (chromatic
// alignment). With preserveSize the canvas is cropped back to W x H at
// (max(0,-dx), max(0,-dy)), keeping the region the unshifted content
// occupied.
func ApplyTranslation(img *raster.Image, channel int, d Displacement, preserveSize bool) (*raster.Image, error) {
	lo, hi, err := channelRange(img, channel)
	if err != nil {
		return nil, err
	}

	dx, dy := d.Rounded()
	if dx == 0 && dy == 0 {
		return img, nil
	}

	w := img.Width + abs(dx)
	h := img.Height + abs(dy)
	out, err := raster.New(w, h, img.NumChannels())
	if err != nil {
		return nil, err
	}

	for c := range img.Channels {
		ox, oy := max(0, -dx), max(0, -dy)
		if c >= lo && c < hi {
			ox, oy = max(0, dx), max(0, dy)
		}
		raster.PastePlane(out.Channels[c], w, h, img.Channels[c], img.Width, img.Height, ox, oy)
	}

	if !preserveSize {
		return out, nil
	}
	return out.Crop(max(0, -dx), max(0, -dy), img.Width, img.Height)
}

// ApplyRotation rotates the selected channel (or all channels) of img by
// angle radians about the image centre and returns the result.
//
// Angles smaller than 0.001 rad in magnitude return img itself. Rotation
// grows each rotated plane to its bounding box.
//
// When every channel rotates (AllChannels, or a single-channel image) the
// planes share the rotated bounding box, cropped back to W x H around the
// centre with preserveSize.
//
// When one channel of several rotates:
//   - without preserveSize the canvas takes the rotated bounding box and the
//     other channels are placed uncropped in its centre
//   - with preserveSize the rotated channel is cropped to W x H around the
//     centre and the other channels are left as they are
func ApplyRotation(img *raster.Image, channel int, angle float64, preserveSize bool) (*raster.Image, error) {
	if _, _, err := channelRange(img, channel); err != nil {
		return nil, err
	}
	if math.Abs(angle) < rotationThreshold {
		return img, nil
	}

	w, h := img.Width, img.Height

	if channel == AllChannels || img.NumChannels() == 1 {
		planes := make([][]float64, img.NumChannels())
		var rw, rh int
		for c, p := range img.Channels {
			planes[c], rw, rh = raster.RotatePlane(p, w, h, angle)
		}
		if !preserveSize {
			return &raster.Image{Width: rw, Height: rh, Channels: planes}, nil
		}
		for c := range planes {
			planes[c] = centred(planes[c], rw, rh, w, h)
		}
		return &raster.Image{Width: w, Height: h, Channels: planes}, nil
	}

	rotated, rw, rh := raster.RotatePlane(img.Channel(channel), w, h, angle)

	if preserveSize {
		out := img.Clone()
		out.Channels[channel] = centred(rotated, rw, rh, w, h)
		return out, nil
	}

	out := &raster.Image{Width: rw, Height: rh, Channels: make([][]float64, img.NumChannels())}
	for c, p := range img.Channels {
		if c == channel {
			out.Channels[c] = rotated
			continue
		}
		out.Channels[c] = centred(p, w, h, rw, rh)
	}
	return out, nil
}

// centred places a sw x sh plane in the middle of a dw x dh plane, padding or
// cutting evenly on both sides.
func centred(src []float64, sw, sh, dw, dh int) []float64 {
	dst := make([]float64, dw*dh)
	raster.PastePlane(dst, dw, dh, src, sw, sh, (dw-sw)/2, (dh-sh)/2)
	return dst
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
