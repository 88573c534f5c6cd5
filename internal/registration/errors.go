package registration

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-registration-mcp/internal/raster"
)

var (
	// ErrInvalidArgument marks caller precondition violations: nil rasters,
	// out-of-range channels, mismatched buffers or non-positive resolutions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedSize marks size mismatches for which no resizing path is
	// defined.
	ErrUnsupportedSize = errors.New("unsupported size")
)

// AllChannels selects every channel of a raster.
const AllChannels = -1

// checkChannel validates a single concrete channel index.
func checkChannel(img *raster.Image, name string, c int) error {
	if img == nil {
		return fmt.Errorf("%w: %s image is nil", ErrInvalidArgument, name)
	}
	if !img.HasChannel(c) {
		return fmt.Errorf("%w: %s channel %d out of range [0,%d)", ErrInvalidArgument, name, c, img.NumChannels())
	}
	return nil
}

// checkDerived validates that estimate can stand in for img when estimating
// a correction.
func checkDerived(img, estimate *raster.Image) error {
	if img == nil || estimate == nil {
		return fmt.Errorf("%w: image is nil", ErrInvalidArgument)
	}
	if !img.SameSize(estimate) {
		return fmt.Errorf("%w: estimate is %dx%d, image is %dx%d",
			ErrInvalidArgument, estimate.Width, estimate.Height, img.Width, img.Height)
	}
	return nil
}

// channelRange resolves a channel selector to the half-open range it covers.
func channelRange(img *raster.Image, c int) (int, int, error) {
	if img == nil {
		return 0, 0, fmt.Errorf("%w: image is nil", ErrInvalidArgument)
	}
	if c == AllChannels {
		return 0, img.NumChannels(), nil
	}
	if !img.HasChannel(c) {
		return 0, 0, fmt.Errorf("%w: channel %d out of range [0,%d)", ErrInvalidArgument, c, img.NumChannels())
	}
	return c, c + 1, nil
}
