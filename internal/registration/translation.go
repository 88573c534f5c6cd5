package registration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/image-registration-mcp/internal/raster"
)

// Displacement is the offset, in pixels, that aligns a source raster onto a
// target raster.
type Displacement struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// LengthSquared returns DX² + DY².
func (d Displacement) LengthSquared() float64 {
	return d.DX*d.DX + d.DY*d.DY
}

// Rounded returns the displacement rounded to whole pixels.
func (d Displacement) Rounded() (int, int) {
	return int(math.Round(d.DX)), int(math.Round(d.DY))
}

// String implements fmt.Stringer.
func (d Displacement) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", d.DX, d.DY)
}

// FindTranslation estimates the whole-pixel displacement that aligns channel
// sourceChannel of source onto channel targetChannel of target.
//
// Both rasters must have identical size; no resizing is attempted
// (ErrUnsupportedSize). The argmax of the correlation surface is taken over
// the whole surface, ties going to the lowest index. Its position is
// converted to a signed circular shift and negated.
//
// # Example
//
// If source is target shifted right by 5 pixels, the result is (-5, 0).
func FindTranslation(source *raster.Image, sourceChannel int, target *raster.Image, targetChannel int) (Displacement, error) {
	if err := checkChannel(source, "source", sourceChannel); err != nil {
		return Displacement{}, err
	}
	if err := checkChannel(target, "target", targetChannel); err != nil {
		return Displacement{}, err
	}
	if !source.SameSize(target) {
		return Displacement{}, fmt.Errorf("%w: translation between %dx%d and %dx%d",
			ErrUnsupportedSize, source.Width, source.Height, target.Width, target.Height)
	}

	w, h := source.Width, source.Height
	corr, err := Correlate(source.Channel(sourceChannel), target.Channel(targetChannel), w, h)
	if err != nil {
		return Displacement{}, err
	}

	idx := floats.MaxIdx(corr)
	col := wrapIndex(idx%w, w)
	row := wrapIndex(idx/w, h)

	return Displacement{DX: float64(-col), DY: float64(-row)}, nil
}

// CorrectTranslation estimates the displacement of img against reference,
// averaged over the selected channel (or every channel for AllChannels),
// and applies it to all channels of img with the canvas size preserved.
//
// The second result reports whether img was changed. When the squared
// length of the averaged displacement does not exceed 0.001, img itself is
// returned with false.
func (r *Registrar) CorrectTranslation(img, reference *raster.Image, channel int) (*raster.Image, bool, error) {
	out, _, changed, err := r.CorrectTranslationFrom(img, img, reference, channel)
	return out, changed, err
}

// CorrectTranslationFrom is CorrectTranslation with the estimate taken from
// a separate raster: estimate is compared with reference, and the resulting
// displacement is applied to img. estimate must have the size of img; it is
// usually a derived view of img, such as its luminance.
//
// The estimated displacement is returned whether or not it was applied.
func (r *Registrar) CorrectTranslationFrom(img, estimate, reference *raster.Image, channel int) (*raster.Image, Displacement, bool, error) {
	if err := checkDerived(img, estimate); err != nil {
		return nil, Displacement{}, false, err
	}
	d, err := r.EstimateTranslation(estimate, reference, channel)
	if err != nil {
		return nil, Displacement{}, false, err
	}
	if !NeedsTranslation(d) {
		return img, d, false, nil
	}

	out, err := ApplyTranslation(img, AllChannels, d, true)
	if err != nil {
		return nil, Displacement{}, false, err
	}
	return out, d, true, nil
}

// EstimateTranslation returns the displacement of img against reference
// averaged over the selected channel, or over every channel for AllChannels.
// Channel c of img is always compared with channel c of reference.
func (r *Registrar) EstimateTranslation(img, reference *raster.Image, channel int) (Displacement, error) {
	lo, hi, err := channelRange(img, channel)
	if err != nil {
		return Displacement{}, err
	}

	dx := make([]float64, hi-lo)
	dy := make([]float64, hi-lo)
	err = r.forEachChannel(lo, hi, func(c int) error {
		d, err := FindTranslation(img, c, reference, c)
		if err != nil {
			return err
		}
		dx[c-lo], dy[c-lo] = d.DX, d.DY
		return nil
	})
	if err != nil {
		return Displacement{}, err
	}

	return Displacement{DX: mean(dx), DY: mean(dy)}, nil
}

// NeedsTranslation reports whether d is large enough to be applied: its
// squared length must exceed 0.001.
func NeedsTranslation(d Displacement) bool {
	return d.LengthSquared() > translationThreshold
}

// wrapIndex converts a circular FFT index into a signed shift.
func wrapIndex(i, size int) int {
	if i > size/2 {
		return i - size
	}
	return i
}
