package registration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/image-registration-mcp/internal/raster"
)

// FindRotation estimates the angle, in radians, that aligns channel
// sourceChannel of source onto channel targetChannel of target.
//
// Both planes are resampled into log-polar space around their own midpoint
// and correlated. The argmax is searched only in the first half of the
// flattened correlation surface (the inner half of the radial rings); the
// winning column is wrapped into a signed sector count and converted to
// −column·2π/SizeTheta. The resolution of the answer is one angular sector.
//
// When the rasters differ in size, previous must carry the translation that
// was applied to source beforehand: target is then re-framed to the size of
// source, anchored on the left when previous.DX > 0 and on the right when it
// is negative (same rule for DY, top and bottom). An axis with no recorded
// displacement has no defined edge; this implementation centres it.
// Without previous a size mismatch fails with ErrUnsupportedSize.
func (r *Registrar) FindRotation(source *raster.Image, sourceChannel int, target *raster.Image, targetChannel int, previous *Displacement) (float64, error) {
	if err := checkChannel(source, "source", sourceChannel); err != nil {
		return 0, err
	}
	if err := checkChannel(target, "target", targetChannel); err != nil {
		return 0, err
	}

	if !source.SameSize(target) {
		if previous == nil {
			return 0, fmt.Errorf("%w: rotation between %dx%d and %dx%d without a previous displacement",
				ErrUnsupportedSize, source.Width, source.Height, target.Width, target.Height)
		}
		resized, err := target.ResizeCanvas(source.Width, source.Height, anchorFor(previous.DX), anchorFor(previous.DY))
		if err != nil {
			return 0, err
		}
		target = resized
	}

	sizeTheta, sizeRho := r.opts.SizeTheta, r.opts.SizeRho
	a, err := logPolarCentred(source.Channel(sourceChannel), source.Width, source.Height, sizeTheta, sizeRho)
	if err != nil {
		return 0, err
	}
	b, err := logPolarCentred(target.Channel(targetChannel), target.Width, target.Height, sizeTheta, sizeRho)
	if err != nil {
		return 0, err
	}

	corr, err := Correlate(a, b, sizeTheta, sizeRho)
	if err != nil {
		return 0, err
	}

	col := wrapIndex(halfArgmax(corr)%sizeTheta, sizeTheta)
	return float64(-col) * 2 * math.Pi / float64(sizeTheta), nil
}

// CorrectRotation estimates the angle of img against reference, averaged
// over the selected channel (or every channel for AllChannels), and rotates
// all channels of img by it with the canvas size preserved.
//
// The second result reports whether img was changed; angles whose magnitude
// does not exceed 0.001 rad leave img untouched.
func (r *Registrar) CorrectRotation(img, reference *raster.Image, channel int) (*raster.Image, bool, error) {
	out, _, changed, err := r.CorrectRotationFrom(img, img, reference, channel)
	return out, changed, err
}

// CorrectRotationFrom is the rotation counterpart of CorrectTranslationFrom.
func (r *Registrar) CorrectRotationFrom(img, estimate, reference *raster.Image, channel int) (*raster.Image, float64, bool, error) {
	if err := checkDerived(img, estimate); err != nil {
		return nil, 0, false, err
	}
	angle, err := r.EstimateRotation(estimate, reference, channel, nil)
	if err != nil {
		return nil, 0, false, err
	}
	if !NeedsRotation(angle) {
		return img, angle, false, nil
	}

	out, err := ApplyRotation(img, AllChannels, angle, true)
	if err != nil {
		return nil, 0, false, err
	}
	return out, angle, true, nil
}

// EstimateRotation is the rotation counterpart of EstimateTranslation;
// previous is passed through to FindRotation.
func (r *Registrar) EstimateRotation(img, reference *raster.Image, channel int, previous *Displacement) (float64, error) {
	lo, hi, err := channelRange(img, channel)
	if err != nil {
		return 0, err
	}

	angles := make([]float64, hi-lo)
	err = r.forEachChannel(lo, hi, func(c int) error {
		a, err := r.FindRotation(img, c, reference, c, previous)
		if err != nil {
			return err
		}
		angles[c-lo] = a
		return nil
	})
	if err != nil {
		return 0, err
	}
	return mean(angles), nil
}

// NeedsRotation reports whether angle is large enough to be applied: its
// magnitude must exceed 0.001 rad.
func NeedsRotation(angle float64) bool {
	return math.Abs(angle) > rotationThreshold
}

// halfArgmax returns the index of the maximum within the first half of corr.
// Peaks in the outer half of the radial rings are never considered.
func halfArgmax(corr []float64) int {
	half := len(corr) / 2
	if half == 0 {
		half = len(corr)
	}
	return floats.MaxIdx(corr[:half])
}

// anchorFor maps the sign of one displacement axis to the edge the target
// stays attached to when it is re-framed. Zero is not covered by the sign
// rule and falls back to the centre.
func anchorFor(v float64) raster.Align {
	switch {
	case v > 0:
		return raster.AlignStart
	case v < 0:
		return raster.AlignEnd
	default:
		return raster.AlignCenter
	}
}
