// Package registration estimates and corrects rigid misalignment between two
// rasters, typically successive frames of the same camera field.
//
// Translation is found by FFT cross-correlation: the argmax of
// IFFT(FFT(a)·conj(FFT(b))) is the circular shift between the two planes.
// Rotation is found the same way after resampling both planes into
// log-polar space, where a rotation about the image centre becomes a shift
// along the angle axis.
//
// # Sign Conventions
//
// FindTranslation(source, target) returns the Displacement that, applied to
// source with ApplyTranslation, aligns it onto target. FindRotation returns
// the angle that, applied to source with ApplyRotation, aligns it onto
// target. Positive angles turn content from +X toward +Y.
//
// # Thresholds
//
// Corrections below a fixed threshold are treated as already aligned: a
// displacement whose squared length does not exceed 0.001, or an angle whose
// magnitude does not exceed 0.001 rad. This is not an error; the input raster
// is returned unchanged.
//
// # Errors
//
// Precondition failures wrap ErrInvalidArgument (nil rasters, bad channel
// indices, bad resolutions) or ErrUnsupportedSize (mismatched sizes with no
// resizing path). Test with errors.Is.
//
// # Concurrency
//
// All functions are stateless. A Registrar only holds immutable options and
// is safe for concurrent use.
package registration
