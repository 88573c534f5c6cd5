package registration

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// Correlate computes the circular cross-correlation of two equal-sized real
// planes of width x height:
//
//	corr = IFFT2(FFT2(a) · conj(FFT2(b)))
//
// The cross-power spectrum is not normalized by its magnitude, so this is
// plain cross-correlation rather than phase correlation. The inverse
// transform carries the 1/(width*height) scaling, and only the real part is
// returned.
//
// The peak of corr sits at the circular shift d for which a(p) ≈ b(p - d).
func Correlate(a, b []float64, width, height int) ([]float64, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: correlation size %dx%d", ErrInvalidArgument, width, height)
	}
	n := width * height
	if len(a) != n || len(b) != n {
		return nil, fmt.Errorf("%w: buffers of length %d and %d for a %dx%d surface",
			ErrInvalidArgument, len(a), len(b), width, height)
	}

	fa := fft.FFT2Real(rows(a, width, height))
	fb := fft.FFT2Real(rows(b, width, height))

	for y := range fa {
		for x := range fa[y] {
			v := fb[y][x]
			fa[y][x] *= complex(real(v), -imag(v))
		}
	}

	inv := fft.IFFT2(fa)

	corr := make([]float64, n)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			corr[y*width+x] = real(inv[y][x])
		}
	}
	return corr, nil
}

// rows views a row-major plane as a slice of rows without copying.
func rows(plane []float64, width, height int) [][]float64 {
	out := make([][]float64, height)
	for y := range out {
		out[y] = plane[y*width : (y+1)*width]
	}
	return out
}
