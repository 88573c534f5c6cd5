package registration

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// LogPolar resamples a single plane into sizeRho rings of sizeTheta angular
// sectors around (cx, cy). The result is row-major: row j is the ring at
// radius j·Δρ and column i is the angle 2π·i/sizeTheta, with
// Δρ = sqrt(cx²+cy²)/sizeRho.
//
// Row 0 is the degenerate ring at radius 0: the sample at the exact centre,
// replicated across every column. Samples come from SampleBilinear, so
// positions near or beyond the edges read as 0.
func LogPolar(plane []float64, width, height int, cx, cy float64, sizeTheta, sizeRho int) ([]float64, error) {
	if sizeTheta <= 0 || sizeRho <= 0 {
		return nil, fmt.Errorf("%w: log-polar resolution %dx%d", ErrInvalidArgument, sizeTheta, sizeRho)
	}
	if width <= 0 || height <= 0 || len(plane) != width*height {
		return nil, fmt.Errorf("%w: plane of length %d for %dx%d", ErrInvalidArgument, len(plane), width, height)
	}

	cosTheta := make([]float64, sizeTheta)
	sinTheta := make([]float64, sizeTheta)
	for i := range cosTheta {
		theta := 2 * math.Pi * float64(i) / float64(sizeTheta)
		cosTheta[i] = math.Cos(theta)
		sinTheta[i] = math.Sin(theta)
	}

	deltaRho := math.Sqrt(cx*cx+cy*cy) / float64(sizeRho)
	out := make([]float64, sizeTheta*sizeRho)

	centre := SampleBilinear(plane, width, height, cx, cy)
	for i := 0; i < sizeTheta; i++ {
		out[i] = centre
	}

	// rows are independent; bild splits them across CPUs
	parallel.Line(sizeRho-1, func(start, end int) {
		for j := start + 1; j < end+1; j++ {
			rho := float64(j) * deltaRho
			row := out[j*sizeTheta : (j+1)*sizeTheta]
			for i := range row {
				row[i] = SampleBilinear(plane, width, height, cx+rho*cosTheta[i], cy+rho*sinTheta[i])
			}
		}
	})

	return out, nil
}

// logPolarCentred transforms a plane around its own midpoint.
func logPolarCentred(plane []float64, width, height, sizeTheta, sizeRho int) ([]float64, error) {
	return LogPolar(plane, width, height, float64(width)/2, float64(height)/2, sizeTheta, sizeRho)
}
