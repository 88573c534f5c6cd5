package registration

import "math"

// SampleBilinear returns the bilinearly interpolated value of plane at the
// fractional position (x, y).
//
// Coordinates are shifted by -0.5 on both axes so that integer pixels are
// addressed through their centres. When the base cell of the shifted
// position is not strictly inside (0, width-2) x (0, height-2) the sampler
// returns 0: edges are blanked rather than clamped or extrapolated, which
// keeps border artefacts out of log-polar and shifted sampling.
func SampleBilinear(plane []float64, width, height int, x, y float64) float64 {
	x -= 0.5
	y -= 0.5

	fx := math.Floor(x)
	fy := math.Floor(y)
	if fx <= 0 || fx >= float64(width-2) || fy <= 0 || fy >= float64(height-2) {
		return 0
	}

	i := int(fx)
	j := int(fy)
	dx := x - fx
	dy := y - fy

	off := j*width + i
	top := plane[off]*(1-dx) + plane[off+1]*dx
	bottom := plane[off+width]*(1-dx) + plane[off+width+1]*dx
	return top*(1-dy) + bottom*dy
}
