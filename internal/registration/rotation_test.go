package registration

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-registration-mcp/internal/raster"
)

// rotated turns every channel of img by angle on a canvas of the same size.
// Angles are chosen so the rotated bounding box of a 64x64 raster has an
// even size and the centre survives the crop exactly.
func rotated(t *testing.T, img *raster.Image, angle float64) *raster.Image {
	t.Helper()
	out, err := ApplyRotation(img, AllChannels, angle, true)
	require.NoError(t, err)
	require.True(t, out.SameSize(img))
	return out
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero value", Options{}},
		{"no sectors", Options{SizeRho: 10}},
		{"negative rings", Options{SizeTheta: 10, SizeRho: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1080, r.Options().SizeTheta)
	assert.Equal(t, 360, r.Options().SizeRho)
	assert.True(t, r.Options().Parallel)
}

func TestFindRotation(t *testing.T) {
	img := createBlobImage(t, 1)

	tests := []struct {
		name  string
		opts  Options
		angle float64
		want  float64
		delta float64
	}{
		{"identity", DefaultOptions(), 0, 0, 0},
		{"positive angle", DefaultOptions(), 0.2, -0.2, 0.03},
		{"negative angle", DefaultOptions(), -0.3, 0.3, 0.03},
		{"coarse resolution", Options{SizeTheta: 360, SizeRho: 90}, 0.25, -0.25, 0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.opts)
			require.NoError(t, err)

			src := img
			if tt.angle != 0 {
				src = rotated(t, img, tt.angle)
			}

			got, err := r.FindRotation(src, 0, img, 0, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestFindRotation_Resolution(t *testing.T) {
	r, err := New(Options{SizeTheta: 360, SizeRho: 90})
	require.NoError(t, err)
	img := createBlobImage(t, 1)

	got, err := r.FindRotation(rotated(t, img, 0.3), 0, img, 0, nil)
	require.NoError(t, err)

	// answers are whole sectors
	sectors := got * 360 / (2 * math.Pi)
	assert.InDelta(t, math.Round(sectors), sectors, 1e-9)
}

func TestFindRotation_PreviousDisplacement(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	img := createBlobImage(t, 1)
	moved := shifted(t, img, 3, -2)

	d, err := FindTranslation(moved, 0, img, 0)
	require.NoError(t, err)
	require.Equal(t, Displacement{DX: -3, DY: 2}, d)

	grown, err := ApplyTranslation(moved, AllChannels, d, false)
	require.NoError(t, err)
	require.Equal(t, 67, grown.Width)
	require.Equal(t, 66, grown.Height)

	angle, err := r.FindRotation(grown, 0, img, 0, &d)
	require.NoError(t, err)
	assert.Equal(t, 0.0, angle)

	_, err = r.FindRotation(grown, 0, img, 0, nil)
	assert.True(t, errors.Is(err, ErrUnsupportedSize), "got %v", err)
}

func TestFindRotation_Errors(t *testing.T) {
	r, err := New(Options{SizeTheta: 90, SizeRho: 30})
	require.NoError(t, err)
	img := createBlobImage(t, 2)

	_, err = r.FindRotation(img, 2, img, 0, nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)

	_, err = r.FindRotation(img, 0, nil, 0, nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
}

func TestHalfArgmax(t *testing.T) {
	tests := []struct {
		name string
		corr []float64
		want int
	}{
		{"peak in second half is ignored", []float64{1, 2, 3, 9}, 1},
		{"peak in first half", []float64{1, 8, 3, 2, 0, 0}, 1},
		{"ties go to the lowest index", []float64{4, 4, 4, 9, 9, 9}, 0},
		{"single element", []float64{5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, halfArgmax(tt.corr))
		})
	}
}

func TestNeedsRotation(t *testing.T) {
	assert.True(t, NeedsRotation(0.002))
	assert.True(t, NeedsRotation(-0.002))
	assert.False(t, NeedsRotation(0.001))
	assert.False(t, NeedsRotation(0))
}

func TestAnchorFor(t *testing.T) {
	assert.Equal(t, raster.AlignStart, anchorFor(2))
	assert.Equal(t, raster.AlignEnd, anchorFor(-0.5))
	assert.Equal(t, raster.AlignCenter, anchorFor(0))
}

func TestCorrectRotation(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	img := createBlobImage(t, 3)
	turned := rotated(t, img, 0.2)

	out, changed, err := r.CorrectRotation(turned, img, AllChannels)
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, out.SameSize(img))

	residual, err := r.FindRotation(out, 0, img, 0, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, residual, 0.04)
}

func TestCorrectRotation_NoOp(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	img := createBlobImage(t, 2)
	out, changed, err := r.CorrectRotation(img, img.Clone(), AllChannels)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, img, out)
}

func TestCorrectRotationFrom(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	img := createBlobImage(t, 3)
	turned := rotated(t, img, 0.2)

	out, angle, changed, err := r.CorrectRotationFrom(turned, monochrome(t, turned), monochrome(t, img), AllChannels)
	require.NoError(t, err)
	require.True(t, changed)
	assert.InDelta(t, -0.2, angle, 0.03)
	require.Equal(t, 3, out.NumChannels())
	require.True(t, out.SameSize(img))

	residual, err := r.FindRotation(out, 0, img, 0, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, residual, 0.04)
}

func TestCorrectRotationFrom_EstimateSizeDiffers(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	img := createBlobImage(t, 3)
	small, err := raster.New(32, 32, 1)
	require.NoError(t, err)

	_, _, _, err = r.CorrectRotationFrom(img, small, monochrome(t, img), AllChannels)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
}
