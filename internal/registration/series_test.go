package registration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-registration-mcp/internal/raster"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeTranslation, false},
		{"translation", ModeTranslation, false},
		{"Rotation", ModeRotation, false},
		{"BOTH", ModeBoth, false},
		{"scale", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}
}

func TestAlignSeries_Translation(t *testing.T) {
	img := createBlobImage(t, 3)
	frames := []*raster.Image{
		shifted(t, img, 3, -2),
		img,
		shifted(t, img, -5, 4),
	}

	for _, parallel := range []bool{false, true} {
		r, err := New(Options{SizeTheta: 90, SizeRho: 30, Parallel: parallel})
		require.NoError(t, err)

		out, reports, err := r.AlignSeries(frames, 1, AllChannels, ModeTranslation, true)
		require.NoError(t, err)
		require.Len(t, out, 3)
		require.Len(t, reports, 3)

		assert.Same(t, img, out[1])
		assert.True(t, reports[1].Reference)
		assert.False(t, reports[1].Changed)

		assert.Equal(t, Displacement{DX: -3, DY: 2}, reports[0].Displacement)
		assert.Equal(t, Displacement{DX: 5, DY: -4}, reports[2].Displacement)

		for i, rep := range reports {
			assert.Equal(t, i, rep.Index)
			assert.Equal(t, 64, rep.Width)
			assert.Equal(t, 64, rep.Height)
			for c := 0; c < img.NumChannels(); c++ {
				assert.InDeltaSlice(t, img.Channel(c), out[i].Channel(c), 1e-9, "frame %d channel %d", i, c)
			}
		}
	}
}

func TestAlignSeries_Rotation(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	img := createBlobImage(t, 1)
	frames := []*raster.Image{img, rotated(t, img, 0.2)}

	out, reports, err := r.AlignSeries(frames, 0, 0, ModeRotation, true)
	require.NoError(t, err)

	assert.True(t, reports[1].Changed)
	assert.InDelta(t, -0.2, reports[1].Angle, 0.03)
	assert.Equal(t, Displacement{}, reports[1].Displacement)
	assert.True(t, out[1].SameSize(img))
}

func TestAlignSeries_BothGrowsCanvas(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	img := createBlobImage(t, 1)
	frames := []*raster.Image{img, shifted(t, img, 3, -2)}

	out, reports, err := r.AlignSeries(frames, 0, AllChannels, ModeBoth, false)
	require.NoError(t, err)

	// the grown frame matches the re-framed reference, so no rotation follows
	rep := reports[1]
	assert.Equal(t, Displacement{DX: -3, DY: 2}, rep.Displacement)
	assert.Equal(t, 0.0, rep.Angle)
	assert.True(t, rep.Changed)
	assert.Equal(t, 67, rep.Width)
	assert.Equal(t, 66, rep.Height)
	assert.Equal(t, 67, out[1].Width)
}

func TestAlignSeries_Errors(t *testing.T) {
	r, err := New(Options{SizeTheta: 90, SizeRho: 30})
	require.NoError(t, err)
	img := createBlobImage(t, 1)

	tests := []struct {
		name      string
		frames    []*raster.Image
		reference int
		channel   int
		want      error
	}{
		{"empty series", nil, 0, AllChannels, ErrInvalidArgument},
		{"reference out of range", []*raster.Image{img}, 1, AllChannels, ErrInvalidArgument},
		{"nil frame", []*raster.Image{img, nil}, 0, AllChannels, ErrInvalidArgument},
		{"bad channel", []*raster.Image{img, img.Clone()}, 0, 4, ErrInvalidArgument},
		{"size mismatch", []*raster.Image{img, createSmall(t)}, 0, AllChannels, ErrUnsupportedSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := r.AlignSeries(tt.frames, tt.reference, tt.channel, ModeTranslation, true)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func createSmall(t *testing.T) *raster.Image {
	t.Helper()
	img, err := raster.New(16, 16, 1)
	require.NoError(t, err)
	return img
}
