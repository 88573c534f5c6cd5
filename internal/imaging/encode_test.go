package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8(x * 4), uint8(y * 4), 128, 255})
		}
	}
	return img
}

func TestEncode(t *testing.T) {
	img := createPatternImage(40, 30)

	result, err := Encode(img, 3)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if result.Width != 40 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", result.Width, result.Height)
	}
	if result.Channels != 3 {
		t.Errorf("Channels: got %d, want 3", result.Channels)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.OutputPath != "" {
		t.Errorf("OutputPath should be empty, got %s", result.OutputPath)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}

	r, g, _, _ := decoded.At(5, 7).RGBA()
	if r>>8 != 20 || g>>8 != 28 {
		t.Errorf("pixel (5,7): got r=%d g=%d, want r=20 g=28", r>>8, g>>8)
	}
}

func TestSave(t *testing.T) {
	img := createPatternImage(16, 16)
	path := filepath.Join(t.TempDir(), "nested", "out.png")

	result, err := Save(img, 3, path)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if result.OutputPath != path {
		t.Errorf("OutputPath: got %s, want %s", result.OutputPath, path)
	}
	if result.ImageBase64 != "" {
		t.Error("ImageBase64 should be empty when saving")
	}

	// The saved file must round-trip through the cache.
	dims, err := GetDimensions(NewImageCache(), path)
	if err != nil {
		t.Fatalf("saved file cannot be loaded: %v", err)
	}
	if dims.Width != 16 || dims.Height != 16 {
		t.Errorf("saved dimensions: got %dx%d, want 16x16", dims.Width, dims.Height)
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	img := createPatternImage(4, 4)
	path := filepath.Join(t.TempDir(), "out.xyz")

	if _, err := Save(img, 3, path); err == nil {
		t.Error("Save should fail for an unknown extension")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("no file should be written for an unknown extension")
	}
}

func TestOutput(t *testing.T) {
	img := createPatternImage(8, 8)

	inline, err := Output(img, 1, "")
	if err != nil {
		t.Fatalf("Output inline failed: %v", err)
	}
	if inline.ImageBase64 == "" {
		t.Error("inline output has no image data")
	}

	path := filepath.Join(t.TempDir(), "out.tif")
	saved, err := Output(img, 1, path)
	if err != nil {
		t.Fatalf("Output to file failed: %v", err)
	}
	if saved.OutputPath != path {
		t.Errorf("OutputPath: got %s, want %s", saved.OutputPath, path)
	}
}

func TestSeriesOutputPath(t *testing.T) {
	tests := []struct {
		dir, src, want string
	}{
		{"/out", "/data/frame-001.tif", "/out/frame-001.png"},
		{"/out", "frame.png", "/out/frame.png"},
		{"out", "/data/a.b.jpg", "out/a.b.png"},
	}

	for _, tt := range tests {
		if got := SeriesOutputPath(tt.dir, tt.src); got != tt.want {
			t.Errorf("SeriesOutputPath(%q, %q) = %q, want %q", tt.dir, tt.src, got, tt.want)
		}
	}
}

func TestSeriesOutputPaths(t *testing.T) {
	tests := []struct {
		name string
		srcs []string
		want []string
	}{
		{
			name: "distinct names",
			srcs: []string{"/a/f0.tif", "/a/f1.tif"},
			want: []string{"/out/f0.png", "/out/f1.png"},
		},
		{
			name: "shared base name is numbered",
			srcs: []string{"/a/frame.png", "/b/frame.png", "/c/other.jpg"},
			want: []string{"/out/frame-000.png", "/out/frame-001.png", "/out/other.png"},
		},
		{
			name: "same name different extension",
			srcs: []string{"/a/f.tif", "/a/f.jpg"},
			want: []string{"/out/f-000.png", "/out/f-001.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SeriesOutputPaths("/out", tt.srcs)
			if err != nil {
				t.Fatalf("SeriesOutputPaths failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("frame %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSeriesOutputPaths_Errors(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		srcs []string
	}{
		{"overwrites a source", "/data", []string{"/data/f0.png", "/data/f1.tif"}},
		{"unclean output dir", "/data/sub/..", []string{"/data/f0.png"}},
		{"numbered name collides", "/out", []string{"/a/frame.png", "/b/frame.png", "/c/frame-001.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SeriesOutputPaths(tt.dir, tt.srcs); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
