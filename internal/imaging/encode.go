package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ImageResult describes an image produced by a tool. Exactly one of
// ImageBase64 and OutputPath is set.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Channels    int    `json:"channels"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
}

// Encode returns img as a base64 PNG.
func Encode(img image.Image, channels int) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &ImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Channels:    channels,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes img to path, creating the parent directory if needed. The
// format follows the file extension (png, jpg, gif, tif, bmp).
func Save(img image.Image, channels int, path string) (*ImageResult, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	b := img.Bounds()
	return &ImageResult{
		Width:      b.Dx(),
		Height:     b.Dy(),
		Channels:   channels,
		OutputPath: path,
	}, nil
}

// Output saves img to outputPath, or encodes it inline when outputPath is
// empty.
func Output(img image.Image, channels int, outputPath string) (*ImageResult, error) {
	if outputPath == "" {
		return Encode(img, channels)
	}
	return Save(img, channels, outputPath)
}

// SeriesOutputPath returns where frame src of a series is written inside
// dir. The file keeps its base name; outputs are always PNG so registered
// 8-bit data is stored losslessly.
func SeriesOutputPath(dir, src string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	return filepath.Join(dir, base[:len(base)-len(ext)]+".png")
}

// SeriesOutputPaths returns the output path of every frame of a series.
//
// Frames keep their base name as in SeriesOutputPath. A base name shared by
// several frames gets the frame index appended (frame-001.png) so that no
// frame overwrites another. An output that would replace one of the source
// frames, or that still collides after numbering, is an error.
func SeriesOutputPaths(dir string, srcs []string) ([]string, error) {
	paths := make([]string, len(srcs))
	count := make(map[string]int, len(srcs))
	for i, src := range srcs {
		paths[i] = SeriesOutputPath(dir, src)
		count[paths[i]]++
	}
	for i, p := range paths {
		if count[p] > 1 {
			paths[i] = fmt.Sprintf("%s-%03d.png", p[:len(p)-len(".png")], i)
		}
	}

	sources := make(map[string]int, len(srcs))
	for i, src := range srcs {
		sources[absPath(src)] = i
	}
	seen := make(map[string]int, len(paths))
	for i, p := range paths {
		if j, ok := seen[p]; ok {
			return nil, fmt.Errorf("frames %d and %d would both be written to %s", j, i, p)
		}
		seen[p] = i
		if j, ok := sources[absPath(p)]; ok {
			return nil, fmt.Errorf("frame %d would overwrite source frame %d (%s)", i, j, p)
		}
	}
	return paths, nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
