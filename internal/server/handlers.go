package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/ironsheep/image-registration-mcp/internal/imaging"
	"github.com/ironsheep/image-registration-mcp/internal/raster"
	"github.com/ironsheep/image-registration-mcp/internal/registration"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_find_rotation").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed after %v: %v", params.Name, time.Since(start), err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	if s.debug {
		log.Printf("tool %s done in %v", params.Name, time.Since(start))
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images through the cache and converts them to rasters
//  4. Calls the registration core
//  5. Encodes or saves any image it produced
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Translation
	case "image_find_translation":
		return s.handleFindTranslation(args)
	case "image_correct_translation":
		return s.handleCorrectTranslation(args)
	case "image_apply_translation":
		return s.handleApplyTranslation(args)

	// Rotation
	case "image_find_rotation":
		return s.handleFindRotation(args)
	case "image_correct_rotation":
		return s.handleCorrectRotation(args)
	case "image_apply_rotation":
		return s.handleApplyRotation(args)

	// Series
	case "image_align_series":
		return s.handleAlignSeries(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadRaster loads path through the cache and converts it to a raster,
// either as R, G, B (or gray) planes or as a single lightness plane.
func (s *Server) loadRaster(path string, luminance bool) (*raster.Image, error) {
	if path == "" {
		return nil, errors.New("image path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if luminance {
		return raster.LuminanceFromImage(img), nil
	}
	return raster.FromImage(img), nil
}

func output(img *raster.Image, path string) (*imaging.ImageResult, error) {
	return imaging.Output(img.ToImage(), img.NumChannels(), path)
}

func channelOrAll(c *int) int {
	if c == nil {
		return registration.AllChannels
	}
	return *c
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Estimation Handlers ===

type findArgs struct {
	Source        string   `json:"source"`
	Target        string   `json:"target"`
	SourceChannel int      `json:"source_channel"`
	TargetChannel int      `json:"target_channel"`
	Luminance     bool     `json:"luminance"`
	PreviousDX    *float64 `json:"previous_dx"`
	PreviousDY    *float64 `json:"previous_dy"`
}

// load returns both rasters. A luminance raster has the single channel 0,
// so asking for any other channel alongside luminance is rejected.
func (s *Server) load(a *findArgs) (*raster.Image, *raster.Image, error) {
	if a.Luminance && (a.SourceChannel != 0 || a.TargetChannel != 0) {
		return nil, nil, fmt.Errorf("%w: source_channel %d / target_channel %d cannot be combined with luminance",
			registration.ErrInvalidArgument, a.SourceChannel, a.TargetChannel)
	}
	src, err := s.loadRaster(a.Source, a.Luminance)
	if err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	dst, err := s.loadRaster(a.Target, a.Luminance)
	if err != nil {
		return nil, nil, fmt.Errorf("target: %w", err)
	}
	return src, dst, nil
}

type translationResult struct {
	Displacement registration.Displacement `json:"displacement"`
}

func (s *Server) handleFindTranslation(args json.RawMessage) (interface{}, error) {
	var a findArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, dst, err := s.load(&a)
	if err != nil {
		return nil, err
	}

	d, err := registration.FindTranslation(src, a.SourceChannel, dst, a.TargetChannel)
	if err != nil {
		return nil, err
	}
	return &translationResult{Displacement: d}, nil
}

type rotationResult struct {
	Angle        float64 `json:"angle"`
	AngleDegrees float64 `json:"angle_degrees"`
}

func (s *Server) handleFindRotation(args json.RawMessage) (interface{}, error) {
	var a findArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, dst, err := s.load(&a)
	if err != nil {
		return nil, err
	}

	var previous *registration.Displacement
	if a.PreviousDX != nil || a.PreviousDY != nil {
		previous = &registration.Displacement{}
		if a.PreviousDX != nil {
			previous.DX = *a.PreviousDX
		}
		if a.PreviousDY != nil {
			previous.DY = *a.PreviousDY
		}
	}

	angle, err := s.registrar.FindRotation(src, a.SourceChannel, dst, a.TargetChannel, previous)
	if err != nil {
		return nil, err
	}
	return &rotationResult{Angle: angle, AngleDegrees: degrees(angle)}, nil
}

// === Correction Handlers ===

type correctArgs struct {
	Path       string `json:"path"`
	Reference  string `json:"reference"`
	Channel    *int   `json:"channel"`
	Luminance  bool   `json:"luminance"`
	OutputPath string `json:"output_path"`
}

type correctionResult struct {
	Changed      bool                       `json:"changed"`
	Displacement *registration.Displacement `json:"displacement,omitempty"`
	Angle        *float64                   `json:"angle,omitempty"`
	AngleDegrees *float64                   `json:"angle_degrees,omitempty"`
	Image        *imaging.ImageResult       `json:"image"`
}

// loadCorrection loads the image to correct and the pair of rasters the
// estimate runs on. Without luminance the pair is the image and reference
// themselves.
func (s *Server) loadCorrection(a *correctArgs) (img, est, ref *raster.Image, channel int, err error) {
	channel = channelOrAll(a.Channel)
	if a.Luminance && channel != registration.AllChannels && channel != 0 {
		return nil, nil, nil, 0, fmt.Errorf("%w: channel %d cannot be combined with luminance",
			registration.ErrInvalidArgument, channel)
	}
	img, err = s.loadRaster(a.Path, false)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if !a.Luminance {
		ref, err = s.loadRaster(a.Reference, false)
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("reference: %w", err)
		}
		return img, img, ref, channel, nil
	}

	est, err = s.loadRaster(a.Path, true)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	ref, err = s.loadRaster(a.Reference, true)
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("reference: %w", err)
	}
	return img, est, ref, registration.AllChannels, nil
}

func (s *Server) handleCorrectTranslation(args json.RawMessage) (interface{}, error) {
	var a correctArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, est, ref, channel, err := s.loadCorrection(&a)
	if err != nil {
		return nil, err
	}

	out, d, changed, err := s.registrar.CorrectTranslationFrom(img, est, ref, channel)
	if err != nil {
		return nil, err
	}

	res := &correctionResult{Changed: changed, Displacement: &d}
	res.Image, err = output(out, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Server) handleCorrectRotation(args json.RawMessage) (interface{}, error) {
	var a correctArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, est, ref, channel, err := s.loadCorrection(&a)
	if err != nil {
		return nil, err
	}

	out, angle, changed, err := s.registrar.CorrectRotationFrom(img, est, ref, channel)
	if err != nil {
		return nil, err
	}

	deg := degrees(angle)
	res := &correctionResult{Changed: changed, Angle: &angle, AngleDegrees: &deg}
	res.Image, err = output(out, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// === Apply Handlers ===

type applyTranslationArgs struct {
	Path         string  `json:"path"`
	DX           float64 `json:"dx"`
	DY           float64 `json:"dy"`
	Channel      *int    `json:"channel"`
	PreserveSize *bool   `json:"preserve_size"`
	OutputPath   string  `json:"output_path"`
}

func (s *Server) handleApplyTranslation(args json.RawMessage) (interface{}, error) {
	var a applyTranslationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadRaster(a.Path, false)
	if err != nil {
		return nil, err
	}

	d := registration.Displacement{DX: a.DX, DY: a.DY}
	out, err := registration.ApplyTranslation(img, channelOrAll(a.Channel), d, boolOr(a.PreserveSize, true))
	if err != nil {
		return nil, err
	}
	return output(out, a.OutputPath)
}

type applyRotationArgs struct {
	Path         string  `json:"path"`
	Angle        float64 `json:"angle"`
	Degrees      bool    `json:"degrees"`
	Channel      *int    `json:"channel"`
	PreserveSize *bool   `json:"preserve_size"`
	OutputPath   string  `json:"output_path"`
}

func (s *Server) handleApplyRotation(args json.RawMessage) (interface{}, error) {
	var a applyRotationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadRaster(a.Path, false)
	if err != nil {
		return nil, err
	}

	angle := a.Angle
	if a.Degrees {
		angle = angle * math.Pi / 180
	}
	out, err := registration.ApplyRotation(img, channelOrAll(a.Channel), angle, boolOr(a.PreserveSize, true))
	if err != nil {
		return nil, err
	}
	return output(out, a.OutputPath)
}

// === Series Handler ===

type alignSeriesArgs struct {
	Paths        []string `json:"paths"`
	Reference    int      `json:"reference"`
	Channel      *int     `json:"channel"`
	Mode         string   `json:"mode"`
	PreserveSize *bool    `json:"preserve_size"`
	OutputDir    string   `json:"output_dir"`
}

type seriesFrame struct {
	registration.FrameReport
	Source     string `json:"source"`
	OutputPath string `json:"output_path"`
}

type seriesResult struct {
	Mode   string        `json:"mode"`
	Frames []seriesFrame `json:"frames"`
}

func (s *Server) handleAlignSeries(args json.RawMessage) (interface{}, error) {
	var a alignSeriesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, errors.New("paths must name at least one frame")
	}
	if a.OutputDir == "" {
		return nil, errors.New("output_dir is required")
	}
	mode, err := registration.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}

	outputs, err := imaging.SeriesOutputPaths(a.OutputDir, a.Paths)
	if err != nil {
		return nil, err
	}

	frames := make([]*raster.Image, len(a.Paths))
	for i, p := range a.Paths {
		frames[i], err = s.loadRaster(p, false)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	aligned, reports, err := s.registrar.AlignSeries(frames, a.Reference, channelOrAll(a.Channel), mode, boolOr(a.PreserveSize, true))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(a.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := &seriesResult{Mode: mode.String(), Frames: make([]seriesFrame, len(aligned))}
	for i, img := range aligned {
		path := outputs[i]
		if _, err := imaging.Save(img.ToImage(), img.NumChannels(), path); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		// a stale cached copy of a previous run's output must not survive
		s.cache.Evict(path)
		res.Frames[i] = seriesFrame{FrameReport: reports[i], Source: a.Paths[i], OutputPath: path}
	}
	return res, nil
}
