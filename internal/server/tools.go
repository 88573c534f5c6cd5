package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// schema property helpers

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func integerProp(description string, def interface{}) map[string]interface{} {
	p := map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
	if def != nil {
		p["default"] = def
	}
	return p
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

func booleanProp(description string, def bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
		"default":     def,
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

const (
	channelAllDescription = "Channel index (0 = red or gray, 1 = green, 2 = blue). -1 or omitted means all channels."
	luminanceDescription  = "Estimate on CIE L* lightness instead of the RGB planes. The lightness image has the single channel 0, so other channel indexes are rejected. Corrections are still applied to every channel."
	outputPathDescription = "Optional file to write the result to (format from extension). When omitted the image is returned as base64 PNG."
	preserveDescription   = "Keep the original width and height. When false the canvas grows to hold the moved content."
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and the number of channels the registration tools will see.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
			}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
			}, "path"),
		},

		// Translation
		{
			Name:        "image_find_translation",
			Description: "Estimate the whole-pixel displacement (dx, dy) that moves the source image onto the target image, using FFT cross-correlation of one channel of each. Both images must have the same size. Shifts larger than half the image wrap around.",
			InputSchema: objectSchema(map[string]interface{}{
				"source":         stringProp("Absolute path to the image to be aligned"),
				"target":         stringProp("Absolute path to the reference image"),
				"source_channel": integerProp("Channel of the source image", 0),
				"target_channel": integerProp("Channel of the target image", 0),
				"luminance":      booleanProp(luminanceDescription, false),
			}, "source", "target"),
		},
		{
			Name:        "image_correct_translation",
			Description: "Estimate the displacement of an image against a reference, averaged over the selected channels, and shift every channel by it keeping the original size. Displacements with squared length up to 0.001 leave the image unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        stringProp("Absolute path to the image to correct"),
				"reference":   stringProp("Absolute path to the reference image (same size)"),
				"channel":     integerProp(channelAllDescription, -1),
				"luminance":   booleanProp(luminanceDescription, false),
				"output_path": stringProp(outputPathDescription),
			}, "path", "reference"),
		},
		{
			Name:        "image_apply_translation",
			Description: "Shift one channel or all channels of an image by (dx, dy) pixels, rounded to whole pixels. Shifting a single channel moves it relative to the others (chromatic alignment).",
			InputSchema: objectSchema(map[string]interface{}{
				"path":          stringProp("Absolute path to the image"),
				"dx":            numberProp("Horizontal shift in pixels (positive = right)"),
				"dy":            numberProp("Vertical shift in pixels (positive = down)"),
				"channel":       integerProp(channelAllDescription, -1),
				"preserve_size": booleanProp(preserveDescription, true),
				"output_path":   stringProp(outputPathDescription),
			}, "path", "dx", "dy"),
		},

		// Rotation
		{
			Name:        "image_find_rotation",
			Description: "Estimate the rotation angle (radians, positive = clockwise on screen) that aligns the source image onto the target image, by correlating log-polar resamplings around each image centre. The resolution is one angular sector (one third of a degree by default). Images of different sizes need previous_dx/previous_dy: the translation already applied to the source.",
			InputSchema: objectSchema(map[string]interface{}{
				"source":         stringProp("Absolute path to the image to be aligned"),
				"target":         stringProp("Absolute path to the reference image"),
				"source_channel": integerProp("Channel of the source image", 0),
				"target_channel": integerProp("Channel of the target image", 0),
				"luminance":      booleanProp(luminanceDescription, false),
				"previous_dx":    numberProp("Horizontal translation previously applied to the source (size-mismatch case)"),
				"previous_dy":    numberProp("Vertical translation previously applied to the source (size-mismatch case)"),
			}, "source", "target"),
		},
		{
			Name:        "image_correct_rotation",
			Description: "Estimate the rotation of an image against a reference, averaged over the selected channels, and rotate every channel about the centre keeping the original size. Angles up to 0.001 rad leave the image unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        stringProp("Absolute path to the image to correct"),
				"reference":   stringProp("Absolute path to the reference image (same size)"),
				"channel":     integerProp(channelAllDescription, -1),
				"luminance":   booleanProp(luminanceDescription, false),
				"output_path": stringProp(outputPathDescription),
			}, "path", "reference"),
		},
		{
			Name:        "image_apply_rotation",
			Description: "Rotate one channel or all channels of an image about its centre. Rotation is resampled at 8-bit precision.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":          stringProp("Absolute path to the image"),
				"angle":         numberProp("Rotation angle (positive = clockwise on screen)"),
				"degrees":       booleanProp("Interpret angle in degrees instead of radians", false),
				"channel":       integerProp(channelAllDescription, -1),
				"preserve_size": booleanProp(preserveDescription, true),
				"output_path":   stringProp(outputPathDescription),
			}, "path", "angle"),
		},

		// Series
		{
			Name:        "image_align_series",
			Description: "Align every frame of an image series onto one reference frame (translation, rotation or both) and write the aligned frames as PNG into output_dir, keeping each frame's base name. Frames sharing a base name get their index appended (frame-001.png). An output_dir that would overwrite a source frame is rejected. Returns one report per frame.",
			InputSchema: objectSchema(map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Absolute paths to the frames, in order",
				},
				"reference":     integerProp("Index of the reference frame", 0),
				"channel":       integerProp(channelAllDescription, -1),
				"mode":          map[string]interface{}{"type": "string", "enum": []string{"translation", "rotation", "both"}, "default": "translation", "description": "Which corrections to perform"},
				"preserve_size": booleanProp(preserveDescription, true),
				"output_dir":    stringProp("Directory the aligned frames are written to (created if missing)"),
			}, "paths", "output_dir"),
		},
	}
}
