// Package server implements the MCP (Model Context Protocol) server for rigid
// image registration.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata, including the channel count
//   - image_dimensions: Get width and height
//
// Translation:
//   - image_find_translation: Estimate (dx, dy) between two images
//   - image_correct_translation: Estimate and undo the displacement against a reference
//   - image_apply_translation: Shift one or all channels
//
// Rotation:
//   - image_find_rotation: Estimate the angle between two images
//   - image_correct_rotation: Estimate and undo the rotation against a reference
//   - image_apply_rotation: Rotate one or all channels about the centre
//
// Series:
//   - image_align_series: Align every frame of a series onto a reference frame
//
// Images produced by a tool are returned as base64 PNG unless an output path
// is given, in which case they are written to disk.
//
// # Configuration
//
// ConfigFromEnv reads REGISTER_MCP_LOG_LEVEL, REGISTER_MCP_LOGPOLAR_THETA,
// REGISTER_MCP_LOGPOLAR_RHO and REGISTER_MCP_PARALLEL once at start-up.
// With REGISTER_MCP_LOG_LEVEL=debug every tool call is logged to stderr with
// its duration.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. An entry is
// refreshed when its file changes, so a corrected image written over its
// source is picked up by the next call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
