// Package raster provides the multi-channel image buffer used by the
// registration tools.
//
// An Image stores one float64 plane per channel. Every plane holds
// Width*Height samples in row-major order, so the sample at (x, y) lives at
// offset y*Width + x. Samples keep the 8-bit range of the file they were
// decoded from (0-255); the buffer itself does not clamp.
//
// # Coordinate System
//
// (0,0) is the top-left pixel, X increases rightward and Y increases
// downward, matching the image package. Positive rotation angles therefore
// turn content from the +X axis toward the +Y axis, which is clockwise on
// screen.
//
// # Primitives
//
// Besides conversion from and to image.Image, the package offers the two
// generic resampling primitives the registration code depends on:
//   - ResizeCanvas: change the canvas size, keeping content anchored to a
//     chosen edge or the centre
//   - RotatePlane: rotate a plane about its centre, growing the canvas to the
//     rotated bounding box
package raster
