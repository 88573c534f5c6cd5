// Package imaging handles image files for the MCP server: decoding them
// through a shared cache, describing them, and encoding or saving the images
// the registration tools produce.
//
// # Supported Formats
//
// PNG, JPEG and GIF decoders come from the standard library; TIFF and BMP
// from golang.org/x/image. Formats are detected from file contents, not
// extensions. Saving goes through github.com/disintegration/imaging, which
// picks the encoder from the output file extension.
//
// # Coordinate System
//
// (0,0) is the top-left corner, X increases rightward and Y downward. The
// registration tools report displacements and angles in this frame.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Encoding functions are
// stateless.
//
// # Memory
//
// Cached images stay in memory until evicted or cleared. An entry is dropped
// and decoded again when its file changes on disk.
package imaging
