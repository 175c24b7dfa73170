/*
Package texture implements a GCT texture decoder and encoder.

A GCT file is a fixed-layout header followed by a stream of 8 byte
compressed blocks, each describing a 4 by 4 pixel patch with two 5-6-5
endpoint colors and sixteen 2-bit palette indices. Blocks are grouped four
at a time into 8 by 8 macro-tiles which are stored left to right, top to
bottom. Within a tile the blocks are stored top-left, top-right,
bottom-left, bottom-right.

All multi-byte values are big-endian. The width and height are stored as
16-bit values at offset 0x10 and the block stream starts at offset 0x40
unless told otherwise. Every other header byte is opaque and preserved when
injecting into an existing file.
*/
package texture

const (
	blockWidth  = 4
	blockHeight = blockWidth
	blockPixels = blockWidth * blockHeight
	blockBytes  = 8
	tileWidth   = blockWidth * 2
	tileHeight  = tileWidth

	// DimensionsOffset is where the width and height are stored
	DimensionsOffset = 0x10
	headerBytes      = DimensionsOffset + 4

	// DefaultOffset is the usual start of the block stream
	DefaultOffset = 0x40

	// MaxDimension is the largest width or height the header can describe,
	// rounded down to a whole number of tiles
	MaxDimension = 0xffff &^ (tileWidth - 1)
)

// BlockCount returns the number of compressed blocks needed for an image of
// the given size.
func BlockCount(width, height int) int {
	return (width / tileWidth) * (height / tileHeight) * 4
}

// StreamSize returns the size in bytes of the block stream for an image of
// the given size.
func StreamSize(width, height int) int {
	return BlockCount(width, height) * blockBytes
}
