/*
Package qgif converts animated raster images into the QBIT .qgif binary
bitmap-animation format and renders containers back out as C headers for
firmware linkage.

A .qgif container holds one animation as packed 1-bit frames of a fixed
geometry:

	[0]       uint8   frame_count
	[1..2]    uint16  width   (little-endian)
	[3..4]    uint16  height  (little-endian)
	[5..]     uint16  delays[frame_count]  (LE, milliseconds)
	[..]      uint8   frames[frame_count][(width/8)*height]

There is no magic number, checksum, or version tag. The consuming display
firmware has no spare cycles for validation beyond bounds checks, so format
identity is established by file suffix convention alone.

Within each frame, bits are packed most-significant-bit first inside each
row byte, rows top to bottom. The byte for pixel (x, y) is y*(width/8)+x/8
and its bit is 7-(x%8). The firmware renderer depends on this exact order.
*/
package qgif
