package texture

import "image/color"

// 5-bit and 6-bit channel values scaled to 8 bits, matching the rounding of
// the hardware decoder
var (
	expand5 = [32]uint8{
		0x00, 0x08, 0x10, 0x18, 0x21, 0x29, 0x31, 0x39,
		0x42, 0x4a, 0x52, 0x5a, 0x63, 0x6b, 0x73, 0x7b,
		0x84, 0x8c, 0x94, 0x9c, 0xa5, 0xad, 0xb5, 0xbd,
		0xc6, 0xce, 0xd6, 0xde, 0xe7, 0xef, 0xf7, 0xff,
	}
	expand6 = [64]uint8{
		0x00, 0x04, 0x08, 0x0c, 0x10, 0x14, 0x18, 0x1c,
		0x20, 0x24, 0x28, 0x2c, 0x30, 0x34, 0x38, 0x3c,
		0x41, 0x45, 0x49, 0x4d, 0x51, 0x55, 0x59, 0x5d,
		0x61, 0x65, 0x69, 0x6d, 0x71, 0x75, 0x79, 0x7d,
		0x82, 0x86, 0x8a, 0x8e, 0x92, 0x96, 0x9a, 0x9e,
		0xa2, 0xa6, 0xaa, 0xae, 0xb2, 0xb6, 0xba, 0xbe,
		0xc3, 0xc7, 0xcb, 0xcf, 0xd3, 0xd7, 0xdb, 0xdf,
		0xe3, 0xe7, 0xeb, 0xef, 0xf3, 0xf7, 0xfb, 0xff,
	}
)

// Reverse of the above, each 8-bit value maps to the nearest table entry
var quantize5, quantize6 [256]uint8

func nearest(table []uint8, v uint8) uint8 {
	best, bestDiff := 0, 256
	for i, e := range table {
		d := int(e) - int(v)
		if d < 0 {
			d = -d
		}
		if d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return uint8(best)
}

func init() {
	for i := range quantize5 {
		quantize5[i] = nearest(expand5[:], uint8(i))
		quantize6[i] = nearest(expand6[:], uint8(i))
	}
}

var transparent = color.NRGBA{0, 0, 0, 0}

func split(c uint16) (r, g, b uint16) {
	return c >> 11 & 0x1f, c >> 5 & 0x3f, c & 0x1f
}

func join(r, g, b uint16) uint16 {
	return r<<11 | g<<5 | b
}

// expand converts a packed 5-6-5 color to an opaque 8-bit per channel color
func expand(c uint16) color.NRGBA {
	r, g, b := split(c)
	return color.NRGBA{expand5[r], expand6[g], expand5[b], 0xff}
}

// quantize packs a color into 5-6-5, picking the nearest representable value
// for each channel. Alpha is ignored.
func quantize(c color.NRGBA) uint16 {
	return join(uint16(quantize5[c.R]), uint16(quantize6[c.G]), uint16(quantize5[c.B]))
}

// mix blends two packed colors channel by channel at their native precision,
// truncating the result
func mix(c0, c1 uint16, mul0, mul1, div uint16) uint16 {
	r0, g0, b0 := split(c0)
	r1, g1, b1 := split(c1)
	return join((r0*mul0+r1*mul1)/div, (g0*mul0+g1*mul1)/div, (b0*mul0+b1*mul1)/div)
}

// palette derives the four colors of a block from its endpoints. The packed
// values are compared as integers to choose between the four color and the
// three color plus transparency modes.
func palette(c0, c1 uint16) [4]color.NRGBA {
	var p [4]color.NRGBA
	p[0] = expand(c0)
	p[1] = expand(c1)
	if c0 >= c1 {
		p[2] = expand(mix(c0, c1, 2, 1, 3))
		p[3] = expand(mix(c0, c1, 1, 2, 3))
	} else {
		p[2] = expand(mix(c0, c1, 1, 1, 2))
		p[3] = transparent
	}
	return p
}

func opaqueMode(c0, c1 uint16) bool {
	return c0 >= c1
}

// Copied from color.sqDiff, adapted to 8-bit channels
func sqDiff(x, y uint8) uint32 {
	d := int32(x) - int32(y)
	return uint32(d * d)
}

func distance(c1, c2 color.NRGBA) uint32 {
	return sqDiff(c1.R, c2.R) + sqDiff(c1.G, c2.G) + sqDiff(c1.B, c2.B)
}
