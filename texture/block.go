package texture

import (
	"encoding/binary"
	"image"
	"image/color"

	mediancut "github.com/ericpauley/go-quantize/quantize"
)

// Pixels with alpha below this are encoded as the transparent palette entry
const alphaThreshold = 0x80

// decodeBlock returns the palette of a block and the palette index of each of
// its pixels in row-major order. The index field is read most significant
// pair first.
func decodeBlock(b []byte) ([4]color.NRGBA, [blockPixels]uint8) {
	c0 := binary.BigEndian.Uint16(b[0:2])
	c1 := binary.BigEndian.Uint16(b[2:4])
	field := binary.BigEndian.Uint32(b[4:8])

	var indices [blockPixels]uint8
	for i := range indices {
		indices[i] = uint8(field >> uint(30-2*i) & 0x03)
	}

	return palette(c0, c1), indices
}

func packBlock(c0, c1 uint16, indices *[blockPixels]uint8) [blockBytes]byte {
	var field uint32
	for i, idx := range indices {
		field |= uint32(idx&0x03) << uint(30-2*i)
	}

	var b [blockBytes]byte
	binary.BigEndian.PutUint16(b[0:2], c0)
	binary.BigEndian.PutUint16(b[2:4], c1)
	binary.BigEndian.PutUint32(b[4:8], field)
	return b
}

// order swaps or nudges the endpoints so the comparison between them selects
// the wanted palette mode
func order(c0, c1 uint16, transparency bool) (uint16, uint16) {
	if !transparency {
		if c0 < c1 {
			c0, c1 = c1, c0
		}
		return c0, c1
	}

	switch {
	case c0 > c1:
		c0, c1 = c1, c0
	case c0 == c1 && c1 < 0xffff:
		c1++
	case c0 == c1:
		c0--
	}
	return c0, c1
}

// assign picks the closest palette entry for every pixel, returning the total
// squared error of the opaque pixels
func assign(pixels *[blockPixels]color.NRGBA, p *[4]color.NRGBA, transparency bool) ([blockPixels]uint8, uint32) {
	n := len(p)
	if transparency {
		n--
	}

	var indices [blockPixels]uint8
	var sum uint32
	for i, c := range pixels {
		if transparency && c.A < alphaThreshold {
			indices[i] = 3
			continue
		}
		best, bestDiff := 0, ^uint32(0)
		for j := 0; j < n; j++ {
			if d := distance(c, p[j]); d < bestDiff {
				best, bestDiff = j, d
			}
		}
		indices[i] = uint8(best)
		sum += bestDiff
	}
	return indices, sum
}

func uniqueOpaque(pixels *[blockPixels]color.NRGBA) (colors []color.NRGBA, transparency bool) {
	seen := make(map[color.NRGBA]struct{}, blockPixels)
	for _, c := range pixels {
		if c.A < alphaThreshold {
			transparency = true
			continue
		}
		c.A = 0xff
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			colors = append(colors, c)
		}
	}
	return
}

// Return the two furthest colors in a given set
func furthestColors(colors []color.NRGBA) (color.NRGBA, color.NRGBA) {
	c1, c2 := colors[0], colors[0]
	var bestSum uint32
	for i := range colors {
		for j := i + 1; j < len(colors); j++ {
			if sum := distance(colors[i], colors[j]); sum > bestSum {
				bestSum, c1, c2 = sum, colors[i], colors[j]
			}
		}
	}
	return c1, c2
}

// Corners of the bounding box of a given set
func boundingColors(colors []color.NRGBA) (color.NRGBA, color.NRGBA) {
	lo := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	hi := color.NRGBA{0x00, 0x00, 0x00, 0xff}
	for _, c := range colors {
		lo.R, hi.R = minMax(lo.R, hi.R, c.R)
		lo.G, hi.G = minMax(lo.G, hi.G, c.G)
		lo.B, hi.B = minMax(lo.B, hi.B, c.B)
	}
	return hi, lo
}

func minMax(lo, hi, v uint8) (uint8, uint8) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// Two representative colors of a given set using median cut
func medianColors(colors []color.NRGBA) (color.NRGBA, color.NRGBA, bool) {
	m := image.NewNRGBA(image.Rect(0, 0, len(colors), 1))
	for x, c := range colors {
		m.SetNRGBA(x, 0, c)
	}

	q := mediancut.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)
	if len(p) != 2 {
		return color.NRGBA{}, color.NRGBA{}, false
	}

	return color.NRGBAModel.Convert(p[0]).(color.NRGBA), color.NRGBAModel.Convert(p[1]).(color.NRGBA), true
}

// encodeBlock compresses sixteen pixels in row-major order. Several endpoint
// pairs are tried and the one with the smallest error is kept.
func encodeBlock(pixels *[blockPixels]color.NRGBA) [blockBytes]byte {
	colors, transparency := uniqueOpaque(pixels)

	if len(colors) == 0 {
		var indices [blockPixels]uint8
		for i := range indices {
			indices[i] = 3
		}
		return packBlock(0x0000, 0xffff, &indices)
	}

	var candidates [][2]color.NRGBA
	c1, c2 := furthestColors(colors)
	candidates = append(candidates, [2]color.NRGBA{c1, c2})
	if len(colors) > 2 {
		c1, c2 = boundingColors(colors)
		candidates = append(candidates, [2]color.NRGBA{c1, c2})
		if c1, c2, ok := medianColors(colors); ok {
			candidates = append(candidates, [2]color.NRGBA{c1, c2})
		}
	}

	var best [blockBytes]byte
	bestSum := ^uint32(0)
	for _, c := range candidates {
		c0, c1 := order(quantize(c[0]), quantize(c[1]), transparency)
		p := palette(c0, c1)
		indices, sum := assign(pixels, &p, transparency)
		if sum < bestSum {
			best, bestSum = packBlock(c0, c1, &indices), sum
		}
	}

	return best
}
