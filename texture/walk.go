package texture

import "image"

// Position of each block within a macro-tile, in storage order
var tileOrder = [4]image.Point{
	{0, 0},
	{blockWidth, 0},
	{0, blockHeight},
	{blockWidth, blockHeight},
}

// walker yields the top-left corner of each block in the order they are
// stored in the file. The same walk is used for both decoding and encoding.
type walker struct {
	width, height int

	tx, ty, sub int
}

func newWalker(width, height int) *walker {
	return &walker{
		width:  width,
		height: height,
	}
}

// next returns the next block position, or false once the image is covered
func (w *walker) next() (image.Point, bool) {
	if w.ty >= w.height || w.width <= 0 {
		return image.Point{}, false
	}

	p := tileOrder[w.sub].Add(image.Pt(w.tx, w.ty))

	if w.sub++; w.sub == len(tileOrder) {
		w.sub = 0
		if w.tx += tileWidth; w.tx >= w.width {
			w.tx = 0
			w.ty += tileHeight
		}
	}

	return p, true
}

// Walk returns the top-left corner of every block of a width by height image
// in storage order.
func Walk(width, height int) []image.Point {
	if width <= 0 || height <= 0 {
		return nil
	}

	points := make([]image.Point, 0, BlockCount(width, height))
	w := newWalker(width, height)
	for p, ok := w.next(); ok; p, ok = w.next() {
		points = append(points, p)
	}
	return points
}
