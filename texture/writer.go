package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
)

// Blocks is an encoded block stream and the dimensions it covers.
type Blocks struct {
	Width, Height int
	Data          []byte
}

type encoder struct {
	m   *image.NRGBA
	buf []byte
}

func (e *encoder) encode() {
	b := e.m.Bounds()
	w := newWalker(b.Dx(), b.Dy())

	var pixels [blockPixels]color.NRGBA
	for p, ok := w.next(); ok; p, ok = w.next() {
		for i := range pixels {
			pixels[i] = e.m.NRGBAAt(p.X+i%blockWidth, p.Y+i/blockWidth)
		}
		block := encodeBlock(&pixels)
		e.buf = append(e.buf, block[:]...)
	}
}

// EncodeBlocks compresses m into a block stream. The dimensions of m must be
// non-zero multiples of 8.
func EncodeBlocks(m image.Image) (*Blocks, error) {
	b := m.Bounds()
	if err := checkDimensions(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}

	// Adjust image so that top-left corner is at (0, 0)
	nm, _ := m.(*image.NRGBA)
	if nm == nil || nm.Rect.Min != (image.Point{}) {
		nm = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nm, nm.Bounds(), m, b.Min, draw.Src)
	}

	e := encoder{
		m:   nm,
		buf: make([]byte, 0, StreamSize(b.Dx(), b.Dy())),
	}
	e.encode()

	return &Blocks{
		Width:  b.Dx(),
		Height: b.Dy(),
		Data:   e.buf,
	}, nil
}

func (b *Blocks) check() error {
	if err := checkDimensions(b.Width, b.Height); err != nil {
		return err
	}
	if len(b.Data) != StreamSize(b.Width, b.Height) {
		return fmt.Errorf("%w: %d bytes of blocks for %dx%d", ErrTruncatedBlock, len(b.Data), b.Width, b.Height)
	}
	return nil
}

// Write writes a complete GCT file to w, the header followed by the blocks.
func (b *Blocks) Write(w io.Writer, o *Options) error {
	if err := b.check(); err != nil {
		return err
	}

	h := Header{
		Width:  b.Width,
		Height: b.Height,
		Offset: o.offset(),
	}

	var prefix []byte
	if o != nil {
		prefix = o.Header
	}

	header, err := h.marshal(prefix)
	if err != nil {
		return err
	}

	if _, err := w.Write(append(header, b.Data...)); err != nil {
		return err
	}

	return nil
}

// Inject writes the blocks into an existing GCT file at the block stream
// offset leaving every other byte untouched. The dimensions are only
// rewritten if o.WriteDimensions is set. Both positions are sought before
// anything is written.
func (b *Blocks) Inject(w io.WriteSeeker, o *Options) error {
	if err := b.check(); err != nil {
		return err
	}

	dimensions := o != nil && o.WriteDimensions
	if dimensions {
		if _, err := w.Seek(DimensionsOffset, io.SeekStart); err != nil {
			return err
		}
	}

	if _, err := w.Seek(o.offset(), io.SeekStart); err != nil {
		return err
	}

	if _, err := w.Write(b.Data); err != nil {
		return err
	}

	if dimensions {
		var tmp [4]byte
		putDimensions(tmp[:], b.Width, b.Height)
		if _, err := w.Seek(DimensionsOffset, io.SeekStart); err != nil {
			return err
		}
		if _, err := w.Write(tmp[:]); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w in GCT format.
func Encode(w io.Writer, m image.Image, o *Options) error {
	b, err := EncodeBlocks(m)
	if err != nil {
		return err
	}
	return b.Write(w, o)
}

// Inject encodes the Image m into the existing GCT file w.
func Inject(w io.WriteSeeker, m image.Image, o *Options) error {
	b, err := EncodeBlocks(m)
	if err != nil {
		return err
	}
	return b.Inject(w, o)
}
