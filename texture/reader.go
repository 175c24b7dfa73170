package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
)

type decoder struct {
	r io.Reader

	header Header
	image  *image.NRGBA

	stream []byte
}

func truncated(have, want int64) error {
	if have < 0 {
		have = 0
	}
	return fmt.Errorf("%w: %d bytes of blocks, need %d", ErrTruncatedBlock, have, want)
}

// readStream reads the whole block stream before anything is allocated for
// the image, so a header describing a huge image cannot exhaust memory
func (d *decoder) readStream() error {
	size := int64(StreamSize(d.header.Width, d.header.Height))

	if s, ok := d.r.(io.Seeker); ok {
		pos, err := s.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		end, err := s.Seek(0, io.SeekEnd)
		if err != nil {
			return err
		}
		if _, err := s.Seek(pos, io.SeekStart); err != nil {
			return err
		}
		if end-pos < size {
			return truncated(end-pos, size)
		}
	}

	// The buffer only grows as data arrives
	b := new(bytes.Buffer)
	n, err := io.CopyN(b, d.r, size)
	switch {
	case err == io.EOF:
		return truncated(n, size)
	case err != nil:
		return err
	}
	d.stream = b.Bytes()

	return nil
}

func (d *decoder) decode(r io.Reader, o *Options, configOnly bool) error {
	d.r = r

	h, err := ReadHeader(r, o)
	if err != nil {
		return err
	}
	d.header = h

	if configOnly {
		return nil
	}

	if err := d.readStream(); err != nil {
		return err
	}

	d.image = image.NewNRGBA(image.Rect(0, 0, h.Width, h.Height))

	w, b := newWalker(h.Width, h.Height), d.stream
	for p, ok := w.next(); ok; p, ok = w.next() {
		colors, indices := decodeBlock(b[:blockBytes])
		for i, idx := range indices {
			d.image.SetNRGBA(p.X+i%blockWidth, p.Y+i/blockWidth, colors[idx])
		}
		b = b[blockBytes:]
	}

	return nil
}

// Decode reads a GCT texture from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	return DecodeWithOptions(r, nil)
}

// DecodeWithOptions reads a GCT texture from r, optionally overriding the
// dimensions and the block stream offset. If r implements io.Seeker it is
// used to reach the offset, otherwise the bytes in between are discarded.
func DecodeWithOptions(r io.Reader, o *Options) (image.Image, error) {
	var d decoder
	if err := d.decode(r, o, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a GCT texture without
// decoding the entire texture.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, nil, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      d.header.Width,
		Height:     d.header.Height,
	}, nil
}
