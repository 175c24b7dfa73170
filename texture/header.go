package texture

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
)

// Options controls how the header is interpreted or produced. A nil *Options
// reads the dimensions from the header and uses DefaultOffset.
type Options struct {
	// Width and Height override the dimensions stored in the header. If
	// both are set the header is not read at all.
	Width, Height int

	// Offset is the start of the block stream, zero selects DefaultOffset
	Offset int64

	// Header is copied to the start of a new file before the dimensions
	// are written over it
	Header []byte

	// WriteDimensions controls whether Inject also updates the dimensions
	// of the existing file
	WriteDimensions bool
}

func (o *Options) offset() int64 {
	if o == nil || o.Offset == 0 {
		return DefaultOffset
	}
	return o.Offset
}

// Header is the part of a GCT header understood by the codec.
type Header struct {
	Width, Height int

	// Offset is where the block stream starts
	Offset int64
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// skip advances r from pos to offset, seeking if possible
func skip(r io.Reader, pos, offset int64) error {
	if s, ok := r.(io.Seeker); ok {
		_, err := s.Seek(offset, io.SeekStart)
		return err
	}
	if offset < pos {
		return fmt.Errorf("%w: offset %#x is inside the header", ErrFormat, offset)
	}
	_, err := io.CopyN(ioutil.Discard, r, offset-pos)
	if err == io.EOF {
		return fmt.Errorf("%w: no data at offset %#x", ErrTruncatedBlock, offset)
	}
	return err
}

// ReadHeader reads the dimensions from r, which must be positioned at the
// start of the file, and leaves it positioned at the start of the block
// stream.
func ReadHeader(r io.Reader, o *Options) (Header, error) {
	h := Header{
		Offset: o.offset(),
	}
	if o != nil {
		h.Width, h.Height = o.Width, o.Height
	}

	var pos int64
	if h.Width == 0 || h.Height == 0 {
		var tmp [headerBytes]byte
		if err := readFull(r, tmp[:]); err != nil {
			if err != io.ErrUnexpectedEOF {
				return Header{}, err
			}
			return Header{}, fmt.Errorf("%w: header is truncated", ErrFormat)
		}
		pos = headerBytes

		if h.Width == 0 {
			h.Width = int(binary.BigEndian.Uint16(tmp[DimensionsOffset:]))
		}
		if h.Height == 0 {
			h.Height = int(binary.BigEndian.Uint16(tmp[DimensionsOffset+2:]))
		}
	}

	if err := checkDimensions(h.Width, h.Height); err != nil {
		return Header{}, err
	}

	if err := skip(r, pos, h.Offset); err != nil {
		return Header{}, err
	}

	return h, nil
}

// marshal returns the header of a new file up to the start of the block
// stream. Any bytes from prefix that fall on the dimensions are overwritten.
func (h Header) marshal(prefix []byte) ([]byte, error) {
	if h.Offset < headerBytes {
		return nil, fmt.Errorf("%w: offset %#x overlaps the dimensions", ErrFormat, h.Offset)
	}

	b := make([]byte, h.Offset)
	copy(b, prefix)
	putDimensions(b[DimensionsOffset:], h.Width, h.Height)

	return b, nil
}

func putDimensions(b []byte, width, height int) {
	binary.BigEndian.PutUint16(b[0:2], uint16(width))
	binary.BigEndian.PutUint16(b[2:4], uint16(height))
}
