package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory io.WriteSeeker
type file struct {
	b   []byte
	pos int64
}

func (f *file) Write(p []byte) (int, error) {
	if end := f.pos + int64(len(p)); end > int64(len(f.b)) {
		f.b = append(f.b, make([]byte, end-int64(len(f.b)))...)
	}
	n := copy(f.b[f.pos:], p)
	f.pos += int64(n)
	return n, nil
}

func (f *file) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += f.pos
	case io.SeekEnd:
		offset += int64(len(f.b))
	}
	if offset < 0 {
		return 0, errors.New("negative position")
	}
	f.pos = offset
	return offset, nil
}

// Fails the nth call to Seek
type seekFailer struct {
	*file
	n, calls int
}

func (f *seekFailer) Seek(offset int64, whence int) (int64, error) {
	if f.calls++; f.calls == f.n {
		return 0, errors.New("seek failed")
	}
	return f.file.Seek(offset, whence)
}

// Every 4x4 block is a single color, every fifth pixel is transparent
func testImage(width, height int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bx, by := x/blockWidth, y/blockHeight
			c := color.NRGBA{uint8(bx * 37), uint8(by * 53), uint8((bx + by) * 29), 0xff}
			if (y*width+x)%5 == 0 {
				c = color.NRGBA{}
			}
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{8, 8},
		{16, 8},
		{64, 40},
		{128, 64},
	}

	for _, table := range tests {
		in := testImage(table.width, table.height)

		b := new(bytes.Buffer)
		require.Nil(t, Encode(b, in, nil))
		assert.Equal(t, DefaultOffset+StreamSize(table.width, table.height), b.Len())

		out, err := Decode(b)
		require.Nil(t, err)
		require.Equal(t, in.Bounds(), out.Bounds())

		nm := out.(*image.NRGBA)
		for y := 0; y < table.height; y++ {
			for x := 0; x < table.width; x++ {
				want, got := in.NRGBAAt(x, y), nm.NRGBAAt(x, y)
				if want.A == 0 {
					assert.Equal(t, color.NRGBA{}, got, "%d,%d", x, y)
					continue
				}
				assert.Equal(t, uint8(0xff), got.A, "%d,%d", x, y)
				assert.InDelta(t, want.R, got.R, 4, "%d,%d", x, y)
				assert.InDelta(t, want.G, got.G, 2, "%d,%d", x, y)
				assert.InDelta(t, want.B, got.B, 4, "%d,%d", x, y)
			}
		}
	}
}

func TestEncodeHeader(t *testing.T) {
	prefix := []byte("GCT0 opaque data and more than sixteen bytes")
	b := new(bytes.Buffer)

	require.Nil(t, Encode(b, testImage(16, 8), &Options{Header: prefix, Offset: 0x30}))

	out := b.Bytes()
	require.Len(t, out, 0x30+StreamSize(16, 8))
	assert.Equal(t, prefix[:DimensionsOffset], out[:DimensionsOffset])
	assert.Equal(t, []byte{0x00, 0x10, 0x00, 0x08}, out[DimensionsOffset:headerBytes])
	assert.Equal(t, prefix[headerBytes:], out[headerBytes:len(prefix)])
	assert.Equal(t, make([]byte, 0x30-len(prefix)), out[len(prefix):0x30])

	m, err := DecodeWithOptions(bytes.NewReader(out), &Options{Offset: 0x30})
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), m.Bounds())
}

func TestEncodeOrigin(t *testing.T) {
	in := testImage(16, 16)
	sub := in.SubImage(image.Rect(8, 8, 16, 16))

	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, sub, nil))

	out, err := Decode(b)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), out.Bounds())
	assert.Equal(t, expand(quantize(in.NRGBAAt(8, 8))), out.At(0, 0))
	assert.Equal(t, color.NRGBA{}, out.At(4, 0))
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		m    image.Image
		o    *Options
		err  error
	}{
		{"empty", image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil, ErrDimension},
		{"odd width", image.NewNRGBA(image.Rect(0, 0, 12, 8)), nil, ErrDimension},
		{"odd height", image.NewRGBA(image.Rect(0, 0, 8, 20)), nil, ErrDimension},
		{"offset overlaps", testImage(8, 8), &Options{Offset: 0x12}, ErrFormat},
	}

	for _, table := range tests {
		t.Run(table.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			err := Encode(b, table.m, table.o)
			assert.True(t, errors.Is(err, table.err), "got %v", err)
			assert.Zero(t, b.Len())
		})
	}
}

func TestInject(t *testing.T) {
	original := newFile(8, 8, DefaultOffset, repeat(whiteBlock, 4)...)
	original = append(original, []byte("trailing")...)

	f := &file{b: append([]byte{}, original...)}
	m := testImage(8, 8)

	require.Nil(t, Inject(f, m, nil))

	b, err := EncodeBlocks(m)
	require.Nil(t, err)

	assert.Len(t, f.b, len(original))
	assert.Equal(t, original[:DefaultOffset], f.b[:DefaultOffset])
	assert.Equal(t, b.Data, f.b[DefaultOffset:DefaultOffset+len(b.Data)])
	assert.Equal(t, []byte("trailing"), f.b[len(f.b)-8:])
}

func TestInjectDimensions(t *testing.T) {
	original := newFile(8, 8, DefaultOffset, repeat(whiteBlock, 4)...)

	f := &file{b: append([]byte{}, original...)}
	require.Nil(t, Inject(f, testImage(16, 8), &Options{WriteDimensions: true}))

	assert.Equal(t, original[:DimensionsOffset], f.b[:DimensionsOffset])
	assert.Equal(t, []byte{0x00, 0x10, 0x00, 0x08}, f.b[DimensionsOffset:headerBytes])
	assert.Equal(t, original[headerBytes:DefaultOffset], f.b[headerBytes:DefaultOffset])

	m, err := Decode(bytes.NewReader(f.b))
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), m.Bounds())
}

func TestInjectSeekFailure(t *testing.T) {
	original := newFile(8, 8, DefaultOffset, repeat(whiteBlock, 4)...)

	for _, o := range []*Options{nil, {WriteDimensions: true}} {
		for n := 1; n <= 2; n++ {
			if o == nil && n == 2 {
				continue
			}
			f := &seekFailer{file: &file{b: append([]byte{}, original...)}, n: n}

			err := Inject(f, testImage(16, 8), o)
			assert.EqualError(t, err, "seek failed")
			assert.Equal(t, original, f.b, "seek %d", n)
		}
	}
}

func TestBlocksCheck(t *testing.T) {
	b := &Blocks{Width: 8, Height: 8, Data: make([]byte, 24)}

	err := b.Write(new(bytes.Buffer), nil)
	assert.True(t, errors.Is(err, ErrTruncatedBlock))

	err = b.Inject(&file{}, nil)
	assert.True(t, errors.Is(err, ErrTruncatedBlock))
}
