package gct

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF input
	_ "image/jpeg" // register JPEG input
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gct/texture"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP input
)

// Ext is the usual file extension of a GCT file
const Ext = ".gct"

var errUnknownFormat = errors.New("gct: unknown output format")

func encodeImage(w io.Writer, m image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, m)
	case ".bmp":
		return bmp.Encode(w, m)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, ext)
	}
}

// Output returns the default name of the image extracted from file
func Output(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".png"
}

// Extract decodes the GCT file and writes it to output, the format of which
// is chosen by its extension. Nothing is written if the texture cannot be
// decoded.
func (g *GCT) Extract(file, output string, o *texture.Options) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := texture.DecodeWithOptions(f, o)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	b := new(bytes.Buffer)
	if err := encodeImage(b, m, filepath.Ext(output)); err != nil {
		return err
	}

	if err := ioutil.WriteFile(output, b.Bytes(), 0666); err != nil {
		return err
	}

	g.logger.Printf("Extracted \"%s\" (%dx%d) to \"%s\"\n", file, m.Bounds().Dx(), m.Bounds().Dy(), output)

	return nil
}

// Fit resizes m so both dimensions are the nearest non-zero multiple of 8,
// returning m unchanged if it already fits.
func Fit(m image.Image) image.Image {
	round := func(n int) int {
		if n = (n + 4) &^ 7; n == 0 {
			return 8
		}
		if n > texture.MaxDimension {
			return texture.MaxDimension
		}
		return n
	}

	b := m.Bounds()
	w, h := round(b.Dx()), round(b.Dy())
	if w == b.Dx() && h == b.Dy() {
		return m
	}

	return resize.Resize(uint(w), uint(h), m, resize.Lanczos3)
}

func (g *GCT) blocks(file string, fit bool) (*texture.Blocks, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	if fit {
		if n := Fit(m); n != m {
			g.logger.Printf("Resized \"%s\" from %dx%d to %dx%d\n", file, m.Bounds().Dx(), m.Bounds().Dy(), n.Bounds().Dx(), n.Bounds().Dy())
			m = n
		}
	}

	if g.cache != nil {
		b, err := g.cache.Find(sha, m.Bounds().Dx(), m.Bounds().Dy())
		if err != nil {
			return nil, err
		}
		if b != nil {
			g.logger.Printf("Using cached blocks for \"%s\", with SHA1 \"%s\"\n", file, sha)
			return b, nil
		}
	}

	b, err := texture.EncodeBlocks(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	if g.cache != nil {
		if err := g.cache.Add(sha, b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Inject encodes the image file into target. If target already exists only
// the block stream, and optionally the dimensions, are overwritten,
// otherwise a new GCT file is created.
func (g *GCT) Inject(file, target string, o *texture.Options, fit bool) error {
	b, err := g.blocks(file, fit)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(target, os.O_RDWR, 0)
	switch {
	case err == nil:
		defer f.Close()
		if err := b.Inject(f, o); err != nil {
			return err
		}
		g.logger.Printf("Injected \"%s\" (%dx%d) into \"%s\"\n", file, b.Width, b.Height, target)
		return f.Close()
	case os.IsNotExist(err):
		out := new(bytes.Buffer)
		if err := b.Write(out, o); err != nil {
			return err
		}
		if err := ioutil.WriteFile(target, out.Bytes(), 0666); err != nil {
			return err
		}
		g.logger.Printf("Created \"%s\" (%dx%d) from \"%s\"\n", target, b.Width, b.Height, file)
		return nil
	default:
		return err
	}
}
