package gct

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gct/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAll(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "a/b", ".hidden"} {
		require.Nil(t, os.MkdirAll(filepath.Join(dir, sub), 0777))
	}

	files := []string{"one.gct", "a/two.GCT", "a/b/three.gct"}
	for _, file := range files {
		writeGCT(t, filepath.Join(dir, file), testImage(8, 16))
	}
	writeGCT(t, filepath.Join(dir, ".hidden", "four.gct"), testImage(8, 8))
	writePNG(t, filepath.Join(dir, "a", "ignored.png"), testImage(8, 8))

	g := New(nil, testLogger())
	require.Nil(t, g.ExtractAll(dir, 2, nil))

	for _, file := range files {
		assertSameImage(t, testImage(8, 16), readPNG(t, Output(filepath.Join(dir, file))))
	}

	_, err := os.Stat(filepath.Join(dir, ".hidden", "four.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractAllError(t *testing.T) {
	dir := t.TempDir()
	writeGCT(t, filepath.Join(dir, "good.gct"), testImage(8, 8))
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "bad.gct"), []byte("short"), 0666))

	g := New(nil, testLogger())
	err := g.ExtractAll(dir, 0, nil)
	assert.ErrorIs(t, err, texture.ErrFormat)
}
