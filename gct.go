/*
Package gct is a library for converting GCT textures to and from standard
image formats.
*/
package gct

import (
	"io/ioutil"
	"log"
)

// GCT converts files between GCT and standard image formats.
type GCT struct {
	cache  *Cache
	logger *log.Logger
}

// New returns a GCT using the optional cache to avoid re-encoding images it
// has seen before. A nil logger discards all output.
func New(cache *Cache, logger *log.Logger) *GCT {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &GCT{
		cache:  cache,
		logger: logger,
	}
}
