package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"", 0, true},
		{"40", 0x40, true},
		{"0x40", 0x40, true},
		{"0X1A0", 0x1a0, true},
		{"ff", 0xff, true},
		{"0x", 0, false},
		{"zz", 0, false},
		{"-10", 0, false},
	}

	for _, table := range tests {
		offset, err := parseOffset(table.in)
		if table.ok {
			assert.Nil(t, err, table.in)
			assert.Equal(t, table.want, offset, table.in)
		} else {
			assert.NotNil(t, err, table.in)
		}
	}
}
