package texture

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is returned when the header is missing or truncated
	ErrFormat = errors.New("texture: invalid format")
	// ErrDimension is returned when the width or height is zero or not a
	// multiple of 8
	ErrDimension = errors.New("texture: invalid dimensions")
	// ErrTruncatedBlock is returned when the block stream ends partway
	// through the image
	ErrTruncatedBlock = errors.New("texture: truncated block")
)

func checkDimensions(width, height int) error {
	switch {
	case width <= 0 || height <= 0:
		return fmt.Errorf("%w: %dx%d is empty", ErrDimension, width, height)
	case width%tileWidth != 0 || height%tileHeight != 0:
		return fmt.Errorf("%w: %dx%d is not a multiple of %d", ErrDimension, width, height, tileWidth)
	case width > MaxDimension || height > MaxDimension:
		return fmt.Errorf("%w: %dx%d is too large", ErrDimension, width, height)
	}
	return nil
}
