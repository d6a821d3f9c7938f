package qim

import "errors"

var (
	ErrBadAlpha  = errors.New("strength must be a positive, finite number")
	ErrCapacity  = errors.New("bit string exceeds coefficient capacity")
	ErrNotBinary = errors.New("bit string contains a rune other than '0' or '1'")
)
