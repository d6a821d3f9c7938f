package bits

import "errors"

var (
	ErrWideRune  = errors.New("character does not fit in 8 bits")
	ErrNotBinary = errors.New("bit string contains a rune other than '0' or '1'")
)
