package frame

import "errors"

var (
	ErrHeaderTooLarge  = errors.New("header does not fit a 32-bit length prefix")
	ErrShortFrame      = errors.New("fewer than 32 bits: no length prefix")
	ErrBadPrefix       = errors.New("length prefix is not binary")
	ErrTruncatedHeader = errors.New("frame shorter than the declared header length")
	ErrBadHeader       = errors.New("header is not a valid record")
	ErrMissingField    = errors.New("header is missing key material")
)
