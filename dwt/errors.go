package dwt

import "errors"

var (
	ErrUnknownWavelet = errors.New("unknown wavelet basis")
	ErrBadLevel       = errors.New("decomposition level must be at least 1")
	ErrEmptyInput     = errors.New("empty input signal")
	ErrTooShort       = errors.New("input shorter than the wavelet filter")
	ErrBandShape      = errors.New("coefficient bands do not match the transform structure")
)
