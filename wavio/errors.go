package wavio

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported carrier format")
	ErrEmptyClip         = errors.New("clip holds no samples")
	ErrNotWavFile        = errors.New("not a WAV file")
	ErrNotAiffFile       = errors.New("not an AIFF file")
)
