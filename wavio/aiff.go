// SPDX-License-Identifier: EPL-2.0

package wavio

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

func decodeAiff(r io.ReadSeeker) (*Clip, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrNotAiffFile
	}
	scale := pcmScale(int(dec.BitDepth))

	var samples []float64
	buf := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, 8192),
	}
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to read aiff frames: %w", err)
		}
		if n == 0 {
			break
		}
		for _, v := range buf.Data[:n] {
			samples = append(samples, float64(v)/scale)
		}
	}

	return &Clip{
		Rate:     format.SampleRate,
		Channels: deinterleave(samples, format.NumChannels),
	}, nil
}
