// SPDX-License-Identifier: EPL-2.0

package wavio

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

func decodeVorbis(r io.Reader) (*Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ogg vorbis: %w", err)
	}

	var samples []float64
	buf := make([]float32, 8192)
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			samples = append(samples, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read vorbis frames: %w", err)
		}
	}

	return &Clip{
		Rate:     dec.SampleRate(),
		Channels: deinterleave(samples, dec.Channels()),
	}, nil
}
