// SPDX-License-Identifier: EPL-2.0

package wavio

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// decodeMp3 decodes an MP3 carrier. go-mp3 emits 16-bit little-endian PCM,
// always two channels.
func decodeMp3(r io.Reader) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mp3: %w", err)
	}

	var samples []float64
	buf := make([]byte, 8192)
	for {
		n, err := dec.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			v := int16(uint16(buf[i]) | uint16(buf[i+1])<<8)
			samples = append(samples, float64(v)/32768.0)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read mp3 frames: %w", err)
		}
	}

	return &Clip{
		Rate:     dec.SampleRate(),
		Channels: deinterleave(samples, 2),
	}, nil
}
