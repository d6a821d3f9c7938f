// SPDX-License-Identifier: EPL-2.0

package wavio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func decodeWav(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, ErrNotWavFile
	}

	scale := pcmScale(int(dec.BitDepth))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return &Clip{
		Rate:     buf.Format.SampleRate,
		Channels: deinterleave(samples, buf.Format.NumChannels),
	}, nil
}

func encodeWav(ws io.WriteSeeker, clip *Clip) error {
	channels := len(clip.Channels)
	frames := clip.Frames()

	data := make([]int, frames*channels)
	for ch, samples := range clip.Channels {
		for i, x := range samples {
			if x > 1 {
				x = 1
			} else if x < -1 {
				x = -1
			}
			// 32767 for the positive max avoids int16 overflow.
			data[i*channels+ch] = int(x * 32767.0)
		}
	}

	enc := wav.NewEncoder(ws, clip.Rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: clip.Rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	return nil
}
