// SPDX-License-Identifier: EPL-2.0

// Package wavio reads carrier audio into memory and writes stego output.
//
// Carriers may be WAV, AIFF, MP3 or Ogg Vorbis, selected by file extension;
// samples are normalized to float64 in [-1, 1], one slice per channel.
// Output is always 16-bit PCM WAV: embedding must survive the write exactly,
// so no lossy encoder can ever sit on the output side.
package wavio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Clip is a fully decoded waveform.
type Clip struct {
	Rate     int
	Channels [][]float64
}

// Frames reports the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Mono returns the first channel, the one embedding targets.
func (c *Clip) Mono() []float64 {
	if len(c.Channels) == 0 {
		return nil
	}
	return c.Channels[0]
}

// ReadFile decodes a carrier file based on its extension: .wav, .aiff/.aif,
// .mp3, or .ogg/.oga.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open carrier: %w", err)
	}
	defer f.Close()

	var clip *Clip
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		clip, err = decodeWav(f)
	case ".aiff", ".aif":
		clip, err = decodeAiff(f)
	case ".mp3":
		clip, err = decodeMp3(f)
	case ".ogg", ".oga":
		clip, err = decodeVorbis(f)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	if clip.Frames() == 0 {
		return nil, ErrEmptyClip
	}
	return clip, nil
}

// WriteFile writes clip as 16-bit PCM WAV, clamping samples to [-1, 1].
func WriteFile(path string, clip *Clip) error {
	if clip == nil || clip.Frames() == 0 {
		return ErrEmptyClip
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err := encodeWav(f, clip); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Sine synthesizes a mono test tone, used as a fallback carrier when no
// input file is given.
func Sine(freq float64, duration float64, rate int) *Clip {
	n := int(duration * float64(rate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return &Clip{Rate: rate, Channels: [][]float64{samples}}
}

// deinterleave splits interleaved normalized samples into per-channel slices.
func deinterleave(samples []float64, channels int) [][]float64 {
	if channels < 1 {
		channels = 1
	}
	frames := len(samples) / channels

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = samples[i*channels+ch]
		}
	}
	return out
}

// pcmScale reports the normalization divisor for a PCM bit depth.
func pcmScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}
