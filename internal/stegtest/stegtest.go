// SPDX-License-Identifier: EPL-2.0

// Package stegtest provides deterministic waveforms and temp-file helpers
// shared by the embedding tests.
package stegtest

import (
	"math"
	"path/filepath"
	"testing"

	"stegwave/wavio"
)

// SineClip builds a deterministic mono sine carrier.
func SineClip(rate int, frames int, frequency float64) *wavio.Clip {
	samples := make([]float64, frames)
	for i := range samples {
		t := float64(i) / float64(rate)
		samples[i] = 0.5 * math.Sin(2*math.Pi*frequency*t)
	}
	return &wavio.Clip{Rate: rate, Channels: [][]float64{samples}}
}

// StereoClip builds a two-channel carrier with a different tone per channel.
func StereoClip(rate int, frames int) *wavio.Clip {
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := range left {
		t := float64(i) / float64(rate)
		left[i] = 0.5 * math.Sin(2*math.Pi*440*t)
		right[i] = 0.5 * math.Sin(2*math.Pi*523.25*t)
	}
	return &wavio.Clip{Rate: rate, Channels: [][]float64{left, right}}
}

// WriteWav writes clip into the test's temp dir and returns the path.
func WriteWav(t *testing.T, name string, clip *wavio.Clip) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := wavio.WriteFile(path, clip); err != nil {
		t.Fatalf("failed to write test carrier: %v", err)
	}
	return path
}
