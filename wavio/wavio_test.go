package wavio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSine(t *testing.T) {
	t.Parallel()

	clip := Sine(440, 2, 44100)
	if clip.Rate != 44100 {
		t.Errorf("Rate = %d, want 44100", clip.Rate)
	}
	if len(clip.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(clip.Channels))
	}
	if clip.Frames() != 88200 {
		t.Errorf("Frames() = %d, want 88200", clip.Frames())
	}
	if clip.Mono()[0] != 0 {
		t.Errorf("first sample = %v, want 0", clip.Mono()[0])
	}

	// Peak amplitude stays at 0.5.
	for i, v := range clip.Mono() {
		if math.Abs(v) > 0.5+1e-12 {
			t.Fatalf("sample %d = %v exceeds 0.5", i, v)
		}
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
	}{
		{"mono", 1},
		{"stereo", 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rate := 8000
			frames := 4000
			in := &Clip{Rate: rate, Channels: make([][]float64, tt.channels)}
			for ch := range in.Channels {
				in.Channels[ch] = make([]float64, frames)
				for i := range in.Channels[ch] {
					in.Channels[ch][i] = 0.4 * math.Sin(2*math.Pi*(220+110*float64(ch))*float64(i)/float64(rate))
				}
			}

			path := filepath.Join(t.TempDir(), "clip.wav")
			if err := WriteFile(path, in); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			out, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}

			if out.Rate != rate {
				t.Errorf("Rate = %d, want %d", out.Rate, rate)
			}
			if len(out.Channels) != tt.channels {
				t.Fatalf("channels = %d, want %d", len(out.Channels), tt.channels)
			}
			if out.Frames() != frames {
				t.Fatalf("Frames() = %d, want %d", out.Frames(), frames)
			}

			// PCM-16 quantization bounds the per-sample error.
			const tol = 2.0 / 32768.0
			for ch := range out.Channels {
				for i := range out.Channels[ch] {
					if d := math.Abs(out.Channels[ch][i] - in.Channels[ch][i]); d > tol {
						t.Fatalf("channel %d sample %d error = %g, want <= %g", ch, i, d, tol)
					}
				}
			}
		})
	}
}

func TestWriteFile_ClampsOutOfRange(t *testing.T) {
	t.Parallel()

	in := &Clip{Rate: 8000, Channels: [][]float64{{2.0, -2.0, 0.0}}}
	path := filepath.Join(t.TempDir(), "clamped.wav")
	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if out.Mono()[0] <= 0.99 || out.Mono()[1] >= -0.99 {
		t.Errorf("clamping failed: %v", out.Mono()[:3])
	}
}

func TestWriteFile_RejectsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "never.wav")

	if err := WriteFile(path, nil); !errors.Is(err, ErrEmptyClip) {
		t.Errorf("WriteFile(nil) error = %v, want ErrEmptyClip", err)
	}
	if err := WriteFile(path, &Clip{Rate: 8000}); !errors.Is(err, ErrEmptyClip) {
		t.Errorf("WriteFile(no channels) error = %v, want ErrEmptyClip", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected write still created a file")
	}
}

func TestReadFile_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := ReadFile(filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("ReadFile(missing) = nil error")
	}

	unknown := filepath.Join(dir, "carrier.flac")
	if err := os.WriteFile(unknown, []byte("fLaC...."), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(unknown); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ReadFile(.flac) error = %v, want ErrUnsupportedFormat", err)
	}

	notWav := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(notWav, []byte("this is not riff data"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(notWav); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("ReadFile(junk wav) error = %v, want ErrNotWavFile", err)
	}
}
