package qim

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func randomCoeffs(rng *rand.Rand, n int) []float64 {
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = (rng.Float64() - 0.5) * 0.2
	}
	return coeffs
}

func randomBits(rng *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		if rng.Intn(2) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func TestNew_RejectsBadAlpha(t *testing.T) {
	t.Parallel()

	for _, alpha := range []float64{0, -0.001, math.NaN(), math.Inf(1)} {
		if _, err := New(alpha); !errors.Is(err, ErrBadAlpha) {
			t.Errorf("New(%v) error = %v, want ErrBadAlpha", alpha, err)
		}
	}
}

func TestEmbedExtract_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		alpha float64
		n     int
	}{
		{"default strength", 0.001, 500},
		{"strong", 0.1, 64},
		{"weak", 1e-6, 128},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			codec, err := New(tt.alpha)
			if err != nil {
				t.Fatal(err)
			}

			rng := rand.New(rand.NewSource(42))
			coeffs := randomCoeffs(rng, tt.n)
			bits := randomBits(rng, tt.n)

			if err := codec.Embed(coeffs, bits); err != nil {
				t.Fatalf("Embed() error = %v", err)
			}

			got := codec.Extract(coeffs, tt.n)
			if got != bits {
				t.Errorf("Extract() did not return the embedded bits")
			}
		})
	}
}

func TestEmbed_SpecialCoefficients(t *testing.T) {
	t.Parallel()

	codec, err := New(0.001)
	if err != nil {
		t.Fatal(err)
	}

	// Zero, negative, and exact-multiple magnitudes.
	coeffs := []float64{0, -0.05, 0.002, -0.002, 0.001, -0.0005}
	bits := "101101"

	if err := codec.Embed(coeffs, bits); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if got := codec.Extract(coeffs, len(bits)); got != bits {
		t.Errorf("Extract() = %q, want %q", got, bits)
	}

	// Sign is preserved for clearly negative coefficients.
	if coeffs[1] >= 0 {
		t.Errorf("Embed() flipped the sign of coeffs[1]: %v", coeffs[1])
	}
}

func TestEmbed_SurvivesSmallPerturbation(t *testing.T) {
	t.Parallel()

	const alpha = 0.001

	codec, err := New(alpha)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(99))
	coeffs := randomCoeffs(rng, 1000)
	bits := randomBits(rng, 1000)

	if err := codec.Embed(coeffs, bits); err != nil {
		t.Fatal(err)
	}

	// PCM-16 requantization moves samples by about 3e-5; stay well inside
	// the alpha/2 margin.
	for i := range coeffs {
		coeffs[i] += (rng.Float64() - 0.5) * 0.2 * alpha
	}

	if got := codec.Extract(coeffs, len(bits)); got != bits {
		t.Error("Extract() lost bits under perturbation below the noise margin")
	}
}

func TestEmbed_CapacityRejectedBeforeWriting(t *testing.T) {
	t.Parallel()

	codec, err := New(0.001)
	if err != nil {
		t.Fatal(err)
	}

	coeffs := []float64{0.013, -0.027, 0.041}
	orig := append([]float64(nil), coeffs...)

	if err := codec.Embed(coeffs, "0101"); !errors.Is(err, ErrCapacity) {
		t.Fatalf("Embed(4 bits into 3 coeffs) error = %v, want ErrCapacity", err)
	}
	for i := range coeffs {
		if coeffs[i] != orig[i] {
			t.Errorf("coeffs[%d] modified after capacity rejection", i)
		}
	}

	if err := codec.Embed(coeffs, "01x"); !errors.Is(err, ErrNotBinary) {
		t.Fatalf("Embed(non-binary) error = %v, want ErrNotBinary", err)
	}
	for i := range coeffs {
		if coeffs[i] != orig[i] {
			t.Errorf("coeffs[%d] modified after non-binary rejection", i)
		}
	}
}

func TestExtract_ClampsToAvailable(t *testing.T) {
	t.Parallel()

	codec, err := New(0.001)
	if err != nil {
		t.Fatal(err)
	}

	coeffs := []float64{0.01, 0.02, 0.03}
	if err := codec.Embed(coeffs, "110"); err != nil {
		t.Fatal(err)
	}

	if got := codec.Extract(coeffs, 10); got != "110" {
		t.Errorf("Extract(n > len) = %q, want %q", got, "110")
	}
	if got := codec.Extract(coeffs, 2); got != "11" {
		t.Errorf("Extract(2) = %q, want %q", got, "11")
	}
	if got := codec.Extract(coeffs, 0); got != "" {
		t.Errorf("Extract(0) = %q, want empty", got)
	}
	if got := codec.Extract(coeffs, -3); got != "" {
		t.Errorf("Extract(-3) = %q, want empty", got)
	}
}

func TestCapacity(t *testing.T) {
	t.Parallel()

	codec, err := New(0.5)
	if err != nil {
		t.Fatal(err)
	}

	if got := codec.Capacity(make([]float64, 123)); got != 123 {
		t.Errorf("Capacity() = %d, want 123", got)
	}
}
