// SPDX-License-Identifier: EPL-2.0

// Package qim hides bits in floating-point coefficients by quantization-index
// modulation: the magnitude of each coefficient is nudged so that its residue
// modulo 2*alpha lands on 0 (bit '0') or alpha (bit '1'). The decode threshold
// bisects the two targets, so each bit survives perturbations smaller than
// alpha/2.
package qim

import "math"

// Codec embeds and extracts bits at a fixed strength alpha. Alpha is half
// the quantization step: larger values survive more noise but perturb the
// carrier more audibly.
type Codec struct {
	alpha float64
}

// New builds a Codec. alpha must be a positive, finite number.
func New(alpha float64) (*Codec, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 0 {
		return nil, ErrBadAlpha
	}
	return &Codec{alpha: alpha}, nil
}

// Alpha reports the configured strength.
func (c *Codec) Alpha() float64 { return c.alpha }

// Capacity reports how many bits fit in coeffs, one per coefficient.
func (c *Codec) Capacity(coeffs []float64) int { return len(coeffs) }

// Embed writes bitstr into coeffs in place, one bit per coefficient starting
// at index 0. When bitstr exceeds the capacity no coefficient is touched and
// ErrCapacity is returned. Runes other than '0' and '1' are rejected the same
// way, before any modification.
func (c *Codec) Embed(coeffs []float64, bitstr string) error {
	if len(bitstr) > len(coeffs) {
		return ErrCapacity
	}
	for i := 0; i < len(bitstr); i++ {
		if bitstr[i] != '0' && bitstr[i] != '1' {
			return ErrNotBinary
		}
	}

	step := 2 * c.alpha
	for i := 0; i < len(bitstr); i++ {
		mag := math.Abs(coeffs[i])
		rem := math.Mod(mag, step)

		target := 0.0
		if bitstr[i] == '1' {
			target = c.alpha
		}

		sign := 1.0
		if coeffs[i] < 0 {
			sign = -1.0
		}
		coeffs[i] = sign * (mag + target - rem)
	}

	return nil
}

// Extract reads up to n bits from coeffs. It never fails: the result holds
// exactly min(n, len(coeffs)) bits. Correctness of the decoded bits depends
// on the carrier not having been altered since embedding.
func (c *Codec) Extract(coeffs []float64, n int) string {
	if n > len(coeffs) {
		n = len(coeffs)
	}
	if n < 0 {
		n = 0
	}

	step := 2 * c.alpha
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		rem := math.Mod(math.Abs(coeffs[i]), step)
		if rem >= 0.5*c.alpha && rem < 1.5*c.alpha {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}

	return string(out)
}
