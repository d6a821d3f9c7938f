// SPDX-License-Identifier: EPL-2.0

// Package dwt implements a periodized discrete wavelet transform over
// orthonormal Daubechies bases.
//
// The analysis step is the decimated correlation
//
//	a[k] = sum_m lo[m] * x[(2k+m) mod n]
//	d[k] = sum_m hi[m] * x[(2k+m) mod n]
//
// and the synthesis step is its transpose. Because the filter bank is
// orthonormal and the signal is periodized over an even length, synthesis
// is the exact inverse of analysis: a signal reconstructed from modified
// coefficients re-analyzes to exactly those coefficients. Embedding relies
// on that fixed point.
//
// Inputs of odd length are truncated by one sample before each analysis
// level, so reconstruction always yields the analyzed (even) length.
package dwt

// Transform decomposes and reconstructs one channel with a fixed basis and
// decomposition depth. A Transform is stateless after construction and safe
// for concurrent use.
type Transform struct {
	wavelet Wavelet
	level   int
}

// Coefficients holds the result of a decomposition: the final approximation
// band plus one detail band per level, finest first.
type Coefficients struct {
	Approx  []float64
	Details [][]float64
}

// New builds a Transform over the named basis at the given decomposition
// depth. level must be at least 1.
func New(wavelet string, level int) (*Transform, error) {
	w, err := WaveletByName(wavelet)
	if err != nil {
		return nil, err
	}
	if level < 1 {
		return nil, ErrBadLevel
	}
	return &Transform{wavelet: w, level: level}, nil
}

// Wavelet reports the configured basis.
func (t *Transform) Wavelet() Wavelet { return t.wavelet }

// Level reports the configured decomposition depth.
func (t *Transform) Level() int { return t.level }

// Decompose analyzes one channel of samples. The input is rejected when it
// is empty or too short to carry the filter at every level.
func (t *Transform) Decompose(samples []float64) (*Coefficients, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	lo := t.wavelet.lo
	hi := t.wavelet.hi()

	cur := samples
	details := make([][]float64, 0, t.level)

	for i := 0; i < t.level; i++ {
		if len(cur)%2 == 1 {
			cur = cur[:len(cur)-1]
		}
		if len(cur) < len(lo) {
			return nil, ErrTooShort
		}
		approx, detail := analyze(cur, lo, hi)
		details = append(details, detail)
		cur = approx
	}

	return &Coefficients{Approx: cur, Details: details}, nil
}

// Reconstruct synthesizes a channel from coefficients produced by Decompose
// (possibly with a modified detail band). The band shapes must match the
// decomposition structure.
func (t *Transform) Reconstruct(c *Coefficients) ([]float64, error) {
	if c == nil || len(c.Details) != t.level {
		return nil, ErrBandShape
	}

	lo := t.wavelet.lo
	hi := t.wavelet.hi()

	cur := c.Approx
	for lvl := t.level - 1; lvl >= 0; lvl-- {
		detail := c.Details[lvl]
		if len(detail) != len(cur) {
			return nil, ErrBandShape
		}
		cur = synthesize(cur, detail, lo, hi)
	}

	return cur, nil
}

// Band returns the targeted detail band for embedding: the coarsest one,
// produced by the deepest analysis level.
func (c *Coefficients) Band() []float64 {
	if len(c.Details) == 0 {
		return nil
	}
	return c.Details[len(c.Details)-1]
}

// Capacity reports how many bits the targeted band can carry, one per
// coefficient.
func (c *Coefficients) Capacity() int { return len(c.Band()) }

func analyze(x, lo, hi []float64) (approx, detail []float64) {
	n := len(x)
	half := n / 2
	approx = make([]float64, half)
	detail = make([]float64, half)

	for k := 0; k < half; k++ {
		var a, d float64
		for m := range lo {
			v := x[(2*k+m)%n]
			a += lo[m] * v
			d += hi[m] * v
		}
		approx[k] = a
		detail[k] = d
	}

	return approx, detail
}

func synthesize(approx, detail, lo, hi []float64) []float64 {
	n := 2 * len(approx)
	out := make([]float64, n)

	for k := range approx {
		a := approx[k]
		d := detail[k]
		for m := range lo {
			out[(2*k+m)%n] += a*lo[m] + d*hi[m]
		}
	}

	return out
}
