// SPDX-License-Identifier: EPL-2.0

package dwt

import "math"

// Wavelet is an orthonormal filter bank used by Transform. The high-pass
// filter is derived from the low-pass one by the quadrature mirror relation
// g[m] = (-1)^m * h[L-1-m].
type Wavelet struct {
	name string
	lo   []float64
}

// Orthonormal Daubechies low-pass filters.
var (
	haarLo = []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}

	db2Lo = []float64{
		0.48296291314453414,
		0.83651630373780790,
		0.22414386804201337,
		-0.12940952255126037,
	}

	db4Lo = []float64{
		0.23037781330885523,
		0.71484657055254150,
		0.63088076792959040,
		-0.02798376941698385,
		-0.18703481171888114,
		0.03084138183598697,
		0.03288301166698295,
		-0.01059740178499728,
	}
)

// WaveletByName resolves a named basis. Recognized names: "haar" (alias
// "db1"), "db2" and "db4".
func WaveletByName(name string) (Wavelet, error) {
	switch name {
	case "haar", "db1":
		return Wavelet{name: name, lo: haarLo}, nil
	case "db2":
		return Wavelet{name: name, lo: db2Lo}, nil
	case "db4":
		return Wavelet{name: name, lo: db4Lo}, nil
	default:
		return Wavelet{}, ErrUnknownWavelet
	}
}

// Name reports the basis name the wavelet was resolved from.
func (w Wavelet) Name() string { return w.name }

// Len reports the filter length.
func (w Wavelet) Len() int { return len(w.lo) }

func (w Wavelet) hi() []float64 {
	l := len(w.lo)
	g := make([]float64, l)
	for m := 0; m < l; m++ {
		g[m] = w.lo[l-1-m]
		if m%2 == 1 {
			g[m] = -g[m]
		}
	}
	return g
}
