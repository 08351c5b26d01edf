package ecg

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum is the centered DFT of a voltage trace. Coeffs[i] pairs with
// Freqs[i]; index 0 holds the most negative frequency.
type Spectrum struct {
	SampleRate float64
	Freqs      []float64
	Coeffs     []complex128
}

// Transform computes the centered spectrum of voltage. The sample interval is
// taken from the first two time values and sampling is assumed uniform.
//
// Freqs spans [-SampleRate, +SampleRate) in len(voltage) even steps. This is
// twice the Nyquist-centered range and is kept so band edges land on the same
// bins as previously published results.
func Transform(time, voltage []float64) (Spectrum, error) {
	n := len(voltage)
	if n < 2 || len(time) != n {
		return Spectrum{}, fmt.Errorf("%w: need at least 2 aligned samples, got %d time / %d voltage", ErrDegenerateTrace, len(time), n)
	}
	interval := time[1] - time[0]
	if !(interval > 0) {
		return Spectrum{}, fmt.Errorf("%w: non-positive sample interval %g", ErrDegenerateTrace, interval)
	}
	rate := 1 / interval

	freqs := make([]float64, n)
	step := 2 * rate / float64(n)
	for i := range freqs {
		freqs[i] = -rate + float64(i)*step
	}

	seq := make([]complex128, n)
	for i, v := range voltage {
		seq[i] = complex(v, 0)
	}
	coeffs := fourier.NewCmplxFFT(n).Coefficients(nil, seq)

	return Spectrum{
		SampleRate: rate,
		Freqs:      freqs,
		Coeffs:     fftShift(coeffs),
	}, nil
}

// fftShift moves the zero-frequency term to the middle (index n/2).
func fftShift(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	h := n / 2
	for i := range x {
		out[(i+h)%n] = x[i]
	}
	return out
}

// ifftShift undoes fftShift for both odd and even lengths.
func ifftShift(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	h := n / 2
	for i := range x {
		out[i] = x[(i+h)%n]
	}
	return out
}
