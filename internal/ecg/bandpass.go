package ecg

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// BandPassMask returns a 0/1 weight per frequency bin that keeps the band
// [low, high) and its mirror [-high, -low). Each edge snaps to a bin index:
// the band starts at the first bin >= its lower edge and stops before the
// last bin <= its upper edge.
func BandPassMask(freqs []float64, low, high float64) []float64 {
	mask := make([]float64, len(freqs))
	setBand(mask, freqs, -high, -low)
	setBand(mask, freqs, low, high)
	return mask
}

func setBand(mask, freqs []float64, lo, hi float64) {
	start := firstAtLeast(freqs, lo)
	end := lastAtMost(freqs, hi)
	if start < 0 || end < 0 {
		return
	}
	for i := start; i < end; i++ {
		mask[i] = 1
	}
}

// firstAtLeast returns the first index with freqs[i] >= f, or -1.
func firstAtLeast(freqs []float64, f float64) int {
	for i, x := range freqs {
		if x >= f {
			return i
		}
	}
	return -1
}

// lastAtMost returns the last index with freqs[i] <= f, or -1.
func lastAtMost(freqs []float64, f float64) int {
	for i := len(freqs) - 1; i >= 0; i-- {
		if freqs[i] <= f {
			return i
		}
	}
	return -1
}

// Reconstruct applies mask to the centered spectrum and returns the inverse
// transform. The result is complex; for a real input the imaginary parts are
// rounding noise and are left in place.
func Reconstruct(spec Spectrum, mask []float64) []complex128 {
	n := len(spec.Coeffs)
	masked := make([]complex128, n)
	for i, c := range spec.Coeffs {
		masked[i] = c * complex(mask[i], 0)
	}
	seq := fourier.NewCmplxFFT(n).Sequence(nil, ifftShift(masked))
	// Sequence is unnormalized.
	scale := complex(1/float64(n), 0)
	for i := range seq {
		seq[i] *= scale
	}
	return seq
}

// BandPass filters voltage to the cardiac band described by p.
func BandPass(time, voltage []float64, p Params) ([]complex128, error) {
	spec, err := Transform(time, voltage)
	if err != nil {
		return nil, err
	}
	return Reconstruct(spec, BandPassMask(spec.Freqs, p.LowCutHz, p.HighCutHz)), nil
}
