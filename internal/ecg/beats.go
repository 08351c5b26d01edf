package ecg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Peak is a local maximum of the filtered trace. Index is the sample position
// in the trace the peak was found in.
type Peak struct {
	Index int
	Value complex128
}

// Height is the value used for every ordering comparison.
func (p Peak) Height() float64 { return real(p.Value) }

// Detection is the output of DetectBeats.
type Detection struct {
	// Refined holds positions into Wrapped (and Normalized) judged to be beats.
	Refined []int
	// Normalized is Wrapped rescaled to [0,1] by its own min and max.
	Normalized []float64
	// Wrapped is every local maximum except the outliers, in trace order.
	Wrapped []Peak
	// Outliers are the largest peaks, largest first.
	Outliers []Peak
}

// DetectBeats finds beats in the filtered trace. All local maxima are found,
// the p.OutlierCount largest are set aside, the rest are normalized to [0,1]
// and local maxima of that normalized sequence above p.PeakThreshold are kept.
// A normalized value above the threshold at either end of the sequence also
// counts, since endpoints can never be local maxima.
func DetectBeats(filtered []complex128, p Params) Detection {
	heights := make([]float64, len(filtered))
	for i, c := range filtered {
		heights[i] = real(c)
	}

	idx := localMaxima(heights, math.Inf(-1))
	wrapped := make([]Peak, len(idx))
	for i, j := range idx {
		wrapped[i] = Peak{Index: j, Value: filtered[j]}
	}

	outliers := make([]Peak, 0, p.OutlierCount)
	for k := 0; k < p.OutlierCount && len(wrapped) > 0; k++ {
		top := 0
		for i := range wrapped {
			if wrapped[i].Height() > wrapped[top].Height() {
				top = i
			}
		}
		outliers = append(outliers, wrapped[top])
		wrapped = append(wrapped[:top], wrapped[top+1:]...)
	}

	norm := normalize(wrapped)
	refined := localMaxima(norm, p.PeakThreshold)
	if n := len(norm); n > 0 {
		if norm[0] > p.PeakThreshold {
			refined = append([]int{0}, refined...)
		}
		if norm[n-1] > p.PeakThreshold && n > 1 {
			refined = append(refined, n-1)
		}
	}

	return Detection{
		Refined:    refined,
		Normalized: norm,
		Wrapped:    wrapped,
		Outliers:   outliers,
	}
}

// localMaxima returns the interior indices i with x[i-1] < x[i] > x[i+1] and
// x[i] > min.
func localMaxima(x []float64, min float64) []int {
	var out []int
	for i := 1; i < len(x)-1; i++ {
		if x[i] > x[i-1] && x[i] > x[i+1] && x[i] > min {
			out = append(out, i)
		}
	}
	return out
}

// normalize rescales peak heights linearly onto [0,1]. A constant sequence
// maps to all zeros.
func normalize(peaks []Peak) []float64 {
	out := make([]float64, len(peaks))
	if len(peaks) == 0 {
		return out
	}
	for i, pk := range peaks {
		out[i] = pk.Height()
	}
	lo, hi := floats.Min(out), floats.Max(out)
	if hi == lo {
		for i := range out {
			out[i] = 0
		}
		return out
	}
	floats.AddConst(-lo, out)
	floats.Scale(1/(hi-lo), out)
	return out
}

// BeatPeaks returns the refined peaks followed by the outliers.
func (d Detection) BeatPeaks() []Peak {
	out := make([]Peak, 0, len(d.Refined)+len(d.Outliers))
	for _, i := range d.Refined {
		out = append(out, d.Wrapped[i])
	}
	return append(out, d.Outliers...)
}
