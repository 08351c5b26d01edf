package ecg

import (
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/ecg.report/internal/monitoring"
)

// Summary holds the beat-derived metrics of one trace.
type Summary struct {
	Duration  float64
	NumBeats  int
	MeanHRBPM int
	// BeatIndices are ascending sample positions of the detected beats.
	BeatIndices []int
	// BeatTimes are the time values at BeatIndices.
	BeatTimes []float64
}

// MeanHeartRate extrapolates beats per minute from the beat count over the
// whole trace, rounding half to even.
func MeanHeartRate(numBeats int, duration float64) int {
	return int(math.RoundToEven(float64(numBeats) / duration * 60))
}

// Aggregate derives duration, beat count, heart rate and beat timestamps.
// duration is the last time value; traces are expected to start near t=0.
func Aggregate(det Detection, time []float64, filtered []complex128, mapping BeatMapping, log monitoring.Logger) (Summary, error) {
	if len(time) == 0 {
		return Summary{}, fmt.Errorf("%w: empty time sequence", ErrDegenerateTrace)
	}
	duration := time[len(time)-1]
	if !(duration > 0) {
		return Summary{}, fmt.Errorf("%w: non-positive duration %g", ErrDegenerateTrace, duration)
	}

	peaks := det.BeatPeaks()
	numBeats := len(det.Refined) + len(det.Outliers)

	var indices []int
	switch mapping {
	case MapByValue:
		indices = matchByValue(peaks, filtered)
		if len(indices) != len(peaks) {
			log.Warnf("beat reconciliation matched %d sample(s) for %d beat amplitude(s)", len(indices), len(peaks))
		}
	default:
		indices = make([]int, len(peaks))
		for i, pk := range peaks {
			indices[i] = pk.Index
		}
	}
	sort.Ints(indices)

	times := make([]float64, len(indices))
	for i, j := range indices {
		times[i] = time[j]
	}

	return Summary{
		Duration:    duration,
		NumBeats:    numBeats,
		MeanHRBPM:   MeanHeartRate(numBeats, duration),
		BeatIndices: indices,
		BeatTimes:   times,
	}, nil
}

// matchByValue collects every filtered sample exactly equal to a beat value.
// Equal amplitudes at several positions all match; an amplitude that no longer
// compares equal matches nothing.
func matchByValue(peaks []Peak, filtered []complex128) []int {
	var out []int
	for _, pk := range peaks {
		for i, c := range filtered {
			if c == pk.Value {
				out = append(out, i)
			}
		}
	}
	return out
}
