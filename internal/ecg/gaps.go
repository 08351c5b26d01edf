package ecg

import (
	"fmt"
	"math"

	"github.com/banshee-data/ecg.report/internal/monitoring"
)

// RepairGaps drops every sample whose time or voltage is NaN. The time column
// is scanned first, then the voltage column of what remains; each pass removes
// the offending positions from both columns so they stay index-aligned. The
// inputs are not modified.
func RepairGaps(time, voltage []float64, log monitoring.Logger) ([]float64, []float64, error) {
	if len(time) != len(voltage) {
		return nil, nil, fmt.Errorf("%w: %d time values, %d voltage values", ErrLengthMismatch, len(time), len(voltage))
	}

	t, v := time, voltage
	if bad := missingIndices(t); len(bad) > 0 {
		log.Errorf("missing time value(s) at %d sample(s), removing them", len(bad))
		t, v = removeIndices(t, v, bad)
	}
	if bad := missingIndices(v); len(bad) > 0 {
		log.Errorf("missing voltage value(s) at %d sample(s), removing them", len(bad))
		t, v = removeIndices(t, v, bad)
	}

	if len(t) == len(time) {
		// Nothing removed; still hand back copies so callers own the result.
		t = append([]float64(nil), time...)
		v = append([]float64(nil), voltage...)
	}
	return t, v, nil
}

// missingIndices returns the ascending positions of NaN entries.
func missingIndices(s []float64) []int {
	var idx []int
	for i, x := range s {
		if math.IsNaN(x) {
			idx = append(idx, i)
		}
	}
	return idx
}

// removeIndices returns copies of a and b without the positions in drop,
// which must be ascending.
func removeIndices(a, b []float64, drop []int) ([]float64, []float64) {
	n := len(a) - len(drop)
	outA := make([]float64, 0, n)
	outB := make([]float64, 0, n)
	j := 0
	for i := range a {
		if j < len(drop) && drop[j] == i {
			j++
			continue
		}
		outA = append(outA, a[i])
		outB = append(outB, b[i])
	}
	return outA, outB
}
