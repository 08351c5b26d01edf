package ecg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}

func heights(peaks []Peak) []float64 {
	out := make([]float64, len(peaks))
	for i, p := range peaks {
		out[i] = p.Height()
	}
	return out
}

func indices(peaks []Peak) []int {
	out := make([]int, len(peaks))
	for i, p := range peaks {
		out[i] = p.Index
	}
	return out
}

var spikeTrain = []float64{1, 2, 1, 3, 1, 2, 1, 2, 1, 3, 1, 2, 1, 3, 1, 2, 1, 3, 1, 2, 1, 3, 1}

func TestDetectBeats_SpikeTrain(t *testing.T) {
	t.Parallel()

	det := DetectBeats(toComplex(spikeTrain), DefaultParams())

	assert.Equal(t, []float64{3, 3, 3}, heights(det.Outliers))
	// The first occurrences of the maximum are taken.
	assert.Equal(t, []int{3, 9, 13}, indices(det.Outliers))
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 3, 2, 3}, heights(det.Wrapped))
	assert.Equal(t, []int{1, 5, 7, 11, 15, 17, 19, 21}, indices(det.Wrapped))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 1, 0, 1}, det.Normalized)
	// 5 is an interior peak; 7 is the last element, added by the edge rule.
	assert.Equal(t, []int{5, 7}, det.Refined)

	assert.Equal(t, []int{17, 21, 3, 9, 13}, indices(det.BeatPeaks()))
}

func TestDetectBeats_OutliersDescending(t *testing.T) {
	t.Parallel()

	x := []float64{0, 5, 0, 9, 0, 1, 0, 7, 0, 2, 0, 8, 0, 1.5, 0}
	det := DetectBeats(toComplex(x), DefaultParams())

	assert.Equal(t, []float64{9, 8, 7}, heights(det.Outliers))
	assert.Equal(t, []float64{5, 1, 2, 1.5}, heights(det.Wrapped))
	assert.Equal(t, []float64{1, 0, 0.25, 0.125}, det.Normalized)
	// Only the first element clears the threshold, via the edge rule.
	assert.Equal(t, []int{0}, det.Refined)
}

func TestDetectBeats_FirstAndLastEdges(t *testing.T) {
	t.Parallel()

	x := []float64{0, 10, 0, 11, 0, 12, 0, 9, 0, 1, 0, 2, 0, 1, 0, 9.5, 0}
	det := DetectBeats(toComplex(x), DefaultParams())

	require.Equal(t, []float64{9, 1, 2, 1, 9.5}, heights(det.Wrapped))
	assert.Equal(t, []int{0, 4}, det.Refined)
}

func TestDetectBeats_FewPeaks(t *testing.T) {
	t.Parallel()

	t.Run("fewer than outlier count", func(t *testing.T) {
		t.Parallel()
		det := DetectBeats(toComplex([]float64{0, 1, 0, 2, 0}), DefaultParams())
		assert.Equal(t, []float64{2, 1}, heights(det.Outliers))
		assert.Empty(t, det.Wrapped)
		assert.Empty(t, det.Normalized)
		assert.Empty(t, det.Refined)
	})

	t.Run("constant remainder", func(t *testing.T) {
		t.Parallel()
		x := []float64{0, 4, 0, 4, 0, 4, 0, 1, 0, 1, 0, 1, 0}
		det := DetectBeats(toComplex(x), DefaultParams())
		assert.Equal(t, []float64{0, 0, 0}, det.Normalized)
		assert.Empty(t, det.Refined)
	})

	t.Run("monotonic", func(t *testing.T) {
		t.Parallel()
		det := DetectBeats(toComplex([]float64{1, 2, 3, 4}), DefaultParams())
		assert.Empty(t, det.Outliers)
		assert.Empty(t, det.Refined)
	})
}

func TestLocalMaxima(t *testing.T) {
	t.Parallel()

	x := []float64{3, 1, 2, 2, 1, 5, 1, 0.5, 0.9, 0.8}
	// Endpoints and plateaus are not peaks.
	assert.Equal(t, []int{5, 8}, localMaxima(x, 0))
	assert.Equal(t, []int{5}, localMaxima(x, 0.9))
}
