package ecg

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ecg.report/internal/monitoring"
)

func TestRepairGaps(t *testing.T) {
	t.Parallel()
	nan := math.NaN()

	tests := []struct {
		name        string
		time        []float64
		voltage     []float64
		wantTime    []float64
		wantVoltage []float64
		wantLines   int
	}{
		{
			name:        "missing time",
			time:        []float64{1, 2, nan, 4, 5},
			voltage:     []float64{0.1, 0.2, 0.3, 0.4, 0.5},
			wantTime:    []float64{1, 2, 4, 5},
			wantVoltage: []float64{0.1, 0.2, 0.4, 0.5},
			wantLines:   1,
		},
		{
			name:        "missing voltage",
			time:        []float64{1, 2, 3, 4, 5},
			voltage:     []float64{0.1, nan, 0.3, 0.4, nan},
			wantTime:    []float64{1, 3, 4},
			wantVoltage: []float64{0.1, 0.3, 0.4},
			wantLines:   1,
		},
		{
			name:        "several gaps in both columns",
			time:        []float64{nan, 1, 2, nan, 4, 5, 6, nan},
			voltage:     []float64{0.0, 0.1, nan, 0.3, 0.4, nan, 0.6, 0.7},
			wantTime:    []float64{1, 4, 6},
			wantVoltage: []float64{0.1, 0.4, 0.6},
			wantLines:   2,
		},
		{
			name:        "same index missing in both",
			time:        []float64{1, nan, 3, 4},
			voltage:     []float64{0.1, nan, 0.3, nan},
			wantTime:    []float64{1, 3},
			wantVoltage: []float64{0.1, 0.3},
			wantLines:   2,
		},
		{
			name:        "nothing missing",
			time:        []float64{1, 2},
			voltage:     []float64{0.1, 0.2},
			wantTime:    []float64{1, 2},
			wantVoltage: []float64{0.1, 0.2},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &monitoring.Recorder{}
			gotT, gotV, err := RepairGaps(tt.time, tt.voltage, rec.Logger())
			require.NoError(t, err)
			assert.Equal(t, tt.wantTime, gotT)
			assert.Equal(t, tt.wantVoltage, gotV)
			assert.Len(t, rec.Lines, tt.wantLines)
		})
	}
}

func TestRepairGaps_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	time := []float64{1, math.NaN(), 3}
	voltage := []float64{0.1, 0.2, 0.3}
	gotT, _, err := RepairGaps(time, voltage, func(string, ...interface{}) {})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(time[1]))
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, voltage)

	gotT[0] = 99
	assert.Equal(t, 1.0, time[0])
}

func TestRepairGaps_LengthMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := RepairGaps([]float64{1, 2}, []float64{1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestVoltageExtremes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		voltage  []float64
		wantMax  float64
		wantMin  float64
		wantWarn bool
	}{
		{"in range", []float64{1, 2, 3, 4, 5, 3, 2}, 5, 1, false},
		{"boundary", []float64{300, 0, -300}, 300, -300, false},
		{"too high", []float64{0, 300.5}, 300.5, 0, true},
		{"too low", []float64{-301, 0}, 0, -301, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &monitoring.Recorder{}
			max, min := VoltageExtremes(tt.voltage, DefaultVoltageLimit, rec.Logger())
			assert.Equal(t, tt.wantMax, max)
			assert.Equal(t, tt.wantMin, min)
			assert.Equal(t, tt.wantWarn, len(rec.Lines) == 1)
		})
	}
}
