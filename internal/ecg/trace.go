// Package ecg implements the single-lead ECG analysis pipeline: gap repair,
// range check, spectral band-pass filtering, beat detection and metric
// derivation. Every stage is a pure function over its inputs; diagnostics go
// to an injected monitoring.Logger.
package ecg

import "errors"

var (
	// ErrLengthMismatch is returned when the time and voltage columns differ in length.
	ErrLengthMismatch = errors.New("time and voltage sequences differ in length")
	// ErrDegenerateTrace is returned when a trace cannot support spectral analysis.
	ErrDegenerateTrace = errors.New("degenerate trace")
)

// Default analysis parameters.
const (
	DefaultLowCutHz      = 0.7
	DefaultHighCutHz     = 45.0
	DefaultOutlierCount  = 3
	DefaultPeakThreshold = 0.7
	DefaultVoltageLimit  = 300.0
)

// BeatMapping selects how beat amplitudes are mapped back to timestamps.
type BeatMapping string

const (
	// MapByIndex uses the sample index carried by every peak.
	MapByIndex BeatMapping = "index"
	// MapByValue looks each beat amplitude up in the filtered trace by exact
	// equality. Kept for output compatibility with earlier records.
	MapByValue BeatMapping = "value"
)

// Params tunes the pipeline. The zero value is not useful; start from DefaultParams.
type Params struct {
	LowCutHz      float64
	HighCutHz     float64
	OutlierCount  int
	PeakThreshold float64
	VoltageLimit  float64
	Mapping       BeatMapping
}

// DefaultParams returns the standard cardiac band-pass and detector settings.
func DefaultParams() Params {
	return Params{
		LowCutHz:      DefaultLowCutHz,
		HighCutHz:     DefaultHighCutHz,
		OutlierCount:  DefaultOutlierCount,
		PeakThreshold: DefaultPeakThreshold,
		VoltageLimit:  DefaultVoltageLimit,
		Mapping:       MapByIndex,
	}
}

// Metrics is the summary record for one trace. Field names and JSON keys are
// the on-disk format consumed by downstream reporting.
type Metrics struct {
	Duration        float64    `json:"duration"`
	VoltageExtremes [2]float64 `json:"voltage_extremes"`
	NumBeats        int        `json:"num_beats"`
	MeanHRBPM       int        `json:"mean_hr_bpm"`
	Beats           []float64  `json:"beats"`
}
