// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers, chiefly synthetic ECG traces,
// to reduce duplication across test files.
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// SyntheticECG returns a noise-free ECG-like trace sampled at fs Hz for the
// given number of seconds at a fixed heart rate. Each cycle is a sum of
// gaussian P, Q, R, S and T waves riding on slow baseline wander; the R wave
// peaks at 32% of every cycle with amplitude close to 1.
func SyntheticECG(fs, seconds, hrBPM float64) (time, voltage []float64) {
	n := int(fs * seconds)
	time = make([]float64, n)
	voltage = make([]float64, n)
	cycle := 60 / hrBPM
	for i := 0; i < n; i++ {
		ts := float64(i) / fs
		phase := math.Mod(ts, cycle) / cycle

		baseline := 0.05 * math.Sin(2*math.Pi*0.1*ts)
		p := 0.08 * gauss(phase, 0.18, 0.03)
		q := -0.12 * gauss(phase, 0.30, 0.01)
		r := 1.00 * gauss(phase, 0.32, 0.008)
		s := -0.25 * gauss(phase, 0.35, 0.012)
		tw := 0.25 * gauss(phase, 0.60, 0.06)

		time[i] = ts
		voltage[i] = baseline + p + q + r + s + tw
	}
	return time, voltage
}

// RWaveTimes returns the nominal R-wave peak times SyntheticECG places within
// the first seconds of the trace.
func RWaveTimes(seconds, hrBPM float64) []float64 {
	cycle := 60 / hrBPM
	var out []float64
	for c := 0.0; c*cycle+0.32*cycle < seconds; c++ {
		out = append(out, c*cycle+0.32*cycle)
	}
	return out
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

// WriteTraceCSV writes a two-column trace with a header row into dir and
// returns the file path. NaN values are written as empty fields.
func WriteTraceCSV(t *testing.T, dir, name string, time, voltage []float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("time,voltage\n")
	for i := range time {
		fmt.Fprintf(&b, "%s,%s\n", field(time[i]), field(voltage[i]))
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	return path
}

func field(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%g", v)
}
