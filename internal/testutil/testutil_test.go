package testutil

import (
	"math"
	"os"
	"strings"
	"testing"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()
	AssertNoError(t, nil)
}

func TestSyntheticECG(t *testing.T) {
	t.Parallel()

	time, voltage := SyntheticECG(250, 4, 60)
	if len(time) != 1000 || len(voltage) != 1000 {
		t.Fatalf("len = %d/%d, want 1000", len(time), len(voltage))
	}
	if time[1]-time[0] != 1.0/250 {
		t.Errorf("interval = %g, want %g", time[1]-time[0], 1.0/250)
	}

	// The R wave of the first cycle sits at 0.32s.
	peak := 0
	for i := 0; i < 250; i++ {
		if voltage[i] > voltage[peak] {
			peak = i
		}
	}
	if math.Abs(time[peak]-0.32) > 0.005 {
		t.Errorf("first R wave at %gs, want 0.32s", time[peak])
	}
}

func TestRWaveTimes(t *testing.T) {
	t.Parallel()

	got := RWaveTimes(3, 60)
	want := []float64{0.32, 1.32, 2.32}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestWriteTraceCSV(t *testing.T) {
	t.Parallel()

	path := WriteTraceCSV(t, t.TempDir(), "trace.csv", []float64{0, 1}, []float64{math.NaN(), 0.5})
	data, err := os.ReadFile(path)
	AssertNoError(t, err)
	if got, want := string(data), "time,voltage\n0,\n1,0.5\n"; got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
	if !strings.HasSuffix(path, "trace.csv") {
		t.Errorf("path = %q", path)
	}
}
