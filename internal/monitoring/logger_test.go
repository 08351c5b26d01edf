package monitoring

import (
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("Custom logger was not called")
	}

	// nil installs a no-op
	called = false
	SetLogger(nil)
	Logf("test")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestNilLoggerUsesPackageLogf(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, format)
	})

	var l Logger
	l.Warnf("voltage %v", 301.0)
	if len(got) != 1 || !strings.HasPrefix(got[0], "WARNING: ") {
		t.Fatalf("got %q, want one WARNING line", got)
	}
}

func TestLevelsAndPrefix(t *testing.T) {
	rec := &Recorder{}
	l := Prefixed("trace01", rec.Logger())

	l.Infof("start %d", 1)
	l.Warnf("range")
	l.Errorf("gap at %d", 7)

	want := []string{
		"[trace01] INFO: start 1",
		"[trace01] WARNING: range",
		"[trace01] ERROR: gap at 7",
	}
	if len(rec.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(rec.Lines), len(want))
	}
	for i := range want {
		if rec.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, rec.Lines[i], want[i])
		}
	}
}
