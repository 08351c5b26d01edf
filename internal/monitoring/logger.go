package monitoring

import (
	"fmt"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Logger is a diagnostic sink handed to each analysis stage. A nil Logger
// writes through the package-level Logf.
type Logger func(format string, v ...interface{})

// Prefixed returns a Logger that tags every line with prefix, typically the
// trace name, so that several traces processed in one run can be told apart.
func Prefixed(prefix string, base Logger) Logger {
	return func(format string, v ...interface{}) {
		base.printf("["+prefix+"] "+format, v...)
	}
}

func (l Logger) printf(format string, v ...interface{}) {
	if l == nil {
		Logf(format, v...)
		return
	}
	l(format, v...)
}

// Infof logs a routine event.
func (l Logger) Infof(format string, v ...interface{}) { l.printf("INFO: "+format, v...) }

// Warnf logs an anomaly that does not stop processing.
func (l Logger) Warnf(format string, v ...interface{}) { l.printf("WARNING: "+format, v...) }

// Errorf logs data that had to be repaired or discarded.
func (l Logger) Errorf(format string, v ...interface{}) { l.printf("ERROR: "+format, v...) }

// Recorder collects formatted log lines in memory.
type Recorder struct {
	Lines []string
}

// Logger returns a Logger appending to r.
func (r *Recorder) Logger() Logger {
	return func(format string, v ...interface{}) {
		r.Lines = append(r.Lines, fmt.Sprintf(format, v...))
	}
}
