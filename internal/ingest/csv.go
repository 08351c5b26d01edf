// Package ingest reads ECG traces from delimited text files.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/ecg.report/internal/fsutil"
)

// ReadOptions controls how a trace file is parsed.
type ReadOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// ReadCSV reads a two-column (time, voltage) trace from path. A leading row
// with no numeric field is treated as a header and skipped. Fields that are
// empty or not numbers become NaN, as do columns missing from short rows;
// extra columns are ignored.
func ReadCSV(fsys fsutil.FileSystem, path string, opts ReadOptions) (time, voltage []float64, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	time, voltage, err = Parse(f, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("read trace %s: %w", path, err)
	}
	return time, voltage, nil
}

// Parse reads a trace from r; see ReadCSV.
func Parse(r io.Reader, opts ReadOptions) (time, voltage []float64, err error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		t, v := column(rec, 0), column(rec, 1)
		if first {
			first = false
			if math.IsNaN(t) && math.IsNaN(v) && !blank(rec) {
				continue
			}
		}
		time = append(time, t)
		voltage = append(voltage, v)
	}
	return time, voltage, nil
}

func column(rec []string, i int) float64 {
	if i >= len(rec) {
		return math.NaN()
	}
	s := strings.TrimSpace(rec[i])
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func blank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
