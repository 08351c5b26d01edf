// Package report writes the outputs of an analysis run: the metrics record as
// JSON, a static PNG plot and an interactive HTML chart.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/ecg.report/internal/ecg"
	"github.com/banshee-data/ecg.report/internal/fsutil"
)

// WriteJSON writes m to path as an indented JSON document, creating the parent
// directory if needed.
func WriteJSON(fsys fsutil.FileSystem, path string, m ecg.Metrics) error {
	if m.Beats == nil {
		m.Beats = []float64{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	data = append(data, '\n')
	return writeFile(fsys, path, data)
}

func writeFile(fsys fsutil.FileSystem, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}
