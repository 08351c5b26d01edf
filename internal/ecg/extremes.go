package ecg

import (
	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/ecg.report/internal/monitoring"
)

// VoltageExtremes returns the maximum and minimum of voltage and warns when
// either lies strictly outside [-limit, limit]. voltage must be non-empty.
func VoltageExtremes(voltage []float64, limit float64, log monitoring.Logger) (max, min float64) {
	max = floats.Max(voltage)
	min = floats.Min(voltage)
	if max > limit || min < -limit {
		log.Warnf("voltage outside normal range: max=%g min=%g limit=±%g", max, min, limit)
	}
	return max, min
}
