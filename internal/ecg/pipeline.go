package ecg

import (
	"fmt"

	"github.com/banshee-data/ecg.report/internal/monitoring"
)

// Processor runs the full analysis for one trace at a time. It holds no state
// between calls, so one Processor may be reused for many traces.
type Processor struct {
	Params Params
	Log    monitoring.Logger
}

// NewProcessor returns a Processor using params and log. A nil log writes to
// monitoring.Logf.
func NewProcessor(params Params, log monitoring.Logger) *Processor {
	return &Processor{Params: params, Log: log}
}

// Result carries the metrics record together with the intermediate signals
// used to produce it.
type Result struct {
	Time      []float64
	Voltage   []float64
	Filtered  []complex128
	Detection Detection
	Summary   Summary
	Metrics   Metrics
}

// Process repairs, filters and analyses one trace.
func (p *Processor) Process(time, voltage []float64) (*Result, error) {
	log := p.Log
	log.Infof("processing trace of %d sample(s)", len(time))

	t, v, err := RepairGaps(time, voltage, log)
	if err != nil {
		return nil, err
	}
	if len(t) < 2 {
		return nil, fmt.Errorf("%w: %d usable sample(s) after gap repair", ErrDegenerateTrace, len(t))
	}

	vmax, vmin := VoltageExtremes(v, p.Params.VoltageLimit, log)

	filtered, err := BandPass(t, v, p.Params)
	if err != nil {
		return nil, err
	}

	det := DetectBeats(filtered, p.Params)
	sum, err := Aggregate(det, t, filtered, p.Params.Mapping, log)
	if err != nil {
		return nil, err
	}

	m := Metrics{
		Duration:        sum.Duration,
		VoltageExtremes: [2]float64{vmax, vmin},
		NumBeats:        sum.NumBeats,
		MeanHRBPM:       sum.MeanHRBPM,
		Beats:           sum.BeatTimes,
	}
	log.Infof("metrics assembled: %d beat(s), %d bpm over %gs", m.NumBeats, m.MeanHRBPM, m.Duration)

	return &Result{
		Time:      t,
		Voltage:   v,
		Filtered:  filtered,
		Detection: det,
		Summary:   sum,
		Metrics:   m,
	}, nil
}
