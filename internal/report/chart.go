package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/ecg.report/internal/ecg"
	"github.com/banshee-data/ecg.report/internal/fsutil"
)

// RenderChart writes an interactive HTML chart of the filtered trace with the
// detected beats overlaid.
func RenderChart(w io.Writer, title string, res *ecg.Result) error {
	filtered := make([]opts.LineData, len(res.Time))
	for i, t := range res.Time {
		filtered[i] = opts.LineData{Value: []interface{}{t, real(res.Filtered[i])}}
	}

	beats := make([]opts.ScatterData, len(res.Summary.BeatIndices))
	for i, j := range res.Summary.BeatIndices {
		beats[i] = opts.ScatterData{Value: []interface{}{res.Time[j], real(res.Filtered[j])}}
	}

	m := res.Metrics
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("beats=%d mean_hr=%d bpm duration=%gs", m.NumBeats, m.MeanHRBPM, m.Duration),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Voltage"}),
	)
	line.AddSeries("filtered", filtered, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	scatter := charts.NewScatter()
	scatter.AddSeries("beats", beats, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	line.Overlap(scatter)

	return line.Render(w)
}

// SaveChart renders the chart into path.
func SaveChart(fsys fsutil.FileSystem, path, title string, res *ecg.Result) error {
	var buf bytes.Buffer
	if err := RenderChart(&buf, title, res); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return writeFile(fsys, path, buf.Bytes())
}
