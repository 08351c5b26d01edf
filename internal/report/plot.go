package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/ecg.report/internal/ecg"
	"github.com/banshee-data/ecg.report/internal/fsutil"
)

var (
	rawColor      = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	filteredColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	beatColor     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// SavePlot renders the raw and filtered trace with the detected beats marked
// and writes it to path as a PNG.
func SavePlot(fsys fsutil.FileSystem, path, title string, res *ecg.Result) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Voltage"

	rawPts := make(plotter.XYs, len(res.Time))
	filtPts := make(plotter.XYs, len(res.Time))
	for i, t := range res.Time {
		rawPts[i] = plotter.XY{X: t, Y: res.Voltage[i]}
		filtPts[i] = plotter.XY{X: t, Y: real(res.Filtered[i])}
	}

	rawLine, err := plotter.NewLine(rawPts)
	if err != nil {
		return err
	}
	rawLine.Color = rawColor
	rawLine.Width = vg.Points(0.5)
	p.Add(rawLine)
	p.Legend.Add("raw", rawLine)

	filtLine, err := plotter.NewLine(filtPts)
	if err != nil {
		return err
	}
	filtLine.Color = filteredColor
	filtLine.Width = vg.Points(1)
	p.Add(filtLine)
	p.Legend.Add("filtered", filtLine)

	if idx := res.Summary.BeatIndices; len(idx) > 0 {
		beatPts := make(plotter.XYs, len(idx))
		for i, j := range idx {
			beatPts[i] = plotter.XY{X: res.Time[j], Y: real(res.Filtered[j])}
		}
		beats, err := plotter.NewScatter(beatPts)
		if err != nil {
			return err
		}
		beats.GlyphStyle.Color = beatColor
		beats.GlyphStyle.Radius = vg.Points(3)
		beats.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(beats)
		p.Legend.Add(fmt.Sprintf("beats (%d)", len(idx)), beats)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("render plot: %w", err)
	}
	return writeFile(fsys, path, buf.Bytes())
}
