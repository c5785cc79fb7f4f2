/*
NAME
  plot.go

DESCRIPTION
  plot.go renders a waveform to a PNG file, for the CLI's -plot
  diagnostic flag. Non-core: used only for visual inspection during
  archival QA, never on the encode/decode path.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package analysis

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotWaveform renders samples (a single channel, interleaved data
// should be de-interleaved first) as a line plot and writes it to
// path as a PNG.
func PlotWaveform(path, title string, samples []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "amplitude"

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = float64(i)
		pts[i].Y = s
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "analysis: build line plotter")
	}
	p.Add(line)

	if err := p.Save(8*vg.Inch, 3*vg.Inch, path); err != nil {
		return errors.Wrap(err, "analysis: save plot")
	}
	return nil
}
