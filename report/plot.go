/*
NAME
  plot.go

DESCRIPTION
  plot.go provides plotting of the per frame levels of a DRC recording.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot dimensions.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4 * vg.Inch
)

var errNoFrames = errors.New("no frames to plot")

// Plot saves a line plot of the RMS and peak level of each frame of s against
// time to path. The image format is chosen by the extension of path, e.g.
// .png or .svg.
func Plot(s Summary, path string) error {
	if len(s.Stats) == 0 {
		return errNoFrames
	}

	rms := make(plotter.XYs, len(s.Stats))
	peak := make(plotter.XYs, len(s.Stats))
	step := s.Duration.Seconds() / float64(len(s.Stats))
	for i, fs := range s.Stats {
		t := float64(i) * step
		rms[i].X, rms[i].Y = t, fs.RMS
		peak[i].X, peak[i].Y = t, float64(fs.Peak)
	}

	p := plot.New()
	p.Title.Text = "Recording level"
	if !s.First.IsZero() {
		p.Title.Text += " from " + s.First.Format("2006-01-02 15:04:05")
	}
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Level"

	rmsLine, err := plotter.NewLine(rms)
	if err != nil {
		return fmt.Errorf("could not create RMS line: %w", err)
	}
	peakLine, err := plotter.NewLine(peak)
	if err != nil {
		return fmt.Errorf("could not create peak line: %w", err)
	}
	peakLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), rmsLine, peakLine)
	p.Legend.Add("RMS", rmsLine)
	p.Legend.Add("peak", peakLine)

	err = p.Save(plotWidth, plotHeight, path)
	if err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	return nil
}
