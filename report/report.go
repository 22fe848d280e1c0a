/*
NAME
  report.go

DESCRIPTION
  report.go provides summary statistics for decoded DRC recordings.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package report summarises decoded DRC recordings and plots their levels.
package report

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/drc/codec/drc"
)

// FrameStats holds the statistics of the samples of one frame.
type FrameStats struct {
	Timestamp time.Time
	Mean      float64
	StdDev    float64
	RMS       float64
	Peak      int // Largest absolute sample value.
}

// Summary describes a recording.
type Summary struct {
	Frames   int
	Samples  int
	Duration time.Duration // Duration of the audio at the DRC sample rate.
	First    time.Time     // Timestamp of the first frame.
	Last     time.Time     // Timestamp of the last frame.
	RMS      float64       // RMS of all samples.
	Peak     int
	Stats    []FrameStats
}

// Summarize returns the summary of frames.
func Summarize(frames []drc.Frame) Summary {
	s := Summary{Frames: len(frames), Stats: make([]FrameStats, len(frames))}
	if len(frames) == 0 {
		return s
	}
	s.First = frames[0].Header.Timestamp
	s.Last = frames[len(frames)-1].Header.Timestamp

	var sumSq float64
	for i, f := range frames {
		x := toFloats(f.Samples)
		fs := FrameStats{Timestamp: f.Header.Timestamp}
		if len(x) != 0 {
			sq := floats.Dot(x, x)
			sumSq += sq
			fs.Mean, fs.StdDev = stat.MeanStdDev(x, nil)
			fs.RMS = math.Sqrt(sq / float64(len(x)))
			fs.Peak = int(math.Max(floats.Max(x), -floats.Min(x)))
		}
		if len(x) < 2 {
			fs.StdDev = 0
		}
		if fs.Peak > s.Peak {
			s.Peak = fs.Peak
		}
		s.Samples += len(x)
		s.Duration += f.Duration()
		s.Stats[i] = fs
	}
	if s.Samples != 0 {
		s.RMS = math.Sqrt(sumSq / float64(s.Samples))
	}
	return s
}

func toFloats(s []int16) []float64 {
	f := make([]float64, len(s))
	for i, v := range s {
		f[i] = float64(v)
	}
	return f
}
