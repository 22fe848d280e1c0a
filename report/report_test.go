/*
NAME
  report_test.go

DESCRIPTION
  report_test.go provides testing for recording summaries and plots.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ausocean/drc/codec/drc"
)

var t0 = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func frame(t time.Time, s ...int16) drc.Frame {
	return drc.Frame{Header: drc.NewHeader(t), Samples: s}
}

func TestSummarize(t *testing.T) {
	frames := []drc.Frame{
		frame(t0, 3, -3, 3, -3),
		frame(t0.Add(time.Second), 1, 2, 3),
		frame(t0.Add(2*time.Second), -32768, 0),
	}

	want := Summary{
		Frames:   3,
		Samples:  9,
		Duration: 9 * time.Second / drc.SampleRate,
		First:    t0,
		Last:     t0.Add(2 * time.Second),
		RMS:      math.Sqrt((36 + 14 + 32768*32768) / 9.0),
		Peak:     32768,
		Stats: []FrameStats{
			{Timestamp: t0, Mean: 0, StdDev: math.Sqrt(12), RMS: 3, Peak: 3},
			{Timestamp: t0.Add(time.Second), Mean: 2, StdDev: 1, RMS: math.Sqrt(14.0 / 3), Peak: 3},
			{Timestamp: t0.Add(2 * time.Second), Mean: -16384, StdDev: math.Sqrt(2 * 16384 * 16384), RMS: math.Sqrt(32768 * 32768 / 2.0), Peak: 32768},
		},
	}

	got := Summarize(frames)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestSummarizeEdges(t *testing.T) {
	got := Summarize(nil)
	if got.Frames != 0 || got.Samples != 0 || len(got.Stats) != 0 || !got.First.IsZero() {
		t.Errorf("unexpected summary of no frames: %+v", got)
	}

	got = Summarize([]drc.Frame{frame(t0), frame(t0, 5)})
	want := []FrameStats{{Timestamp: t0}, {Timestamp: t0, Mean: 5, RMS: 5, Peak: 5}}
	if diff := cmp.Diff(want, got.Stats); diff != "" {
		t.Errorf("unexpected frame stats (-want +got):\n%s", diff)
	}
}

func TestPlot(t *testing.T) {
	frames := make([]drc.Frame, 10)
	for i := range frames {
		s := make([]int16, drc.SamplesPerFrame)
		for j := range s {
			s[j] = int16(100 * i * (j%2*2 - 1))
		}
		frames[i] = frame(t0.Add(time.Duration(i)*100*time.Millisecond), s...)
	}
	s := Summarize(frames)

	dir := t.TempDir()
	for _, name := range []string{"level.png", "level.svg"} {
		path := filepath.Join(dir, name)
		err := Plot(s, path)
		if err != nil {
			t.Fatalf("could not plot %s: %v", name, err)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(b) == 0 {
			t.Errorf("empty plot %s", name)
		}
	}

	b, err := os.ReadFile(filepath.Join(dir, "level.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Errorf("level.png is not a PNG")
	}
}

func TestPlotErrors(t *testing.T) {
	if err := Plot(Summary{}, filepath.Join(t.TempDir(), "x.png")); err != errNoFrames {
		t.Errorf("unexpected error for empty summary, got: %v, want: %v", err, errNoFrames)
	}
	s := Summarize([]drc.Frame{frame(t0, 1, 2)})
	if err := Plot(s, filepath.Join(t.TempDir(), "x.unknown")); err == nil {
		t.Errorf("expected error for unknown image format")
	}
}
