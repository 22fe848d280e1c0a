/*
DESCRIPTION
  main_test.go provides testing for drcinfo output.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ausocean/drc/codec/drc"
	"github.com/ausocean/drc/report"
)

func TestPlotName(t *testing.T) {
	tests := []struct {
		p, rec, want string
	}{
		{"level.png", "Data_No_1.drc", "level_Data_No_1.png"},
		{"/tmp/plots/level.svg", "/data/a.drc", "/tmp/plots/level_a.svg"},
		{"level", "b.drc", "level_b"},
	}
	for _, test := range tests {
		if got := plotName(test.p, test.rec); got != test.want {
			t.Errorf("plotName(%q, %q) = %q, want %q", test.p, test.rec, got, test.want)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	t0 := time.Date(2024, 1, 15, 10, 30, 0, 123e6, time.UTC)
	s := report.Summarize([]drc.Frame{
		{Header: drc.NewHeader(t0), Samples: []int16{3, -3}},
		{Header: drc.NewHeader(t0.Add(time.Second)), Samples: []int16{1, 1}},
	})

	var buf bytes.Buffer
	printSummary(&buf, "rec.drc", s, false)
	for _, want := range []string{"rec.drc\n", "frames:   2\n", "samples:  4\n", "first:    2024-01-15 10:30:00.123\n", "peak:     3\n"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "stddev") {
		t.Errorf("frame table printed without -frames")
	}

	buf.Reset()
	printSummary(&buf, "rec.drc", s, true)
	if n := strings.Count(buf.String(), "2024-01-15 10:30:0"); n != 4 {
		t.Errorf("unexpected number of timestamps, got: %d, want: 4\n%s", n, buf.String())
	}
}
