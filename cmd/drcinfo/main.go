/*
NAME
  drcinfo - describe DRC recordings.

DESCRIPTION
  drcinfo decodes DRC recordings and prints their frame count, duration,
  timestamps and levels. With -frames the statistics of each frame are
  listed, and with -plot a level plot is saved.

  Usage:

	drcinfo [flags] recording.drc ...

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// drcinfo prints summaries of DRC recordings.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ausocean/drc/codec/drc"
	"github.com/ausocean/drc/report"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.1.0"

const (
	logVerbosity = logging.Warning
	logSuppress  = true
)

const timeLayout = "2006-01-02 15:04:05.000"

func main() {
	showVersion := flag.Bool("version", false, "show version")
	locName := flag.String("loc", "Local", "time zone of recording timestamps")
	frames := flag.Bool("frames", false, "list the statistics of each frame")
	plotPath := flag.String("plot", "", "save a level plot; for more than one recording the name is suffixed with the recording name")
	verbose := flag.Bool("v", false, "log decoding progress")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	level := int8(logVerbosity)
	if *verbose {
		level = logging.Debug
	}
	log := logging.New(level, os.Stderr, logSuppress)

	if flag.NArg() == 0 {
		log.Fatal("no recordings given")
	}
	loc, err := time.LoadLocation(*locName)
	if err != nil {
		log.Fatal("could not load time zone", "location", *locName, "error", err.Error())
	}

	for _, path := range flag.Args() {
		s, err := summarize(path, loc, log)
		if err != nil {
			log.Fatal("could not read recording", "path", path, "error", err.Error())
		}
		printSummary(os.Stdout, path, s, *frames)

		if *plotPath == "" {
			continue
		}
		p := *plotPath
		if flag.NArg() > 1 {
			p = plotName(p, path)
		}
		err = report.Plot(s, p)
		if err != nil {
			log.Error("could not plot recording", "path", path, "error", err.Error())
		}
	}
}

func summarize(path string, loc *time.Location, log logging.Logger) (report.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.Summary{}, err
	}
	defer f.Close()
	frames, err := drc.Decode(f, drc.Location(loc), drc.Logger(log))
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(frames), nil
}

func printSummary(w io.Writer, path string, s report.Summary, frames bool) {
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  frames:   %d\n", s.Frames)
	fmt.Fprintf(w, "  samples:  %d\n", s.Samples)
	fmt.Fprintf(w, "  duration: %v\n", s.Duration)
	if s.Frames != 0 {
		fmt.Fprintf(w, "  first:    %s\n", s.First.Format(timeLayout))
		fmt.Fprintf(w, "  last:     %s\n", s.Last.Format(timeLayout))
	}
	fmt.Fprintf(w, "  rms:      %.1f\n", s.RMS)
	fmt.Fprintf(w, "  peak:     %d\n", s.Peak)
	if !frames || s.Frames == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "frame\ttimestamp\tmean\tstddev\trms\tpeak\t")
	for i, fs := range s.Stats {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.1f\t%.1f\t%d\t\n", i, fs.Timestamp.Format(timeLayout), fs.Mean, fs.StdDev, fs.RMS, fs.Peak)
	}
	tw.Flush()
}

// plotName returns plot path p suffixed with the base name of recording rec,
// e.g. level.png and Data_No_1.drc give level_Data_No_1.png.
func plotName(p, rec string) string {
	ext := filepath.Ext(p)
	base := strings.TrimSuffix(filepath.Base(rec), filepath.Ext(rec))
	return strings.TrimSuffix(p, ext) + "_" + base + ext
}
