/*
NAME
  convert.go

DESCRIPTION
  convert.go provides conversion of DRC recording files to audio files.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package convert converts DRC recording files to wav or FLAC audio files,
// singly, in batches or as they appear in a watched directory.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ausocean/drc/codec/drc"
	"github.com/ausocean/drc/codec/pcm"
	"github.com/ausocean/drc/export"
)

// Stdout is the path that directs output to standard output.
const Stdout = "-"

// stdout is the destination of output to Stdout.
var stdout io.Writer = os.Stdout

// Result describes a completed conversion.
type Result struct {
	Input   string
	Output  string
	Frames  int // Frames decoded from the input.
	Samples int // Samples written to the output.
}

// Convert converts the DRC recording at in to audio at out as configured by
// c, which must have been validated. The output is written to a temporary file
// beside out and renamed into place only once complete, so a failed
// conversion leaves no output.
func Convert(c *Config, in, out string) (Result, error) {
	res := Result{Input: in, Output: out}

	loc, err := c.location()
	if err != nil {
		return res, fmt.Errorf("could not load time zone: %w", err)
	}
	procs, err := c.processors()
	if err != nil {
		return res, fmt.Errorf("could not create processors: %w", err)
	}

	f, err := os.Open(in)
	if err != nil {
		return res, fmt.Errorf("could not open input: %w", err)
	}
	defer f.Close()

	frames, err := drc.Decode(f, drc.Location(loc), drc.Logger(c.Logger))
	if err != nil {
		return res, fmt.Errorf("could not decode %s: %w", in, err)
	}
	res.Frames = len(frames)
	c.Logger.Debug("decoded recording", "input", in, "frames", len(frames))

	format := export.Format{Channels: drc.Channels, SampleRate: int(c.OutputRate), BitDepth: drc.BitDepth}
	if out == Stdout {
		sink, err := c.streamSink(stdout, format)
		if err != nil {
			return res, err
		}
		res.Samples, err = export.Export(frames, sink, procs...)
		return res, err
	}

	res.Samples, err = writeAtomic(out, func(w *os.File) (int, error) {
		sink, err := c.fileSink(w, format)
		if err != nil {
			return 0, err
		}
		return export.Export(frames, sink, procs...)
	})
	if err != nil {
		return res, err
	}
	c.Logger.Info("converted recording", "input", in, "output", out, "frames", res.Frames, "samples", res.Samples)
	return res, nil
}

// writeAtomic creates a temporary file in the directory of path, calls write
// with it and renames it to path if write succeeds. The temporary file is
// removed on failure.
func writeAtomic(path string, write func(*os.File) (int, error)) (n int, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("could not create output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	n, err = write(tmp)
	if err != nil {
		return 0, fmt.Errorf("could not write %s: %w", path, err)
	}
	err = tmp.Chmod(0o644)
	if err != nil {
		return 0, fmt.Errorf("could not set output permissions: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return 0, fmt.Errorf("could not close output: %w", err)
	}
	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return 0, fmt.Errorf("could not rename output: %w", err)
	}
	return n, nil
}

// fileSink returns the configured sink writing to a seekable file.
func (c *Config) fileSink(w io.WriteSeeker, f export.Format) (export.Sink, error) {
	if c.Format == FormatFLAC {
		return export.NewFLACSink(w, f)
	}
	return export.NewWAVSink(w, f)
}

// streamSink returns the configured sink writing to a stream. w is never
// seeked, even if it is an *os.File, since stdout may be a pipe.
func (c *Config) streamSink(w io.Writer, f export.Format) (export.Sink, error) {
	if c.Format == FormatFLAC {
		return export.NewFLACSink(struct{ io.Writer }{w}, f)
	}
	return export.NewStreamWAVSink(w, f)
}

// processors returns the sample processing configured by c, applied in
// order: high-pass, low-pass, gain and decimation. When decimating, a low-pass
// at the output Nyquist frequency is used if none is configured.
func (c *Config) processors() ([]pcm.Processor, error) {
	var procs []pcm.Processor
	if c.HighPass > 0 {
		hp, err := pcm.NewHighPass(c.HighPass, drc.SampleRate, int(c.FilterTaps))
		if err != nil {
			return nil, err
		}
		procs = append(procs, hp)
	}

	lowPass := c.LowPass
	if lowPass == 0 && c.OutputRate < drc.SampleRate {
		lowPass = float64(c.OutputRate) / 2
	}
	if lowPass > 0 {
		lp, err := pcm.NewLowPass(lowPass, drc.SampleRate, int(c.FilterTaps))
		if err != nil {
			return nil, err
		}
		procs = append(procs, lp)
	}

	if c.Gain != 1 {
		procs = append(procs, pcm.NewAmplifier(c.Gain))
	}

	if c.OutputRate != drc.SampleRate {
		d, err := pcm.NewDecimator(drc.SampleRate, c.OutputRate)
		if err != nil {
			return nil, err
		}
		procs = append(procs, d)
	}
	return procs, nil
}
