/*
NAME
  export.go

DESCRIPTION
  export.go provides export of decoded DRC frames to pcm audio sinks.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package export writes the samples of decoded DRC frames to audio
// containers.
package export

import (
	"errors"
	"fmt"

	"github.com/ausocean/drc/codec/drc"
	"github.com/ausocean/drc/codec/pcm"
)

// Format describes the pcm audio accepted by a Sink. Samples for more than
// one channel are interleaved.
type Format struct {
	Channels   int
	SampleRate int
	BitDepth   int
}

// DRC is the format of the samples in decoded DRC frames.
var DRC = Format{Channels: drc.Channels, SampleRate: drc.SampleRate, BitDepth: drc.BitDepth}

var (
	errInvalidChannels = errors.New("invalid number of channels")
	errInvalidRate     = errors.New("invalid sample rate")
	errInvalidBitDepth = errors.New("unsupported bit depth")
	errClosed          = errors.New("sink closed")
)

func (f Format) validate() error {
	switch {
	case f.Channels <= 0:
		return errInvalidChannels
	case f.SampleRate <= 0:
		return errInvalidRate
	case f.BitDepth != 16:
		return errInvalidBitDepth
	}
	return nil
}

// Sink is a destination for 16 bit pcm samples. Close finalises the output
// and must be called once all samples are written; a sink closed without any
// samples written holds valid, empty audio.
type Sink interface {
	Write(s []int16) error
	Close() error
}

// Samples returns the samples of frames concatenated in frame order.
func Samples(frames []drc.Frame) []int16 {
	var n int
	for _, f := range frames {
		n += len(f.Samples)
	}
	s := make([]int16, 0, n)
	for _, f := range frames {
		s = append(s, f.Samples...)
	}
	return s
}

// Export writes the samples of frames, in order and without gaps, to sink
// after running them through procs, and then closes sink. It returns the
// number of samples written.
func Export(frames []drc.Frame, sink Sink, procs ...pcm.Processor) (int, error) {
	s, err := pcm.Apply(Samples(frames), procs...)
	if err != nil {
		return 0, fmt.Errorf("could not process samples: %w", err)
	}
	err = sink.Write(s)
	if err != nil {
		return 0, fmt.Errorf("could not write samples: %w", err)
	}
	err = sink.Close()
	if err != nil {
		return 0, fmt.Errorf("could not close sink: %w", err)
	}
	return len(s), nil
}
