/*
NAME
  wav.go

DESCRIPTION
  wav.go provides wav implementations of Sink.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package export

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ausocean/drc/codec/pcm"
	wavcodec "github.com/ausocean/drc/codec/wav"
)

const wavFormat = 1

// WAVSink writes wav to a seekable destination, patching chunk sizes on
// Close.
type WAVSink struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	data   []int
	wrote  bool
	closed bool
}

// NewWAVSink returns a WAVSink writing audio of format f to dst. dst is not
// closed by the sink.
func NewWAVSink(dst io.WriteSeeker, f Format) (*WAVSink, error) {
	err := f.validate()
	if err != nil {
		return nil, err
	}
	return &WAVSink{
		enc: wav.NewEncoder(dst, f.SampleRate, f.BitDepth, f.Channels, wavFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			SourceBitDepth: f.BitDepth,
		},
	}, nil
}

// Write implements Sink.
func (s *WAVSink) Write(samples []int16) error {
	if s.closed {
		return errClosed
	}
	s.data = s.data[:0]
	for _, v := range samples {
		s.data = append(s.data, int(v))
	}
	s.buf.Data = s.data
	s.wrote = true
	return s.enc.Write(s.buf)
}

// Close implements Sink.
func (s *WAVSink) Close() error {
	if s.closed {
		return nil
	}
	// The encoder only writes its header with the first buffer.
	if !s.wrote {
		err := s.Write(nil)
		if err != nil {
			return err
		}
	}
	s.closed = true
	return s.enc.Close()
}

// StreamWAVSink writes wav to a destination that cannot seek, e.g. a pipe.
// Samples are held until Close so that the header can declare their length.
type StreamWAVSink struct {
	dst     io.Writer
	md      wavcodec.Metadata
	samples []int16
	closed  bool
}

// NewStreamWAVSink returns a StreamWAVSink writing audio of format f to dst.
func NewStreamWAVSink(dst io.Writer, f Format) (*StreamWAVSink, error) {
	err := f.validate()
	if err != nil {
		return nil, err
	}
	md := wavcodec.Metadata{
		AudioFormat: wavcodec.PCMFormat,
		Channels:    f.Channels,
		SampleRate:  f.SampleRate,
		BitDepth:    f.BitDepth,
	}
	return &StreamWAVSink{dst: dst, md: md}, nil
}

// Write implements Sink.
func (s *StreamWAVSink) Write(samples []int16) error {
	if s.closed {
		return errClosed
	}
	s.samples = append(s.samples, samples...)
	return nil
}

// Close implements Sink.
func (s *StreamWAVSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	b := pcm.Int16ToBytes(s.samples)
	w, err := wavcodec.NewWriter(s.dst, s.md, len(b))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	if err != nil {
		return err
	}
	return w.Close()
}
