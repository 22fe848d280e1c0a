/*
NAME
  flac.go

DESCRIPTION
  flac.go provides a FLAC implementation of Sink.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package export

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// flacBlockSize is the number of inter-channel samples per FLAC frame.
const flacBlockSize = 4096

// FLACSink writes lossless FLAC audio stored in verbatim subframes.
type FLACSink struct {
	enc      *flac.Encoder
	f        Format
	channels frame.Channels
	pending  []int16 // Interleaved samples not yet forming a full block.
	num      uint64  // Number of the next frame.
	closed   bool
}

// NewFLACSink returns a FLACSink writing audio of format f to dst. Mono and
// stereo audio are supported. If dst is an io.WriteSeeker the stream info is
// updated with the total number of samples on Close. dst is not closed by the
// sink.
func NewFLACSink(dst io.Writer, f Format) (*FLACSink, error) {
	err := f.validate()
	if err != nil {
		return nil, err
	}
	var ch frame.Channels
	switch f.Channels {
	case 1:
		ch = frame.ChannelsMono
	case 2:
		ch = frame.ChannelsLR
	default:
		return nil, errInvalidChannels
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(f.SampleRate),
		NChannels:     uint8(f.Channels),
		BitsPerSample: uint8(f.BitDepth),
	}
	// The encoder closes destinations that are io.Closers, so hide Close.
	var w io.Writer = struct{ io.Writer }{dst}
	if ws, ok := dst.(io.WriteSeeker); ok {
		w = struct{ io.WriteSeeker }{ws}
	}
	enc, err := flac.NewEncoder(w, info)
	if err != nil {
		return nil, fmt.Errorf("could not create FLAC encoder: %w", err)
	}
	return &FLACSink{enc: enc, f: f, channels: ch}, nil
}

// Write implements Sink.
func (s *FLACSink) Write(samples []int16) error {
	if s.closed {
		return errClosed
	}
	s.pending = append(s.pending, samples...)
	block := flacBlockSize * s.f.Channels
	for len(s.pending) >= block {
		err := s.writeFrame(s.pending[:block])
		if err != nil {
			return err
		}
		s.pending = s.pending[block:]
	}
	return nil
}

// Close implements Sink.
func (s *FLACSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if n := len(s.pending) / s.f.Channels; n > 0 {
		err := s.writeFrame(s.pending[:n*s.f.Channels])
		if err != nil {
			return err
		}
	}
	return s.enc.Close()
}

// writeFrame encodes interleaved samples as a single FLAC frame.
func (s *FLACSink) writeFrame(samples []int16) error {
	n := len(samples) / s.f.Channels
	subframes := make([]*frame.Subframe, s.f.Channels)
	for c := range subframes {
		sub := &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   make([]int32, n),
			NSamples:  n,
		}
		for i := range sub.Samples {
			sub.Samples[i] = int32(samples[i*s.f.Channels+c])
		}
		subframes[c] = sub
	}

	f := &frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			BlockSize:         uint16(n),
			SampleRate:        uint32(s.f.SampleRate),
			Channels:          s.channels,
			BitsPerSample:     uint8(s.f.BitDepth),
			Num:               s.num,
		},
		Subframes: subframes,
	}
	err := s.enc.WriteFrame(f)
	if err != nil {
		return fmt.Errorf("could not write FLAC frame %d: %w", s.num, err)
	}
	s.num++
	return nil
}
