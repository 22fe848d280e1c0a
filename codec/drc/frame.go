/*
NAME
  frame.go

DESCRIPTION
  frame.go provides decoding and export encoding of DRC frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package drc

import (
	"encoding/binary"
	"io"
	"time"
)

// Frame is a decoded DRC frame. Samples holds only the retained part of the
// payload, in recording order.
type Frame struct {
	Header  Header
	Samples []int16
}

// Duration returns the playback duration of the frame's retained samples.
func (f Frame) Duration() time.Duration {
	return time.Duration(len(f.Samples)) * time.Second / SampleRate
}

// DecodeFrame reads the payload that follows header h from r and returns the
// resulting frame. A payload shorter than PayloadSize is fatal and reported
// as ErrTruncated.
func DecodeFrame(r io.Reader, h Header) (Frame, error) {
	return decodeFrame(r, h, make([]byte, PayloadSize))
}

// decodeFrame is DecodeFrame with a caller provided payload buffer, which
// must be PayloadSize long. buf is not retained.
func decodeFrame(r io.Reader, h Header, buf []byte) (Frame, error) {
	_, err := io.ReadFull(r, buf)
	if err != nil {
		return Frame{}, &fieldError{"payload", readErr(err)}
	}
	return Frame{Header: h, Samples: swapSamples(buf[TrimStart*2 : TrimEnd*2])}, nil
}

// swapSamples decodes b as 16 bit samples stored with their bytes swapped,
// i.e. the pair [a, b] holds the little endian value of [b, a].
func swapSamples(b []byte) []int16 {
	s := make([]int16, len(b)/2)
	for i := range s {
		s[i] = int16(uint16(b[2*i+1]) | uint16(b[2*i])<<8)
	}
	return s
}

// Encode returns the export encoding of f: the header encoding followed by
// the retained samples as little endian 16 bit values. The result is not the
// layout read by DecodeFrame; samples are not swapped and the payload is not
// padded back to PayloadSize.
func (f Frame) Encode() []byte {
	b := make([]byte, 0, EncodedHeaderSize+2*len(f.Samples))
	b = f.Header.appendEncoding(b)
	for _, s := range f.Samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	return b
}
