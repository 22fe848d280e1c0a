/*
NAME
  drc.go

DESCRIPTION
  drc.go defines the DRC recording layout constants and the decode errors
  shared by the header, frame and stream codecs.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package drc provides decoding of DRC recordings, a sequence of fixed size
// timestamped frames carrying 16 bit audio samples, along with the export
// encoding of decoded frames.
//
// A DRC frame is laid out as follows:
//
//	offset  size   field
//	0       4      magic, 0x000007D0 little endian
//	4       46     timestamp text, 16 bit LE code units, NUL terminated
//	50      46     reserved, not interpreted
//	96      40016  payload, 20008 byte swapped 16 bit samples
//
// Only samples [TrimStart, TrimEnd) of each payload are retained.
package drc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Magic identifies a valid frame header.
const Magic uint32 = 0x000007D0

// Header field sizes in bytes.
const (
	magicSize     = 4
	TimestampSize = 0x2E
	ReservedSize  = 0x2E
	HeaderSize    = magicSize + TimestampSize + ReservedSize
)

// Payload layout.
const (
	PayloadSize = 0x9C50          // Raw sample block size in bytes.
	RawSamples  = PayloadSize / 2 // Number of 16 bit values in a payload.
	FrameSize   = HeaderSize + PayloadSize
)

// The retention window of each payload. Samples outside [TrimStart, TrimEnd)
// are discarded; the window is fixed by the recording hardware and is not
// described by the header.
const (
	TrimStart       = 4
	TrimEnd         = 2000
	SamplesPerFrame = TrimEnd - TrimStart
)

// Audio properties of the retained samples.
const (
	SampleRate = 20000 // Hz.
	Channels   = 1
	BitDepth   = 16
)

// EncodedHeaderSize is the size of a header produced by Header.Encode.
const EncodedHeaderSize = magicSize + 8

// Sentinel decode errors. Errors returned by the decoders wrap one of these
// and may be tested with errors.Is.
var (
	ErrBadMagic     = errors.New("bad magic number")
	ErrBadTimestamp = errors.New("malformed timestamp")
	ErrTruncated    = errors.New("truncated frame")
)

// DecodeError describes a fatal failure while decoding a stream.
type DecodeError struct {
	Frame  int    // Index of the frame being decoded.
	Offset int64  // Byte offset of the start of that frame.
	Field  string // Field being decoded, e.g. "timestamp".
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("drc: frame %d at offset %d: %s: %v", e.Frame, e.Offset, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// fieldError records which field of a frame failed to decode so the stream
// decoder can report it.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return e.field + ": " + e.err.Error() }

func (e *fieldError) Unwrap() error { return e.err }
