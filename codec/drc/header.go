/*
NAME
  header.go

DESCRIPTION
  header.go provides decoding and export encoding of DRC frame headers.

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

	"github.com/pkg/errors"
)

// The embedded timestamp text looks like "2024-01-15 10:30:00 123", the
// fractional seconds being separated by a space. The field holds at most
// TimestampSize/2 characters, which limits the fraction to three digits when
// the text fills the field.
const (
	timestampLayout = "2006-01-02 15:04:05"
	maxFracDigits   = 9
)

// Header is the fixed size header found at the start of every DRC frame.
type Header struct {
	Magic     uint32
	Timestamp time.Time

	// Reserved holds the header bytes following the timestamp. Their meaning
	// is unknown; they are kept verbatim.
	Reserved [ReservedSize]byte
}

// NewHeader returns a header with the DRC magic number and timestamp t.
func NewHeader(t time.Time) Header {
	return Header{Magic: Magic, Timestamp: t}
}

// DecodeHeader reads a single header from r, interpreting the embedded
// timestamp in loc. If r is exhausted before the magic number can be read in
// full, DecodeHeader returns io.EOF, signalling a clean end of stream. Any
// later failure is fatal and is returned wrapped in one of ErrBadMagic,
// ErrBadTimestamp or ErrTruncated.
func DecodeHeader(r io.Reader, loc *time.Location) (Header, error) {
	if loc == nil {
		loc = time.Local
	}

	var buf [magicSize + TimestampSize]byte
	_, err := io.ReadFull(r, buf[:magicSize])
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return Header{}, io.EOF
	default:
		return Header{}, &fieldError{"magic", errors.Wrap(err, "could not read magic")}
	}

	h := Header{Magic: binary.LittleEndian.Uint32(buf[:magicSize])}
	if h.Magic != Magic {
		return Header{}, &fieldError{"magic", errors.Wrapf(ErrBadMagic, "got %#08x, want %#08x", h.Magic, Magic)}
	}

	_, err = io.ReadFull(r, buf[magicSize:])
	if err != nil {
		return Header{}, &fieldError{"timestamp", readErr(err)}
	}
	h.Timestamp, err = parseTimestamp(decodeText(buf[magicSize:]), loc)
	if err != nil {
		return Header{}, &fieldError{"timestamp", err}
	}

	_, err = io.ReadFull(r, h.Reserved[:])
	if err != nil {
		return Header{}, &fieldError{"reserved", readErr(err)}
	}
	return h, nil
}

// Encode returns the export encoding of h: the little endian magic number
// followed by the timestamp as little endian Unix seconds. This is not the
// layout read by DecodeHeader; the reserved bytes and sub-second precision
// are dropped.
func (h Header) Encode() []byte {
	return h.appendEncoding(make([]byte, 0, EncodedHeaderSize))
}

func (h Header) appendEncoding(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.Magic)
	return binary.LittleEndian.AppendUint64(b, uint64(h.Timestamp.Unix()))
}

// decodeText converts a block of little endian 16 bit code units into text,
// keeping the low byte of each unit and stopping at the first zero unit.
func decodeText(b []byte) string {
	s := make([]byte, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			break
		}
		s = append(s, byte(u))
	}
	return string(s)
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	n := len(timestampLayout)
	if len(s) < n+2 || s[n] != ' ' {
		return time.Time{}, errors.Wrapf(ErrBadTimestamp, "%q does not match %q", s, timestampLayout+" F")
	}

	frac := s[n+1:]
	if len(frac) > maxFracDigits {
		return time.Time{}, errors.Wrapf(ErrBadTimestamp, "%q: fraction too long", s)
	}
	var nsec int
	for _, c := range []byte(frac) {
		if c < '0' || c > '9' {
			return time.Time{}, errors.Wrapf(ErrBadTimestamp, "%q: bad fraction", s)
		}
		nsec = nsec*10 + int(c-'0')
	}
	for i := len(frac); i < maxFracDigits; i++ {
		nsec *= 10
	}

	t, err := time.ParseInLocation(timestampLayout, s[:n], loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrBadTimestamp, "%q: %v", s, err)
	}
	return t.Add(time.Duration(nsec)), nil
}

// readErr maps a failed fixed size read of a frame field to ErrTruncated
// when the source ran out of data.
func readErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrTruncated, "unexpected end of stream")
	}
	return errors.Wrap(err, "read failed")
}
