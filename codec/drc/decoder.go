/*
NAME
  decoder.go

DESCRIPTION
  decoder.go provides a stream decoder for DRC recordings.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package drc

import (
	"bufio"
	"io"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

var errNilLocation = errors.New("nil time zone location")

// Decoder reads consecutive frames from a DRC stream. Frames must be read in
// order since the position of each frame depends on the size of the last, so
// a Decoder is not safe for concurrent use.
type Decoder struct {
	r   io.Reader
	loc *time.Location
	log logging.Logger
	buf []byte

	n   int   // Number of frames decoded.
	off int64 // Offset of the next frame.
	err error // Terminal error, io.EOF after a clean end of stream.
}

// Location is an option that can be passed to NewDecoder to set the time zone
// header timestamps are interpreted in. The default is time.Local.
func Location(loc *time.Location) func(*Decoder) error {
	return func(d *Decoder) error {
		if loc == nil {
			return errNilLocation
		}
		d.loc = loc
		return nil
	}
}

// Logger is an option that can be passed to NewDecoder to have decoding
// progress logged to l.
func Logger(l logging.Logger) func(*Decoder) error {
	return func(d *Decoder) error {
		d.log = l
		return nil
	}
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, options ...func(*Decoder) error) (*Decoder, error) {
	d := &Decoder{
		r:   bufio.NewReader(r),
		loc: time.Local,
		buf: make([]byte, PayloadSize),
	}
	for _, option := range options {
		err := option(d)
		if err != nil {
			return nil, errors.Wrap(err, "could not apply decoder option")
		}
	}
	return d, nil
}

// Next decodes and returns the next frame. Next returns io.EOF once the stream
// ends cleanly, that is when fewer bytes than a magic number remain where a
// header is expected. Any other failure is returned as a *DecodeError. Once
// Next has returned an error, every later call returns the same error.
func (d *Decoder) Next() (Frame, error) {
	if d.err != nil {
		return Frame{}, d.err
	}

	f, err := d.next()
	switch {
	case err == nil:
		d.debug("decoded frame", "frame", d.n, "offset", d.off, "timestamp", f.Header.Timestamp)
		d.n++
		d.off += FrameSize
		return f, nil
	case err == io.EOF:
		d.debug("end of stream", "frames", d.n)
		d.err = io.EOF
		return Frame{}, io.EOF
	}

	de := &DecodeError{Frame: d.n, Offset: d.off, Field: "frame", Err: err}
	var fe *fieldError
	if errors.As(err, &fe) {
		de.Field, de.Err = fe.field, fe.err
	}
	d.err = de
	return Frame{}, de
}

func (d *Decoder) next() (Frame, error) {
	h, err := DecodeHeader(d.r, d.loc)
	if err != nil {
		return Frame{}, err
	}
	return decodeFrame(d.r, h, d.buf)
}

// Frames returns the number of frames decoded so far.
func (d *Decoder) Frames() int { return d.n }

// Offset returns the byte offset of the next frame in the stream.
func (d *Decoder) Offset() int64 { return d.off }

func (d *Decoder) debug(msg string, args ...interface{}) {
	if d.log != nil {
		d.log.Debug(msg, args...)
	}
}

// Decode decodes every frame in r. A clean end of stream, including an empty
// r, is not an error. If any frame fails to decode, Decode returns no frames
// and the *DecodeError describing the failure.
func Decode(r io.Reader, options ...func(*Decoder) error) ([]Frame, error) {
	d, err := NewDecoder(r, options...)
	if err != nil {
		return nil, err
	}

	var frames []Frame
	for {
		f, err := d.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
}
