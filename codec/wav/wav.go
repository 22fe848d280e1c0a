/*
NAME
  wav.go

DESCRIPTION
  wav.go contains functions for writing pcm audio as wav to destinations
  that cannot seek.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wav provides functions for converting wav audio.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const PCMFormat = 1 // PCMFormat defines the value for pcm audio as defined by the wav std.

// HeaderSize is the size of the canonical wav header written by NewWriter.
const HeaderSize = 44

var (
	errInvalidFormat   = fmt.Errorf("invalid or no format defined")
	errInvalidRate     = fmt.Errorf("invalid or no sample rate defined")
	errInvalidChannels = fmt.Errorf("invalid or no number of channels defined")
	errInvalidBitDepth = fmt.Errorf("invalid or no bit depth defined")
	errInvalidLength   = fmt.Errorf("data length is not a whole number of samples")
	errOverflow        = fmt.Errorf("write exceeds declared data length")
	errShort           = fmt.Errorf("fewer bytes written than declared data length")
)

// Metadata defines the format of the audio.
type Metadata struct {
	AudioFormat int
	Channels    int
	SampleRate  int
	BitDepth    int
}

func (md Metadata) blockAlign() int { return md.Channels * md.BitDepth / 8 }

func (md Metadata) validate() error {
	switch {
	case md.AudioFormat != PCMFormat:
		return errInvalidFormat
	case md.Channels <= 0:
		return errInvalidChannels
	case md.SampleRate <= 0:
		return errInvalidRate
	case md.BitDepth <= 0 || md.BitDepth%8 != 0:
		return errInvalidBitDepth
	}
	return nil
}

// Header returns the wav header for dataLen bytes of audio described by md.
func Header(md Metadata, dataLen int) ([]byte, error) {
	err := md.validate()
	if err != nil {
		return nil, err
	}
	if dataLen < 0 || dataLen%md.blockAlign() != 0 {
		return nil, errInvalidLength
	}

	h := make([]byte, HeaderSize)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(HeaderSize-8+dataLen))
	copy(h[8:12], "WAVE")

	// fmt chunk.
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], uint16(md.AudioFormat))
	binary.LittleEndian.PutUint16(h[22:24], uint16(md.Channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(md.SampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(md.SampleRate*md.blockAlign()))
	binary.LittleEndian.PutUint16(h[32:34], uint16(md.blockAlign()))
	binary.LittleEndian.PutUint16(h[34:36], uint16(md.BitDepth))

	// data chunk.
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(dataLen))
	return h, nil
}

// Writer writes a wav stream of known length. Since the length is declared
// up front the destination need not be seekable.
type Writer struct {
	dst       io.Writer
	remaining int
}

// NewWriter writes the wav header for dataLen bytes of audio to dst and
// returns a Writer for the audio data.
func NewWriter(dst io.Writer, md Metadata, dataLen int) (*Writer, error) {
	h, err := Header(md, dataLen)
	if err != nil {
		return nil, err
	}
	_, err = dst.Write(h)
	if err != nil {
		return nil, fmt.Errorf("could not write wav header: %w", err)
	}
	return &Writer{dst: dst, remaining: dataLen}, nil
}

// Write writes audio data. Writing more than the declared length is an error.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		return 0, errOverflow
	}
	n, err := w.dst.Write(p)
	w.remaining -= n
	return n, err
}

// Close checks that all declared audio data has been written. It does not
// close the destination.
func (w *Writer) Close() error {
	if w.remaining != 0 {
		return errShort
	}
	return nil
}
