/*
NAME
  wav_test.go

DESCRIPTION
  wav_test.go contains functions for testing the wav package.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wav

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeader(t *testing.T) {
	mono := Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 20000, BitDepth: 16}
	tests := []struct {
		name    string
		md      Metadata
		dataLen int
		wantErr error
	}{
		{name: "Header Only", md: mono, dataLen: 0},
		{name: "4 bytes", md: mono, dataLen: 4},
		{name: "Odd length", md: mono, dataLen: 3, wantErr: errInvalidLength},
		{name: "Negative length", md: mono, dataLen: -2, wantErr: errInvalidLength},
		{name: "No format", md: Metadata{Channels: 1, SampleRate: 20000, BitDepth: 16}, wantErr: errInvalidFormat},
		{name: "Invalid format", md: Metadata{AudioFormat: 2, Channels: 1, SampleRate: 20000, BitDepth: 16}, wantErr: errInvalidFormat},
		{name: "No channels", md: Metadata{AudioFormat: PCMFormat, SampleRate: 20000, BitDepth: 16}, wantErr: errInvalidChannels},
		{name: "No sample rate", md: Metadata{AudioFormat: PCMFormat, Channels: 1, BitDepth: 16}, wantErr: errInvalidRate},
		{name: "No bit depth", md: Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 20000}, wantErr: errInvalidBitDepth},
		{name: "Invalid bit depth", md: Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 20000, BitDepth: 12}, wantErr: errInvalidBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Header(tt.md, tt.dataLen)
			if err != tt.wantErr {
				t.Fatalf("Header() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(h) != HeaderSize {
				t.Errorf("Header() length = %v, want %v", len(h), HeaderSize)
			}
		})
	}
}

// TestHeaderLayout checks every field of a mono 16 bit header.
func TestHeaderLayout(t *testing.T) {
	h, err := Header(Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 20000, BitDepth: 16}, 3992)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		'R', 'I', 'F', 'F', 0xBC, 0x0F, 0x00, 0x00, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0,
		1, 0, // PCM.
		1, 0, // Mono.
		0x20, 0x4E, 0x00, 0x00, // 20000 Hz.
		0x40, 0x9C, 0x00, 0x00, // 40000 bytes/s.
		2, 0, // Block align.
		16, 0, // Bit depth.
		'd', 'a', 't', 'a', 0x98, 0x0F, 0x00, 0x00,
	}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("unexpected header (-want +got):\n%s", diff)
	}
}

func TestWriter(t *testing.T) {
	md := Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 20000, BitDepth: 16}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, md, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != errShort {
		t.Errorf("unexpected error closing short writer, got: %v, want: %v", err, errShort)
	}
	if _, err := w.Write([]byte{1, 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte{3, 4, 5}); err != errOverflow {
		t.Errorf("unexpected error on overflow, got: %v, want: %v", err, errOverflow)
	}
	if _, err := w.Write([]byte{3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("unexpected error closing writer: %v", err)
	}
	if got, want := buf.Len(), HeaderSize+4; got != want {
		t.Errorf("unexpected output length, got: %d, want: %d", got, want)
	}
	if !bytes.Equal(buf.Bytes()[HeaderSize:], []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected audio data: %v", buf.Bytes()[HeaderSize:])
	}
}
