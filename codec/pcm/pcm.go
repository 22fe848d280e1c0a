/*
NAME
  pcm.go

DESCRIPTION
  pcm.go contains functions for processing and converting signed 16 bit
  pcm samples.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pcm provides functions for processing and converting pcm audio.
package pcm

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Processor transforms a block of mono 16 bit samples. Implementations may
// change the number of samples, e.g. when decimating.
type Processor interface {
	Process(s []int16) ([]int16, error)
}

// Apply runs s through each of procs in turn and returns the result.
func Apply(s []int16, procs ...Processor) ([]int16, error) {
	var err error
	for i, p := range procs {
		s, err = p.Process(s)
		if err != nil {
			return nil, errors.Wrapf(err, "processor %d failed", i)
		}
	}
	return s, nil
}

// Int16ToBytes returns s as little endian bytes.
func Int16ToBytes(s []int16) []byte {
	b := make([]byte, 2*len(s))
	for i, v := range s {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return b
}

// BytesToInt16 interprets b as little endian 16 bit samples.
func BytesToInt16(b []byte) ([]int16, error) {
	if len(b)%2 != 0 {
		return nil, errors.Errorf("uneven number of bytes (%d), not whole number of samples", len(b))
	}
	s := make([]int16, len(b)/2)
	for i := range s {
		s[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return s, nil
}

// Decimator downsamples audio by an integer factor, averaging each group of
// input samples into one output sample.
type Decimator struct {
	from, to uint
	ratio    int
}

// NewDecimator returns a Decimator converting from Hz to to Hz.
// Only downsampling is supported and from must be divisible by to.
func NewDecimator(from, to uint) (*Decimator, error) {
	if from == 0 {
		return nil, errors.Errorf("unable to convert from: %v Hz", from)
	}
	if to == 0 || to > from {
		return nil, errors.Errorf("unable to convert to: %v Hz", to)
	}

	// Calculate sample rate ratio ratioFrom:ratioTo.
	rateGcd := gcd(to, from)
	ratioFrom := from / rateGcd
	ratioTo := to / rateGcd

	// ratioTo = 1 is the only number that will result in an even sampling.
	if ratioTo != 1 {
		return nil, errors.Errorf("unhandled from:to rate ratio %v:%v: 'to' must be 1", ratioFrom, ratioTo)
	}
	return &Decimator{from: from, to: to, ratio: int(ratioFrom)}, nil
}

// Rate returns the output sample rate.
func (d *Decimator) Rate() uint { return d.to }

// Process implements Processor. Trailing samples that do not fill a whole
// group are dropped, e.g. 10 samples decimated 3:1 gives 3 samples.
func (d *Decimator) Process(s []int16) ([]int16, error) {
	if d.ratio == 1 {
		return s, nil
	}
	out := make([]int16, len(s)/d.ratio)
	for i := range out {
		var sum int
		for _, v := range s[i*d.ratio : (i+1)*d.ratio] {
			sum += int(v)
		}
		out[i] = int16(sum / d.ratio)
	}
	return out, nil
}

// gcd is used for calculating the greatest common divisor of two positive integers, a and b.
// assumes given a and b are positive.
func gcd(a, b uint) uint {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
