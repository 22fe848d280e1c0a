/*
NAME
  filters.go

DESCRIPTION
  filters.go contains FIR filters and gain for PCM audio.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pcm

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"
)

// FIRFilter is a linear phase windowed-sinc filter.
type FIRFilter struct {
	coeffs []float64
	taps   int
}

// NewLowPass returns a lowpass filter with cutoff fc Hz for audio sampled at
// rate Hz. taps must be a positive even number; the filter has taps+1
// coefficients.
func NewLowPass(fc float64, rate uint, taps int) (*FIRFilter, error) {
	return newFIR(fc, rate, taps, false)
}

// NewHighPass returns a highpass filter with cutoff fc Hz for audio sampled
// at rate Hz. taps must be a positive even number.
func NewHighPass(fc float64, rate uint, taps int) (*FIRFilter, error) {
	return newFIR(fc, rate, taps, true)
}

func newFIR(fc float64, rate uint, taps int, high bool) (*FIRFilter, error) {
	if fc <= 0 || fc >= float64(rate)/2 {
		return nil, errors.Errorf("cutoff frequency %v Hz out of bounds for rate %v Hz", fc, rate)
	}
	if taps <= 0 || taps%2 != 0 {
		return nil, errors.Errorf("invalid filter length %d, must be even and > 0", taps)
	}

	fd := fc / float64(rate)
	size := taps + 1
	mid := taps / 2
	w := window.Hamming(size)
	coeffs := make([]float64, size)
	for n := 0; n < mid; n++ {
		c := float64(n - mid)
		coeffs[n] = math.Sin(2*math.Pi*fd*c) / (math.Pi * c) * w[n]
		coeffs[size-1-n] = coeffs[n]
	}
	coeffs[mid] = 2 * fd * w[mid]

	// Spectral inversion turns the lowpass into the complementary highpass.
	if high {
		for i := range coeffs {
			coeffs[i] = -coeffs[i]
		}
		coeffs[mid] += 1
	}
	return &FIRFilter{coeffs: coeffs, taps: taps}, nil
}

// Process implements Processor. The output has the same length as s and is
// aligned with it, the filter's group delay having been removed.
func (f *FIRFilter) Process(s []int16) ([]int16, error) {
	if len(s) == 0 {
		return s, nil
	}
	y, err := fastConvolve(toFloats(s), f.coeffs)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute fast convolution")
	}
	mid := f.taps / 2
	return toInt16(y[mid : mid+len(s)]), nil
}

// Amplifier scales samples by a constant factor, clipping at full scale.
type Amplifier struct {
	factor float64
}

// NewAmplifier returns an Amplifier with the absolute value of factor.
func NewAmplifier(factor float64) *Amplifier {
	return &Amplifier{factor: math.Abs(factor)}
}

// Process implements Processor.
func (a *Amplifier) Process(s []int16) ([]int16, error) {
	f := toFloats(s)
	for i := range f {
		f[i] *= a.factor
	}
	return toInt16(f), nil
}

// toFloats scales samples into [-1, 1).
func toFloats(s []int16) []float64 {
	f := make([]float64, len(s))
	for i, v := range s {
		f[i] = float64(v) / (math.MaxInt16 + 1)
	}
	return f
}

// toInt16 is the inverse of toFloats, clipping values outside full scale to
// avoid wrap around artifacts.
func toInt16(f []float64) []int16 {
	s := make([]int16, len(f))
	for i, v := range f {
		v = math.Round(v * (math.MaxInt16 + 1))
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		s[i] = int16(v)
	}
	return s
}

// fastConvolve takes in a signal and an FIR filter and computes the convolution (runs in O(nlog(n)) time).
func fastConvolve(x, h []float64) ([]float64, error) {
	if len(x) == 0 || len(h) == 0 {
		return nil, errors.New("convolution requires slice of length > 0")
	}

	// Pad signals to the next power of 2 at least the length of the linear
	// convolution.
	convLen := len(x) + len(h) - 1
	padLen := 1
	for padLen < convLen {
		padLen <<= 1
	}
	xp := make([]float64, padLen)
	copy(xp, x)
	hp := make([]float64, padLen)
	copy(hp, h)

	// Multiply in the frequency domain and transform back.
	xf, hf := fft.FFTReal(xp), fft.FFTReal(hp)
	for i := range xf {
		xf[i] *= hf[i]
	}
	iy := fft.IFFT(xf)

	y := make([]float64, convLen)
	for i := range y {
		y[i] = real(iy[i])
	}
	return y, nil
}
