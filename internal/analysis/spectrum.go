/*
NAME
  spectrum.go

DESCRIPTION
  spectrum.go estimates a magnitude spectrum via FFT, for the CLI's
  -analyze diagnostic flag. This is independent of the codec's own
  MDCT, which follows the literal cosine-table contract in the codec
  design rather than an FFT-based implementation.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum holds a one-sided magnitude spectrum and its bin spacing.
type Spectrum struct {
	Magnitudes []float64
	BinHz      float64
}

// MagnitudeSpectrum windows samples with a Hamming window and returns
// the one-sided FFT magnitude spectrum.
func MagnitudeSpectrum(samples []float64, sampleRate int) Spectrum {
	windowed := make([]float64, len(samples))
	win := window.Hamming(len(samples))
	for i, s := range samples {
		windowed[i] = s * win[i]
	}

	spectrum := fft.FFTReal(windowed)
	half := len(spectrum)/2 + 1
	mags := make([]float64, half)
	for i := 0; i < half; i++ {
		mags[i] = cmplxAbs(spectrum[i])
	}

	return Spectrum{
		Magnitudes: mags,
		BinHz:      float64(sampleRate) / float64(len(samples)),
	}
}

// PeakFrequency returns the frequency, in Hz, of the spectrum's
// largest-magnitude bin (excluding DC).
func (s Spectrum) PeakFrequency() float64 {
	peak := 1
	for i := 2; i < len(s.Magnitudes); i++ {
		if s.Magnitudes[i] > s.Magnitudes[peak] {
			peak = i
		}
	}
	return float64(peak) * s.BinHz
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
