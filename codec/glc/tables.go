/*
NAME
  tables.go

DESCRIPTION
  tables.go precomputes the cosine lookup table and analysis/synthesis
  window used by the Modified Discrete Cosine Transform (MDCT) and its
  inverse. The table and window are pure data, built once and shared
  read-only between the Encoder, the Decoder, and their worker
  goroutines.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc

import "math"

const (
	// FrameSize is N_frame, the MDCT analysis block length in samples.
	FrameSize = 2048

	// HopSize is H, the number of samples a frame advances the input
	// by. With 50% overlap, HopSize == FrameSize/2.
	HopSize = FrameSize / 2

	// NumBins is N, the number of MDCT coefficients per frame. For
	// this codec N == HopSize.
	NumBins = HopSize
)

// transformTables holds the precomputed MDCT basis and the
// analysis/synthesis window. Immutable after construction.
type transformTables struct {
	// cos[k][i] = cos(pi/N * (i + 0.5 + N/2) * (k + 0.5))
	cos [][]float64

	// window[i] = sin(pi * (i + 0.5) / FrameSize)
	window []float64

	// norm is the orthonormal scale factor sqrt(2/N), applied
	// identically by mdct and imdct.
	norm float64
}

// newTransformTables builds the cosine table and sine window once.
func newTransformTables() *transformTables {
	t := &transformTables{
		cos:    make([][]float64, NumBins),
		window: make([]float64, FrameSize),
		norm:   math.Sqrt(2.0 / float64(NumBins)),
	}
	for i := 0; i < FrameSize; i++ {
		t.window[i] = math.Sin(math.Pi * (float64(i) + 0.5) / float64(FrameSize))
	}
	for k := 0; k < NumBins; k++ {
		row := make([]float64, FrameSize)
		for i := 0; i < FrameSize; i++ {
			row[i] = math.Cos(math.Pi / float64(NumBins) *
				(float64(i) + 0.5 + float64(NumBins)/2) * (float64(k) + 0.5))
		}
		t.cos[k] = row
	}
	return t
}

// mdct transforms a FrameSize-length time-domain block into NumBins
// spectral coefficients.
func (t *transformTables) mdct(block []float64) []float64 {
	coeffs := make([]float64, NumBins)
	for k := 0; k < NumBins; k++ {
		row := t.cos[k]
		var sum float64
		for i := 0; i < FrameSize; i++ {
			sum += block[i] * row[i]
		}
		coeffs[k] = sum * t.norm
	}
	return coeffs
}

// imdct transforms NumBins spectral coefficients back into a
// FrameSize-length time-domain block.
func (t *transformTables) imdct(coeffs []float64) []float64 {
	out := make([]float64, FrameSize)
	for i := 0; i < FrameSize; i++ {
		var sum float64
		for k := 0; k < NumBins; k++ {
			sum += coeffs[k] * t.cos[k][i]
		}
		out[i] = sum * t.norm
	}
	return out
}
