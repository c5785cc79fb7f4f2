/*
NAME
  quantizer.go

DESCRIPTION
  quantizer.go implements the Frame Quantizer: for one block per
  channel, it applies the analysis window, computes masking thresholds from the Perceptual
  Model, selects and quantizes the MDCT coefficients that survive
  masking, and leaves the compress-vs-raw decision to the caller
  (encoder.go), which needs every channel's sparse result before it
  can estimate the frame's compressed size.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// scaleFloorEncode is the minimum scale factor the encoder will
	// emit for a frame; guards against division by (near) zero when
	// all coefficients are silent.
	scaleFloorEncode = 1e-10

	// scaleFloorDecode is the minimum scale factor the decoder will
	// trust when dequantizing; independent of the encode-side floor.
	scaleFloorDecode = 1e-12

	// quantDenom is the fixed quantization denominator. It must match
	// between encoder and decoder regardless of the per-bin bits
	// heuristic, which only gates keep/discard.
	quantDenom = 1 << 15
)

// coeffPair is one (bin index, quantized value) pair in a sparse
// spectral channel.
type coeffPair struct {
	Index int16
	Value int16
}

// channelQuant is the per-channel result of quantizing one block: the
// windowed time-domain block (needed if the frame falls back to raw),
// the sparse coefficient list, and the scale factor.
type channelQuant struct {
	Windowed []float64
	Sparse   []coeffPair
	Scale    float64
}

// quantizeChannel applies the analysis window to block, runs the
// MDCT, derives masking thresholds from the perceptual model, and
// quantizes the coefficients that survive masking.
func quantizeChannel(block []float64, t *transformTables, pm *perceptualModel, p Params) channelQuant {
	windowed := make([]float64, FrameSize)
	for i := range block {
		windowed[i] = block[i] * t.window[i]
	}

	coeffs := t.mdct(windowed)

	maxAbs := 0.0
	for _, c := range coeffs {
		if a := math.Abs(c); a > maxAbs {
			maxAbs = a
		}
	}
	scale := maxAbs
	if scale < scaleFloorEncode {
		scale = scaleFloorEncode
	}

	thresholds := maskingThresholds(coeffs, pm, p, maxAbs)
	noiseFloor := math.Pow(10, p.NoiseFloorDB/20) * scale

	sparse := make([]coeffPair, 0, NumBins/4)
	for k, c := range coeffs {
		a := math.Abs(c)
		if a <= noiseFloor || a <= thresholds[k] {
			continue
		}

		score := 0.3*math.Max(0, math.Log2(a/thresholds[k])) + 0.7*(a/math.Max(maxAbs, scaleFloorEncode))
		bits := clamp(p.MinBits+math.Round(score*8), p.MinBits, p.MaxBits)
		if bits == 0 {
			continue
		}

		q := int(math.Round((c / scale) * quantDenom))
		if q > math.MaxInt16 {
			q = math.MaxInt16
		} else if q < math.MinInt16 {
			q = math.MinInt16
		}
		if q == 0 {
			continue
		}
		sparse = append(sparse, coeffPair{Index: int16(k), Value: int16(q)})
	}

	return channelQuant{Windowed: windowed, Sparse: sparse, Scale: scale}
}

// maskingThresholds computes T[k] for every bin, per critical band.
func maskingThresholds(coeffs []float64, pm *perceptualModel, p Params, maxAbs float64) []float64 {
	thresholds := make([]float64, NumBins)
	qFactor := math.Max(1-p.Quality, 0.01)
	peakCap := 0.3 * maxAbs
	cappedThreshold := 0.05 * maxAbs

	for _, b := range pm.bands {
		if b.Start >= b.End {
			continue
		}
		bandCoeffs := coeffs[b.Start:b.End]
		bandWeights := pm.weights[b.Start:b.End]

		energy := floats.Norm(bandCoeffs, 2) / math.Sqrt(float64(len(bandCoeffs)))
		meanWeight := floats.Sum(bandWeights) / float64(len(bandWeights))

		base := energy * 0.01 * qFactor * (1 / math.Max(meanWeight, 0.1))

		for k := b.Start; k < b.End; k++ {
			t := base * (1 / math.Max(pm.weights[k], 0.1))
			if math.Abs(coeffs[k]) > peakCap {
				t = math.Min(t, cappedThreshold)
			}
			thresholds[k] = t
		}
	}
	return thresholds
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// dequantizeChannel reconstructs NumBins spectral coefficients from a
// sparse coefficient list and scale factor.
func dequantizeChannel(sparse []coeffPair, scale float64) []float64 {
	if scale < scaleFloorDecode {
		scale = scaleFloorDecode
	}
	coeffs := make([]float64, NumBins)
	for _, pair := range sparse {
		coeffs[pair.Index] = (float64(pair.Value) / quantDenom) * scale
	}
	return coeffs
}
