/*
NAME
  perceptual.go

DESCRIPTION
  perceptual.go precomputes the perceptual weighting curve and the
  critical-band partition used by the Frame Quantizer to derive
  masking thresholds. Both are pure data, derived from the sample rate
  alone, and shared read-only by the Encoder's worker goroutines.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc

// band describes a contiguous half-open range of bin indices [Start, End).
type band struct {
	Start, End int
}

// perceptualModel bundles the per-bin weight curve and the
// critical-band partition for a given sample rate.
type perceptualModel struct {
	weights []float64 // len == NumBins, each in [0.2, 1.0].
	bands   []band
}

// newPerceptualModel derives the weight curve and critical-band
// partition for sampleRate, per the Bark-like approximation described
// in the codec design.
func newPerceptualModel(sampleRate int) *perceptualModel {
	m := &perceptualModel{
		weights: make([]float64, NumBins),
		bands:   buildCriticalBands(sampleRate),
	}
	for k := 0; k < NumBins; k++ {
		freq := float64(k) / float64(2*NumBins) * float64(sampleRate)
		m.weights[k] = weightForFrequency(freq)
	}
	return m
}

// weightForFrequency implements the ear-sensitivity weight curve.
func weightForFrequency(f float64) float64 {
	var w float64
	switch {
	case f < 100:
		w = 0.3 + (f/100)*0.4
	case f < 200:
		w = 0.7 + ((f - 100) / 100 * 0.3)
	case f < 5000:
		w = 1.0
	case f < 10000:
		w = 1.0 - ((f-5000)/5000)*0.3
	default:
		frac := (f - 10000) / 12000
		if frac > 1 {
			frac = 1
		}
		w = 0.7 - frac*0.5
	}
	if w < 0.2 {
		w = 0.2
	}
	return w
}

// buildCriticalBands approximates the Bark scale by advancing
// frequency edges at a step that widens as frequency increases,
// converting each edge to a bin index, and capping at 50 bands.
func buildCriticalBands(sampleRate int) []band {
	const maxBands = 50

	edges := []int{0}
	freq := 0.0
	for len(edges) < maxBands {
		var step float64
		switch {
		case freq < 500:
			step = 50
		case freq < 2000:
			step = 100
		case freq < 8000:
			step = 250
		default:
			step = 500
		}
		freq += step
		bin := int(freq / float64(sampleRate) * float64(2*NumBins))
		if bin > edges[len(edges)-1] {
			edges = append(edges, bin)
		}
		if bin >= NumBins {
			break
		}
	}
	if edges[len(edges)-1] < NumBins {
		edges = append(edges, NumBins)
	}

	bands := make([]band, 0, len(edges)-1)
	for i := 0; i < len(edges)-1; i++ {
		start, end := edges[i], edges[i+1]
		if start >= NumBins {
			break
		}
		if end > NumBins {
			end = NumBins
		}
		bands = append(bands, band{Start: start, End: end})
	}
	return bands
}
