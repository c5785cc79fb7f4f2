/*
NAME
  snr.go

DESCRIPTION
  snr.go computes signal-to-noise ratio between a reference and a
  reconstructed signal, used by the glc package's signal-quality tests.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

// Package analysis provides non-core diagnostics for GLC streams:
// spectrum estimation, SNR, and waveform plotting. None of it is on
// the encode/decode hot path.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SNR returns the signal-to-noise ratio, in dB, of test against ref.
// If the lengths differ, only the common prefix is compared. A ratio
// of 0 noise energy yields +Inf.
func SNR(ref, test []float64) float64 {
	n := len(ref)
	if len(test) < n {
		n = len(test)
	}
	ref, test = ref[:n], test[:n]

	noise := make([]float64, n)
	for i := range noise {
		noise[i] = ref[i] - test[i]
	}

	signalPower := floats.Dot(ref, ref)
	noisePower := floats.Dot(noise, noise)
	if noisePower == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(signalPower/noisePower)
}

// RunningMax returns, for each index i in [window, len(samples)-window),
// the maximum absolute sample value within [i-window, i+window]. Used
// to check amplitude stability of a reconstructed tone.
func RunningMax(samples []float64, window int) []float64 {
	if window <= 0 || 2*window >= len(samples) {
		return nil
	}
	out := make([]float64, 0, len(samples)-2*window)
	for i := window; i < len(samples)-window; i++ {
		m := 0.0
		for j := i - window; j <= i+window; j++ {
			if a := math.Abs(samples[j]); a > m {
				m = a
			}
		}
		out = append(out, m)
	}
	return out
}
