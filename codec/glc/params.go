/*
NAME
  params.go

DESCRIPTION
  params.go defines the tunable quantizer constants used by the
  Frame Quantizer. They default to the fixed values described by the
  codec's design, but are exposed here so an Encoder can be built with
  non-default values; the chosen values travel in the stream Header so
  a Decoder constructed against a mismatched Encoder fails loudly
  rather than silently decoding garbage.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc

// Params bundles the quantizer's tunable constants. The zero value is
// not valid; use DefaultParams.
type Params struct {
	// Quality is the global quality factor (Q in the masking threshold
	// formula). Higher values produce smaller masking thresholds, i.e.
	// less aggressive discarding.
	Quality float64

	// NoiseFloorDB is the noise-floor threshold in dB relative to the
	// per-frame scale factor.
	NoiseFloorDB float64

	// RawFallbackRatio is the estimated-size/raw-size ratio at or
	// above which a frame is stored as windowed raw PCM instead of a
	// sparse spectral frame.
	RawFallbackRatio float64

	// MinBits and MaxBits bound the per-coefficient importance score
	// used to gate keep/discard decisions. They do not affect the
	// quantization denominator, which is fixed (see quantizer.go).
	MinBits, MaxBits float64
}

// DefaultParams returns the fixed constants used by the reference
// codec design: quality 0.7, noise floor -48dB, raw-fallback ratio
// 0.85, importance bits in [8, 16].
func DefaultParams() Params {
	return Params{
		Quality:          0.7,
		NoiseFloorDB:     -48,
		RawFallbackRatio: 0.85,
		MinBits:          8,
		MaxBits:          16,
	}
}

// Equal reports whether p and o describe the same quantizer behaviour.
func (p Params) Equal(o Params) bool {
	return p.Quality == o.Quality &&
		p.NoiseFloorDB == o.NoiseFloorDB &&
		p.RawFallbackRatio == o.RawFallbackRatio &&
		p.MinBits == o.MinBits &&
		p.MaxBits == o.MaxBits
}
