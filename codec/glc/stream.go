/*
NAME
  stream.go

DESCRIPTION
  stream.go defines the immutable data model produced by the Encoder,
  consumed by the Decoder, and mapped to/from bytes by the Container
  Serializer: Header, GaplessMetadata, EncodedFrame and EncodedStream.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc

// Header is immutable for the lifetime of an encoded stream.
type Header struct {
	SampleRate   int
	Channels     int
	TotalSamples int // interleaved sample count presented to Encode.
	Params       Params
}

// GaplessMetadata carries the information the Decoder needs to trim
// encoder padding from the reconstructed PCM.
type GaplessMetadata struct {
	EncoderDelay   int // samples per channel prepended as silence.
	Padding        int // samples per channel appended as silence.
	OriginalLength int // total interleaved sample count.
}

// FrameKind tags which variant of EncodedFrame is populated. Avoids a
// sentinel value inside the Spectral representation.
type FrameKind uint8

const (
	KindSpectral FrameKind = iota
	KindRaw
)

// SpectralChannel is one channel's sparse coefficient list and scale
// factor within a Spectral frame.
type SpectralChannel struct {
	Coeffs []coeffPair
	Scale  float64
}

// EncodedFrame is a tagged union: exactly one of Spectral or Raw is
// meaningful, selected by Kind.
type EncodedFrame struct {
	Kind FrameKind

	// Spectral holds one SpectralChannel per channel when Kind ==
	// KindSpectral.
	Spectral []SpectralChannel

	// Raw holds FrameSize*channels interleaved 16-bit PCM samples
	// (the already-windowed synthesis block) when Kind == KindRaw.
	Raw []int16
}

// EncodedStream is the complete output of an Encoder.Encode call:
// Header, GaplessMetadata, and a time-ordered sequence of frames, one
// per hop.
type EncodedStream struct {
	Header  Header
	Gapless GaplessMetadata
	Frames  []EncodedFrame
}
