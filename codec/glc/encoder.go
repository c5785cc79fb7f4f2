/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the Encoder: it deinterleaves an input PCM
  buffer, pads each channel for 50% MDCT overlap, dispatches per-frame
  quantization across goroutines, and assembles the ordered
  EncodedStream plus its gapless metadata.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc

import (
	"sync"

	"github.com/pkg/errors"
)

// ProgressFunc, if non-nil, is called with a 0-1 fraction as frames
// complete. It is a no-op hook; the encoder's correctness does not
// depend on it being called or observed.
type ProgressFunc func(fraction float64)

// Encoder turns interleaved PCM into an EncodedStream.
type Encoder struct {
	sampleRate int
	params     Params
	tables     *transformTables
	model      *perceptualModel

	// Progress, if set, is invoked as frames of the current Encode
	// call complete. May be called concurrently from worker
	// goroutines; set before calling Encode.
	Progress ProgressFunc
}

// NewEncoder constructs an Encoder for the given sample rate, using
// the default quantizer parameters. Transform tables and the
// perceptual model are built once here and shared read-only by every
// subsequent Encode call's worker goroutines.
func NewEncoder(sampleRate int) *Encoder {
	return NewEncoderParams(sampleRate, DefaultParams())
}

// NewEncoderParams is like NewEncoder but allows overriding the
// quantizer's tunable constants (see Params).
func NewEncoderParams(sampleRate int, params Params) *Encoder {
	return &Encoder{
		sampleRate: sampleRate,
		params:     params,
		tables:     newTransformTables(),
		model:      newPerceptualModel(sampleRate),
	}
}

// Encode compresses an interleaved float PCM buffer into an
// EncodedStream. len(samples) must be a multiple of channels;
// channels must be >= 1.
func (e *Encoder) Encode(samples []float64, channels int) (*EncodedStream, error) {
	if channels <= 0 {
		return nil, errors.Wrap(ErrInvalidInput, "channels must be >= 1")
	}
	if len(samples)%channels != 0 {
		return nil, errors.Wrap(ErrInvalidInput, "sample count is not a multiple of channels")
	}

	perChannel := len(samples) / channels
	deinterleaved := deinterleave(samples, channels, perChannel)

	padded, paddedLen := padChannels(deinterleaved, perChannel)

	numFrames := (paddedLen-FrameSize)/HopSize + 1
	if numFrames < 1 {
		numFrames = 1
	}

	frames := make([]EncodedFrame, numFrames)
	var wg sync.WaitGroup
	var completed int64
	var mu sync.Mutex

	for f := 0; f < numFrames; f++ {
		wg.Add(1)
		go func(f int) {
			defer wg.Done()

			start := f * HopSize
			channelQuants := make([]channelQuant, channels)
			for c := 0; c < channels; c++ {
				block := blockAt(padded[c], start)
				channelQuants[c] = quantizeChannel(block, e.tables, e.model, e.params)
			}
			frames[f] = decideFrame(channelQuants, channels, e.params.RawFallbackRatio)

			if e.Progress != nil {
				mu.Lock()
				completed++
				frac := float64(completed) / float64(numFrames)
				mu.Unlock()
				e.Progress(frac)
			}
		}(f)
	}
	wg.Wait()

	header := Header{
		SampleRate:   e.sampleRate,
		Channels:     channels,
		TotalSamples: len(samples),
		Params:       e.params,
	}
	gapless := GaplessMetadata{
		EncoderDelay:   HopSize / 2,
		Padding:        paddedLen - perChannel - HopSize/2,
		OriginalLength: len(samples),
	}

	return &EncodedStream{Header: header, Gapless: gapless, Frames: frames}, nil
}

// deinterleave splits an interleaved buffer into one slice per
// channel.
func deinterleave(samples []float64, channels, perChannel int) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, perChannel)
	}
	for i, s := range samples {
		out[i%channels][i/channels] = s
	}
	return out
}

// padChannels prepends HopSize/2 zeros, pads to the next multiple of
// HopSize, then appends HopSize/2 zeros, identically for every
// channel.
func padChannels(channels [][]float64, perChannel int) ([][]float64, int) {
	lead := HopSize / 2
	body := perChannel
	remainder := body % HopSize
	bodyPadded := body
	if remainder != 0 {
		bodyPadded += HopSize - remainder
	}
	total := lead + bodyPadded + lead

	out := make([][]float64, len(channels))
	for c, ch := range channels {
		padded := make([]float64, total)
		copy(padded[lead:lead+len(ch)], ch)
		out[c] = padded
	}
	return out, total
}

// blockAt returns a FrameSize-length slice of padded starting at
// start, zero-padding past the end if necessary.
func blockAt(padded []float64, start int) []float64 {
	end := start + FrameSize
	if end <= len(padded) {
		return padded[start:end]
	}
	block := make([]float64, FrameSize)
	copy(block, padded[start:])
	return block
}

// decideFrame applies the compress-vs-raw decision across every
// channel's quantized result for one frame.
func decideFrame(channelQuants []channelQuant, channels int, rawFallbackRatio float64) EncodedFrame {
	estimated := 8 + 4*channels // frame-level overhead.
	for _, cq := range channelQuants {
		estimated += 8 + 4*len(cq.Sparse)
	}
	estimated += 64

	rawSize := FrameSize * channels * 2

	if float64(estimated) >= rawFallbackRatio*float64(rawSize) {
		raw := make([]int16, FrameSize*channels)
		for i := 0; i < FrameSize; i++ {
			for c, cq := range channelQuants {
				s := cq.Windowed[i] * 32767
				raw[i*channels+c] = clampInt16(s)
			}
		}
		return EncodedFrame{Kind: KindRaw, Raw: raw}
	}

	spectral := make([]SpectralChannel, channels)
	for c, cq := range channelQuants {
		spectral[c] = SpectralChannel{Coeffs: cq.Sparse, Scale: cq.Scale}
	}
	return EncodedFrame{Kind: KindSpectral, Spectral: spectral}
}

func clampInt16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
