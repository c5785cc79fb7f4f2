/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the Decoder: it reconstructs interleaved PCM
  from an EncodedStream by dequantizing (or unpacking raw) frames in
  parallel batches, performing per-channel overlap-add sequentially,
  re-interleaving, and trimming by the stream's gapless metadata.

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

// batchSize bounds how many frames are decoded (IMDCT/window or raw
// unpack) in parallel before their results must be reordered and fed,
// in order, to the sequential overlap-add step.
const batchSize = 32

// chunkHops is the number of hops accumulated before a Chunk is
// flushed to the consumer, except for the final chunk which is
// flushed whenever the stream ends.
const chunkHops = 500

// chunkChanCapacity bounds the decode worker's lookahead; the worker
// blocks when the channel is full, providing backpressure, and the
// consumer blocks when it is empty.
const chunkChanCapacity = 5

// Chunk is one unit of streamed decode output: an integer number of
// hops' worth of interleaved PCM samples.
type Chunk struct {
	Samples []float64
	Last    bool
}

// Decoder reconstructs interleaved PCM from an EncodedStream. A
// Decoder is single-use per stream: construct a fresh Decoder to
// decode another stream.
type Decoder struct {
	channels   int
	sampleRate int
	params     Params
	tables     *transformTables

	// Progress, if set, is invoked as frame batches complete.
	Progress ProgressFunc
}

// NewDecoder constructs a Decoder for a stream with the given channel
// count and sample rate, expecting the quantizer's default Params.
func NewDecoder(channels, sampleRate int) *Decoder {
	return NewDecoderParams(channels, sampleRate, DefaultParams())
}

// NewDecoderParams is like NewDecoder but allows specifying the
// Params an incoming stream's Header must match.
func NewDecoderParams(channels, sampleRate int, params Params) *Decoder {
	return &Decoder{
		channels:   channels,
		sampleRate: sampleRate,
		params:     params,
		tables:     newTransformTables(),
	}
}

// Decode reconstructs the full interleaved PCM buffer from stream,
// trimmed to the original gapless length.
func (d *Decoder) Decode(stream *EncodedStream) ([]float64, error) {
	if err := validateStream(stream); err != nil {
		return nil, err
	}
	if stream.Header.Channels != d.channels || stream.Header.SampleRate != d.sampleRate {
		return nil, errors.Wrap(ErrUnsupportedFormat, "stream channels/sample rate do not match decoder")
	}
	if !stream.Header.Params.Equal(d.params) {
		return nil, errors.Wrap(ErrUnsupportedFormat, "stream quantizer params do not match decoder")
	}

	out := make([]float64, 0, stream.Gapless.OriginalLength)
	for chunk := range d.DecodeStream(stream) {
		out = append(out, chunk.Samples...)
		if chunk.Last {
			break
		}
	}

	trimmed := trimGapless(out, stream.Gapless, stream.Header.Channels)
	return trimmed, nil
}

// DecodeStream returns a channel of Chunks, decoded and overlap-added
// in time order, with backpressure via a small bounded channel.
// validateStream should be called first by callers that want
// structural errors surfaced before the goroutine starts; Decode does
// this for you.
func (d *Decoder) DecodeStream(stream *EncodedStream) <-chan Chunk {
	out := make(chan Chunk, chunkChanCapacity)
	channels := stream.Header.Channels

	go func() {
		defer close(out)

		overlap := make([][]float64, channels)
		for c := range overlap {
			overlap[c] = make([]float64, HopSize)
		}

		totalFrames := len(stream.Frames)
		var acc [][]float64
		hopsAccumulated := 0

		flush := func(last bool) {
			if len(acc) == 0 && !last {
				return
			}
			interleaved := interleaveBlocks(acc)
			out <- Chunk{Samples: interleaved, Last: last}
			acc = nil
			hopsAccumulated = 0
		}

		for start := 0; start < totalFrames; start += batchSize {
			end := start + batchSize
			if end > totalFrames {
				end = totalFrames
			}
			blocks := d.decodeBatch(stream.Frames[start:end], channels)

			for _, block := range blocks {
				hop := make([]float64, channels*HopSize)
				for c := 0; c < channels; c++ {
					for i := 0; i < HopSize; i++ {
						hop[i*channels+c] = overlap[c][i] + block[c][i]
					}
					copy(overlap[c], block[c][HopSize:FrameSize])
				}
				acc = append(acc, hop)
				hopsAccumulated++

				if hopsAccumulated >= chunkHops {
					flush(false)
				}
			}

			if d.Progress != nil {
				d.Progress(float64(end) / float64(totalFrames))
			}
		}

		// Final hop: the residual overlap buffers.
		finalHop := make([]float64, channels*HopSize)
		for c := 0; c < channels; c++ {
			for i := 0; i < HopSize; i++ {
				finalHop[i*channels+c] = overlap[c][i]
			}
		}
		acc = append(acc, finalHop)
		flush(true)
	}()

	return out
}

// decodeBatch runs IMDCT/window (or raw unpack) for a contiguous run
// of frames in parallel, returning per-channel time-domain blocks in
// the same order as frames.
func (d *Decoder) decodeBatch(frames []EncodedFrame, channels int) [][][]float64 {
	results := make([][][]float64, len(frames))
	var wg sync.WaitGroup
	for i, frame := range frames {
		wg.Add(1)
		go func(i int, frame EncodedFrame) {
			defer wg.Done()
			results[i] = d.decodeFrame(frame, channels)
		}(i, frame)
	}
	wg.Wait()
	return results
}

// decodeFrame decodes one frame into one FrameSize-length block per
// channel.
func (d *Decoder) decodeFrame(frame EncodedFrame, channels int) [][]float64 {
	blocks := make([][]float64, channels)

	switch frame.Kind {
	case KindRaw:
		for c := 0; c < channels; c++ {
			block := make([]float64, FrameSize)
			for i := 0; i < FrameSize; i++ {
				block[i] = float64(frame.Raw[i*channels+c]) / 32767
			}
			blocks[c] = block
		}
	default: // KindSpectral
		for c := 0; c < channels; c++ {
			var sparse []coeffPair
			var scale float64
			if c < len(frame.Spectral) {
				sparse = frame.Spectral[c].Coeffs
				scale = frame.Spectral[c].Scale
			}
			coeffs := dequantizeChannel(sparse, scale)
			samples := d.tables.imdct(coeffs)
			windowed := make([]float64, FrameSize)
			for i, s := range samples {
				windowed[i] = s * d.tables.window[i]
			}
			blocks[c] = windowed
		}
	}
	return blocks
}

// interleaveBlocks concatenates a sequence of per-hop interleaved
// blocks into one flat slice.
func interleaveBlocks(hops [][]float64) []float64 {
	total := 0
	for _, h := range hops {
		total += len(h)
	}
	out := make([]float64, 0, total)
	for _, h := range hops {
		out = append(out, h...)
	}
	return out
}

// trimGapless drops the leading encoder-delay samples and truncates
// to the original interleaved length.
func trimGapless(samples []float64, gapless GaplessMetadata, channels int) []float64 {
	drop := gapless.EncoderDelay * channels
	if drop > len(samples) {
		drop = len(samples)
	}
	samples = samples[drop:]

	if gapless.OriginalLength < len(samples) {
		samples = samples[:gapless.OriginalLength]
	}
	return samples
}

// validateStream checks the structural invariants a Decoder depends
// on before it starts decoding.
func validateStream(stream *EncodedStream) error {
	if stream == nil {
		return errors.Wrap(ErrCorruptStream, "nil stream")
	}
	if stream.Header.Channels <= 0 {
		return errors.Wrap(ErrCorruptStream, "non-positive channel count")
	}
	for _, f := range stream.Frames {
		switch f.Kind {
		case KindSpectral:
			if len(f.Spectral) != stream.Header.Channels {
				return errors.Wrap(ErrCorruptStream, "spectral frame channel count mismatch")
			}
			for _, ch := range f.Spectral {
				if ch.Scale <= 0 {
					return errors.Wrap(ErrCorruptStream, "non-positive scale factor")
				}
				seen := make(map[int16]struct{}, len(ch.Coeffs))
				for _, pair := range ch.Coeffs {
					if pair.Index < 0 || int(pair.Index) >= NumBins {
						return errors.Wrap(ErrCorruptStream, "bin index out of range")
					}
					if _, dup := seen[pair.Index]; dup {
						return errors.Wrap(ErrCorruptStream, "duplicate bin index")
					}
					seen[pair.Index] = struct{}{}
				}
			}
		case KindRaw:
			if len(f.Raw) != FrameSize*stream.Header.Channels {
				return errors.Wrap(ErrCorruptStream, "raw frame length mismatch")
			}
		default:
			return errors.Wrap(ErrCorruptStream, "unknown frame kind")
		}
	}
	if stream.Gapless.OriginalLength != stream.Header.TotalSamples {
		return errors.Wrap(ErrCorruptStream, "gapless/header length mismatch")
	}
	return nil
}
