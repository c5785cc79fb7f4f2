/*
NAME
  wav.go

DESCRIPTION
  wav.go provides the WAV reader/writer collaborator described by the
  codec's external interfaces: Read returns normalized interleaved
  float samples, sample rate, and channel count; Write emits 16-bit
  PCM from normalized interleaved float samples.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

// Package wav adapts the go-audio/wav decoder/encoder to GLC's
// interleaved-float PCM convention.
package wav

import (
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/ajcm474/glc/codec/glc"
)

// Read decodes a WAV file at path into normalized interleaved float64
// samples in [-1, 1], along with its sample rate and channel count.
// Integer PCM formats are normalized by dividing by 2^(bits-1).
func Read(path string) (samples []float64, sampleRate, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, errors.Wrapf(glc.ErrIOError, "wav: open: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, 0, errors.Wrapf(glc.ErrIOError, "wav: %q is not a valid WAV file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, 0, 0, errors.Wrapf(glc.ErrIOError, "wav: seek to PCM data: %v", err)
	}

	sampleRate = int(dec.SampleRate)
	channels = int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	fullScale := float64(int64(1) << uint(bitDepth-1))

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 4096),
		SourceBitDepth: bitDepth,
	}

	var out []float64
	for {
		n, rerr := dec.PCMBuffer(buf)
		if n > 0 {
			for _, v := range buf.Data[:n] {
				out = append(out, float64(v)/fullScale)
			}
		}
		if rerr == io.EOF || n == 0 {
			break
		}
		if rerr != nil {
			return nil, 0, 0, errors.Wrapf(glc.ErrIOError, "wav: decode PCM: %v", rerr)
		}
	}

	return out, sampleRate, channels, nil
}

// Write encodes normalized interleaved float64 samples in [-1, 1] as
// 16-bit PCM WAV to path, clamping out-of-range samples.
func Write(path string, samples []float64, sampleRate, channels int) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return errors.Wrapf(glc.ErrIOError, "wav: create: %v", ferr)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(glc.ErrIOError, "wav: close: %v", cerr)
		}
	}()

	const bitDepth = 16
	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	defer func() {
		if cerr := enc.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(glc.ErrIOError, "wav: close encoder: %v", cerr)
		}
	}()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(clampInt16(s * 32767))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrapf(glc.ErrIOError, "wav: write PCM: %v", err)
	}
	return nil
}

func clampInt16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(math.Round(v))
}
