/*
NAME
  sink.go

DESCRIPTION
  sink.go defines the playback backend interface implemented by the
  ALSA device sink and the external-player sink.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

// Package playback provides sinks that play decoded interleaved
// float64 PCM audio.
package playback

// Sink plays a complete block of normalized interleaved float64
// samples in [-1, 1] at the given sample rate and channel count.
type Sink interface {
	Play(samples []float64, sampleRate, channels int) error
}
