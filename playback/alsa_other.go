//go:build !linux

/*
NAME
  alsa_other.go

DESCRIPTION
  alsa_other.go stubs out the ALSA sink on non-Linux platforms, where
  github.com/yobert/alsa has no backend.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package playback

import (
	"github.com/pkg/errors"

	"github.com/ajcm474/glc/codec/glc"
)

// ALSASink is unavailable outside Linux.
type ALSASink struct {
	Title string
}

// NewALSASink returns a Sink whose Play always fails; ALSA playback
// requires Linux.
func NewALSASink(title string) *ALSASink {
	return &ALSASink{Title: title}
}

// Play always returns an error on non-Linux platforms.
func (s *ALSASink) Play(samples []float64, sampleRate, channels int) error {
	return errors.Wrap(glc.ErrPlaybackError, "playback: ALSA sink is only available on Linux")
}
