//go:build linux

/*
NAME
  alsa_linux.go

DESCRIPTION
  alsa_linux.go provides a Sink backed by a local ALSA playback
  device, negotiated the same way the ausocean input device
  negotiates a recording device: open the sound card, walk its
  devices for a matching playback endpoint, then negotiate channels,
  rate, format, and buffer size before writing PCM frames.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package playback

import (
	"encoding/binary"

	yalsa "github.com/yobert/alsa"

	"github.com/pkg/errors"

	"github.com/ajcm474/glc/codec/glc"
)

// ALSASink plays audio through a local ALSA playback device.
type ALSASink struct {
	// Title selects a specific device by name; empty selects the
	// first playback-capable device found.
	Title string
}

// NewALSASink returns a Sink that writes to a local ALSA device.
func NewALSASink(title string) *ALSASink {
	return &ALSASink{Title: title}
}

// Play opens, configures, and writes samples to an ALSA playback
// device, blocking until playback completes.
func (s *ALSASink) Play(samples []float64, sampleRate, channels int) error {
	cards, err := yalsa.OpenCards()
	if err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: open sound cards: %v", err)
	}
	defer yalsa.CloseCards(cards)

	var dev *yalsa.Device
	for _, card := range cards {
		devices, derr := card.Devices()
		if derr != nil {
			continue
		}
		for _, d := range devices {
			if d.Type != yalsa.PCM || !d.Play {
				continue
			}
			if d.Title == s.Title || s.Title == "" {
				dev = d
				break
			}
		}
		if dev != nil {
			break
		}
	}
	if dev == nil {
		return errors.Wrap(glc.ErrPlaybackError, "playback: no ALSA playback device found")
	}

	if err := dev.Open(); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: open ALSA device: %v", err)
	}
	defer dev.Close()

	if _, err := dev.NegotiateChannels(channels); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: negotiate channels: %v", err)
	}
	if _, err := dev.NegotiateRate(sampleRate); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: negotiate rate: %v", err)
	}
	if _, err := dev.NegotiateFormat(yalsa.S16_LE); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: negotiate format: %v", err)
	}
	const wantPeriod = 4096
	periodSize, err := dev.NegotiatePeriodSize(wantPeriod)
	if err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: negotiate period size: %v", err)
	}
	if _, err := dev.NegotiateBufferSize(periodSize * 4); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: negotiate buffer size: %v", err)
	}
	if err := dev.Prepare(); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: prepare device: %v", err)
	}

	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(clampInt16(v*32767)))
	}

	if err := dev.Write(buf); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: write PCM: %v", err)
	}
	return nil
}
