/*
NAME
  ffplay.go

DESCRIPTION
  ffplay.go provides a Sink backed by an external ffplay process, fed
  raw signed 16-bit PCM over its standard input. This backend works
  on any platform with ffplay installed and requires no cgo or
  platform-specific audio API.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package playback

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ajcm474/glc/codec/glc"
)

// FFPlaySink plays audio by piping raw PCM into an ffplay subprocess.
type FFPlaySink struct {
	log *zap.SugaredLogger
}

// NewFFPlaySink returns a Sink that shells out to ffplay. log may be
// nil, in which case stdout/stderr from ffplay are discarded.
func NewFFPlaySink(log *zap.SugaredLogger) *FFPlaySink {
	return &FFPlaySink{log: log}
}

// Play blocks until ffplay finishes playing samples.
func (s *FFPlaySink) Play(samples []float64, sampleRate, channels int) error {
	cmd := exec.Command("ffplay",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-nodisp", "-autoexit", "-loglevel", "quiet", "-",
	)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: ffplay stdin pipe: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(glc.ErrPlaybackError, "playback: ffplay start (is ffplay installed?): %v", err)
	}

	go func() {
		defer stdin.Close()
		if werr := writePCM16(stdin, samples); werr != nil && s.log != nil {
			s.log.Warnw("failed writing PCM to ffplay", "error", werr)
		}
	}()

	if err := cmd.Wait(); err != nil {
		if s.log != nil {
			s.log.Errorw("ffplay exited with error", "stderr", errBuf.String())
		}
		return errors.Wrapf(glc.ErrPlaybackError, "playback: ffplay wait: %v", err)
	}
	if s.log != nil && outBuf.Len() != 0 {
		s.log.Debugw("ffplay stdout", "output", outBuf.String())
	}
	return nil
}

func writePCM16(w io.Writer, samples []float64) error {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(clampInt16(s*32767)))
	}
	_, err := w.Write(buf)
	return err
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
