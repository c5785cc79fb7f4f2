/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error values returned across the
  glc package boundary.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc

import "github.com/pkg/errors"

// Sentinel errors returned at the package's API boundary. Wrap with
// errors.Wrap/Wrapf for context; callers compare with errors.Is.
var (
	// ErrInvalidInput is returned for bad arguments at the API
	// boundary: a zero channel count, or a sample count that isn't a
	// multiple of the channel count.
	ErrInvalidInput = errors.New("glc: invalid input")

	// ErrCorruptStream is returned when serialized bytes cannot be
	// deserialized, or a deserialized stream violates a structural
	// invariant.
	ErrCorruptStream = errors.New("glc: corrupt stream")

	// ErrUnsupportedFormat is returned when a stream was produced
	// with Params this decoder wasn't constructed to match, or when a
	// CLI path's file extension isn't one this tool reads or writes.
	ErrUnsupportedFormat = errors.New("glc: unsupported stream parameters")

	// ErrIOError wraps a failure reading or writing an audio file or
	// container (WAV, FLAC, or .glc) from the filesystem.
	ErrIOError = errors.New("glc: I/O error")

	// ErrPlaybackError wraps a failure in a playback sink: the
	// backing device or external player could not be opened,
	// configured, or written to.
	ErrPlaybackError = errors.New("glc: playback error")
)
