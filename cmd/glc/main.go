/*
NAME
  main.go

DESCRIPTION
  glc is a single executable with three modes: encode (default),
  decode (-d), and play (-p). It reads WAV or FLAC input, and writes
  a .glc container, a decoded WAV/FLAC file, or plays the decoded
  audio directly through a local or external sink.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

// Command glc is the reference encoder/decoder/player for the GLC
// gapless audio codec.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ajcm474/glc/audio/flac"
	"github.com/ajcm474/glc/audio/wav"
	"github.com/ajcm474/glc/codec/glc"
	"github.com/ajcm474/glc/internal/analysis"
	"github.com/ajcm474/glc/playback"
)

// Logging related constants: the log file path and its rotation policy.
const (
	logPath      = "glc.log"
	logMaxSizeMB = 50
	logMaxBackup = 5
	logMaxAgeDay = 28
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("glc", flag.ContinueOnError)
	decodeMode := fs.Bool("d", false, "decode a .glc container instead of encoding")
	playMode := fs.Bool("p", false, "play one or more .glc containers gaplessly instead of writing output")
	inPath := fs.String("in", "", "input file path (encode/decode); for play mode, a single-track playlist if no positional paths are given")
	outPath := fs.String("out", "", "output file path")
	wantWAV := fs.Bool("wav", false, "read/write WAV instead of FLAC")
	flacLevel := fs.Int("flac-level", flac.DefaultCompressionLevel, "FLAC compression level (0-8)")
	useFFPlay := fs.Bool("ffplay", false, "use the external ffplay command for playback instead of ALSA")
	analyze := fs.Bool("analyze", false, "log peak-frequency diagnostics of the first channel after decode")
	plotPath := fs.String("plot", "", "write a waveform PNG plot of the decoded audio's first channel to this path")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	log := newLogger()
	defer log.Sync()
	sl := log.Sugar()

	if *playMode {
		playlist := fs.Args()
		if len(playlist) == 0 && *inPath != "" {
			playlist = []string{*inPath}
		}
		if len(playlist) == 0 {
			sl.Error("play mode requires -in or one or more positional .glc paths")
			return 1
		}
		if err := runPlay(sl, playlist, *useFFPlay); err != nil {
			sl.Errorw("glc failed", "error", err)
			return 1
		}
		return 0
	}

	if *inPath == "" {
		sl.Error("missing required -in flag")
		return 1
	}

	var err error
	if *decodeMode {
		err = runDecode(sl, *inPath, *outPath, *wantWAV, *flacLevel, *analyze, *plotPath)
	} else {
		err = runEncode(sl, *inPath, *outPath, *wantWAV)
	}
	if err != nil {
		sl.Errorw("glc failed", "error", err)
		return 1
	}
	return 0
}

// newLogger builds a zap logger that writes to both stderr and a
// lumberjack-rotated log file: info and above to stderr, debug and
// above to the file.
func newLogger() *zap.Logger {
	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAgeDay,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zapcore.InfoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(rotator), zapcore.DebugLevel),
	)

	return zap.New(core).With(zap.String("component", "glc"))
}

// readPCM loads interleaved float64 PCM from a WAV or FLAC file,
// chosen by wantWAV and falling back to the file extension otherwise.
// Any other extension is rejected as an unsupported format.
func readPCM(path string, wantWAV bool) (samples []float64, sampleRate, channels int, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" && ext != ".flac" {
		return nil, 0, 0, errors.Wrapf(glc.ErrUnsupportedFormat, "%q: input must be .wav or .flac, got %q", path, ext)
	}
	if wantWAV || ext == ".wav" {
		return wav.Read(path)
	}
	return flac.Read(path)
}

// requireExt rejects path unless its extension matches want
// (case-insensitively), wrapping ErrUnsupportedFormat.
func requireExt(path, want string) error {
	if !strings.EqualFold(filepath.Ext(path), want) {
		return errors.Wrapf(glc.ErrUnsupportedFormat, "%q: expected a %s file", path, want)
	}
	return nil
}

func runEncode(log *zap.SugaredLogger, inPath, outPath string, wantWAV bool) error {
	samples, sampleRate, channels, err := readPCM(inPath, wantWAV)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	log.Infow("loaded input", "path", inPath, "sampleRate", sampleRate, "channels", channels, "samples", len(samples))

	enc := glc.NewEncoder(sampleRate)
	enc.Progress = func(fraction float64) {
		log.Debugw("encoding", "fraction", fraction)
	}

	stream, err := enc.Encode(samples, channels)
	if err != nil {
		return errors.Wrap(err, "encode")
	}

	if outPath == "" {
		outPath = replaceExt(inPath, ".glc")
	}
	if err := glc.Save(stream, outPath); err != nil {
		return errors.Wrap(err, "save container")
	}
	log.Infow("wrote container", "path", outPath, "frames", len(stream.Frames))
	return nil
}

func runDecode(log *zap.SugaredLogger, inPath, outPath string, wantWAV bool, flacLevel int, analyze bool, plotPath string) error {
	if err := requireExt(inPath, ".glc"); err != nil {
		return err
	}
	stream, err := glc.Load(inPath)
	if err != nil {
		return errors.Wrap(err, "load container")
	}

	dec := glc.NewDecoder(stream.Header.Channels, stream.Header.SampleRate)
	dec.Progress = func(fraction float64) {
		log.Debugw("decoding", "fraction", fraction)
	}

	samples, err := dec.Decode(stream)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	log.Infow("decoded container", "path", inPath, "samples", len(samples))

	// The analysis helpers take a single channel.
	first := samples
	if ch := stream.Header.Channels; ch > 1 {
		first = make([]float64, len(samples)/ch)
		for i := range first {
			first[i] = samples[i*ch]
		}
	}
	if analyze {
		logDiagnostics(log, first, stream.Header.SampleRate)
	}
	if plotPath != "" {
		if err := analysis.PlotWaveform(plotPath, filepath.Base(inPath), first); err != nil {
			log.Warnw("failed to write waveform plot", "error", err)
		}
	}

	if outPath == "" {
		if wantWAV {
			outPath = replaceExt(inPath, ".wav")
		} else {
			outPath = replaceExt(inPath, ".flac")
		}
	}
	if wantWAV || strings.EqualFold(filepath.Ext(outPath), ".wav") {
		return errors.Wrap(wav.Write(outPath, samples, stream.Header.SampleRate, stream.Header.Channels), "write WAV")
	}
	return errors.Wrap(
		flac.Write(outPath, samples, stream.Header.SampleRate, stream.Header.Channels, flacLevel),
		"write FLAC",
	)
}

// runPlay loads, decodes, and concatenates each .glc path in order,
// then hands the combined PCM to a single sink.Play call so the
// playlist plays back gaplessly across track boundaries.
func runPlay(log *zap.SugaredLogger, paths []string, useFFPlay bool) error {
	var all []float64
	var sampleRate, channels int

	for i, path := range paths {
		if err := requireExt(path, ".glc"); err != nil {
			return err
		}
		stream, err := glc.Load(path)
		if err != nil {
			return errors.Wrap(err, "load container")
		}

		dec := glc.NewDecoder(stream.Header.Channels, stream.Header.SampleRate)
		samples, err := dec.Decode(stream)
		if err != nil {
			return errors.Wrap(err, "decode")
		}

		if i == 0 {
			sampleRate, channels = stream.Header.SampleRate, stream.Header.Channels
		} else if stream.Header.SampleRate != sampleRate || stream.Header.Channels != channels {
			return errors.Wrapf(glc.ErrUnsupportedFormat, "%q: sample rate/channels do not match preceding playlist entries", path)
		}

		log.Infow("decoded playlist entry", "path", path, "samples", len(samples))
		all = append(all, samples...)
	}

	var sink playback.Sink
	if useFFPlay {
		sink = playback.NewFFPlaySink(log)
	} else {
		sink = playback.NewALSASink("")
	}

	log.Infow("playing playlist", "tracks", len(paths), "totalSamples", len(all))
	return errors.Wrap(sink.Play(all, sampleRate, channels), "play")
}

func logDiagnostics(log *zap.SugaredLogger, samples []float64, sampleRate int) {
	spectrum := analysis.MagnitudeSpectrum(samples, sampleRate)
	log.Infow("spectrum diagnostics", "peakHz", spectrum.PeakFrequency())
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
