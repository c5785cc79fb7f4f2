/*
NAME
  roundtrip_test.go

DESCRIPTION
  roundtrip_test.go exercises the gapless length-preservation property
  and the signal-quality scenarios from the codec's testable
  properties: SNR bounds for sine/square/sawtooth tones, stereo length
  preservation, amplitude stability, and exact-length concatenation of
  independently encoded/decoded segments.

AUTHOR
  Mara Whitfield <mara@glc-codec.org>

LICENSE
  Copyright (C) 2026 the GLC authors. All Rights Reserved.
*/

package glc_test

import (
	"math"
	"testing"

	"github.com/ajcm474/glc/codec/glc"
	"github.com/ajcm474/glc/internal/analysis"
)

func sineWave(freq float64, amp float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func squareWave(freq float64, amp float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	period := float64(sampleRate) / freq
	for i := range out {
		if math.Mod(float64(i), period) < period/2 {
			out[i] = amp
		} else {
			out[i] = -amp
		}
	}
	return out
}

func sawWave(freq float64, amp float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	period := float64(sampleRate) / freq
	for i := range out {
		phase := math.Mod(float64(i), period) / period
		out[i] = amp * (2*phase - 1)
	}
	return out
}

func encodeDecode(t *testing.T, samples []float64, channels, sampleRate int) []float64 {
	t.Helper()
	enc := glc.NewEncoder(sampleRate)
	stream, err := enc.Encode(samples, channels)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec := glc.NewDecoder(channels, sampleRate)
	out, err := dec.Decode(stream)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out
}

func TestGaplessLengthPreservation(t *testing.T) {
	const sampleRate = 44100
	samples := sineWave(440, 0.5, sampleRate, sampleRate*2)
	out := encodeDecode(t, samples, 1, sampleRate)
	if len(out) != len(samples) {
		t.Fatalf("decoded length = %d, want %d", len(out), len(samples))
	}
}

func TestMonoOneSecond48k(t *testing.T) {
	const sampleRate = 48000
	samples := sineWave(440, 0.5, sampleRate, sampleRate)
	out := encodeDecode(t, samples, 1, sampleRate)
	if len(out) != sampleRate {
		t.Fatalf("decoded length = %d, want %d", len(out), sampleRate)
	}
}

func TestStereoSine(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate * 2
	mono := sineWave(440, 0.5, sampleRate, n)
	interleaved := make([]float64, n*2)
	for i, s := range mono {
		interleaved[2*i] = s
		interleaved[2*i+1] = s
	}
	out := encodeDecode(t, interleaved, 2, sampleRate)
	if len(out) != n*2 {
		t.Fatalf("decoded length = %d, want %d", len(out), n*2)
	}

	left := make([]float64, n)
	for i := range left {
		left[i] = out[2*i]
	}
	snr := analysis.SNR(mono[1000:n-1000], left[1000:n-1000])
	if snr <= -10 {
		t.Fatalf("stereo sine SNR = %.2f dB, want > -10dB", snr)
	}
}

func TestSineSNR(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate * 2
	samples := sineWave(440, 0.5, sampleRate, n)
	out := encodeDecode(t, samples, 1, sampleRate)

	snr := analysis.SNR(samples[1000:n-1000], out[1000:n-1000])
	if snr <= -10 {
		t.Fatalf("sine SNR = %.2f dB, want > -10dB", snr)
	}
}

func TestSquareSNR(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate * 2
	samples := squareWave(1000, 0.5, sampleRate, n)
	out := encodeDecode(t, samples, 1, sampleRate)

	snr := analysis.SNR(samples[1000:n-1000], out[1000:n-1000])
	if snr <= -15 {
		t.Fatalf("square SNR = %.2f dB, want > -15dB", snr)
	}
}

func TestSawtoothSNR(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate * 2
	samples := sawWave(440, 0.5, sampleRate, n)
	out := encodeDecode(t, samples, 1, sampleRate)

	snr := analysis.SNR(samples[1000:n-1000], out[1000:n-1000])
	if snr <= -10 {
		t.Fatalf("sawtooth SNR = %.2f dB, want > -10dB", snr)
	}
}

func TestAmplitudeStability(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate * 2
	samples := sineWave(440, 0.5, sampleRate, n)
	out := encodeDecode(t, samples, 1, sampleRate)

	const window = 200
	maxima := analysis.RunningMax(out, window)
	for i, m := range maxima {
		if m < 0.45 || m > 0.55 {
			t.Fatalf("running max at index %d = %.4f, want within 10%% of 0.5", i, m)
		}
	}
}

func TestConcatenationExactLength(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate * 2

	a := encodeDecode(t, sineWave(440, 0.5, sampleRate, n), 1, sampleRate)
	b := encodeDecode(t, sineWave(880, 0.5, sampleRate, n), 1, sampleRate)
	c := encodeDecode(t, squareWave(440, 0.5, sampleRate, n), 1, sampleRate)

	total := len(a) + len(b) + len(c)
	if total != 3*n {
		t.Fatalf("concatenated length = %d, want %d", total, 3*n)
	}
}

func TestFrameCountInvariant(t *testing.T) {
	const sampleRate = 44100
	samples := sineWave(440, 0.5, sampleRate, sampleRate*2)
	enc := glc.NewEncoder(sampleRate)
	stream, err := enc.Encode(samples, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	perChannel := len(samples)
	lead := glc.HopSize / 2
	remainder := perChannel % glc.HopSize
	bodyPadded := perChannel
	if remainder != 0 {
		bodyPadded += glc.HopSize - remainder
	}
	padded := lead + bodyPadded + lead

	want := (padded-glc.FrameSize)/glc.HopSize + 1
	if want < 1 {
		want = 1
	}
	if len(stream.Frames) != want {
		t.Fatalf("frame count = %d, want %d", len(stream.Frames), want)
	}
	if padded%glc.HopSize != 0 {
		t.Fatalf("padded length %d is not a multiple of hop size %d", padded, glc.HopSize)
	}
}

func TestInvalidInput(t *testing.T) {
	enc := glc.NewEncoder(44100)
	if _, err := enc.Encode([]float64{1, 2, 3}, 0); err == nil {
		t.Fatal("expected error for zero channels")
	}
	if _, err := enc.Encode([]float64{1, 2, 3}, 2); err == nil {
		t.Fatal("expected error for non-multiple sample count")
	}
}
