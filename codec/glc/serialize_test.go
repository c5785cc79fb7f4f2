package glc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajcm474/glc/codec/glc"
)

func TestContainerRoundTrip(t *testing.T) {
	const sampleRate = 44100
	samples := sineWave(440, 0.5, sampleRate, sampleRate/2)
	enc := glc.NewEncoder(sampleRate)
	stream, err := enc.Encode(samples, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	data, err := glc.Marshal(stream)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := glc.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(stream, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	const sampleRate = 44100
	samples := sineWave(440, 0.5, sampleRate, sampleRate/4)
	enc := glc.NewEncoder(sampleRate)
	stream, err := enc.Encode(samples, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "track.glc")
	if err := glc.Save(stream, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := glc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(stream, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestCompressionRatio checks the end-to-end scenario from spec.md §8:
// a 10 s stereo sine, encoded then serialized to file, must come in at
// or under half the size of the raw interleaved samples at 4 bytes
// each.
func TestCompressionRatio(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate * 10
	mono := sineWave(440, 0.5, sampleRate, n)
	interleaved := make([]float64, n*2)
	for i, s := range mono {
		interleaved[2*i] = s
		interleaved[2*i+1] = s
	}

	enc := glc.NewEncoder(sampleRate)
	stream, err := enc.Encode(interleaved, 2)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "track.glc")
	if err := glc.Save(stream, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	rawSize := int64(len(interleaved)) * 4
	limit := rawSize / 2
	if info.Size() > limit {
		t.Fatalf("serialized size = %d bytes, want <= %d (0.5 * %d raw bytes)", info.Size(), limit, rawSize)
	}
}

func TestLoadCorruptStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.glc")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := glc.Load(path); err == nil {
		t.Fatal("expected error for truncated/corrupt stream")
	}
}

func TestUnmarshalBadVersion(t *testing.T) {
	if _, err := glc.Unmarshal([]byte{99, 1, 2, 3}); err == nil {
		t.Fatal("expected error for unsupported wire version")
	}
}
