package glc

import (
	"math"
	"testing"
)

func TestQuantizeChannelProducesValidSparseSet(t *testing.T) {
	tb := newTransformTables()
	pm := newPerceptualModel(44100)
	p := DefaultParams()

	block := make([]float64, FrameSize)
	for i := range block {
		block[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}

	cq := quantizeChannel(block, tb, pm, p)
	if cq.Scale <= 0 {
		t.Fatalf("scale = %v, want > 0", cq.Scale)
	}
	seen := make(map[int16]struct{})
	for _, pair := range cq.Sparse {
		if pair.Index < 0 || int(pair.Index) >= NumBins {
			t.Fatalf("bin index %d out of range [0, %d)", pair.Index, NumBins)
		}
		if _, dup := seen[pair.Index]; dup {
			t.Fatalf("duplicate bin index %d", pair.Index)
		}
		seen[pair.Index] = struct{}{}
		if pair.Value == 0 {
			t.Fatal("zero-value coefficients must be discarded, not emitted")
		}
	}
}

func TestQuantizeSilentBlockHasFlooredScale(t *testing.T) {
	tb := newTransformTables()
	pm := newPerceptualModel(44100)
	p := DefaultParams()

	block := make([]float64, FrameSize)
	cq := quantizeChannel(block, tb, pm, p)
	if cq.Scale != scaleFloorEncode {
		t.Fatalf("silent block scale = %v, want floor %v", cq.Scale, scaleFloorEncode)
	}
	if len(cq.Sparse) != 0 {
		t.Fatalf("silent block sparse set length = %d, want 0", len(cq.Sparse))
	}
}

func TestDequantizeChannelFloorsScale(t *testing.T) {
	coeffs := dequantizeChannel([]coeffPair{{Index: 5, Value: 100}}, 0)
	if coeffs[5] == 0 {
		t.Fatal("expected non-zero coefficient even with zero input scale (floored)")
	}
}

func TestRawFallbackForNearNoiseFrame(t *testing.T) {
	tb := newTransformTables()
	pm := newPerceptualModel(44100)
	p := DefaultParams()

	// White-noise-like block: every bin carries similar small energy,
	// so sparse coding offers little savings and the frame should fall
	// back to raw.
	block := make([]float64, FrameSize)
	state := uint32(12345)
	for i := range block {
		state = state*1664525 + 1013904223
		block[i] = (float64(state%2000) - 1000) / 1000000
	}
	cq := quantizeChannel(block, tb, pm, p)
	frame := decideFrame([]channelQuant{cq}, 1, p.RawFallbackRatio)
	if frame.Kind != KindRaw {
		t.Fatalf("expected raw fallback for near-noise frame, got kind %v with %d sparse coeffs", frame.Kind, len(cq.Sparse))
	}
	if len(frame.Raw) != FrameSize {
		t.Fatalf("raw frame length = %d, want %d", len(frame.Raw), FrameSize)
	}
}
