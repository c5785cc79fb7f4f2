package glc

import "testing"

func TestWeightBounds(t *testing.T) {
	m := newPerceptualModel(44100)
	if len(m.weights) != NumBins {
		t.Fatalf("weights length = %d, want %d", len(m.weights), NumBins)
	}
	for k, w := range m.weights {
		if w < 0.2 || w > 1.0 {
			t.Fatalf("weight[%d] = %v, want in [0.2, 1.0]", k, w)
		}
	}
}

func TestCriticalBandsCoverRange(t *testing.T) {
	m := newPerceptualModel(44100)
	if len(m.bands) == 0 {
		t.Fatal("expected at least one critical band")
	}
	if len(m.bands) > 50 {
		t.Fatalf("band count = %d, want <= 50", len(m.bands))
	}
	if m.bands[0].Start != 0 {
		t.Fatalf("first band starts at %d, want 0", m.bands[0].Start)
	}
	for i := 1; i < len(m.bands); i++ {
		if m.bands[i].Start != m.bands[i-1].End {
			t.Fatalf("band %d starts at %d, want %d (contiguous)", i, m.bands[i].Start, m.bands[i-1].End)
		}
	}
	if m.bands[len(m.bands)-1].End != NumBins {
		t.Fatalf("last band ends at %d, want %d", m.bands[len(m.bands)-1].End, NumBins)
	}
}
