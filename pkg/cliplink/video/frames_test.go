package video

import (
	"math"
	"testing"
)

func TestFrameOffsetsSingleFrameHitsMidpoint(t *testing.T) {
	offsets := frameOffsets(30, 1)
	if len(offsets) != 1 {
		t.Fatalf("expected 1 offset, got %d", len(offsets))
	}
	if math.Abs(offsets[0]-15) > 1e-9 {
		t.Errorf("offset = %.2f, want 15 (midpoint)", offsets[0])
	}
}

func TestFrameOffsetsSkipEdges(t *testing.T) {
	const duration = 100.0
	offsets := frameOffsets(duration, 5)

	if len(offsets) != 5 {
		t.Fatalf("expected 5 offsets, got %d", len(offsets))
	}
	if math.Abs(offsets[0]-10) > 1e-9 {
		t.Errorf("first offset = %.2f, want 10 (start of usable window)", offsets[0])
	}
	if math.Abs(offsets[4]-90) > 1e-9 {
		t.Errorf("last offset = %.2f, want 90 (end of usable window)", offsets[4])
	}

	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			t.Errorf("offsets not strictly increasing: %.2f then %.2f", offsets[i-1], offsets[i])
		}
	}
}

func TestFrameOffsetsEvenSpacing(t *testing.T) {
	offsets := frameOffsets(60, 3)

	gap1 := offsets[1] - offsets[0]
	gap2 := offsets[2] - offsets[1]
	if math.Abs(gap1-gap2) > 1e-9 {
		t.Errorf("uneven spacing: %.3f vs %.3f", gap1, gap2)
	}

	if math.Abs(offsets[0]-6) > 1e-9 || math.Abs(offsets[2]-54) > 1e-9 {
		t.Errorf("offsets = %v, want window [6, 54]", offsets)
	}
}
