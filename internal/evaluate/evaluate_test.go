package evaluate

import (
	"math/rand"
	"testing"
)

func TestEvaluate_ScoreWithinDistribution(t *testing.T) {
	e := New()
	for i := 0; i < 200; i++ {
		v := e.Evaluate("job description", "cv.pdf")
		if v.Score < 40 || v.Score > 99 {
			t.Fatalf("score %d outside [40,99]", v.Score)
		}
		if v.Passed != (v.Score >= PassThreshold) {
			t.Fatalf("passed flag inconsistent: score=%d passed=%v", v.Score, v.Passed)
		}
	}
}

func TestEvaluate_BandSizes(t *testing.T) {
	e := NewWithSource(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		v := e.Evaluate("", "")

		wantReasons := 2
		switch {
		case v.Score >= 85:
			wantReasons = 4
		case v.Score >= PassThreshold:
			wantReasons = 3
		}
		if len(v.Reasons) != wantReasons {
			t.Fatalf("score %d: expected %d reasons got %d", v.Score, wantReasons, len(v.Reasons))
		}

		wantMissing := 1
		switch {
		case v.Score < 60:
			wantMissing = 4
		case v.Score < 80:
			wantMissing = 2
		}
		if len(v.Missing) != wantMissing {
			t.Fatalf("score %d: expected %d missing got %d", v.Score, wantMissing, len(v.Missing))
		}
	}
}

func TestEvaluate_DeterministicWithPinnedSource(t *testing.T) {
	a := NewWithSource(rand.NewSource(42))
	b := NewWithSource(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		va := a.Evaluate("", "")
		vb := b.Evaluate("", "")
		if va.Score != vb.Score {
			t.Fatalf("iteration %d: scores diverged %d vs %d", i, va.Score, vb.Score)
		}
	}
}

func TestFallbackVerdict(t *testing.T) {
	v := FallbackVerdict(75)
	if !v.Passed || v.Score != 75 {
		t.Fatalf("unexpected fallback verdict %+v", v)
	}
	if len(v.Reasons) != 1 || len(v.Missing) != 1 {
		t.Fatalf("fallback lists must be single-item: %+v", v)
	}

	v = FallbackVerdict(40)
	if v.Passed {
		t.Fatalf("score 40 must not pass")
	}
}
