package outline

import (
	"math"
	"testing"
)

func sizedBlocks(sizes ...float64) []TextBlock {
	blocks := make([]TextBlock, len(sizes))
	for i, s := range sizes {
		blocks[i] = TextBlock{Page: 1, Text: "x", FontSize: s}
	}
	return blocks
}

func TestBuildFontProfileMoments(t *testing.T) {
	p := BuildFontProfile(sizedBlocks(10, 10, 10, 12, 18))
	if got := p.Mean; math.Abs(got-12) > 1e-9 {
		t.Errorf("expected mean 12, got %f", got)
	}
	if p.Min != 10 || p.Max != 18 {
		t.Errorf("expected min=10 max=18, got min=%f max=%f", p.Min, p.Max)
	}
	if p.StdDev <= 0 {
		t.Errorf("expected positive std dev, got %f", p.StdDev)
	}
	if p.P90 < p.P75 {
		t.Errorf("expected p90 >= p75, got p75=%f p90=%f", p.P75, p.P90)
	}
}

func TestBuildFontProfileDistinctRanks(t *testing.T) {
	p := BuildFontProfile(sizedBlocks(10, 16, 10, 13, 16, 10))
	want := []float64{16, 13, 10}
	got := p.DistinctSizes()
	if len(got) != len(want) {
		t.Fatalf("expected %d distinct sizes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("distinct[%d]: expected %f, got %f", i, want[i], got[i])
		}
	}
	if r := p.SizeRank(16); r != 1 {
		t.Errorf("expected rank 1 for 16pt, got %d", r)
	}
	if r := p.SizeRank(10); r != 3 {
		t.Errorf("expected rank 3 for 10pt, got %d", r)
	}
	if r := p.SizeRank(99); r != 0 {
		t.Errorf("expected rank 0 for absent size, got %d", r)
	}
}

func TestBuildFontProfileUniform(t *testing.T) {
	p := BuildFontProfile(sizedBlocks(11, 11, 11))
	if !p.Uniform() {
		t.Fatal("expected uniform profile")
	}
	if p.Mean != 11 || p.Min != 11 || p.Max != 11 {
		t.Errorf("expected mean=min=max=11, got mean=%f min=%f max=%f", p.Mean, p.Min, p.Max)
	}
	// Uniform documents fall back to a constant size score.
	b := &TextBlock{FontSize: 11}
	if got := fontSizeScore(b, p); got != neutralScore {
		t.Errorf("expected neutral size score %f, got %f", neutralScore, got)
	}
}

func TestBuildFontProfileNoUsableSizes(t *testing.T) {
	p := BuildFontProfile([]TextBlock{{Text: "no size"}, {Text: "also none"}})
	if p.Mean != 0 {
		t.Errorf("expected zero mean for empty profile, got %f", p.Mean)
	}
	if r := p.SizeRatio(12); r != 1.0 {
		t.Errorf("expected ratio fallback 1.0, got %f", r)
	}
	if len(p.DistinctSizes()) != 0 {
		t.Errorf("expected no distinct sizes, got %v", p.DistinctSizes())
	}
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	if got := percentile(sorted, 50); got != 30 {
		t.Errorf("expected p50=30, got %f", got)
	}
	if got := percentile(sorted, 0); got != 10 {
		t.Errorf("expected p0=10, got %f", got)
	}
	if got := percentile(sorted, 100); got != 50 {
		t.Errorf("expected p100=50, got %f", got)
	}
	if got := percentile(sorted, 75); got != 40 {
		t.Errorf("expected p75=40, got %f", got)
	}
}
