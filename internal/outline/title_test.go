package outline

import "testing"

func TestTitleWindow(t *testing.T) {
	tests := []struct {
		blocks, want int
	}{
		{0, 0},
		{4, 4},    // floor of 10, capped by document length
		{12, 10},  // floor of 10
		{100, 20}, // 20% of document
		{400, 30}, // hard cap at 30
	}
	for _, tt := range tests {
		if got := titleWindow(tt.blocks); got != tt.want {
			t.Errorf("titleWindow(%d): expected %d, got %d", tt.blocks, tt.want, got)
		}
	}
}

func TestDetectTitlePicksLargeEarlyBlock(t *testing.T) {
	blocks := []TextBlock{
		analyzed("Annual Report 2024", 1, 24, 720, true),
		analyzed("1. Introduction", 1, 16, 680, false),
		analyzed("plain body text follows here with several more words in it", 1, 10, 660, false),
		analyzed("plain body text follows here with several more words in it", 1, 10, 640, false),
	}
	profile := BuildFontProfile(blocks)
	title, idx := detectTitle(blocks, profile, DefaultConfig())
	if title != "Annual Report 2024" {
		t.Fatalf("expected title %q, got %q", "Annual Report 2024", title)
	}
	if idx != 0 {
		t.Errorf("expected winning index 0, got %d", idx)
	}
	if blocks[0].Level != LevelTitle {
		t.Errorf("expected winning block marked TITLE, got %s", blocks[0].Level)
	}
}

func TestDetectTitleIgnoresLateBlocks(t *testing.T) {
	// A huge block outside the front-matter window must never win.
	blocks := make([]TextBlock, 0, 60)
	blocks = append(blocks, analyzed("Quarterly Bulletin", 1, 14, 720, true))
	for i := 0; i < 50; i++ {
		blocks = append(blocks, analyzed("ordinary body paragraph with enough words to look like prose", 1, 10, 700-float64(i)*12, false))
	}
	blocks = append(blocks, analyzed("GIANT LATE BANNER", 3, 40, 700, true))

	profile := BuildFontProfile(blocks)
	title, _ := detectTitle(blocks, profile, DefaultConfig())
	if title != "Quarterly Bulletin" {
		t.Fatalf("expected early candidate to win, got %q", title)
	}
}

func TestDetectTitleFallbacks(t *testing.T) {
	cfg := DefaultConfig()

	// No blocks at all: empty title, no winner.
	title, idx := detectTitle(nil, FontProfile{}, cfg)
	if title != "" || idx != -1 {
		t.Fatalf("expected empty title and idx -1, got %q, %d", title, idx)
	}

	// No candidate clears the threshold: fall back to the first block.
	cfg.TitleConfidenceThreshold = 1.0
	blocks := []TextBlock{
		analyzed("short opening line here", 1, 10, 700, false),
		analyzed("another plain line of text", 1, 10, 688, false),
	}
	profile := BuildFontProfile(blocks)
	title, idx = detectTitle(blocks, profile, cfg)
	if title != "short opening line here" {
		t.Fatalf("expected first-block fallback, got %q", title)
	}
	if idx != -1 {
		t.Errorf("fallback should report idx -1, got %d", idx)
	}
}
