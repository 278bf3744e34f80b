package outline

import "testing"

func hs(entries ...Heading) []Heading { return entries }

func TestValidateHierarchyDemotesLevelJump(t *testing.T) {
	in := hs(
		Heading{Level: LevelH1, Text: "1. Introduction", Page: 1},
		Heading{Level: LevelH3, Text: "1.1 Background", Page: 1},
	)
	out := ValidateHierarchy(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(out))
	}
	if out[1].Level != LevelH2 {
		t.Errorf("expected H3 demoted to H2, got %s", out[1].Level)
	}
}

func TestValidateHierarchyAllowsLegalTransitions(t *testing.T) {
	in := hs(
		Heading{Level: LevelH1, Text: "Part One", Page: 1},
		Heading{Level: LevelH2, Text: "Details", Page: 1},
		Heading{Level: LevelH3, Text: "Fine Print", Page: 2},
		Heading{Level: LevelH1, Text: "Part Two", Page: 3}, // ascending freely is fine
		Heading{Level: LevelH2, Text: "More Details", Page: 3},
	)
	out := ValidateHierarchy(in)
	if len(out) != len(in) {
		t.Fatalf("expected %d headings, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Level != in[i].Level {
			t.Errorf("heading %d: expected %s, got %s", i, in[i].Level, out[i].Level)
		}
	}
}

func TestValidateHierarchyDropsAdjacentDuplicate(t *testing.T) {
	in := hs(
		Heading{Level: LevelH1, Text: "References", Page: 11},
		Heading{Level: LevelH1, Text: "REFERENCES", Page: 11}, // case-insensitive dup
		Heading{Level: LevelH1, Text: "References", Page: 12}, // different page survives
	)
	out := ValidateHierarchy(in)
	if len(out) != 2 {
		t.Fatalf("expected duplicate dropped, got %d headings", len(out))
	}
	if out[1].Page != 12 {
		t.Errorf("expected surviving heading on page 12, got page %d", out[1].Page)
	}
}

func TestValidateHierarchyIdempotent(t *testing.T) {
	in := hs(
		Heading{Level: LevelH2, Text: "Opening", Page: 1},
		Heading{Level: LevelH4, Text: "Deep Dive", Page: 1},
		Heading{Level: LevelH4, Text: "Deep Dive", Page: 1},
		Heading{Level: LevelH1, Text: "Next Part", Page: 2},
		Heading{Level: LevelH4, Text: "Appendix Notes", Page: 9},
	)
	once := ValidateHierarchy(in)
	twice := ValidateHierarchy(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("heading %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestValidateHierarchyMonotonicNesting(t *testing.T) {
	in := hs(
		Heading{Level: LevelH1, Text: "A", Page: 1},
		Heading{Level: LevelH4, Text: "B", Page: 1},
		Heading{Level: LevelH2, Text: "C", Page: 2},
		Heading{Level: LevelH4, Text: "D", Page: 2},
		Heading{Level: LevelH3, Text: "E", Page: 3},
	)
	out := ValidateHierarchy(in)
	for i := 1; i < len(out); i++ {
		if out[i].Level.Depth() > out[i-1].Level.Depth()+1 {
			t.Errorf("nesting violation at %d: %s after %s", i, out[i].Level, out[i-1].Level)
		}
	}
}

func TestValidateHierarchyEmpty(t *testing.T) {
	if out := ValidateHierarchy(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d", len(out))
	}
}
