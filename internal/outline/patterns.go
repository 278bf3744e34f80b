package outline

import (
	"regexp"
	"strconv"
	"strings"
)

// Numbering and keyword tables used by the pattern and content extractors.
// Kept as named constants so they can be tested and extended without
// touching the scoring logic.

// NumberingType identifies the numbering scheme matched at the start of a
// block.
type NumberingType int

const (
	NumberingNone NumberingType = iota
	NumberingDecimal
	NumberingList
	NumberingLettered
	NumberingRoman
	NumberingBullet
	NumberingAppendix
)

func (t NumberingType) String() string {
	switch t {
	case NumberingDecimal:
		return "decimal"
	case NumberingList:
		return "list"
	case NumberingLettered:
		return "lettered"
	case NumberingRoman:
		return "roman"
	case NumberingBullet:
		return "bullet"
	case NumberingAppendix:
		return "appendix"
	default:
		return "none"
	}
}

// NumberingMatch is the parsed numbering prefix of a block, with the numeric
// value captured for ordering checks ("2.1" -> [2 1]).
type NumberingMatch struct {
	Type  NumberingType
	Value []int
}

// Depth returns how many numbering components were captured; for decimal
// sections this is the section depth ("2.1" -> 2).
func (m *NumberingMatch) Depth() int {
	if m == nil {
		return 0
	}
	return len(m.Value)
}

var (
	decimalSectionRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+\S`)
	numberedListRe   = regexp.MustCompile(`^(\d+)\)\s+\S`)
	letteredListRe   = regexp.MustCompile(`^([A-Z])[.)]\s+\S`)
	romanNumeralRe   = regexp.MustCompile(`^([IVXLC]+|[ivxlc]+)[.)]\s+\S`)
	bulletRe         = regexp.MustCompile(`^[\x{2022}\x{00B7}\x{25AA}\x{25AB}\x{25E6}\x{2023}\x{2043}\-]\s+\S`)
	appendixRe       = regexp.MustCompile(`(?i)^appendix\s+([A-Z0-9]+)\b`)

	trailingColonRe = regexp.MustCompile(`^[A-Z][a-z].*:$`)
	allCapsRe       = regexp.MustCompile(`^[A-Z][A-Z\s\d\-_,.]+$`)
	titleCaseRe     = regexp.MustCompile(`^[A-Z][a-zA-Z\s]{2,50}$`)
)

var romanValues = map[byte]int{'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100}

// MatchNumbering parses the numbering prefix of text, if any. Decimal
// sections are tried first since "1.1" would otherwise shadow as a list.
func MatchNumbering(text string) *NumberingMatch {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if m := decimalSectionRe.FindStringSubmatch(text); m != nil {
		parts := strings.Split(m[1], ".")
		value := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil
			}
			value = append(value, n)
		}
		return &NumberingMatch{Type: NumberingDecimal, Value: value}
	}
	if m := numberedListRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &NumberingMatch{Type: NumberingList, Value: []int{n}}
	}
	if m := romanNumeralRe.FindStringSubmatch(text); m != nil {
		if n, ok := parseRoman(m[1]); ok {
			return &NumberingMatch{Type: NumberingRoman, Value: []int{n}}
		}
	}
	if m := letteredListRe.FindStringSubmatch(text); m != nil {
		return &NumberingMatch{Type: NumberingLettered, Value: []int{int(m[1][0]-'A') + 1}}
	}
	if bulletRe.MatchString(text) {
		return &NumberingMatch{Type: NumberingBullet}
	}
	if m := appendixRe.FindStringSubmatch(text); m != nil {
		value := []int{}
		if c := m[1][0]; c >= 'A' && c <= 'Z' {
			value = append(value, int(c-'A')+1)
		}
		return &NumberingMatch{Type: NumberingAppendix, Value: value}
	}
	return nil
}

// parseRoman converts a roman numeral (either case, up to hundreds) to its
// value. Returns false for strings that merely look roman ("IC", "VV").
func parseRoman(s string) (int, bool) {
	s = strings.ToLower(s)
	total, prev := 0, 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	if total <= 0 || total > 300 {
		return 0, false
	}
	return total, true
}

// Keyword tiers. Structural vocabulary is the strongest heading signal,
// organizational the weakest.
var (
	structuralKeywords = []string{
		"table of contents", "contents", "index", "references",
		"bibliography", "appendix", "glossary", "acknowledgements",
		"preface", "foreword", "revision history",
	}
	sectionalKeywords = []string{
		"introduction", "overview", "summary", "conclusion", "background",
		"methodology", "results", "discussion", "abstract",
		"executive summary",
	}
	organizationalKeywords = []string{
		"chapter", "section", "part", "unit", "module", "lesson",
	}
)

// matchKeywordTier reports the strongest keyword tier present in text as a
// whole-word, case-insensitive match: 3 structural, 2 sectional,
// 1 organizational, 0 none.
func matchKeywordTier(text string) int {
	lower := strings.ToLower(text)
	if containsWholeWordAny(lower, structuralKeywords) {
		return 3
	}
	if containsWholeWordAny(lower, sectionalKeywords) {
		return 2
	}
	if containsWholeWordAny(lower, organizationalKeywords) {
		return 1
	}
	return 0
}

func containsWholeWordAny(lower string, words []string) bool {
	for _, w := range words {
		if containsWholeWord(lower, w) {
			return true
		}
	}
	return false
}

// containsWholeWord reports whether word occurs in lower bounded by
// non-letter characters on both sides. Both arguments must already be
// lowercase.
func containsWholeWord(lower, word string) bool {
	for from := 0; ; {
		i := strings.Index(lower[from:], word)
		if i < 0 {
			return false
		}
		i += from
		before := i == 0 || !isLetter(lower[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(lower) || !isLetter(lower[afterIdx])
		if before && after {
			return true
		}
		from = i + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
