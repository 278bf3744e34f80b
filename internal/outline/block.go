package outline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is the outline level assigned to a block.
type Level int

const (
	LevelNone Level = iota
	LevelTitle
	LevelH1
	LevelH2
	LevelH3
	LevelH4
)

// maxDepth is the deepest heading level emitted in an outline.
const maxDepth = 4

func (l Level) String() string {
	switch l {
	case LevelTitle:
		return "TITLE"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	case LevelH4:
		return "H4"
	default:
		return "NONE"
	}
}

// Depth returns 1 for H1 through 4 for H4, and 0 for non-heading levels.
func (l Level) Depth() int {
	if l >= LevelH1 && l <= LevelH4 {
		return int(l - LevelH1 + 1)
	}
	return 0
}

// headingLevel maps a depth (1-4) back to a Level, capping at H4.
func headingLevel(depth int) Level {
	if depth < 1 {
		depth = 1
	}
	if depth > maxDepth {
		depth = maxDepth
	}
	return LevelH1 + Level(depth-1)
}

// BBox is an axis-aligned bounding box in page coordinates.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Empty reports whether the box has no area.
func (b BBox) Empty() bool { return b.X1 <= b.X0 || b.Y1 <= b.Y0 }

// TextBlock is the normalizer's unit of work: one semantically coherent run
// of text with position and font metadata. Position, text, and font fields
// are immutable after normalization; analysis stages only fill in the
// annotation fields below them.
type TextBlock struct {
	Page     int
	BBox     BBox
	Text     string
	FontName string
	FontSize float64
	Bold     bool
	Italic   bool

	// Annotations attached during analysis.
	WordCount  int
	CapsRatio  float64
	Numbering  *NumberingMatch
	Confidence float64
	Level      Level
}

// computeDerived fills in the word count and capitalization ratio. Called
// once by the normalizer when the block is created.
func (b *TextBlock) computeDerived() {
	words := strings.Fields(b.Text)
	b.WordCount = len(words)
	b.CapsRatio = capsRatio(b.Text)
	b.Numbering = MatchNumbering(b.Text)
}

func capsRatio(s string) float64 {
	letters, caps := 0, 0
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			caps++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(caps) / float64(letters)
}

// MarshalJSON emits the wire form of the level ("H1".."H4").
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON accepts the wire form produced by MarshalJSON.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "TITLE":
		*l = LevelTitle
	case "H1":
		*l = LevelH1
	case "H2":
		*l = LevelH2
	case "H3":
		*l = LevelH3
	case "H4":
		*l = LevelH4
	case "", "NONE":
		*l = LevelNone
	default:
		return fmt.Errorf("unknown outline level: %q", s)
	}
	return nil
}

// Heading is one entry in a finished outline.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the externally visible result for one document: a title plus
// the ordered heading list. Zero headings is a valid outcome.
type Outline struct {
	Title    string    `json:"title"`
	Headings []Heading `json:"outline"`
}
