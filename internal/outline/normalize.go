package outline

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Fragment is a raw positioned text run as supplied by an extraction
// adapter, before normalization.
type Fragment struct {
	Page     int
	BBox     BBox
	Text     string
	FontName string
	FontSize float64
	Bold     bool
	Italic   bool
}

// lineTolerance is the vertical slack, as a fraction of font size, within
// which two fragments count as the same visual line.
const lineTolerance = 0.5

// Normalize merges raw fragments into TextBlocks in reading order: page
// ascending, then top to bottom, then left to right within a line.
// Fragments on the same line with identical font metadata are merged into
// one block; blocks that are empty or punctuation-only after trimming are
// dropped. A document that yields no usable blocks returns an empty slice,
// never an error.
func Normalize(frags []Fragment) []TextBlock {
	if len(frags) == 0 {
		return nil
	}

	ordered := make([]Fragment, len(frags))
	copy(ordered, frags)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if !sameLine(a, b) {
			// Page coordinates grow upward, so higher Y reads first.
			return a.BBox.Y0 > b.BBox.Y0
		}
		return a.BBox.X0 < b.BBox.X0
	})

	var blocks []TextBlock
	for _, f := range ordered {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		if len(blocks) > 0 && mergeable(&blocks[len(blocks)-1], f) {
			merge(&blocks[len(blocks)-1], f)
			continue
		}
		blocks = append(blocks, TextBlock{
			Page:     f.Page,
			BBox:     f.BBox,
			Text:     f.Text,
			FontName: f.FontName,
			FontSize: f.FontSize,
			Bold:     f.Bold,
			Italic:   f.Italic,
		})
	}

	out := blocks[:0]
	for i := range blocks {
		blocks[i].Text = strings.TrimSpace(blocks[i].Text)
		if !usableText(blocks[i].Text) {
			continue
		}
		blocks[i].computeDerived()
		out = append(out, blocks[i])
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sameLine(a, b Fragment) bool {
	size := math.Max(a.FontSize, b.FontSize)
	if size <= 0 {
		size = 12
	}
	return a.Page == b.Page && math.Abs(a.BBox.Y0-b.BBox.Y0) <= size*lineTolerance
}

func mergeable(block *TextBlock, f Fragment) bool {
	if block.Page != f.Page || block.FontName != f.FontName {
		return false
	}
	if math.Abs(block.FontSize-f.FontSize) > 0.05 {
		return false
	}
	size := block.FontSize
	if size <= 0 {
		size = 12
	}
	return math.Abs(block.BBox.Y0-f.BBox.Y0) <= size*lineTolerance
}

func merge(block *TextBlock, f Fragment) {
	// Insert a space unless the runs are visually contiguous.
	gap := f.BBox.X0 - block.BBox.X1
	if gap > block.FontSize*0.15 && !strings.HasSuffix(block.Text, " ") &&
		!strings.HasPrefix(f.Text, " ") {
		block.Text += " "
	}
	block.Text += f.Text
	if f.BBox.X1 > block.BBox.X1 {
		block.BBox.X1 = f.BBox.X1
	}
	if f.BBox.Y1 > block.BBox.Y1 {
		block.BBox.Y1 = f.BBox.Y1
	}
	if f.BBox.Y0 < block.BBox.Y0 {
		block.BBox.Y0 = f.BBox.Y0
	}
	block.Bold = block.Bold || f.Bold
	block.Italic = block.Italic || f.Italic
}

// usableText reports whether trimmed text carries content beyond
// punctuation and whitespace.
func usableText(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
