package outline

import (
	"math"
	"sort"
	"strings"
)

// Feature extractors. Each one maps a block to a sub-score in [0,1],
// independently of the others. Missing metadata never fails a block: the
// extractor falls back to the neutral score.

const neutralScore = 0.5

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// patternScore rates numbering schemes and structural cues at the start or
// end of the block text.
func patternScore(b *TextBlock) float64 {
	text := b.Text
	if text == "" {
		return 0
	}

	score := 0.0
	if b.Numbering != nil {
		switch b.Numbering.Type {
		case NumberingDecimal:
			score = 1.0
		case NumberingAppendix:
			score = 0.95
		case NumberingRoman:
			score = 0.9
		case NumberingList, NumberingLettered:
			score = 0.8
		case NumberingBullet:
			score = 0.4
		}
	}

	structural := 0.0
	switch {
	case trailingColonRe.MatchString(text):
		structural = 0.6
	case allCapsRe.MatchString(text) && b.WordCount <= 8:
		structural = 0.7
	case titleCaseRe.MatchString(text) && b.WordCount <= 10:
		structural = 0.4
	}
	if structural > score {
		score = structural
	}

	// A short line is weak evidence on its own but reinforces other cues.
	if score > 0 && b.WordCount > 0 && b.WordCount <= 6 {
		score = clamp01(score + 0.05)
	}
	return clamp01(score)
}

// contentScore rates structural vocabulary, independent of position.
func contentScore(b *TextBlock) float64 {
	switch matchKeywordTier(b.Text) {
	case 3:
		return 1.0
	case 2:
		return 0.8
	case 1:
		return 0.6
	default:
		return 0
	}
}

// layout is the per-document spatial context shared by the spatial and
// context extractors: approximate page width, body left margin, and typical
// line spacing, estimated from the block set itself.
type layout struct {
	pageWidth   float64
	leftMargin  float64
	lineSpacing float64
}

func buildLayout(blocks []TextBlock) layout {
	l := layout{}
	if len(blocks) == 0 {
		return l
	}

	lefts := make([]float64, 0, len(blocks))
	for i := range blocks {
		bb := blocks[i].BBox
		if bb.Empty() {
			continue
		}
		if bb.X1 > l.pageWidth {
			l.pageWidth = bb.X1
		}
		lefts = append(lefts, bb.X0)
	}
	if len(lefts) > 0 {
		// Body text dominates, so the median left edge is the margin.
		sort.Float64s(lefts)
		l.leftMargin = lefts[len(lefts)/2]
	}

	// Median gap between consecutive blocks on the same page.
	var gaps []float64
	for i := 1; i < len(blocks); i++ {
		g := gapAbove(&blocks[i], &blocks[i-1])
		if g > 0 {
			gaps = append(gaps, g)
		}
	}
	if len(gaps) > 0 {
		sort.Float64s(gaps)
		l.lineSpacing = gaps[len(gaps)/2]
	}
	return l
}

// gapAbove returns the vertical whitespace between a block and its
// predecessor, or -1 when they are not stacked on the same page.
func gapAbove(b, prev *TextBlock) float64 {
	if prev == nil || b.Page != prev.Page || b.BBox.Empty() || prev.BBox.Empty() {
		return -1
	}
	gap := prev.BBox.Y0 - b.BBox.Y1
	if gap < 0 {
		return -1
	}
	return gap
}

// spatialScore rates the whitespace above a block, its indentation relative
// to the body margin, and its width relative to the page. Blocks with no
// usable geometry score neutral.
func spatialScore(b *TextBlock, prev *TextBlock, l layout) float64 {
	if b.BBox.Empty() || l.pageWidth <= 0 {
		return neutralScore
	}

	// Whitespace above, relative to typical line spacing.
	gapComponent := neutralScore
	if g := gapAbove(b, prev); g >= 0 && l.lineSpacing > 0 {
		gapComponent = clamp01(g / (2 * l.lineSpacing))
	} else if prev == nil || (prev != nil && b.Page != prev.Page) {
		// Top of a page behaves like a large gap.
		gapComponent = 0.8
	}

	// Headings sit at or left of the body margin; indented blocks are
	// likelier list items or quotes.
	indentComponent := 1.0
	if b.BBox.X0 > l.leftMargin+2 {
		overhang := (b.BBox.X0 - l.leftMargin) / l.pageWidth
		indentComponent = clamp01(1 - overhang*4)
	}

	// Short lines score higher.
	widthComponent := clamp01(1 - b.BBox.Width()/l.pageWidth)

	return clamp01(0.4*gapComponent + 0.2*indentComponent + 0.4*widthComponent)
}

// contextScore rates a block's relationship to its neighbors: a short,
// distinctly styled block followed by longer body-style text is the classic
// heading silhouette.
func contextScore(b *TextBlock, prev, next *TextBlock) float64 {
	if prev == nil && next == nil {
		return neutralScore
	}

	score := neutralScore
	if next != nil {
		if looksLikeBody(next) && next.WordCount > b.WordCount {
			score += 0.3
		}
		if next.FontSize > 0 && b.FontSize > next.FontSize+0.1 {
			score += 0.1
		}
		if !looksLikeBody(next) && next.WordCount <= b.WordCount {
			score -= 0.1
		}
	} else {
		// Nothing follows: a trailing styled block is rarely a heading.
		score -= 0.2
	}
	if prev != nil && looksLikeBody(prev) {
		score += 0.1
	}
	if b.WordCount > 20 {
		score -= 0.2
	}
	return clamp01(score)
}

// looksLikeBody reports whether a block reads as running paragraph text.
func looksLikeBody(b *TextBlock) bool {
	if b.WordCount >= 12 {
		return true
	}
	return b.WordCount >= 6 && !b.Bold && b.Numbering == nil &&
		!strings.HasSuffix(b.Text, ":") && b.CapsRatio < 0.5
}

// fontSizeScore rescales the block/mean size ratio so body text lands at
// 0.5, half-size text at 0, and 1.5x text at 1. Uniform documents score a
// constant 0.5, shifting discrimination onto the other signals.
func fontSizeScore(b *TextBlock, profile FontProfile) float64 {
	if profile.Uniform() || profile.Mean <= 0 || b.FontSize <= 0 {
		return neutralScore
	}
	ratio := profile.SizeRatio(b.FontSize)
	return clamp01(neutralScore + (ratio - 1.0))
}

// subScores bundles one block's feature extractor outputs.
type subScores struct {
	fontSize float64
	pattern  float64
	content  float64
	spatial  float64
	context  float64
}

func (s subScores) valid() bool {
	for _, v := range []float64{s.fontSize, s.pattern, s.content, s.spatial, s.context} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}
