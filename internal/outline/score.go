package outline

import "sort"

// candidate is a block that cleared the confidence threshold, tracked with
// its document position for deterministic tie-breaking.
type candidate struct {
	index      int
	confidence float64
	fontSize   float64
	sizeRatio  float64
	pattern    float64
	content    float64
}

// scoreBlocks computes sub-scores and the weighted confidence for every
// block, annotating the blocks in place. The title block, when known, is
// skipped (index < 0 disables the exclusion).
func scoreBlocks(blocks []TextBlock, profile FontProfile, cfg Config, titleIndex int) []candidate {
	l := buildLayout(blocks)
	w := cfg.Weights

	var candidates []candidate
	for i := range blocks {
		b := &blocks[i]

		var prev, next *TextBlock
		if i > 0 {
			prev = &blocks[i-1]
		}
		if i+1 < len(blocks) {
			next = &blocks[i+1]
		}

		s := subScores{
			fontSize: fontSizeScore(b, profile),
			pattern:  patternScore(b),
			content:  contentScore(b),
			spatial:  spatialScore(b, prev, l),
			context:  contextScore(b, prev, next),
		}
		if !s.valid() {
			// Extractors are clamped, so this is unreachable in practice;
			// score the block neutrally rather than dropping it.
			s = subScores{neutralScore, neutralScore, neutralScore, neutralScore, neutralScore}
		}

		b.Confidence = clamp01(w.FontSize*s.fontSize + w.Pattern*s.pattern +
			w.Content*s.content + w.Spatial*s.spatial + w.Context*s.context)
		b.Level = LevelNone

		if i == titleIndex {
			continue
		}
		if b.Confidence < cfg.ConfidenceThreshold {
			continue
		}

		// Blocks no larger than body text need pattern or keyword evidence;
		// size alone cannot carry them, and vice versa.
		ratio := profile.SizeRatio(b.FontSize)
		if !profile.Uniform() && ratio < cfg.MinFontSizeRatio && s.pattern == 0 && s.content == 0 {
			continue
		}
		if b.WordCount > cfg.MaxHeadingWords*2 {
			continue
		}

		candidates = append(candidates, candidate{
			index:      i,
			confidence: b.Confidence,
			fontSize:   b.FontSize,
			sizeRatio:  ratio,
			pattern:    s.pattern,
			content:    s.content,
		})
	}
	return candidates
}

// headingBudget bounds the number of accepted headings in proportion to
// document size, loosened when candidates are already sparse.
func headingBudget(totalBlocks, candidateCount int) int {
	base := totalBlocks / 20
	if base < 5 {
		base = 5
	}
	if base > 50 {
		base = 50
	}
	if candidateCount < base/2 {
		limit := base * 2
		if candidateCount < limit {
			return candidateCount
		}
		return limit
	}
	return base
}

// assignLevels buckets candidates by font-size rank among the candidates
// themselves: the largest distinct size maps to H1, the next to H2, and so
// on, capped at H4. When the budget forces a cut, the highest-confidence
// candidates survive, ties going to earlier blocks. Kept candidates are
// annotated on the block slice and returned in document order.
func assignLevels(blocks []TextBlock, candidates []candidate, profile FontProfile) []candidate {
	if len(candidates) == 0 {
		return nil
	}

	kept := candidates
	if budget := headingBudget(len(blocks), len(candidates)); len(kept) > budget {
		ranked := make([]candidate, len(candidates))
		copy(ranked, candidates)
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].confidence != ranked[j].confidence {
				return ranked[i].confidence > ranked[j].confidence
			}
			return ranked[i].index < ranked[j].index
		})
		ranked = ranked[:budget]
		sort.Slice(ranked, func(i, j int) bool { return ranked[i].index < ranked[j].index })
		kept = ranked
	}

	// Distinct candidate sizes, largest first. Blocks sharing a size share
	// a bucket and therefore a level.
	seen := make(map[int64]bool)
	var distinct []int64
	for _, c := range kept {
		key := sizeKey(c.fontSize)
		if !seen[key] {
			seen[key] = true
			distinct = append(distinct, key)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] > distinct[j] })

	depthFor := make(map[int64]int, len(distinct))
	for i, key := range distinct {
		depthFor[key] = i + 1 // capped in headingLevel
	}

	for _, c := range kept {
		blocks[c.index].Level = headingLevel(depthFor[sizeKey(c.fontSize)])
	}
	return kept
}
