package outline

import "strings"

// Title detection. Titles are front matter, so only the earliest blocks are
// considered: the first 20% of the document or the first 30 blocks,
// whichever is smaller, with a floor of 10 so very short documents still
// get a window.

func titleWindow(n int) int {
	limit := n / 5
	if limit < 10 {
		limit = 10
	}
	if limit > 30 {
		limit = 30
	}
	if limit > n {
		limit = n
	}
	return limit
}

// detectTitle picks the single best title candidate in the window. It
// returns the title text and the index of the winning block, or -1 when the
// fallback (first block's text, or empty for an empty document) was used.
func detectTitle(blocks []TextBlock, profile FontProfile, cfg Config) (string, int) {
	if len(blocks) == 0 {
		return "", -1
	}

	limit := titleWindow(len(blocks))

	// Size reference is the window itself, not the whole document: a cover
	// page often dwarfs the body mean.
	var windowSum float64
	var windowCount int
	for i := 0; i < limit; i++ {
		if blocks[i].FontSize > 0 {
			windowSum += blocks[i].FontSize
			windowCount++
		}
	}
	windowMean := profile.Mean
	if windowCount > 0 {
		windowMean = windowSum / float64(windowCount)
	}

	bestIdx := -1
	bestScore := 0.0
	bestSize := 0.0
	for i := 0; i < limit; i++ {
		b := &blocks[i]
		if len(b.Text) < 3 {
			continue
		}

		score := 0.0
		if windowMean > 0 && b.FontSize > 0 {
			switch ratio := b.FontSize / windowMean; {
			case ratio >= 1.5:
				score += 0.4
			case ratio >= 1.2:
				score += 0.3
			case ratio >= 1.1:
				score += 0.2
			}
		}

		// Earlier blocks are likelier titles.
		score += float64(limit-i) / float64(limit) * 0.3

		switch {
		case b.WordCount >= 2 && b.WordCount <= cfg.MaxHeadingWords:
			score += 0.2
		case b.WordCount <= cfg.MaxHeadingWords+10:
			score += 0.1
		}

		if b.Bold {
			score += 0.1
		}
		if startsUpper(b.Text) {
			score += 0.1
		}
		if strings.Contains(b.Text, ":") && !strings.HasSuffix(b.Text, ":") {
			score += 0.1
		}
		if len(b.Text) < 10 || len(b.Text) > 200 {
			score *= 0.5
		}

		better := score > bestScore ||
			(score == bestScore && b.FontSize > bestSize)
		if better {
			bestIdx, bestScore, bestSize = i, score, b.FontSize
		}
	}

	if bestIdx < 0 || bestScore < cfg.TitleConfidenceThreshold {
		return blocks[0].Text, -1
	}
	blocks[bestIdx].Level = LevelTitle
	return blocks[bestIdx].Text, bestIdx
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
