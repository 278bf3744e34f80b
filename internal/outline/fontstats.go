package outline

import (
	"math"
	"sort"
)

// FontProfile is the document-wide font size distribution, computed once per
// document and treated as read-only by every downstream scorer.
type FontProfile struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P75    float64
	P90    float64

	// ranks maps a rounded distinct size to its rank, largest first
	// (rank 1 = largest size in the document).
	ranks map[int64]int
	sizes []float64 // distinct sizes, descending
}

// sizeKey collapses float jitter so 11.999 and 12.001 count as one size.
func sizeKey(size float64) int64 {
	return int64(math.Round(size * 10))
}

// BuildFontProfile computes the profile from the full block set. Blocks
// without a positive font size are ignored; a document with none of them
// yields a zero-valued profile that downstream scoring treats as uniform.
func BuildFontProfile(blocks []TextBlock) FontProfile {
	var sizes []float64
	for i := range blocks {
		if blocks[i].FontSize > 0 {
			sizes = append(sizes, blocks[i].FontSize)
		}
	}
	if len(sizes) == 0 {
		return FontProfile{ranks: map[int64]int{}}
	}

	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Float64s(sorted)

	var sum float64
	for _, s := range sizes {
		sum += s
	}
	mean := sum / float64(len(sizes))

	var variance float64
	if len(sizes) > 1 {
		for _, s := range sizes {
			d := s - mean
			variance += d * d
		}
		variance /= float64(len(sizes) - 1)
	}

	p := FontProfile{
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P75:    percentile(sorted, 75),
		P90:    percentile(sorted, 90),
		ranks:  make(map[int64]int),
	}

	// Distinct sizes, largest first, for size -> rank lookup.
	for i := len(sorted) - 1; i >= 0; i-- {
		key := sizeKey(sorted[i])
		if _, seen := p.ranks[key]; !seen {
			p.ranks[key] = len(p.sizes) + 1
			p.sizes = append(p.sizes, sorted[i])
		}
	}
	return p
}

// Uniform reports whether the document uses a single font size, in which
// case size-ratio scoring degrades to a constant.
func (p FontProfile) Uniform() bool {
	return p.StdDev == 0
}

// SizeRatio returns size relative to the document mean, or 1.0 when the
// profile is empty.
func (p FontProfile) SizeRatio(size float64) float64 {
	if p.Mean <= 0 || size <= 0 {
		return 1.0
	}
	return size / p.Mean
}

// SizeRank returns the 1-based rank of size among the document's distinct
// sizes (1 = largest), or 0 if the size never occurs.
func (p FontProfile) SizeRank(size float64) int {
	return p.ranks[sizeKey(size)]
}

// DistinctSizes returns the distinct sizes in the document, largest first.
func (p FontProfile) DistinctSizes() []float64 {
	out := make([]float64, len(p.sizes))
	copy(out, p.sizes)
	return out
}

// percentile interpolates the pct-th percentile of sorted values.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}
	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}
