// Package outline infers a document's logical outline (a title plus a
// nested H1..H4 heading hierarchy) from a flat stream of positioned text
// fragments, using font statistics, pattern and keyword matching, spatial
// layout, and block context instead of document-specific templates.
package outline

// Extractor runs the classification pipeline for one document at a time.
// It holds no per-document state, so a single Extractor may be shared
// across goroutines processing independent documents.
type Extractor struct {
	cfg Config
}

// NewExtractor validates cfg and returns an extractor using it.
func NewExtractor(cfg Config) (*Extractor, error) {
	cfg, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Extractor{cfg: cfg}, nil
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config { return e.cfg }

// Extract normalizes the raw fragments and produces the document outline.
func (e *Extractor) Extract(frags []Fragment) Outline {
	return e.ExtractBlocks(Normalize(frags))
}

// ExtractBlocks runs the pipeline over already-normalized blocks. The
// stages run strictly in order: font statistics first (they need the full
// block set), then title detection, then scoring and level assignment, then
// hierarchy validation. Degenerate inputs (no blocks, uniform fonts, or
// no candidates over threshold) terminate normally with a best-effort,
// possibly empty, outline.
func (e *Extractor) ExtractBlocks(blocks []TextBlock) Outline {
	if len(blocks) == 0 {
		return Outline{Headings: []Heading{}}
	}

	profile := BuildFontProfile(blocks)
	title, titleIndex := detectTitle(blocks, profile, e.cfg)

	candidates := scoreBlocks(blocks, profile, e.cfg, titleIndex)
	kept := assignLevels(blocks, candidates, profile)

	headings := make([]Heading, 0, len(kept))
	for _, c := range kept {
		b := &blocks[c.index]
		headings = append(headings, Heading{
			Level: b.Level,
			Text:  b.Text,
			Page:  b.Page,
		})
	}

	if e.cfg.ValidateHierarchy {
		headings = ValidateHierarchy(headings)
	}

	return Outline{Title: title, Headings: headings}
}
