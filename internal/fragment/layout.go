package fragment

import "github.com/dgallion1/outliner/internal/outline"

// Markup formats carry no page geometry, so we lay paragraphs out on a
// virtual US-letter page. The analyzer only cares about relative sizes
// and spacing, not the absolute numbers.
const (
	virtualPageWidth  = 612.0
	virtualPageHeight = 792.0
	virtualMargin     = 72.0
	virtualBodySize   = 11.0
)

// headingSizes maps heading depth (1-based) to a synthetic font size.
// Depths beyond the ladder reuse the smallest heading size.
var headingSizes = []float64{20, 17, 14.5, 12.5}

func syntheticSize(depth int) float64 {
	if depth <= 0 {
		return virtualBodySize
	}
	if depth > len(headingSizes) {
		depth = len(headingSizes)
	}
	return headingSizes[depth-1]
}

// layoutCursor places paragraphs top to bottom on virtual pages.
type layoutCursor struct {
	page int
	y    float64
}

func newLayoutCursor() *layoutCursor {
	return &layoutCursor{page: 1, y: virtualPageHeight - virtualMargin}
}

// place emits a fragment for one paragraph. Headings get extra space
// above, mirroring how print styles separate sections.
func (c *layoutCursor) place(text string, depth int, bold, italic bool) outline.Fragment {
	size := syntheticSize(depth)
	gap := size * 0.4
	if depth > 0 {
		gap = size * 1.2
	}

	top := c.y - gap
	bottom := top - size
	if bottom < virtualMargin {
		c.page++
		top = virtualPageHeight - virtualMargin
		bottom = top - size
	}
	c.y = bottom

	width := float64(len(text)) * size * 0.5
	if max := virtualPageWidth - 2*virtualMargin; width > max {
		width = max
	}

	fontName := "Synthetic"
	if bold {
		fontName = "Synthetic-Bold"
	}
	return outline.Fragment{
		Page: c.page,
		BBox: outline.BBox{
			X0: virtualMargin,
			Y0: bottom,
			X1: virtualMargin + width,
			Y1: top,
		},
		Text:     text,
		FontName: fontName,
		FontSize: size,
		Bold:     bold,
		Italic:   italic,
	}
}
