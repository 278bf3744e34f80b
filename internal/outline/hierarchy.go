package outline

import "strings"

// ValidateHierarchy enforces monotonic nesting over an ordered heading
// sequence: depth may grow by at most one step between adjacent headings.
// Offenders are demoted to the shallowest legal level, never rejected.
// An adjacent exact duplicate (case-insensitive, same corrected level, same
// page) is dropped as a re-extraction artifact.
//
// The pass is idempotent: running it on its own output changes nothing.
func ValidateHierarchy(headings []Heading) []Heading {
	if len(headings) == 0 {
		return headings
	}

	out := make([]Heading, 0, len(headings))
	for _, h := range headings {
		depth := h.Level.Depth()
		if depth == 0 {
			continue
		}
		if len(out) > 0 {
			prevDepth := out[len(out)-1].Level.Depth()
			if depth > prevDepth+1 {
				depth = prevDepth + 1
				h.Level = headingLevel(depth)
			}
			prev := out[len(out)-1]
			if prev.Level == h.Level && prev.Page == h.Page &&
				strings.EqualFold(prev.Text, h.Text) {
				continue
			}
		}
		out = append(out, h)
	}
	return out
}
