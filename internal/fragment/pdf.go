package fragment

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/outliner/internal/outline"
)

// PDFSource extracts positioned text from PDF files. Unlike plain-text
// extraction it keeps per-character geometry so the analyzer can see
// font sizes, indentation and vertical spacing.
type PDFSource struct{}

func (s *PDFSource) Extract(r io.Reader, filename string) ([]outline.Fragment, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "outliner-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	frags, err := extractPDFFragments(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("extract pdf fragments: %w", err)
	}
	return frags, nil
}

func extractPDFFragments(path string) ([]outline.Fragment, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var frags []outline.Fragment
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		frags = append(frags, groupPageText(content.Text, i)...)
	}
	return frags, nil
}

// groupPageText merges the per-glyph text items the library emits into
// runs that share a baseline, font and size, reading left to right.
func groupPageText(items []pdflib.Text, pageNum int) []outline.Fragment {
	var frags []outline.Fragment
	var cur *outline.Fragment
	var curFont string
	var buf strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = buf.String()
		if strings.TrimSpace(cur.Text) != "" {
			frags = append(frags, *cur)
		}
		cur = nil
		buf.Reset()
	}

	for _, t := range items {
		if t.S == "" {
			continue
		}
		sameRun := cur != nil &&
			curFont == t.Font &&
			math.Abs(cur.FontSize-t.FontSize) < 0.05 &&
			math.Abs(cur.BBox.Y0-t.Y) < 0.5 &&
			t.X >= cur.BBox.X1-0.5

		if sameRun {
			// A visible horizontal gap between glyphs means a space the
			// content stream never encoded.
			if t.X-cur.BBox.X1 > t.FontSize*0.2 {
				buf.WriteByte(' ')
			}
			buf.WriteString(t.S)
			if x1 := t.X + t.W; x1 > cur.BBox.X1 {
				cur.BBox.X1 = x1
			}
			if y1 := t.Y + t.FontSize; y1 > cur.BBox.Y1 {
				cur.BBox.Y1 = y1
			}
			continue
		}

		flush()
		curFont = t.Font
		cur = &outline.Fragment{
			Page: pageNum,
			BBox: outline.BBox{
				X0: t.X,
				Y0: t.Y,
				X1: t.X + t.W,
				Y1: t.Y + t.FontSize,
			},
			FontName: t.Font,
			FontSize: t.FontSize,
			Bold:     fontLooksBold(t.Font),
			Italic:   fontLooksItalic(t.Font),
		}
		buf.WriteString(t.S)
	}
	flush()
	return frags
}

func fontLooksBold(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}

func fontLooksItalic(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}
