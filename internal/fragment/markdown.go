package fragment

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/outliner/internal/outline"
)

// MarkdownSource extracts fragments from Markdown via the goldmark AST.
// ATX/setext heading depths become the synthetic font ladder; everything
// else flows as body text.
type MarkdownSource struct{}

func (s *MarkdownSource) Extract(r io.Reader, filename string) ([]outline.Fragment, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	cursor := newLayoutCursor()
	var frags []outline.Fragment
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title == "" {
				continue
			}
			frags = append(frags, cursor.place(title, node.Level, true, false))
		case *ast.ThematicBreak:
			// No text to carry.
		default:
			// Lists and block quotes keep one fragment per paragraph so
			// the analyzer sees individual list markers.
			for _, para := range blockParagraphs(n, src) {
				frags = append(frags, cursor.place(para, 0, false, false))
			}
		}
	}
	return frags, nil
}

// blockParagraphs flattens a non-heading block into paragraph strings.
func blockParagraphs(n ast.Node, src []byte) []string {
	switch n.(type) {
	case *ast.List, *ast.Blockquote:
		var out []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			out = append(out, blockParagraphs(c, src)...)
		}
		return out
	case *ast.ListItem:
		t := inlineText(n, src)
		if t == "" {
			return nil
		}
		return []string{t}
	}
	t := inlineText(n, src)
	if t == "" {
		return nil
	}
	return []string{t}
}

// inlineText gets the text content of a goldmark AST node. Parsed
// inline children win over raw source lines so text is not emitted
// twice for paragraph blocks.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(inlineText(c, src))
			buf.WriteByte(' ')
		}
	}
	if buf.Len() == 0 && n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}
