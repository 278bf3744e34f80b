package fragment

import (
	"strings"
	"testing"
)

func TestHTMLSource_HeadingsAndBody(t *testing.T) {
	input := `<html><head><title>ignored</title><style>p{color:red}</style></head>
<body>
<h1>System Design</h1>
<p>An opening paragraph with enough words to look like body text.</p>
<h2>Storage Layer</h2>
<p>Another paragraph of body text under the second heading here.</p>
</body></html>`

	s := &HTMLSource{}
	frags, err := s.Extract(strings.NewReader(input), "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frags) != 4 {
		t.Fatalf("expected 4 fragments, got %d", len(frags))
	}
	if frags[0].Text != "System Design" {
		t.Errorf("expected h1 text %q, got %q", "System Design", frags[0].Text)
	}
	if frags[0].FontSize <= frags[2].FontSize {
		t.Errorf("expected h1 larger than h2, got %.1f vs %.1f", frags[0].FontSize, frags[2].FontSize)
	}
	if frags[1].FontSize != virtualBodySize {
		t.Errorf("expected body size %.1f, got %.1f", virtualBodySize, frags[1].FontSize)
	}
	for _, f := range frags {
		if strings.Contains(f.Text, "color:red") {
			t.Errorf("style content leaked into fragments: %q", f.Text)
		}
		if strings.Contains(f.Text, "ignored") {
			t.Errorf("head title leaked into fragments: %q", f.Text)
		}
	}
}

func TestHTMLSource_SkipsChrome(t *testing.T) {
	input := `<body>
<nav>Home | About</nav>
<header>Site banner</header>
<h1>Real Heading</h1>
<footer>copyright</footer>
</body>`

	s := &HTMLSource{}
	frags, err := s.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	if frags[0].Text != "Real Heading" {
		t.Errorf("expected %q, got %q", "Real Heading", frags[0].Text)
	}
}

func TestHTMLSource_NestedInlineMarkup(t *testing.T) {
	input := `<body><h2>Results <em>and</em> Discussion</h2></body>`
	s := &HTMLSource{}
	frags, err := s.Extract(strings.NewReader(input), "r.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	if frags[0].Text != "Results and Discussion" {
		t.Errorf("expected flattened heading text, got %q", frags[0].Text)
	}
}

func TestHTMLSource_ListItems(t *testing.T) {
	input := `<body><ul><li>alpha</li><li>beta</li></ul></body>`
	s := &HTMLSource{}
	frags, err := s.Extract(strings.NewReader(input), "l.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[0].Text != "alpha" || frags[1].Text != "beta" {
		t.Errorf("unexpected list fragments: %q, %q", frags[0].Text, frags[1].Text)
	}
}
