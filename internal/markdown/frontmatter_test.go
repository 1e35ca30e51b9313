package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/entry.md")

	fm, body := ParseFrontMatter(data)

	if fm.Summary != "What the results page does and does not say." {
		t.Fatalf("FrontMatter Summary mismatch, got %q", fm.Summary)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "genetics" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.Custom["draft"] != false {
		t.Fatalf("FrontMatter Custom missing draft: %#v", fm.Custom)
	}
	if fm.Raw["title"] != "Thoughts on 23andMe" {
		t.Fatalf("FrontMatter Raw title missing: %#v", fm.Raw)
	}
	if strings.Contains(string(body), "summary:") || !strings.HasPrefix(strings.TrimSpace(string(body)), "# Thoughts on 23andMe") {
		t.Fatalf("body should start after the front matter: %q", string(body))
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	source := []byte("# Plain\n\nNo metadata here.\n")

	fm, body := ParseFrontMatter(source)
	if fm.Summary != "" || len(fm.Raw) != 0 {
		t.Fatalf("expected empty front matter, got %#v", fm)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body unchanged, got %q", string(body))
	}
}

func TestParseFrontMatterLeavesThematicBreaksAlone(t *testing.T) {
	cases := map[string]string{
		"scalar between rules":  "---\n\nIntro.\n\n---\n\nBody\n",
		"mapping between rules": "---\n\nNote: x\n\n---\n\nBody\n",
		"not on first line":     "\n---\ntitle: x\n---\nBody\n",
		"sequence block":        "---\n- a\n- b\n---\nBody\n",
	}

	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			fm, body := ParseFrontMatter([]byte(source))
			if string(body) != source {
				t.Fatalf("expected source unchanged, got %q", string(body))
			}
			if len(fm.Raw) != 0 || fm.Summary != "" {
				t.Fatalf("expected empty front matter, got %#v", fm)
			}
		})
	}
}

func TestLeadingThematicBreakRendersAsMarkdown(t *testing.T) {
	source := []byte("---\n\nIntro.\n\n---\n\nBody\n")
	_, body := ParseFrontMatter(source)

	html, err := NewGoldmarkParser(interfaces.ParseOptions{}).Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(html)
	if strings.Count(out, "<hr>") != 2 || !strings.Contains(out, "<p>Intro.</p>") || !strings.Contains(out, "<p>Body</p>") {
		t.Fatalf("expected two rules around the intro, got %q", out)
	}
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal(readFixture(t, "testdata/entry.md"), TerminalOptions{Style: StyleASCII, Width: 60})
	if err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	if !strings.Contains(out, "Thoughts on 23andMe") {
		t.Fatalf("expected heading text in terminal output, got %q", out)
	}
	if strings.Contains(out, "summary:") {
		t.Fatalf("front matter leaked into preview: %q", out)
	}
}

func TestRenderTerminalRejectsUnknownStyle(t *testing.T) {
	if _, err := RenderTerminal([]byte("# x"), TerminalOptions{Style: "neon"}); err == nil {
		t.Fatalf("expected unknown style to fail")
	}
}
