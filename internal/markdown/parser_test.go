package markdown

import (
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

func TestGoldmarkParser_FootnoteSample(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("# Title\n\nSee[^1].\n\n[^1]: note."))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(out)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Title</h1>") {
		t.Fatalf("expected heading element, got %q", got)
	}
	if !strings.Contains(got, `class="footnote-ref"`) {
		t.Fatalf("expected footnote reference marker, got %q", got)
	}
	if !strings.Contains(got, `class="footnotes"`) || !strings.Contains(got, "note.") {
		t.Fatalf("expected rendered footnote list, got %q", got)
	}
}

func TestGoldmarkParser_FencedCodeKeepsLanguage(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("```go\nfmt.Println(\"hi\")\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(out), `<code class="language-go">`) {
		t.Fatalf("expected language class on code block, got %q", string(out))
	}
}

func TestGoldmarkParser_FootnotesSurviveEmptyExtensionList(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.ParseWithOptions([]byte("a[^x]\n\n[^x]: b"), interfaces.ParseOptions{
		Extensions: []string{"fenced_code", "unknown"},
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(out), "footnote-ref") {
		t.Fatalf("footnotes must stay enabled, got %q", string(out))
	}
}

func TestGoldmarkParser_HardWraps(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(out), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(out))
	}
}

func TestGoldmarkParser_SafeModeDropsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	out, err := parser.Parse([]byte("<div class=\"x\">raw</div>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(out), "<div") {
		t.Fatalf("expected raw HTML to be omitted, got %q", string(out))
	}
}

func TestGoldmarkParser_SanitizeScrubsScripts(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{Sanitize: true})

	out, err := parser.Parse([]byte("# Safe\n\n<script>alert(1)</script>\n\n```go\nx := 1\n```\n\nnote[^1]\n\n[^1]: kept"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(out)
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("expected script to be removed, got %q", got)
	}
	if !strings.Contains(got, "Safe</h1>") {
		t.Fatalf("expected heading to survive sanitising, got %q", got)
	}
	if !strings.Contains(got, `class="language-go"`) {
		t.Fatalf("expected highlighter class to survive sanitising, got %q", got)
	}
	if !strings.Contains(got, `class="footnote-ref"`) {
		t.Fatalf("expected footnote markup to survive sanitising, got %q", got)
	}
}

func TestKnownExtension(t *testing.T) {
	for _, name := range []string{"fenced_code", " Footnote ", "gfm"} {
		if !KnownExtension(name) {
			t.Fatalf("expected %q to be known", name)
		}
	}
	if KnownExtension("mermaid") {
		t.Fatalf("expected mermaid to be unknown")
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
