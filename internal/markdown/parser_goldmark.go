package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark engine.
// It is stateless and safe to share between goroutines.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
	policy         *bluemonday.Policy
}

// NewGoldmarkParser constructs a parser. Fenced code and footnotes are always
// enabled; defaults.Extensions adds to them.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
		policy:         newSanitizePolicy(),
	}
}

// Parse renders Markdown into HTML with the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	if opts.Sanitize {
		policy := p.policy
		if policy == nil {
			policy = newSanitizePolicy()
		}
		return policy.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Raw HTML in entries passes through unless SafeMode is on. Sanitize
	// keeps it and lets bluemonday scrub the output instead.
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithExtensions(exts...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	return goldmark.New(engineOptions...)
}

// fenced_code is part of CommonMark, so it maps to nil and only exists to
// accept the name in configuration.
var extensionRegistry = map[string]goldmark.Extender{
	"fenced_code":   nil,
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// KnownExtension reports whether name is accepted in ParseOptions.Extensions.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[normalizeExtension(name)]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	extenders := []goldmark.Extender{extension.Footnote}
	seen := map[string]struct{}{"footnote": {}}

	for _, name := range names {
		key := normalizeExtension(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		ext, ok := extensionRegistry[key]
		if !ok || ext == nil {
			continue
		}
		extenders = append(extenders, ext)
	}

	return extenders
}

func normalizeExtension(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func newSanitizePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	// Footnote markup and highlighter hints rely on these.
	policy.AllowAttrs("class", "role").Globally()
	return policy
}
