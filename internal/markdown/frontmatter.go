package markdown

import (
	"bytes"
	"maps"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// ParseFrontMatter splits an entry into its optional metadata block and the
// Markdown body. A block must open with "---" on the first line, followed
// directly by a non-blank line, and must decode to a mapping. Anything else,
// such as a leading thematic break, comes back unchanged with an empty
// FrontMatter so it renders as plain Markdown.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte) {
	if !opensFrontMatter(source) {
		return interfaces.FrontMatter{}, source
	}

	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, source
	}
	return envelopeToFrontMatter(meta), body
}

func opensFrontMatter(source []byte) bool {
	rest, ok := bytes.CutPrefix(source, []byte("---\n"))
	if !ok {
		if rest, ok = bytes.CutPrefix(source, []byte("---\r\n")); !ok {
			return false
		}
	}
	line, _, _ := bytes.Cut(rest, []byte("\n"))
	return len(bytes.TrimSpace(line)) > 0
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title"`
	Summary string         `yaml:"summary"`
	Tags    []string       `yaml:"tags"`
	Custom  map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	custom := maps.Clone(env.Custom)
	if custom == nil {
		custom = map[string]any{}
	}

	raw := maps.Clone(custom)
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}

	return interfaces.FrontMatter{
		Title:   env.Title,
		Summary: env.Summary,
		Tags:    append([]string(nil), env.Tags...),
		Custom:  custom,
		Raw:     raw,
	}
}
