package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PathPrefix is the first segment of every canonical entry path.
const PathPrefix = "writing"

// Manifest is the decoded content description. It is built once by Parse and
// treated as read-only afterwards.
type Manifest struct {
	Writing  []WritingGroup `yaml:"writing" json:"writing"`
	Projects []Project      `yaml:"projects" json:"projects"`
}

// WritingGroup is one year (or labelled section) of writing, in display order.
type WritingGroup struct {
	Year    Year              `yaml:"year" json:"year"`
	Entries []WritingEntryRef `yaml:"entries" json:"entries"`
}

// WritingEntryRef points at one Markdown source file. URL is the slug exactly
// as written in the manifest; Path is derived from it once during Parse.
type WritingEntryRef struct {
	URL   string `yaml:"url" json:"url"`
	Title string `yaml:"title" json:"title"`
	Date  string `yaml:"date" json:"date"`
	File  string `yaml:"file" json:"file"`
	Path  string `yaml:"-" json:"path"`
}

// Year holds a group label. Manifests may use a bare integer (2012) or a
// string label; both are kept in their textual form.
type Year string

func (y *Year) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: year must be a scalar", node.Line)
	}
	value := strings.TrimSpace(node.Value)
	if value == "" {
		return fmt.Errorf("line %d: year must not be empty", node.Line)
	}
	*y = Year(value)
	return nil
}

func (y Year) String() string { return string(y) }

// CanonicalPath builds the index key for an entry: writing/{year}/{slug}.
// The slug is used verbatim; no escaping or case folding is applied.
func CanonicalPath(year Year, slug string) string {
	return PathPrefix + "/" + string(year) + "/" + slug
}

// Project is an opaque project descriptor. Templates may read any key; the
// accessors cover the conventional ones.
type Project map[string]any

func (p Project) Name() string        { return p.firstString("name", "title") }
func (p Project) URL() string         { return p.firstString("url", "link") }
func (p Project) Description() string { return p.firstString("description", "desc") }

func (p Project) firstString(keys ...string) string {
	for _, key := range keys {
		if value, ok := p[key]; ok && value != nil {
			if s := strings.TrimSpace(fmt.Sprint(value)); s != "" {
				return s
			}
		}
	}
	return ""
}

// Entries returns the number of writing entries across all groups.
func (m *Manifest) Entries() int {
	if m == nil {
		return 0
	}
	total := 0
	for _, group := range m.Writing {
		total += len(group.Entries)
	}
	return total
}
