package content

import "sort"

// RenderedEntry is one writing entry after Markdown rendering. Text is HTML.
// Fallback is set when rendering failed and Text holds escaped source.
type RenderedEntry struct {
	Title    string
	Date     string
	Text     string
	Path     string
	Slug     string
	Year     string
	Summary  string
	Fallback bool
}

// Index maps canonical paths to rendered entries. It is built once by Load and
// never changes afterwards.
type Index struct {
	entries map[string]RenderedEntry
	files   map[string]string
}

func newIndex(capacity int) *Index {
	return &Index{
		entries: make(map[string]RenderedEntry, capacity),
		files:   make(map[string]string, capacity),
	}
}

// Lookup returns the entry stored under path. Matching is exact: no trailing
// slash handling and no case folding.
func (i *Index) Lookup(path string) (RenderedEntry, bool) {
	if i == nil {
		return RenderedEntry{}, false
	}
	entry, ok := i.entries[path]
	return entry, ok
}

// Len returns the number of indexed entries.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Paths returns the indexed paths in sorted order.
func (i *Index) Paths() []string {
	if i == nil {
		return nil
	}
	paths := make([]string, 0, len(i.entries))
	for path := range i.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// put refuses to replace an indexed path and returns the file already
// holding it.
func (i *Index) put(entry RenderedEntry, file string) (string, bool) {
	if held, exists := i.files[entry.Path]; exists {
		return held, false
	}
	i.entries[entry.Path] = entry
	i.files[entry.Path] = file
	return "", true
}
