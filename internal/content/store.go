package content

import (
	"maps"
	"strings"

	"github.com/goliatone/go-folio/internal/manifest"
)

// Store is the loaded site content. It is immutable once Load returns and
// safe for concurrent readers.
type Store struct {
	manifest  *manifest.Manifest
	index     *Index
	redirects *Redirects
}

// HomepageData feeds the homepage and listing templates.
type HomepageData struct {
	Writing  []GroupView
	Projects []manifest.Project
}

type GroupView struct {
	Year    string
	Entries []EntryView
}

type EntryView struct {
	Title string
	Date  string
	Path  string
	Slug  string
}

// Homepage returns the writing groups in manifest order plus the projects.
// Every call returns fresh slices.
func (s *Store) Homepage() HomepageData {
	data := HomepageData{
		Writing:  make([]GroupView, 0, len(s.manifest.Writing)),
		Projects: make([]manifest.Project, 0, len(s.manifest.Projects)),
	}
	for _, group := range s.manifest.Writing {
		view := GroupView{
			Year:    group.Year.String(),
			Entries: make([]EntryView, 0, len(group.Entries)),
		}
		for _, ref := range group.Entries {
			view.Entries = append(view.Entries, EntryView{
				Title: ref.Title,
				Date:  ref.Date,
				Path:  ref.Path,
				Slug:  ref.URL,
			})
		}
		data.Writing = append(data.Writing, view)
	}
	for _, project := range s.manifest.Projects {
		data.Projects = append(data.Projects, maps.Clone(project))
	}
	return data
}

// Entry resolves a canonical or legacy path. A single leading slash is
// dropped before the index lookup because request paths carry one and index
// keys do not. Legacy paths are matched exactly as registered.
func (s *Store) Entry(path string) (RenderedEntry, bool) {
	if entry, ok := s.index.Lookup(strings.TrimPrefix(path, "/")); ok {
		return entry, true
	}
	if target, ok := s.redirects.Resolve(path); ok {
		return s.index.Lookup(target)
	}
	return RenderedEntry{}, false
}

// Source returns the manifest reference behind a canonical or legacy path.
func (s *Store) Source(path string) (manifest.WritingEntryRef, bool) {
	entry, ok := s.Entry(path)
	if !ok {
		return manifest.WritingEntryRef{}, false
	}
	for _, group := range s.manifest.Writing {
		for _, ref := range group.Entries {
			if ref.Path == entry.Path {
				return ref, true
			}
		}
	}
	return manifest.WritingEntryRef{}, false
}

func (s *Store) Index() *Index { return s.index }

func (s *Store) Redirects() *Redirects { return s.redirects }

func (s *Store) Manifest() *manifest.Manifest { return s.manifest }
