package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks a path that neither the index nor the redirect table
// knows. Lookups report misses with a boolean; this sentinel is for callers
// that need an error value.
var ErrNotFound = errors.New("content: entry not found")

// ContentReadError reports a source file that could not be read as UTF-8.
// Offset is the byte position of the first invalid sequence, or -1 when the
// file could not be read at all.
type ContentReadError struct {
	Path   string
	File   string
	Offset int
	Err    error
}

func (e *ContentReadError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("content: read %s (entry %s): invalid utf-8 at byte %d", e.File, e.Path, e.Offset)
	}
	return fmt.Sprintf("content: read %s (entry %s): %v", e.File, e.Path, e.Err)
}

func (e *ContentReadError) Unwrap() error { return e.Err }

// RenderError reports Markdown that could not be turned into HTML.
type RenderError struct {
	Path string
	File string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("content: render %s (entry %s): %v", e.File, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// DanglingRedirectError lists every legacy path whose target is not indexed.
type DanglingRedirectError struct {
	Dangling []Redirect
}

func (e *DanglingRedirectError) Error() string {
	pairs := make([]string, 0, len(e.Dangling))
	for _, r := range e.Dangling {
		pairs = append(pairs, r.From+" -> "+r.To)
	}
	return "content: redirect targets not found: " + strings.Join(pairs, ", ")
}

// DuplicateRedirectError reports a legacy path registered more than once.
type DuplicateRedirectError struct {
	From string
}

func (e *DuplicateRedirectError) Error() string {
	return fmt.Sprintf("content: legacy path %s registered more than once", e.From)
}

// InvalidRedirectError reports a legacy path that cannot be routed exactly.
type InvalidRedirectError struct {
	From   string
	Reason string
}

func (e *InvalidRedirectError) Error() string {
	return fmt.Sprintf("content: legacy path %q %s", e.From, e.Reason)
}

// DuplicatePathError reports two manifest entries deriving the same canonical
// path. Manifests from manifest.Parse never produce one.
type DuplicatePathError struct {
	Path  string
	Files []string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("content: path %s derived by more than one entry: %s", e.Path, strings.Join(e.Files, ", "))
}

var errInvalidUTF8 = errors.New("invalid utf-8")
