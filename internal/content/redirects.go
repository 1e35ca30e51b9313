package content

import (
	"strings"
	"unicode"
)

// Redirect maps a legacy path to a canonical entry path.
type Redirect struct {
	From string
	To   string
}

// Redirects resolves legacy paths. Registration order is kept for listing.
type Redirects struct {
	order   []Redirect
	targets map[string]string
}

// DefaultRedirects returns the paths the site used on its previous platform.
func DefaultRedirects() []Redirect {
	return []Redirect{
		{
			From: "/post/28504483668/devise-omniauth-facebook-js-sdk-tutorial",
			To:   "writing/2012/fully-asynchronous-fb-login-with-devise-and-omniauth",
		},
		{
			From: "/post/24314393831/your-results-are-ready-23andme",
			To:   "writing/2012/thoughts-on-23andme",
		},
		{
			From: "/post/43079165761/backpack-io-direct-multipart-uploads-to-s3-in-rails",
			To:   "writing/2013/direct-multipart-uploads-to-s3-in-rails",
		},
	}
}

// NewRedirects builds a redirect table. Every legacy path must be unique and
// usable as an exact route: it starts with "/" and has no whitespace, control
// characters, braces or percent escapes.
func NewRedirects(entries []Redirect) (*Redirects, error) {
	r := &Redirects{
		order:   make([]Redirect, 0, len(entries)),
		targets: make(map[string]string, len(entries)),
	}
	for _, entry := range entries {
		if reason := invalidLegacyPath(entry.From); reason != "" {
			return nil, &InvalidRedirectError{From: entry.From, Reason: reason}
		}
		if _, exists := r.targets[entry.From]; exists {
			return nil, &DuplicateRedirectError{From: entry.From}
		}
		r.targets[entry.From] = entry.To
		r.order = append(r.order, entry)
	}
	return r, nil
}

// Resolve returns the canonical path registered for legacy.
func (r *Redirects) Resolve(legacy string) (string, bool) {
	if r == nil {
		return "", false
	}
	target, ok := r.targets[legacy]
	return target, ok
}

// All returns a copy of the table in registration order.
func (r *Redirects) All() []Redirect {
	if r == nil {
		return nil
	}
	return append([]Redirect(nil), r.order...)
}

// Len returns the number of registered legacy paths.
func (r *Redirects) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Validate checks that every target exists in idx and reports all misses at once.
func (r *Redirects) Validate(idx *Index) error {
	if r == nil {
		return nil
	}
	var dangling []Redirect
	for _, entry := range r.order {
		if _, ok := idx.Lookup(entry.To); !ok {
			dangling = append(dangling, entry)
		}
	}
	if len(dangling) > 0 {
		return &DanglingRedirectError{Dangling: dangling}
	}
	return nil
}

func invalidLegacyPath(from string) string {
	if !strings.HasPrefix(from, "/") {
		return `must start with "/"`
	}
	for _, r := range from {
		switch {
		case unicode.IsSpace(r), unicode.IsControl(r):
			return "must not contain whitespace or control characters"
		case r == '{' || r == '}':
			return "must not contain route wildcards"
		case r == '%':
			return "must not contain percent escapes"
		}
	}
	return ""
}
