package content

import (
	"errors"
	"testing"
)

func TestRedirectsResolveEachEntryIndependently(t *testing.T) {
	redirects, err := NewRedirects(DefaultRedirects())
	if err != nil {
		t.Fatalf("NewRedirects: %v", err)
	}
	if redirects.Len() != 3 {
		t.Fatalf("expected 3 redirects, got %d", redirects.Len())
	}

	seen := map[string]bool{}
	for _, r := range redirects.All() {
		target, ok := redirects.Resolve(r.From)
		if !ok || target != r.To {
			t.Fatalf("Resolve(%s) = %q, %v", r.From, target, ok)
		}
		seen[target] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected three distinct targets, got %v", seen)
	}

	if _, ok := redirects.Resolve("/post/24314393831/your-results-are-ready-23andme/"); ok {
		t.Fatalf("legacy paths must match exactly")
	}
}

func TestRedirectsAllReturnsCopy(t *testing.T) {
	redirects, err := NewRedirects(DefaultRedirects())
	if err != nil {
		t.Fatalf("NewRedirects: %v", err)
	}
	all := redirects.All()
	all[0].To = "elsewhere"
	if redirects.All()[0].To == "elsewhere" {
		t.Fatalf("All must not expose internal state")
	}
}

func TestRedirectsValidate(t *testing.T) {
	idx := newIndex(1)
	idx.put(RenderedEntry{Path: "writing/2012/thoughts-on-23andme"}, "2012/thoughts-on-23andme.md")

	redirects, err := NewRedirects(DefaultRedirects())
	if err != nil {
		t.Fatalf("NewRedirects: %v", err)
	}

	err = redirects.Validate(idx)
	var dangling *DanglingRedirectError
	if !errors.As(err, &dangling) {
		t.Fatalf("expected DanglingRedirectError, got %v", err)
	}
	if len(dangling.Dangling) != 2 {
		t.Fatalf("expected 2 dangling redirects, got %#v", dangling.Dangling)
	}
	if dangling.Dangling[0].From != DefaultRedirects()[0].From {
		t.Fatalf("dangling list should keep registration order: %#v", dangling.Dangling)
	}
}

func TestNilRedirectsAndIndex(t *testing.T) {
	var redirects *Redirects
	if _, ok := redirects.Resolve("/x"); ok {
		t.Fatalf("nil table resolves nothing")
	}
	if err := redirects.Validate(nil); err != nil {
		t.Fatalf("nil table is valid: %v", err)
	}

	var idx *Index
	if _, ok := idx.Lookup("x"); ok || idx.Len() != 0 || idx.Paths() != nil {
		t.Fatalf("nil index should behave as empty")
	}
}

func TestNewRedirectsRejectsUnroutablePaths(t *testing.T) {
	cases := map[string][]Redirect{
		"missing slash": {{From: "post/x", To: "writing/2012/a"}},
		"whitespace":    {{From: "/post/a b", To: "writing/2012/a"}},
		"newline":       {{From: "/post/a\n", To: "writing/2012/a"}},
		"wildcard":      {{From: "/post/{id}", To: "writing/2012/a"}},
		"escape":        {{From: "/post/a%20b", To: "writing/2012/a"}},
		"slash variants": {
			{From: "/post/x", To: "writing/2012/a"},
			{From: "post/x", To: "writing/2012/a"},
		},
	}

	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRedirects(entries)
			var invalid *InvalidRedirectError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRedirectError, got %v", err)
			}
		})
	}
}
