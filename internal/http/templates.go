package http

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

const baseTemplate = "base.html"

var pageTemplates = []string{
	"index.html",
	"writing.html",
	"entry.html",
	"projects.html",
	"coursework.html",
	"course-notes.html",
	"404.html",
}

func templateFS(dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) == "" {
		return fs.Sub(embeddedTemplates, "templates")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("http: template dir %s: %w", dir, err)
	}
	return os.DirFS(dir), nil
}

func staticFS(dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) == "" {
		return fs.Sub(embeddedStatic, "static")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("http: static dir %s: %w", dir, err)
	}
	return os.DirFS(dir), nil
}

// parseTemplates pairs every page with its own copy of the base layout so
// pages can each define "content" and "title".
func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New(baseTemplate).Funcs(template.FuncMap{
		"href": href,
	}).ParseFS(fsys, baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("http: parse %s: %w", baseTemplate, err)
	}

	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("http: clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("http: parse %s: %w", name, err)
		}
		pages[name] = page
	}
	return pages, nil
}

// href turns an index key into a site-absolute link.
func href(path string) string {
	return "/" + strings.TrimPrefix(path, "/")
}
