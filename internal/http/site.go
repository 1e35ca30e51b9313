package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Site registers the public pages backed by a content store.
type Site struct {
	store       *content.Store
	templateDir string
	staticDir   string
	logger      interfaces.Logger
	pages       map[string]*template.Template
	static      fs.FS
}

// SiteOption mutates the Site configuration.
type SiteOption func(*Site)

// WithTemplateDir loads templates from dir instead of the embedded set.
func WithTemplateDir(dir string) SiteOption {
	return func(s *Site) {
		if s != nil {
			s.templateDir = strings.TrimSpace(dir)
		}
	}
}

// WithStaticDir serves /static/ from dir instead of the embedded assets.
func WithStaticDir(dir string) SiteOption {
	return func(s *Site) {
		if s != nil {
			s.staticDir = strings.TrimSpace(dir)
		}
	}
}

// WithLogger sets the logger used for request and render logs.
func WithLogger(logger interfaces.Logger) SiteOption {
	return func(s *Site) {
		if s != nil && logger != nil {
			s.logger = logger
		}
	}
}

// NewSite parses the templates and prepares the asset file system.
func NewSite(store *content.Store, opts ...SiteOption) (*Site, error) {
	if store == nil {
		return nil, fmt.Errorf("http: content store is required")
	}
	site := &Site{
		store:  store,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(site)
		}
	}

	tmplFS, err := templateFS(site.templateDir)
	if err != nil {
		return nil, err
	}
	if site.pages, err = parseTemplates(tmplFS); err != nil {
		return nil, err
	}
	if site.static, err = staticFS(site.staticDir); err != nil {
		return nil, err
	}
	return site, nil
}

// Register attaches the site routes to the provided mux.
func (s *Site) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if s == nil {
		return fmt.Errorf("http: site is nil")
	}

	if err := s.registerLegacyRoutes(mux); err != nil {
		return err
	}
	s.registerPageRoutes(mux, "/")
	s.registerWritingRoutes(mux, "/")
	s.registerStaticRoutes(mux, "/")
	return nil
}

// Handler returns a mux with every route registered, wrapped in the request
// middleware.
func (s *Site) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := s.Register(mux); err != nil {
		return nil, err
	}
	return requestLogger(s.logger, mux), nil
}

type pageData struct {
	Path  string
	Home  content.HomepageData
	Entry content.RenderedEntry
	Body  template.HTML
}

func (s *Site) registerPageRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "")+"{$}", s.page("index.html"))
	mux.HandleFunc("GET "+joinPath(base, "projects"), s.page("projects.html"))
	mux.HandleFunc("GET "+joinPath(base, "coursework"), s.page("coursework.html"))
	mux.HandleFunc("GET "+joinPath(base, "courses/notes/dsp"), s.page("course-notes.html"))
	mux.HandleFunc("GET "+joinPath(base, "healthz"), s.handleHealth)
	mux.HandleFunc("GET "+joinPath(base, ""), s.handleNotFound)
}

func (s *Site) registerWritingRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "writing")
	mux.HandleFunc("GET "+root, s.page("writing.html"))
	mux.HandleFunc("GET "+root+"/{entry...}", s.handleEntry)
}

// registerLegacyRoutes gives every redirect its own route. Each one serves the
// canonical entry's page directly.
func (s *Site) registerLegacyRoutes(mux *http.ServeMux) error {
	for _, redirect := range s.store.Redirects().All() {
		pattern := redirect.From
		if reserved(pattern) {
			return fmt.Errorf("http: legacy path %s collides with a site route", redirect.From)
		}
		if strings.ContainsAny(pattern, "{}") {
			return fmt.Errorf("http: legacy path %s contains route wildcards", redirect.From)
		}
		from := redirect.From
		if err := handleFunc(mux, "GET "+pattern, func(w http.ResponseWriter, r *http.Request) {
			s.renderEntry(w, r, from)
		}); err != nil {
			return fmt.Errorf("http: legacy path %s: %w", from, err)
		}
	}
	return nil
}

// handleFunc registers a pattern built from configuration, returning the
// mux's panic on a malformed or conflicting pattern as an error.
func handleFunc(mux *http.ServeMux, pattern string, handler http.HandlerFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	mux.HandleFunc(pattern, handler)
	return nil
}

func (s *Site) registerStaticRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "static") + "/"
	mux.Handle("GET "+root, http.StripPrefix(root, http.FileServerFS(s.static)))
}

func reserved(pattern string) bool {
	switch pattern {
	case "/", "/writing", "/projects", "/coursework", "/courses/notes/dsp", "/healthz":
		return true
	}
	// Trailing slashes register subtree patterns that overlap the site routes.
	return strings.HasPrefix(pattern, "/static/") || strings.HasSuffix(pattern, "/")
}

func (s *Site) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, name, pageData{
			Path: r.URL.Path,
			Home: s.store.Homepage(),
		})
	}
}

func (s *Site) handleEntry(w http.ResponseWriter, r *http.Request) {
	s.renderEntry(w, r, "writing/"+r.PathValue("entry"))
}

func (s *Site) renderEntry(w http.ResponseWriter, r *http.Request, path string) {
	entry, ok := s.store.Entry(path)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "entry.html", pageData{
		Path:  r.URL.Path,
		Entry: entry,
		Body:  template.HTML(entry.Text),
	})
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, statusFor(content.ErrNotFound), "404.html", pageData{Path: r.URL.Path})
}

func (s *Site) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"entries":   s.store.Index().Len(),
		"redirects": s.store.Redirects().Len(),
	})
}

// render executes into a buffer first so template failures still produce a
// clean 500.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	page, ok := s.pages[name]
	if !ok {
		s.fail(w, r, fmt.Errorf("http: template %s not loaded", name))
		return
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, baseTemplate, data); err != nil {
		s.fail(w, r, fmt.Errorf("http: render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.WithContext(r.Context()).Error("http.render.failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(statusFor(err)), statusFor(err))
}
