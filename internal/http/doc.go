// Package http serves the site from a loaded content store.
//
// Routes:
//   - Pages: /, /writing, /projects, /coursework, /courses/notes/dsp
//   - Entries: /writing/{year}/{slug}
//   - Legacy paths from the redirect table, served with the entry body
//   - Assets: /static/
//   - Health: /healthz
//
// Anything else renders the not found page.
package http
