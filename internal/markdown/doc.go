// Package markdown turns writing entries into HTML. It wraps goldmark with
// the extensions the site relies on (fenced code, footnotes), strips optional
// front matter, and renders entries for terminal previews.
package markdown
