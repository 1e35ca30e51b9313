// Package manifest decodes the site manifest: the ordered writing groups and
// the project list that drive the homepage and the entry index.
package manifest
