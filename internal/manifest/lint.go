package manifest

import (
	"fmt"

	"github.com/goliatone/go-slug"
)

// Warning is a non-fatal manifest finding.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return w.Path + ": " + w.Message
}

// Lint reports entries whose slug is not in canonical slug form. Such slugs
// still work: canonical paths are case preserving and never rewritten.
func (m *Manifest) Lint() []Warning {
	if m == nil {
		return nil
	}
	var warnings []Warning
	for _, group := range m.Writing {
		for _, entry := range group.Entries {
			if slug.IsValid(entry.URL) {
				continue
			}
			message := fmt.Sprintf("url %q is not a canonical slug", entry.URL)
			if normalized, err := slug.Normalize(entry.URL); err == nil && normalized != "" && normalized != entry.URL {
				message += fmt.Sprintf(" (suggested %q)", normalized)
			}
			warnings = append(warnings, Warning{Path: entry.Path, Message: message})
		}
	}
	return warnings
}
