package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	schemavalidation "github.com/goliatone/go-folio/internal/validation"
)

//go:embed schema.json
var schemaSource []byte

var manifestSchema = schemavalidation.MustCompile("manifest.schema.json", schemaSource)

var (
	ErrEmptyManifest = errors.New("manifest is empty")
	ErrDuplicateSlug = errors.New("duplicate canonical path")
)

// ParseError reports a manifest that could not be read, decoded or
// validated. Serving must not start when Parse returns one.
type ParseError struct {
	Source string
	Issues []schemavalidation.ValidationIssue
	Err    error
}

func (e *ParseError) Error() string {
	source := e.Source
	if source == "" {
		source = "<manifest>"
	}
	if len(e.Issues) == 0 {
		return fmt.Sprintf("manifest %s: %v", source, e.Err)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("manifest %s: %s", source, strings.Join(parts, "; "))
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Source: path, Err: err}
	}
	return Parse(path, data)
}

// Load reads and parses the manifest name from fsys.
func Load(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ParseError{Source: name, Err: err}
	}
	return Parse(name, data)
}

// Parse decodes and validates manifest bytes, then derives the canonical
// Path of every entry. Source only labels errors.
func Parse(source string, data []byte) (*Manifest, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Source: source, Err: ErrEmptyManifest}
	}
	if err := manifestSchema.Validate(raw); err != nil {
		return nil, &ParseError{Source: source, Issues: schemavalidation.Issues(err), Err: err}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	if issues := m.validateEntries(); len(issues) > 0 {
		return nil, &ParseError{
			Source: source,
			Issues: issues,
			Err:    schemavalidation.ErrSchemaValidation,
		}
	}

	for gi := range m.Writing {
		group := &m.Writing[gi]
		for ei := range group.Entries {
			entry := &group.Entries[ei]
			entry.Path = CanonicalPath(group.Year, entry.URL)
		}
	}
	return &m, nil
}

// Validate implements validation.Validatable for ozzo-validation.
func (e WritingEntryRef) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.URL, validation.Required, validation.By(notBlank("url"))),
		validation.Field(&e.Title, validation.Required),
		validation.Field(&e.File, validation.Required, validation.By(notBlank("file"))),
	)
}

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) != s {
			return validation.NewError("folio.manifest."+field+"_whitespace", field+" must not have surrounding whitespace")
		}
		return nil
	}
}

func (m *Manifest) validateEntries() []schemavalidation.ValidationIssue {
	var issues []schemavalidation.ValidationIssue
	// Keyed by canonical path: groups may repeat a year, and 2012 and "2012"
	// decode to the same Year.
	seen := make(map[string]string, m.Entries())
	for gi, group := range m.Writing {
		for ei, entry := range group.Entries {
			location := fmt.Sprintf("/writing/%d/entries/%d", gi, ei)
			if err := entry.Validate(); err != nil {
				issues = append(issues, entryIssues(location, err)...)
				continue
			}
			key := CanonicalPath(group.Year, entry.URL)
			if first, ok := seen[key]; ok {
				issues = append(issues, schemavalidation.ValidationIssue{
					Location: location + "/url",
					Message:  fmt.Sprintf("%v: %s also derived by %s", ErrDuplicateSlug, key, first),
				})
				continue
			}
			seen[key] = location
		}
	}
	return issues
}

func entryIssues(location string, err error) []schemavalidation.ValidationIssue {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []schemavalidation.ValidationIssue{{Location: location, Message: err.Error()}}
	}
	issues := make([]schemavalidation.ValidationIssue, 0, len(fieldErrs))
	for _, field := range sortedKeys(fieldErrs) {
		issues = append(issues, schemavalidation.ValidationIssue{
			Location: location + "/" + field,
			Message:  fieldErrs[field].Error(),
		})
	}
	return issues
}

func sortedKeys(errs validation.Errors) []string {
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
