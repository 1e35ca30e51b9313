package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-folio/internal/markdown"
)

const (
	checkSiteMessageType    = "folio.site.check"
	previewEntryMessageType = "folio.site.preview_entry"
)

// CheckSiteCommand loads the manifest and every entry the way serving would,
// then reports lint warnings.
type CheckSiteCommand struct {
	// ManifestPath is the YAML manifest to load.
	ManifestPath string `json:"manifest_path"`
	// ContentDir is the root entry files are resolved against.
	ContentDir string `json:"content_dir"`
	// Strict fails the check when lint warnings or render fallbacks are found.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (CheckSiteCommand) Type() string { return checkSiteMessageType }

// Validate ensures both locations are present before handlers execute.
func (cmd CheckSiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ManifestPath, validation.Required, validation.By(notBlank("folio.site.check.manifest_required", "manifest path is required"))),
		validation.Field(&cmd.ContentDir, validation.Required, validation.By(notBlank("folio.site.check.content_dir_required", "content directory is required"))),
	)
}

// PreviewEntryCommand renders one entry's Markdown for the terminal.
type PreviewEntryCommand struct {
	// Path is a canonical entry path or a legacy path.
	Path string `json:"path"`
	// Style selects the glamour style: auto, dark, light, ascii or notty.
	Style string `json:"style,omitempty"`
	// Width is the wrap column; zero uses the default.
	Width int `json:"width,omitempty"`
}

// Type implements command.Message.
func (PreviewEntryCommand) Type() string { return previewEntryMessageType }

// Validate checks the path and terminal options.
func (cmd PreviewEntryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank("folio.site.preview.path_required", "entry path is required"))),
		validation.Field(&cmd.Style, validation.In(
			"", markdown.StyleAuto, markdown.StyleDark, markdown.StyleLight, markdown.StyleASCII, markdown.StyleNoTTY,
		).Error("style must be auto, dark, light, ascii or notty")),
		validation.Field(&cmd.Width, validation.Min(0), validation.Max(400)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
