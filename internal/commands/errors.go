package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/manifest"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"

	ManifestInvalidCode     = "MANIFEST_INVALID"
	RedirectsInvalidCode    = "REDIRECTS_INVALID"
	ContentReadFailedCode   = "CONTENT_READ_FAILED"
	ContentRenderFailedCode = "CONTENT_RENDER_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if wrapped := WrapSiteError(err); wrapped != err {
		return wrapped
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}

// WrapSiteError categorises manifest, redirect and content errors. The
// message keeps the original text so the offending path or key is visible.
// Unknown errors are returned unchanged.
func WrapSiteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	var (
		parseErr     *manifest.ParseError
		danglingErr  *content.DanglingRedirectError
		duplicateErr *content.DuplicateRedirectError
		pathErr      *content.DuplicatePathError
		invalidErr   *content.InvalidRedirectError
		readErr      *content.ContentReadError
		renderErr    *content.RenderError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &pathErr):
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(ManifestInvalidCode)
	case errors.As(err, &danglingErr), errors.As(err, &duplicateErr), errors.As(err, &invalidErr):
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(RedirectsInvalidCode)
	case errors.As(err, &readErr):
		return goerrors.Wrap(err, goerrors.CategoryInternal, err.Error()).
			WithTextCode(ContentReadFailedCode)
	case errors.As(err, &renderErr):
		return goerrors.Wrap(err, goerrors.CategoryInternal, err.Error()).
			WithTextCode(ContentRenderFailedCode)
	}
	return err
}
