// Package tools composes the raster, HEIC, and PDF primitives into the
// user-facing file transformations and exposes them over HTTP.
package tools

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/file-lab/internal/anchor"
	"github.com/JaimeStill/file-lab/internal/heic"
	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/raster"
	"github.com/JaimeStill/file-lab/internal/thumbnails"
)

// Domain errors for tool operations.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrTemplateNotFound = errors.New("template not found")
	ErrPartialFailure   = errors.New("operation aborted")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrTooManyFiles     = errors.New("too many files")
)

// MapHTTPStatus maps tool and engine errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, raster.ErrDecode),
		errors.Is(err, heic.ErrUnsupportedFormat),
		errors.Is(err, pdf.ErrParse),
		errors.Is(err, thumbnails.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrTooManyFiles),
		errors.Is(err, raster.ErrUnsupportedFormat),
		errors.Is(err, raster.ErrInvalidOption),
		errors.Is(err, pdf.ErrIndexOutOfRange),
		errors.Is(err, pdf.ErrEmptyDocument),
		errors.Is(err, pdf.ErrInvalidOption),
		errors.Is(err, pdf.ErrInvalidProtection),
		errors.Is(err, pdf.ErrWeakPassword),
		errors.Is(err, thumbnails.ErrInvalidWidth),
		errors.Is(err, anchor.ErrInvalidPosition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
