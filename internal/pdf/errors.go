package pdf

import "errors"

// Document model errors.
var (
	ErrParse             = errors.New("failed to parse pdf")
	ErrWrite             = errors.New("failed to write pdf")
	ErrIndexOutOfRange   = errors.New("page index out of range")
	ErrEmptyDocument     = errors.New("document has no pages")
	ErrInvalidOption     = errors.New("invalid pdf option")
	ErrInvalidProtection = errors.New("invalid protection mode")
	ErrWeakPassword      = errors.New("password must be at least 4 characters")
)
