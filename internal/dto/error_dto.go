package dto

import "errors"

// Named error kinds for the core flows. Controllers return these unwrapped (or
// wrapped with %w) and the error-handler middleware maps them to HTTP statuses.
var (
	// Input errors (4xx, no retry)
	ErrMissingMessage      = errors.New("message is required")
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// Not-found errors (no retry)
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileNotFound     = errors.New("file not found in storage")

	// PersistFailure marks a failed document update after processing.
	ErrPersistFailure = errors.New("failed to persist document")
)
