package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure so adapters can map it to a
// stable machine-readable code without string matching.
type ErrorKind string

const (
	// ErrInvalidAmount covers unparseable or negative numeric fields.
	ErrInvalidAmount ErrorKind = "INVALID_AMOUNT"
	// ErrMalformedEntry covers entries missing a required field or carrying
	// an unusable date.
	ErrMalformedEntry ErrorKind = "MALFORMED_ENTRY"
	// ErrSchemaViolation means the extraction output was not a list of objects
	// with the required keys.
	ErrSchemaViolation ErrorKind = "SCHEMA_VIOLATION"
	// ErrExtractionFailed means no structured payload could be located in the
	// model's response.
	ErrExtractionFailed ErrorKind = "EXTRACTION_FAILED"
	// ErrEmptyEntryList means the validated entry list was empty; an invoice
	// with zero entries is not a billing document.
	ErrEmptyEntryList ErrorKind = "EMPTY_ENTRY_LIST"
	// ErrRenderFailed means the document renderer could not produce a file.
	ErrRenderFailed ErrorKind = "RENDER_FAILED"
)

// PipelineError is the structured error returned by the invoice pipeline.
// Index is the zero-based position of the offending entry, or -1 when the
// failure is not tied to a single entry.
type PipelineError struct {
	Kind    ErrorKind
	Index   int
	Message string
}

func (e *PipelineError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s (entry %d): %s", e.Kind, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// pipelineErrorf builds a PipelineError with a formatted message.
func pipelineErrorf(kind ErrorKind, index int, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Index: index, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind of err if it is (or wraps) a PipelineError,
// or "" otherwise.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
