package extract

import (
	"errors"
	"fmt"

	"github.com/veenakrishnan01/menu-analyser/internal/llm"
)

// ErrorKind classifies extraction failures for caller-visible messages.
type ErrorKind string

const (
	ErrEmptyFile           ErrorKind = "EMPTY_FILE"
	ErrBadSignature        ErrorKind = "BAD_SIGNATURE"
	ErrOversized           ErrorKind = "OVERSIZED"
	ErrUnsupportedType     ErrorKind = "UNSUPPORTED_TYPE"
	ErrFetchFailed         ErrorKind = "FETCH_FAILED"
	ErrInsufficientContent ErrorKind = "INSUFFICIENT_CONTENT"
	ErrModelFailed         ErrorKind = "MODEL_EXTRACTION_FAILED"
)

// ExtractionError carries a kind for status mapping and a human-readable
// cause. Extraction failures are never retried automatically.
type ExtractionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsRetryable reports whether the failure came from an upstream rate limit,
// in which case the caller should say "try again later" instead of
// "bad input".
func (e *ExtractionError) IsRetryable() bool {
	return errors.Is(e.Err, llm.ErrRateLimited)
}

func newError(kind ErrorKind, message string) *ExtractionError {
	return &ExtractionError{Kind: kind, Message: message}
}

func wrapError(kind ErrorKind, message string, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Message: message, Err: err}
}
