// Package apperr defines the error taxonomy the document service surfaces
// to its callers. Every error carries a kind plus a human-readable message
// so the HTTP layer can render a response without leaking internals.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service error.
type Kind int

const (
	// KindValidation: malformed or missing required input.
	KindValidation Kind = iota
	// KindReference: a referenced expediente or cliente does not exist
	// (or could not be looked up, which callers cannot distinguish).
	KindReference
	// KindNotFound: the requested document does not exist.
	KindNotFound
	// KindForbidden: authenticated but lacking any grant on a non-public
	// document without the global admin role.
	KindForbidden
	// KindTransaction: the atomic write group failed to commit.
	KindTransaction
	// KindIndexing: content extraction failed. Logged only; never surfaced
	// to the caller of a create or update.
	KindIndexing
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindReference:
		return "reference"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindTransaction:
		return "transaction"
	case KindIndexing:
		return "indexing"
	default:
		return "unknown"
	}
}

// Error is a classified service error. Err, when set, holds the underlying
// cause for logs; Message is safe to show to a user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Reference builds a KindReference error.
func Reference(msg string) *Error {
	return &Error{Kind: KindReference, Message: msg}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Forbidden builds a KindForbidden error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Transaction wraps a commit failure.
func Transaction(msg string, err error) *Error {
	return &Error{Kind: KindTransaction, Message: msg, Err: err}
}

// Indexing wraps a content-extraction failure.
func Indexing(msg string, err error) *Error {
	return &Error{Kind: KindIndexing, Message: msg, Err: err}
}

// KindOf returns the kind of err, or ok=false if err is not an apperr.Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is an apperr.Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
