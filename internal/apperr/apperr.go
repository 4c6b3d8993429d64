// Package apperr classifies failures so the HTTP layer can pick a status
// code without inspecting provider internals.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal is the fallback for unclassified errors.
	KindInternal Kind = iota
	// KindBadRequest marks a request missing a required field or carrying
	// an unusable value.
	KindBadRequest
	// KindNotFound marks a valid identifier the provider has no entity for.
	KindNotFound
	// KindUpstream marks a non-success response from the provider; the
	// message carries the upstream status and body text.
	KindUpstream
	// KindMalformed marks an unparseable provider payload.
	KindMalformed
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the cause reachable through errors.Is/As while pinning the kind.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...) + ": " + err.Error(), Err: err}
}

// KindOf walks the chain and returns the first classified kind, or
// KindInternal if nothing in the chain is an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}
