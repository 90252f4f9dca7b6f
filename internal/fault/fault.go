// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fault defines the typed failures returned by stores and mapped
// to HTTP responses by the handlers. Every user-facing failure carries a
// kind and a human-readable message.
package fault

import "errors"

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown covers internal errors that have no domain meaning.
	KindUnknown Kind = iota
	// KindNotFound means the requested entity does not exist.
	KindNotFound
	// KindInvalidArgument means the input was malformed or out of bounds.
	KindInvalidArgument
	// KindPermissionDenied means the acting user may not perform the operation.
	KindPermissionDenied
	// KindConflict means the operation would repeat an already-applied change.
	KindConflict
	// KindUnavailable means a backing service (database, storage) failed.
	KindUnavailable
)

// Error is a classified failure with a message safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound returns a KindNotFound error with the given message.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Invalid returns a KindInvalidArgument error with the given message.
func Invalid(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

// Denied returns a KindPermissionDenied error with the given message.
func Denied(msg string) error {
	return &Error{Kind: KindPermissionDenied, Message: msg}
}

// Conflict returns a KindConflict error with the given message.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Unavailable wraps a backing-service failure with a client-safe message.
func Unavailable(msg string, err error) error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

// KindOf extracts the Kind from an error chain. Errors that are not
// *Error report KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-safe message from an error chain, or the
// fallback for unclassified errors.
func MessageOf(err error, fallback string) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return fallback
}
