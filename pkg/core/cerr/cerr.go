// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr defines the core layer errors. Use cases wrap their
// failures in an *Error, so adapters can classify them using
// errors.As and report them properly, while the wrapped error can
// still be matched using errors.Is.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error from the callers point of view.
type Kind int

// These constants define the supported error kinds.
const (
	KindInternal     Kind = iota // unexpected failure, zero value
	KindBadRequest               // field-level violations
	KindNotFound                 // referenced entity does not exist
	KindInvalidRange             // missing or non-chronological dates
	KindOutOfBounds              // duration outside of listing window
	KindConflict                 // overlapping reservation or duplicate
	KindReferenced               // entity is still referenced
	KindUnauthorized             // missing or invalid credentials
)

// String returns a short snake-case name of k.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindInvalidRange:
		return "invalid_range"
	case KindOutOfBounds:
		return "out_of_bounds"
	case KindConflict:
		return "conflict"
	case KindReferenced:
		return "referenced"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// HTTPStatusCode returns the HTTP status which should be used for
// reporting errors of the k kind.
func (k Kind) HTTPStatusCode() int {
	switch k {
	case KindBadRequest, KindInvalidRange:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindOutOfBounds:
		return http.StatusUnprocessableEntity
	case KindConflict, KindReferenced:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error wraps Err and classifies it by its Kind.
type Error struct {
	Err  error
	Kind Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Err.Error())
}

// KindOf returns the kind of the first *Error in the err chain,
// or KindInternal if there is none.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

func BadRequest(err error) *Error {
	return &Error{Err: err, Kind: KindBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, Kind: KindNotFound}
}

func InvalidRange(err error) *Error {
	return &Error{Err: err, Kind: KindInvalidRange}
}

func OutOfBounds(err error) *Error {
	return &Error{Err: err, Kind: KindOutOfBounds}
}

func Conflict(err error) *Error {
	return &Error{Err: err, Kind: KindConflict}
}

func Referenced(err error) *Error {
	return &Error{Err: err, Kind: KindReferenced}
}

func Authentication(err error) *Error {
	return &Error{Err: err, Kind: KindUnauthorized}
}
