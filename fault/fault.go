// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances for the object store
//
// Provides a single instance of errors to allow easy comparison without
// having to resort to partial string matches
package fault

// error base
type GenericError string

// to allow for different classes of errors
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ProcessError("already initialised")
	ErrDigestMismatch       = InvalidError("digest does not match payload")
	ErrInvalidBackend       = InvalidError("invalid backend configuration")
	ErrInvalidCount         = InvalidError("invalid count")
	ErrInvalidCursor        = InvalidError("invalid cursor")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidObjectType    = InvalidError("invalid object type")
	ErrNilBackend           = InvalidError("backend is not set")
	ErrTruncatedRecord      = InvalidError("truncated record")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
