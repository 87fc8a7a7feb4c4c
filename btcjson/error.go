// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcjson

import (
	"fmt"
)

// ErrorCode identifies a kind of error.  These error codes are NOT used for
// JSON-RPC response errors.
type ErrorCode int

// These constants identify the kind of an Error.
const (
	// ErrInvalidVersion indicates the JSON-RPC version of a request or
	// response is neither 1.0 nor 2.0.
	ErrInvalidVersion ErrorCode = iota

	// ErrEmptyMethod indicates a request was built without a method name.
	ErrEmptyMethod

	// ErrInvalidType indicates a type was passed that is not the required
	// type, such as an id which is not a string, number or null.
	ErrInvalidType

	// ErrUnmarshallableParam indicates a positional parameter could not be
	// marshalled to JSON.
	ErrUnmarshallableParam

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidVersion:      "ErrInvalidVersion",
	ErrEmptyMethod:         "ErrEmptyMethod",
	ErrInvalidType:         "ErrInvalidType",
	ErrUnmarshallableParam: "ErrUnmarshallableParam",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a general error.  This differs from an RPCError in that this
// error typically is used more by the consumers of the package as opposed to
// RPCErrors which are intended to be returned to the client across the wire via
// a JSON-RPC Response.  The caller can use type assertions to determine the
// specific error and access the ErrorCode field.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// makeError creates an Error given a set of arguments.
func makeError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
