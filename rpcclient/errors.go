// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bibajz/bitcoinrpc/btcjson"
)

var (
	// ErrInvalidParam is returned when the caller provides an invalid
	// parameter to an RPC method.  Nothing is sent to the daemon in that
	// case.
	ErrInvalidParam = errors.New("invalid param")

	// ErrClientShutdown is returned when a call is made on a client that
	// has been shut down or closed.
	ErrClientShutdown = errors.New("the client has been shutdown")

	// ErrMismatchedID is wrapped by a DecodingError when the id echoed by
	// the daemon differs from the id of the request.
	ErrMismatchedID = errors.New("response id does not match request id")

	// ErrEmptyResponse is wrapped by a DecodingError when a response holds
	// neither an error nor a result, or when a typed call receives a null
	// result.
	ErrEmptyResponse = errors.New("response has neither result nor error")

	// ErrBackendVersion is returned when the version reported by the
	// daemon can not be recognized as a bitcoind version.
	ErrBackendVersion = errors.New("unrecognized backend version")
)

// maxErrBodyLen is the number of body bytes quoted in error strings.
const maxErrBodyLen = 256

// quoteBody returns the quoted, possibly truncated, body for use in error
// strings.
func quoteBody(body []byte) string {
	s := string(body)
	if len(s) > maxErrBodyLen {
		s = s[:maxErrBodyLen] + "..."
	}
	return fmt.Sprintf("%q", strings.TrimSpace(s))
}

// TransportError describes a failure to deliver a request or to read its
// response, such as a refused connection, a DNS or TLS failure, or a context
// which ended while the request was in flight.
type TransportError struct {
	Method string
	Err    error
}

// Error satisfies the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying cause so that errors.Is can find
// context.Canceled and context.DeadlineExceeded.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is returned when the daemon answers with a non-2xx status
// code.  The body is kept as received; no JSON parsing takes place.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Error satisfies the error interface.
func (e *HTTPStatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("status code: %d, response: %s", e.StatusCode,
		quoteBody(e.Body))
}

// RPCError extracts the JSON-RPC error object carried by the body, if any.
// bitcoind before v28 reports RPC errors with a 500 or 404 status, so the
// error object is often available even though the status is not 2xx.  It
// returns nil when the body is not a JSON-RPC error response.
func (e *HTTPStatusError) RPCError() *btcjson.RPCError {
	var resp btcjson.Response
	if err := json.Unmarshal(e.Body, &resp); err != nil {
		return nil
	}
	return resp.Error
}

// DecodingError is returned when a 2xx response can not be interpreted as a
// JSON-RPC response or its result does not have the expected shape.
type DecodingError struct {
	Body []byte
	Err  error
}

// Error satisfies the error interface.
func (e *DecodingError) Error() string {
	return fmt.Sprintf("unable to decode response %s: %v",
		quoteBody(e.Body), e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodingError) Unwrap() error {
	return e.Err
}

// IsRPCError reports whether err is, or wraps, an RPC error returned by the
// daemon with the given code.  Errors carried by a non-2xx response are
// inspected as well.
func IsRPCError(err error, code btcjson.RPCErrorCode) bool {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr.Code == code
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if rpcErr := statusErr.RPCError(); rpcErr != nil {
			return rpcErr.Code == code
		}
	}
	return false
}
