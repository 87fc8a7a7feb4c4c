// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcjson

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RPCVersion is the value of the jsonrpc member of an envelope.
type RPCVersion string

const (
	// RpcVersion1 is the legacy protocol version, still answered by
	// bitcoind when the jsonrpc member is absent.
	RpcVersion1 RPCVersion = "1.0"

	// RpcVersion2 is the protocol version sent by this package.
	RpcVersion2 RPCVersion = "2.0"
)

// IsValid reports whether r is one of the supported protocol versions.
func (r RPCVersion) IsValid() bool {
	return r == RpcVersion1 || r == RpcVersion2
}

// String returns the version as it appears on the wire.
func (r RPCVersion) String() string {
	return string(r)
}

// RPCErrorCode is the numeric code of an error object returned by the daemon.
// Bitcoin Core uses negative codes, see jsonrpcerr.go.
type RPCErrorCode int

// RPCError is the error member of a JSON-RPC response.  The daemon's code and
// message are kept verbatim.
type RPCError struct {
	Code    RPCErrorCode `json:"code"`
	Message string       `json:"message"`
}

var _, _ error = RPCError{}, (*RPCError)(nil)

// Error renders the error as "<code>: <message>".
func (e RPCError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Is reports whether target is an RPC error carrying the same code.  This
// allows callers to match daemon errors against the exported error values
// with errors.Is regardless of the message text.
func (e *RPCError) Is(target error) bool {
	switch t := target.(type) {
	case *RPCError:
		return t != nil && t.Code == e.Code
	case RPCError:
		return t.Code == e.Code
	}
	return false
}

// NewRPCError returns an error object with the given code and message.
func NewRPCError(code RPCErrorCode, message string) *RPCError {
	return &RPCError{Code: code, Message: message}
}

// IsValidIDType reports whether id may be used as the id of an envelope.
// JSON-RPC allows a string, a number or null.
func IsValidIDType(id interface{}) bool {
	switch id.(type) {
	case nil, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// checkEnvelope validates the version and id shared by requests and
// responses.
func checkEnvelope(rpcVersion RPCVersion, id interface{}) error {
	if !rpcVersion.IsValid() {
		return makeError(ErrInvalidVersion, fmt.Sprintf("unsupported "+
			"jsonrpc version %q", rpcVersion))
	}
	if !IsValidIDType(id) {
		return makeError(ErrInvalidType, fmt.Sprintf("id of type %T "+
			"is not a string, number or null", id))
	}
	return nil
}

// Request is a type for raw JSON-RPC requests.  The Method field identifies
// the specific daemon command and Params holds its positional parameters in
// order, already marshalled.
type Request struct {
	Jsonrpc RPCVersion        `json:"jsonrpc"`
	ID      interface{}       `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

// MarshalJSON marshals the request making sure the params member is always
// an array, since bitcoind rejects a null params member.
func (request *Request) MarshalJSON() ([]byte, error) {
	type Alias Request

	aux := Alias(*request)
	if aux.Params == nil {
		aux.Params = []json.RawMessage{}
	}
	return json.Marshal(&aux)
}

// NewRequest builds a request for method.  Each element of params is
// marshalled on its own and the order is kept, so params[i] ends up as the
// i-th positional parameter.
func NewRequest(rpcVersion RPCVersion, id interface{}, method string, params []interface{}) (*Request, error) {
	if err := checkEnvelope(rpcVersion, id); err != nil {
		return nil, err
	}
	if method == "" {
		return nil, makeError(ErrEmptyMethod, "empty method name")
	}

	rawParams := make([]json.RawMessage, len(params))
	for i, param := range params {
		raw, err := json.Marshal(param)
		if err != nil {
			return nil, makeError(ErrUnmarshallableParam,
				fmt.Sprintf("param %d (%T): %v", i+1, param, err))
		}
		rawParams[i] = raw
	}

	return &Request{
		Jsonrpc: rpcVersion,
		ID:      id,
		Method:  method,
		Params:  rawParams,
	}, nil
}

// MarshalRequest builds a request with NewRequest and marshals it to the
// byte slice sent over the wire.
func MarshalRequest(rpcVersion RPCVersion, id interface{}, method string, params ...interface{}) ([]byte, error) {
	request, err := NewRequest(rpcVersion, id, method, params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(request)
}

// Response is the general form of a JSON-RPC response.  The type of the
// Result field varies from one command to the next, so it is kept as raw
// JSON.  The ID field is kept raw as well so it can be compared against the
// id of the request byte for byte.
//
// bitcoind always includes both the result and the error members, setting the
// unused one to null, while a strict JSON-RPC 2.0 server omits it.  Both forms
// are accepted.
type Response struct {
	Jsonrpc RPCVersion      `json:"jsonrpc,omitempty"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
	ID      json.RawMessage `json:"id"`
}

// HasResult reports whether the response carried a result member at all.  A
// result member explicitly set to null counts as present.
func (r *Response) HasResult() bool {
	return len(r.Result) != 0
}

// IDMatches reports whether the id echoed in the response equals the id that
// was sent.  Both sides are compared as decoded JSON values, so escaping and
// whitespace differences do not matter.  A missing or null echoed id never
// matches.
func (r *Response) IDMatches(id interface{}) bool {
	echoed, err := decodeID(r.ID)
	if err != nil || echoed == nil {
		return false
	}

	rawSent, err := json.Marshal(id)
	if err != nil {
		return false
	}
	sent, err := decodeID(rawSent)
	if err != nil {
		return false
	}
	return echoed == sent
}

// decodeID decodes a raw id into a string, a json.Number or nil.  Numbers
// are kept in their textual form so large integer ids compare exactly.
func decodeID(raw json.RawMessage) (interface{}, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var id interface{}
	if err := dec.Decode(&id); err != nil {
		return nil, err
	}
	switch id.(type) {
	case nil, string, json.Number:
		return id, nil
	}
	return nil, fmt.Errorf("id of type %T is not a string, number or null",
		id)
}

// NewResponse builds a response around an already marshalled result.  The
// client never needs it; it exists for fake daemons in tests and examples.
func NewResponse(rpcVersion RPCVersion, id interface{}, marshalledResult []byte, rpcErr *RPCError) (*Response, error) {
	if err := checkEnvelope(rpcVersion, id); err != nil {
		return nil, err
	}

	rawID, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	return &Response{
		Jsonrpc: rpcVersion,
		Result:  marshalledResult,
		Error:   rpcErr,
		ID:      rawID,
	}, nil
}

// MarshalResponse encodes a response the way bitcoind does, with both the
// result and the error members present and the unused one null.
func MarshalResponse(rpcVersion RPCVersion, id interface{}, result interface{}, rpcErr *RPCError) ([]byte, error) {
	rawResult, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	resp, err := NewResponse(rpcVersion, id, rawResult, rpcErr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}
