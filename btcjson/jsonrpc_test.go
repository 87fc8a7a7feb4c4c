// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcjson_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/bibajz/bitcoinrpc/btcjson"
	"github.com/davecgh/go-spew/spew"
)

// TestIsValidIDType ensures the IsValidIDType function behaves as expected.
func TestIsValidIDType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      interface{}
		isValid bool
	}{
		{"int", int(1), true},
		{"int8", int8(1), true},
		{"int16", int16(1), true},
		{"int32", int32(1), true},
		{"int64", int64(1), true},
		{"uint", uint(1), true},
		{"uint8", uint8(1), true},
		{"uint16", uint16(1), true},
		{"uint32", uint32(1), true},
		{"uint64", uint64(1), true},
		{"string", "1", true},
		{"nil", nil, true},
		{"float32", float32(1), true},
		{"float64", float64(1), true},
		{"bool", true, false},
		{"chan int", make(chan int), false},
		{"complex64", complex64(1), false},
		{"complex128", complex128(1), false},
		{"func", func() {}, false},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		if btcjson.IsValidIDType(test.id) != test.isValid {
			t.Errorf("Test #%d (%s) valid mismatch - got %v, "+
				"want %v", i, test.name, !test.isValid,
				test.isValid)
			continue
		}
	}
}

// TestMarshalRequest ensures requests are put on the wire in the shape the
// daemon expects.
func TestMarshalRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     interface{}
		method string
		params []interface{}
		want   string
	}{
		{
			name:   "no params",
			id:     uint64(1),
			method: "getblockcount",
			want:   `{"jsonrpc":"2.0","id":1,"method":"getblockcount","params":[]}`,
		},
		{
			name:   "ordered params",
			id:     uint64(7),
			method: "getblock",
			params: []interface{}{"00ff", 2},
			want:   `{"jsonrpc":"2.0","id":7,"method":"getblock","params":["00ff",2]}`,
		},
		{
			name:   "string id and nested params",
			id:     "abc",
			method: "combinepsbt",
			params: []interface{}{[]string{"a", "b"}},
			want:   `{"jsonrpc":"2.0","id":"abc","method":"combinepsbt","params":[["a","b"]]}`,
		},
		{
			name:   "null param",
			id:     uint64(2),
			method: "getnetworkhashps",
			params: []interface{}{120, nil},
			want:   `{"jsonrpc":"2.0","id":2,"method":"getnetworkhashps","params":[120,null]}`,
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		marshalled, err := btcjson.MarshalRequest(btcjson.RpcVersion2,
			test.id, test.method, test.params...)
		if err != nil {
			t.Errorf("Test #%d (%s) unexpected error: %v", i,
				test.name, err)
			continue
		}
		if string(marshalled) != test.want {
			t.Errorf("Test #%d (%s) mismatched result - got %s, "+
				"want %s", i, test.name, marshalled, test.want)
		}
	}
}

// TestRequestNilParams ensures a request built by hand never sends null
// params.
func TestRequestNilParams(t *testing.T) {
	t.Parallel()

	req := &btcjson.Request{
		Jsonrpc: btcjson.RpcVersion2,
		ID:      1,
		Method:  "getbestblockhash",
	}
	marshalled, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"jsonrpc":"2.0","id":1,"method":"getbestblockhash","params":[]}`
	if string(marshalled) != want {
		t.Fatalf("mismatched result - got %s, want %s", marshalled, want)
	}
}

// TestNewRequestErrors ensures invalid requests are rejected with the
// expected error code.
func TestNewRequestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version btcjson.RPCVersion
		id      interface{}
		method  string
		params  []interface{}
		want    btcjson.ErrorCode
	}{
		{
			name:    "bad version",
			version: "3.0",
			id:      1,
			method:  "getblockcount",
			want:    btcjson.ErrInvalidVersion,
		},
		{
			name:    "empty method",
			version: btcjson.RpcVersion2,
			id:      1,
			want:    btcjson.ErrEmptyMethod,
		},
		{
			name:    "bool id",
			version: btcjson.RpcVersion2,
			id:      true,
			method:  "getblockcount",
			want:    btcjson.ErrInvalidType,
		},
		{
			name:    "channel param",
			version: btcjson.RpcVersion2,
			id:      1,
			method:  "getblock",
			params:  []interface{}{"00", make(chan int)},
			want:    btcjson.ErrUnmarshallableParam,
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		_, err := btcjson.NewRequest(test.version, test.id, test.method,
			test.params)

		var jerr btcjson.Error
		if !errors.As(err, &jerr) {
			t.Errorf("Test #%d (%s) wrong error - got %T (%v), "+
				"want %T", i, test.name, err, err, jerr)
			continue
		}
		if jerr.ErrorCode != test.want {
			t.Errorf("Test #%d (%s) mismatched error code - got "+
				"%v (%v), want %v", i, test.name, jerr.ErrorCode,
				jerr, test.want)
		}
	}
}

// TestUnmarshalResponse ensures both the bitcoind and the strict JSON-RPC 2.0
// response shapes are understood.
func TestUnmarshalResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		hasResult bool
		err       *btcjson.RPCError
	}{
		{
			name:      "bitcoind result",
			body:      `{"result":100,"error":null,"id":1}`,
			hasResult: true,
		},
		{
			name:      "strict result",
			body:      `{"jsonrpc":"2.0","result":100,"id":1}`,
			hasResult: true,
		},
		{
			name:      "null result",
			body:      `{"result":null,"error":null,"id":1}`,
			hasResult: true,
		},
		{
			name:      "bitcoind error",
			body:      `{"result":null,"error":{"code":-8,"message":"Block height out of range"},"id":1}`,
			hasResult: true,
			err:       btcjson.NewRPCError(-8, "Block height out of range"),
		},
		{
			name: "strict error",
			body: `{"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found"},"id":1}`,
			err:  btcjson.NewRPCError(-32601, "Method not found"),
		},
		{
			name: "neither",
			body: `{"id":1}`,
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		var resp btcjson.Response
		if err := json.Unmarshal([]byte(test.body), &resp); err != nil {
			t.Errorf("Test #%d (%s) unexpected error: %v", i,
				test.name, err)
			continue
		}
		if resp.HasResult() != test.hasResult {
			t.Errorf("Test #%d (%s) mismatched HasResult - got %v, "+
				"want %v", i, test.name, resp.HasResult(),
				test.hasResult)
		}
		if !reflect.DeepEqual(resp.Error, test.err) {
			t.Errorf("Test #%d (%s) mismatched error - got %s, "+
				"want %s", i, test.name, spew.Sdump(resp.Error),
				spew.Sdump(test.err))
		}
	}
}

// TestResponseIDMatches ensures echoed ids are compared by their JSON form.
func TestResponseIDMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		echo  string
		sent  interface{}
		match bool
	}{
		{"number", `1`, uint64(1), true},
		{"number with spaces", ` 1 `, uint64(1), true},
		{"other number", `2`, uint64(1), false},
		{"string", `"1"`, "1", true},
		{"string against number", `"1"`, uint64(1), false},
		{"unescaped html string", `"a<b>&c"`, "a<b>&c", true},
		{"escaped html string", `"a\u003cb\u003e\u0026c"`, "a<b>&c", true},
		{"unicode escape", `"\u00e9"`, "é", true},
		{"object", `{"a":1}`, uint64(1), false},
		{"null", `null`, uint64(1), false},
		{"missing", ``, uint64(1), false},
		{"malformed", `{`, uint64(1), false},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		resp := btcjson.Response{ID: json.RawMessage(test.echo)}
		if got := resp.IDMatches(test.sent); got != test.match {
			t.Errorf("Test #%d (%s) mismatched result - got %v, "+
				"want %v", i, test.name, got, test.match)
		}
	}
}

// TestMarshalResponse ensures responses built for tests carry both members.
func TestMarshalResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result interface{}
		rpcErr *btcjson.RPCError
		want   string
	}{
		{
			name:   "result",
			result: 5,
			want:   `{"jsonrpc":"2.0","result":5,"error":null,"id":1}`,
		},
		{
			name:   "error",
			rpcErr: btcjson.NewRPCError(btcjson.ErrRPCMisc, "boom"),
			want: `{"jsonrpc":"2.0","result":null,` +
				`"error":{"code":-1,"message":"boom"},"id":1}`,
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		marshalled, err := btcjson.MarshalResponse(btcjson.RpcVersion2, 1,
			test.result, test.rpcErr)
		if err != nil {
			t.Errorf("Test #%d (%s) unexpected error: %v", i,
				test.name, err)
			continue
		}
		if string(marshalled) != test.want {
			t.Errorf("Test #%d (%s) mismatched result - got %s, "+
				"want %s", i, test.name, marshalled, test.want)
		}
	}
}
