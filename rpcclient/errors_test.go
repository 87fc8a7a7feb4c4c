package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bibajz/bitcoinrpc/btcjson"
	"github.com/stretchr/testify/require"
)

// TestErrorStrings checks the rendering of the error types.
func TestErrorStrings(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "transport",
			err: &TransportError{
				Method: "getblockcount",
				Err:    context.DeadlineExceeded,
			},
			want: "transport error during getblockcount: context " +
				"deadline exceeded",
		},
		{
			name: "status without body",
			err:  &HTTPStatusError{StatusCode: 401, Status: "401 Unauthorized"},
			want: "status code: 401",
		},
		{
			name: "status with body",
			err: &HTTPStatusError{
				StatusCode: 500,
				Body:       []byte("boom\n"),
			},
			want: `status code: 500, response: "boom"`,
		},
		{
			name: "decoding",
			err: &DecodingError{
				Body: []byte(`{"id":1}`),
				Err:  ErrEmptyResponse,
			},
			want: `unable to decode response "{\"id\":1}": response ` +
				"has neither result nor error",
		},
		{
			name: "rpc",
			err:  btcjson.NewRPCError(-8, "Block height out of range"),
			want: "-8: Block height out of range",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, tc.err.Error())
		})
	}
}

// TestQuoteBodyTruncates checks that large bodies are cut in error strings.
func TestQuoteBodyTruncates(t *testing.T) {
	t.Parallel()

	body := []byte(strings.Repeat("a", 4*maxErrBodyLen))
	err := &HTTPStatusError{StatusCode: 502, Body: body}

	require.Less(t, len(err.Error()), 2*maxErrBodyLen)
	require.Contains(t, err.Error(), "...")
	require.Len(t, err.Body, 4*maxErrBodyLen)
}

// TestErrorUnwrap checks that the causes stay reachable through wrapping.
func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	transportErr := fmt.Errorf("call failed: %w", &TransportError{
		Method: "getblock",
		Err:    fmt.Errorf("dial: %w", context.Canceled),
	})
	require.ErrorIs(t, transportErr, context.Canceled)

	decErr := fmt.Errorf("call failed: %w", &DecodingError{
		Err: ErrMismatchedID,
	})
	require.ErrorIs(t, decErr, ErrMismatchedID)
	require.False(t, errors.Is(decErr, ErrEmptyResponse))
}

// TestIsRPCError checks code matching across the error kinds.
func TestIsRPCError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		err     error
		code    btcjson.RPCErrorCode
		matched bool
	}{
		{
			name:    "rpc error",
			err:     btcjson.NewRPCError(btcjson.ErrRPCNoTxInfo, "No such mempool or blockchain transaction"),
			code:    btcjson.ErrRPCInvalidAddressOrKey,
			matched: true,
		},
		{
			name:    "wrapped rpc error",
			err:     fmt.Errorf("lookup: %w", btcjson.NewRPCError(-26, "dust")),
			code:    btcjson.ErrRPCVerifyRejected,
			matched: true,
		},
		{
			name:    "other code",
			err:     btcjson.NewRPCError(-26, "dust"),
			code:    btcjson.ErrRPCVerify,
			matched: false,
		},
		{
			name: "status error with error object",
			err: &HTTPStatusError{
				StatusCode: 404,
				Body: []byte(`{"result":null,"error":{"code":-32601,` +
					`"message":"Method not found"},"id":1}`),
			},
			code:    btcjson.ErrRPCMethodNotFound.Code,
			matched: true,
		},
		{
			name:    "status error with html",
			err:     &HTTPStatusError{StatusCode: 403, Body: []byte("<html>")},
			code:    btcjson.ErrRPCMisc,
			matched: false,
		},
		{
			name:    "unrelated",
			err:     errors.New("boom"),
			code:    btcjson.ErrRPCMisc,
			matched: false,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.matched, IsRPCError(tc.err, tc.code))
		})
	}
}
