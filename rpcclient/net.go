// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"context"

	"github.com/bibajz/bitcoinrpc/btcjson"
)

// FutureGetConnectionCountResult is a future promise to deliver the result
// of a GetConnectionCountAsync RPC invocation (or an applicable error).
type FutureGetConnectionCountResult chan *Response

// Receive waits for the response promised by the future and returns the number
// of active connections to other peers.
func (r FutureGetConnectionCountResult) Receive() (int64, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return 0, err
	}

	// Unmarshal result as an int64.
	var count int64
	if err := unmarshalResult(res, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetConnectionCountAsync returns an instance of a type that can be used to
// get the result of the RPC at some future time by invoking the Receive
// function on the returned instance.
//
// See GetConnectionCount for the blocking version and more details.
func (c *Client) GetConnectionCountAsync(ctx context.Context) FutureGetConnectionCountResult {
	return c.sendCmd(ctx, "getconnectioncount")
}

// GetConnectionCount returns the number of active connections to other peers.
func (c *Client) GetConnectionCount(ctx context.Context) (int64, error) {
	return c.GetConnectionCountAsync(ctx).Receive()
}

// FutureGetNetworkInfoResult is a future promise to deliver the result of a
// GetNetworkInfoAsync RPC invocation (or an applicable error).
type FutureGetNetworkInfoResult chan *Response

// Receive waits for the response promised by the future and returns data about
// the current network.
func (r FutureGetNetworkInfoResult) Receive() (*btcjson.GetNetworkInfoResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	// Unmarshal result as a getnetworkinfo result object.
	var networkInfo btcjson.GetNetworkInfoResult
	if err := unmarshalResult(res, &networkInfo); err != nil {
		return nil, err
	}
	return &networkInfo, nil
}

// GetNetworkInfoAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetNetworkInfo for the blocking version and more details.
func (c *Client) GetNetworkInfoAsync(ctx context.Context) FutureGetNetworkInfoResult {
	return c.sendCmd(ctx, "getnetworkinfo")
}

// GetNetworkInfo returns data about the current network.
func (c *Client) GetNetworkInfo(ctx context.Context) (*btcjson.GetNetworkInfoResult, error) {
	return c.GetNetworkInfoAsync(ctx).Receive()
}
