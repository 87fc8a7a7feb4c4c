// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"context"

	"github.com/bibajz/bitcoinrpc/btcjson"
)

// FutureGetMiningInfoResult is a future promise to deliver the result of a
// GetMiningInfoAsync RPC invocation (or an applicable error).
type FutureGetMiningInfoResult chan *Response

// Receive waits for the response promised by the future and returns the mining
// information.
func (r FutureGetMiningInfoResult) Receive() (*btcjson.GetMiningInfoResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	// Unmarshal result as a getmininginfo result object.
	var infoResult btcjson.GetMiningInfoResult
	if err := unmarshalResult(res, &infoResult); err != nil {
		return nil, err
	}
	return &infoResult, nil
}

// GetMiningInfoAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See GetMiningInfo for the blocking version and more details.
func (c *Client) GetMiningInfoAsync(ctx context.Context) FutureGetMiningInfoResult {
	return c.sendCmd(ctx, "getmininginfo")
}

// GetMiningInfo returns mining information.
func (c *Client) GetMiningInfo(ctx context.Context) (*btcjson.GetMiningInfoResult, error) {
	return c.GetMiningInfoAsync(ctx).Receive()
}

// FutureGetNetworkHashPS is a future promise to deliver the result of a
// GetNetworkHashPSAsync RPC invocation (or an applicable error).
type FutureGetNetworkHashPS chan *Response

// Receive waits for the response promised by the future and returns the
// estimated network hashes per second for the block heights provided by the
// parameters.
func (r FutureGetNetworkHashPS) Receive() (float64, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return 0, err
	}

	// Unmarshal result as a float64.  bitcoind reports fractional values.
	var result float64
	if err := unmarshalResult(res, &result); err != nil {
		return 0, err
	}
	return result, nil
}

// GetNetworkHashPSAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function
// on the returned instance.
//
// See GetNetworkHashPS for the blocking version and more details.
func (c *Client) GetNetworkHashPSAsync(ctx context.Context, blocks int, height *int64) FutureGetNetworkHashPS {
	if height == nil {
		return c.sendCmd(ctx, "getnetworkhashps", blocks)
	}
	return c.sendCmd(ctx, "getnetworkhashps", blocks, *height)
}

// GetNetworkHashPS returns the estimated network hashes per second averaged
// over the given number of blocks, ending at height.  A blocks value of -1
// averages since the last difficulty change, and a nil height selects the
// current best block.
func (c *Client) GetNetworkHashPS(ctx context.Context, blocks int, height *int64) (float64, error) {
	return c.GetNetworkHashPSAsync(ctx, blocks, height).Receive()
}
