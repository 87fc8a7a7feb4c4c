package rpcclient

import (
	"context"

	"github.com/bibajz/bitcoinrpc/btcjson"
)

// FutureGetMempoolInfoResult is a future promise to deliver the result of a
// GetMempoolInfoAsync RPC invocation (or an applicable error).
type FutureGetMempoolInfoResult chan *Response

// Receive waits for the response promised by the future and returns the
// details of the mempool.
func (r FutureGetMempoolInfoResult) Receive() (*btcjson.GetMempoolInfoResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var mempoolInfo btcjson.GetMempoolInfoResult
	if err := unmarshalResult(res, &mempoolInfo); err != nil {
		return nil, err
	}
	return &mempoolInfo, nil
}

// GetMempoolInfoAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function
// on the returned instance.
//
// See GetMempoolInfo for the blocking version and more details.
func (c *Client) GetMempoolInfoAsync(ctx context.Context) FutureGetMempoolInfoResult {
	return c.sendCmd(ctx, "getmempoolinfo")
}

// GetMempoolInfo returns the details of the active state of the transaction
// memory pool.
func (c *Client) GetMempoolInfo(ctx context.Context) (*btcjson.GetMempoolInfoResult, error) {
	return c.GetMempoolInfoAsync(ctx).Receive()
}
