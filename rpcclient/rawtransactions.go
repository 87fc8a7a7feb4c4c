// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"context"
	"fmt"

	"github.com/bibajz/bitcoinrpc/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// rawTransactionParams builds the params of getrawtransaction.  The block
// hash is only sent when set.
func rawTransactionParams(txHash, blockHash *chainhash.Hash,
	verbose bool) ([]interface{}, error) {

	if txHash == nil {
		return nil, fmt.Errorf("%w: transaction hash may not be nil",
			ErrInvalidParam)
	}

	params := []interface{}{txHash.String(), verbose}
	if blockHash != nil {
		params = append(params, blockHash.String())
	}
	return params, nil
}

// FutureGetRawTransactionResult is a future promise to deliver the result of a
// GetRawTransactionAsync RPC invocation (or an applicable error).
type FutureGetRawTransactionResult chan *Response

// Receive waits for the response promised by the future and returns a
// transaction given its hash.
func (r FutureGetRawTransactionResult) Receive() (*btcutil.Tx, error) {
	serializedTx, err := receiveHexBytes(r)
	if err != nil {
		return nil, err
	}

	// Deserialize the transaction and return it.
	tx, err := btcutil.NewTxFromBytes(serializedTx)
	if err != nil {
		return nil, &DecodingError{Body: serializedTx, Err: err}
	}
	return tx, nil
}

// GetRawTransactionAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See GetRawTransaction for the blocking version and more details.
func (c *Client) GetRawTransactionAsync(ctx context.Context, txHash, blockHash *chainhash.Hash) FutureGetRawTransactionResult {
	params, err := rawTransactionParams(txHash, blockHash, false)
	if err != nil {
		return newFutureError(err)
	}
	return c.sendCmd(ctx, "getrawtransaction", params...)
}

// GetRawTransaction returns a transaction given its hash.  Unless the daemon
// runs with -txindex, a transaction which is not in the mempool can only be
// found when the hash of the block containing it is passed; blockHash may be
// nil otherwise.
//
// See GetRawTransactionVerbose to obtain additional information about the
// transaction.
func (c *Client) GetRawTransaction(ctx context.Context, txHash, blockHash *chainhash.Hash) (*btcutil.Tx, error) {
	return c.GetRawTransactionAsync(ctx, txHash, blockHash).Receive()
}

// FutureGetRawTransactionVerboseResult is a future promise to deliver the
// result of a GetRawTransactionVerboseAsync RPC invocation (or an applicable
// error).
type FutureGetRawTransactionVerboseResult chan *Response

// Receive waits for the response promised by the future and returns information
// about a transaction given its hash.
func (r FutureGetRawTransactionVerboseResult) Receive() (*btcjson.TxRawResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	// Unmarshal result as a getrawtransaction result object.
	var rawTxResult btcjson.TxRawResult
	if err := unmarshalResult(res, &rawTxResult); err != nil {
		return nil, err
	}
	return &rawTxResult, nil
}

// GetRawTransactionVerboseAsync returns an instance of a type that can be used
// to get the result of the RPC at some future time by invoking the Receive
// function on the returned instance.
//
// See GetRawTransactionVerbose for the blocking version and more details.
func (c *Client) GetRawTransactionVerboseAsync(ctx context.Context, txHash, blockHash *chainhash.Hash) FutureGetRawTransactionVerboseResult {
	params, err := rawTransactionParams(txHash, blockHash, true)
	if err != nil {
		return newFutureError(err)
	}
	return c.sendCmd(ctx, "getrawtransaction", params...)
}

// GetRawTransactionVerbose returns information about a transaction given
// its hash.  See GetRawTransaction for the meaning of blockHash.
//
// See GetRawTransaction to obtain only the transaction already deserialized.
func (c *Client) GetRawTransactionVerbose(ctx context.Context, txHash, blockHash *chainhash.Hash) (*btcjson.TxRawResult, error) {
	return c.GetRawTransactionVerboseAsync(ctx, txHash, blockHash).Receive()
}
