// Copyright (c) 2014-2017 The btcsuite developers
// Copyright (c) 2019-2020 The Namecoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/bibajz/bitcoinrpc/rpcclient"
)

// GetTxOutSetInfoResult models the data from the gettxoutsetinfo command.
type GetTxOutSetInfoResult struct {
	Height         int64   `json:"height"`
	BestBlock      string  `json:"bestblock"`
	TxOuts         int64   `json:"txouts"`
	BogoSize       int64   `json:"bogosize"`
	HashSerialized string  `json:"hash_serialized_3"`
	TotalAmount    float64 `json:"total_amount"`
	DiskSize       int64   `json:"disk_size"`
}

// FutureGetTxOutSetInfoResult is a future promise to deliver the result
// of a GetTxOutSetInfoAsync RPC invocation (or an applicable error).
type FutureGetTxOutSetInfoResult chan *rpcclient.Response

// Receive waits for the Response promised by the future and returns
// statistics about the unspent transaction output set.
func (r FutureGetTxOutSetInfoResult) Receive() (*GetTxOutSetInfoResult, error) {
	res, err := rpcclient.ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var info GetTxOutSetInfoResult
	if err := json.Unmarshal(res, &info); err != nil {
		return nil, &rpcclient.DecodingError{Body: res, Err: err}
	}
	return &info, nil
}

// GetTxOutSetInfoAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function
// on the returned instance.
//
// See GetTxOutSetInfo for the blocking version and more details.
func GetTxOutSetInfoAsync(ctx context.Context, c *rpcclient.Client,
	hashType string) FutureGetTxOutSetInfoResult {

	return FutureGetTxOutSetInfoResult(c.CallAsync(ctx, "gettxoutsetinfo",
		hashType))
}

// GetTxOutSetInfo returns statistics about the unspent transaction output
// set.  This can take minutes on mainnet.
func GetTxOutSetInfo(ctx context.Context, c *rpcclient.Client,
	hashType string) (*GetTxOutSetInfoResult, error) {

	return GetTxOutSetInfoAsync(ctx, c, hashType).Receive()
}

func main() {
	connCfg := &rpcclient.ConnConfig{
		Host:       "localhost:8332",
		CookiePath: "/home/user/.bitcoin/.cookie",
		DisableTLS: true,
	}
	err := rpcclient.WithClient(connCfg, func(client *rpcclient.Client) error {
		info, err := GetTxOutSetInfo(context.Background(), client,
			"hash_serialized_3")
		if err != nil {
			return err
		}

		log.Printf("UTXO set at height %d holds %d outputs worth %v BTC",
			info.Height, info.TxOuts, info.TotalAmount)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
}
