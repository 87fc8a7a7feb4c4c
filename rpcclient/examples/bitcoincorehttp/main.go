// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log"
	"time"

	"github.com/bibajz/bitcoinrpc/rpcclient"
)

func main() {
	// Connect to a local bitcoin core RPC server.
	connCfg := &rpcclient.ConnConfig{
		Host:       "127.0.0.1:8332",
		User:       "yourrpcuser",
		Pass:       "yourrpcpass",
		DisableTLS: true, // Bitcoin core does not provide TLS by default
		Timeout:    30 * time.Second,
	}
	client, err := rpcclient.New(connCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()

	// Get the current block count.
	blockCount, err := client.GetBlockCount(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Block count: %d", blockCount)

	// Fire off a few requests at once and collect them afterwards.
	hashFutures := make([]rpcclient.FutureGetBlockHashResult, 0, 3)
	for height := blockCount; height > blockCount-3 && height >= 0; height-- {
		hashFutures = append(hashFutures, client.GetBlockHashAsync(ctx, height))
	}
	for i, future := range hashFutures {
		hash, err := future.Receive()
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Block %d: %v", blockCount-int64(i), hash)
	}
}
