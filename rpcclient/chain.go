// Copyright (c) 2014-2017 The btcsuite developers
// Copyright (c) 2015-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/bibajz/bitcoinrpc/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Verbosity levels accepted by getblock.
const (
	blockVerbosityHex    = 0
	blockVerbosityTxIDs  = 1
	blockVerbosityFullTx = 2
)

// receiveHash decodes a result holding a hex encoded hash.
func receiveHash(f chan *Response) (*chainhash.Hash, error) {
	res, err := ReceiveFuture(f)
	if err != nil {
		return nil, err
	}

	// Unmarshal result as a string.
	var hashStr string
	if err := unmarshalResult(res, &hashStr); err != nil {
		return nil, err
	}

	hash, err := chainhash.NewHashFromStr(hashStr)
	if err != nil {
		return nil, &DecodingError{Body: res, Err: err}
	}
	return hash, nil
}

// receiveHexBytes decodes a result holding a hex encoded byte string.
func receiveHexBytes(f chan *Response) ([]byte, error) {
	res, err := ReceiveFuture(f)
	if err != nil {
		return nil, err
	}

	// Unmarshal result as a string.
	var hexStr string
	if err := unmarshalResult(res, &hexStr); err != nil {
		return nil, err
	}

	serialized, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, &DecodingError{Body: res, Err: err}
	}
	return serialized, nil
}

// hashParam returns the string form of blockHash, failing on nil.
func hashParam(blockHash *chainhash.Hash) (string, error) {
	if blockHash == nil {
		return "", fmt.Errorf("%w: block hash may not be nil",
			ErrInvalidParam)
	}
	return blockHash.String(), nil
}

// FutureGetBestBlockHashResult is a future promise to deliver the result of a
// GetBestBlockAsync RPC invocation (or an applicable error).
type FutureGetBestBlockHashResult chan *Response

// Receive waits for the response promised by the future and returns the hash of
// the best block in the longest block chain.
func (r FutureGetBestBlockHashResult) Receive() (*chainhash.Hash, error) {
	return receiveHash(r)
}

// GetBestBlockHashAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See GetBestBlockHash for the blocking version and more details.
func (c *Client) GetBestBlockHashAsync(ctx context.Context) FutureGetBestBlockHashResult {
	return c.sendCmd(ctx, "getbestblockhash")
}

// GetBestBlockHash returns the hash of the best block in the longest block
// chain.
func (c *Client) GetBestBlockHash(ctx context.Context) (*chainhash.Hash, error) {
	return c.GetBestBlockHashAsync(ctx).Receive()
}

// FutureGetBlockHashResult is a future promise to deliver the result of a
// GetBlockHashAsync RPC invocation (or an applicable error).
type FutureGetBlockHashResult chan *Response

// Receive waits for the response promised by the future and returns the hash of
// the block in the best block chain at the given height.
func (r FutureGetBlockHashResult) Receive() (*chainhash.Hash, error) {
	return receiveHash(r)
}

// GetBlockHashAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetBlockHash for the blocking version and more details.
func (c *Client) GetBlockHashAsync(ctx context.Context, blockHeight int64) FutureGetBlockHashResult {
	return c.sendCmd(ctx, "getblockhash", blockHeight)
}

// GetBlockHash returns the hash of the block in the best block chain at the
// given height.
func (c *Client) GetBlockHash(ctx context.Context, blockHeight int64) (*chainhash.Hash, error) {
	return c.GetBlockHashAsync(ctx, blockHeight).Receive()
}

// FutureGetBlockCountResult is a future promise to deliver the result of a
// GetBlockCountAsync RPC invocation (or an applicable error).
type FutureGetBlockCountResult chan *Response

// Receive waits for the response promised by the future and returns the number
// of blocks in the longest block chain.
func (r FutureGetBlockCountResult) Receive() (int64, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return 0, err
	}

	// Unmarshal the result as an int64.
	var count int64
	if err := unmarshalResult(res, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetBlockCountAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetBlockCount for the blocking version and more details.
func (c *Client) GetBlockCountAsync(ctx context.Context) FutureGetBlockCountResult {
	return c.sendCmd(ctx, "getblockcount")
}

// GetBlockCount returns the number of blocks in the longest block chain.
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	return c.GetBlockCountAsync(ctx).Receive()
}

// FutureGetDifficultyResult is a future promise to deliver the result of a
// GetDifficultyAsync RPC invocation (or an applicable error).
type FutureGetDifficultyResult chan *Response

// Receive waits for the response promised by the future and returns the
// proof-of-work difficulty as a multiple of the minimum difficulty.
func (r FutureGetDifficultyResult) Receive() (float64, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return 0, err
	}

	// Unmarshal the result as a float64.
	var difficulty float64
	if err := unmarshalResult(res, &difficulty); err != nil {
		return 0, err
	}
	return difficulty, nil
}

// GetDifficultyAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetDifficulty for the blocking version and more details.
func (c *Client) GetDifficultyAsync(ctx context.Context) FutureGetDifficultyResult {
	return c.sendCmd(ctx, "getdifficulty")
}

// GetDifficulty returns the proof-of-work difficulty as a multiple of the
// minimum difficulty.
func (c *Client) GetDifficulty(ctx context.Context) (float64, error) {
	return c.GetDifficultyAsync(ctx).Receive()
}

// FutureGetBlockChainInfoResult is a promise to deliver the result of a
// GetBlockChainInfoAsync RPC invocation (or an applicable error).
type FutureGetBlockChainInfoResult chan *Response

// Receive waits for the response promised by the future and returns chain info
// result provided by the server.
func (r FutureGetBlockChainInfoResult) Receive() (*btcjson.GetBlockChainInfoResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var chainInfo btcjson.GetBlockChainInfoResult
	if err := unmarshalResult(res, &chainInfo); err != nil {
		return nil, err
	}
	return &chainInfo, nil
}

// GetBlockChainInfoAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function
// on the returned instance.
//
// See GetBlockChainInfo for the blocking version and more details.
func (c *Client) GetBlockChainInfoAsync(ctx context.Context) FutureGetBlockChainInfoResult {
	return c.sendCmd(ctx, "getblockchaininfo")
}

// GetBlockChainInfo returns information related to the processing state of
// various chain-specific details such as the current difficulty from the tip
// of the main chain.
func (c *Client) GetBlockChainInfo(ctx context.Context) (*btcjson.GetBlockChainInfoResult, error) {
	return c.GetBlockChainInfoAsync(ctx).Receive()
}

// FutureGetChainTipsResult is a future promise to deliver the result of a
// GetChainTips RPC invocation (or an applicable error).
type FutureGetChainTipsResult chan *Response

// Receive waits for the response promised by the future and returns slice of
// all known tips in the block tree.
func (r FutureGetChainTipsResult) Receive() ([]*btcjson.GetChainTipsResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var chainTips []*btcjson.GetChainTipsResult
	if err := unmarshalResult(res, &chainTips); err != nil {
		return nil, err
	}
	return chainTips, nil
}

// GetChainTipsAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetChainTips for the blocking version and more details.
func (c *Client) GetChainTipsAsync(ctx context.Context) FutureGetChainTipsResult {
	return c.sendCmd(ctx, "getchaintips")
}

// GetChainTips returns a slice of data structure with information about all
// known tips in the block tree.
func (c *Client) GetChainTips(ctx context.Context) ([]*btcjson.GetChainTipsResult, error) {
	return c.GetChainTipsAsync(ctx).Receive()
}

// FutureGetBlockHeaderResult is a future promise to deliver the result of a
// GetBlockHeaderAsync RPC invocation (or an applicable error).
type FutureGetBlockHeaderResult chan *Response

// Receive waits for the response promised by the future and returns the
// blockheader requested from the server given its hash.
func (r FutureGetBlockHeaderResult) Receive() (*wire.BlockHeader, error) {
	serializedBH, err := receiveHexBytes(r)
	if err != nil {
		return nil, err
	}

	// Deserialize the blockheader and return it.
	var bh wire.BlockHeader
	if err := bh.Deserialize(bytes.NewReader(serializedBH)); err != nil {
		return nil, &DecodingError{Body: serializedBH, Err: err}
	}
	return &bh, nil
}

// GetBlockHeaderAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetBlockHeader for the blocking version and more details.
func (c *Client) GetBlockHeaderAsync(ctx context.Context, blockHash *chainhash.Hash) FutureGetBlockHeaderResult {
	hash, err := hashParam(blockHash)
	if err != nil {
		return newFutureError(err)
	}
	return c.sendCmd(ctx, "getblockheader", hash, false)
}

// GetBlockHeader returns the blockheader from the server given its hash.
//
// See GetBlockHeaderVerbose to retrieve a data structure with information about
// the block instead.
func (c *Client) GetBlockHeader(ctx context.Context, blockHash *chainhash.Hash) (*wire.BlockHeader, error) {
	return c.GetBlockHeaderAsync(ctx, blockHash).Receive()
}

// FutureGetBlockHeaderVerboseResult is a future promise to deliver the result of a
// GetBlockAsync RPC invocation (or an applicable error).
type FutureGetBlockHeaderVerboseResult chan *Response

// Receive waits for the response promised by the future and returns the
// data structure of the blockheader requested from the server given its hash.
func (r FutureGetBlockHeaderVerboseResult) Receive() (*btcjson.GetBlockHeaderVerboseResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var bh btcjson.GetBlockHeaderVerboseResult
	if err := unmarshalResult(res, &bh); err != nil {
		return nil, err
	}
	return &bh, nil
}

// GetBlockHeaderVerboseAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetBlockHeaderVerbose for the blocking version and more details.
func (c *Client) GetBlockHeaderVerboseAsync(ctx context.Context, blockHash *chainhash.Hash) FutureGetBlockHeaderVerboseResult {
	hash, err := hashParam(blockHash)
	if err != nil {
		return newFutureError(err)
	}
	return c.sendCmd(ctx, "getblockheader", hash, true)
}

// GetBlockHeaderVerbose returns a data structure with information about the
// blockheader from the server given its hash.
//
// See GetBlockHeader to retrieve a blockheader instead.
func (c *Client) GetBlockHeaderVerbose(ctx context.Context, blockHash *chainhash.Hash) (*btcjson.GetBlockHeaderVerboseResult, error) {
	return c.GetBlockHeaderVerboseAsync(ctx, blockHash).Receive()
}

// FutureGetBlockStatsResult is a future promise to deliver the result of a
// GetBlockStatsAsync RPC invocation (or an applicable error).
type FutureGetBlockStatsResult chan *Response

// Receive waits for the response promised by the future and returns statistics
// of a block at a certain height.
func (r FutureGetBlockStatsResult) Receive() (*btcjson.GetBlockStatsResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var blockStats btcjson.GetBlockStatsResult
	if err := unmarshalResult(res, &blockStats); err != nil {
		return nil, err
	}
	return &blockStats, nil
}

// blockStatsTarget validates the hash-or-height argument of getblockstats and
// returns the value to put on the wire.
func blockStatsTarget(hashOrHeight interface{}) (interface{}, error) {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: hashOrHeight %v of type %T %s",
			ErrInvalidParam, hashOrHeight, hashOrHeight, reason)
	}

	var height int64
	switch v := hashOrHeight.(type) {
	case int:
		height = int64(v)
	case int32:
		height = int64(v)
	case int64:
		height = v
	case uint32:
		height = int64(v)
	case uint64:
		if v > 1<<62 {
			return nil, invalid("is out of range")
		}
		height = int64(v)

	case *chainhash.Hash:
		if v == nil {
			return nil, invalid("is nil")
		}
		return v.String(), nil

	case chainhash.Hash:
		return v.String(), nil

	case string:
		if len(v) != chainhash.MaxHashStringSize {
			return nil, invalid("is not a block hash")
		}
		if _, err := hex.DecodeString(v); err != nil {
			return nil, invalid("is not a block hash")
		}
		return v, nil

	default:
		return nil, invalid("is neither a block hash nor a height")
	}

	if height < 0 {
		return nil, invalid("is a negative height")
	}
	return height, nil
}

// GetBlockStatsAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See GetBlockStats or the blocking version and more details.
func (c *Client) GetBlockStatsAsync(ctx context.Context, hashOrHeight interface{}, stats *[]string) FutureGetBlockStatsResult {
	target, err := blockStatsTarget(hashOrHeight)
	if err != nil {
		return newFutureError(err)
	}

	if stats == nil {
		return c.sendCmd(ctx, "getblockstats", target)
	}
	return c.sendCmd(ctx, "getblockstats", target, *stats)
}

// GetBlockStats returns block statistics.  The first argument specifies the
// height or hash of the target block, either as an integer, a *chainhash.Hash
// or a hex string.  The second argument allows to select certain stats to
// return; a nil pointer returns all of them.
func (c *Client) GetBlockStats(ctx context.Context, hashOrHeight interface{}, stats *[]string) (*btcjson.GetBlockStatsResult, error) {
	return c.GetBlockStatsAsync(ctx, hashOrHeight, stats).Receive()
}

// FutureGetBlockResult is a future promise to deliver the result of a
// GetBlockAsync RPC invocation (or an applicable error).
type FutureGetBlockResult chan *Response

// Receive waits for the response promised by the future and returns the raw
// block requested from the server given its hash.
func (r FutureGetBlockResult) Receive() (*btcutil.Block, error) {
	serializedBlock, err := receiveHexBytes(r)
	if err != nil {
		return nil, err
	}

	// Deserialize the block and return it.
	block, err := btcutil.NewBlockFromBytes(serializedBlock)
	if err != nil {
		return nil, &DecodingError{Body: serializedBlock, Err: err}
	}
	return block, nil
}

// GetBlockAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on the
// returned instance.
//
// See GetBlock for the blocking version and more details.
func (c *Client) GetBlockAsync(ctx context.Context, blockHash *chainhash.Hash) FutureGetBlockResult {
	hash, err := hashParam(blockHash)
	if err != nil {
		return newFutureError(err)
	}
	return c.sendCmd(ctx, "getblock", hash, blockVerbosityHex)
}

// GetBlock returns a raw block from the server given its hash.
//
// See GetBlockVerbose to retrieve a data structure with information about the
// block instead.
func (c *Client) GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*btcutil.Block, error) {
	return c.GetBlockAsync(ctx, blockHash).Receive()
}

// FutureGetBlockVerboseResult is a future promise to deliver the result of a
// GetBlockVerboseAsync RPC invocation (or an applicable error).
type FutureGetBlockVerboseResult chan *Response

// Receive waits for the response promised by the future and returns the data
// structure from the server with information about the requested block.
func (r FutureGetBlockVerboseResult) Receive() (*btcjson.GetBlockVerboseResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	// Unmarshal the raw result into a BlockResult.
	var blockResult btcjson.GetBlockVerboseResult
	if err := unmarshalResult(res, &blockResult); err != nil {
		return nil, err
	}
	return &blockResult, nil
}

// GetBlockVerboseAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See GetBlockVerbose for the blocking version and more details.
func (c *Client) GetBlockVerboseAsync(ctx context.Context, blockHash *chainhash.Hash) FutureGetBlockVerboseResult {
	hash, err := hashParam(blockHash)
	if err != nil {
		return newFutureError(err)
	}
	return c.sendCmd(ctx, "getblock", hash, blockVerbosityTxIDs)
}

// GetBlockVerbose returns a data structure from the server with information
// about a block given its hash.
//
// See GetBlockVerboseTx to retrieve transaction data structures as well.
// See GetBlock to retrieve a raw block instead.
func (c *Client) GetBlockVerbose(ctx context.Context, blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseResult, error) {
	return c.GetBlockVerboseAsync(ctx, blockHash).Receive()
}

// FutureGetBlockVerboseTxResult is a future promise to deliver the result of a
// GetBlockVerboseTxResult RPC invocation (or an applicable error).
type FutureGetBlockVerboseTxResult chan *Response

// Receive waits for the response promised by the future and returns a verbose
// version of the block including detailed information about its transactions.
func (r FutureGetBlockVerboseTxResult) Receive() (*btcjson.GetBlockVerboseTxResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var blockResult btcjson.GetBlockVerboseTxResult
	if err := unmarshalResult(res, &blockResult); err != nil {
		return nil, err
	}
	return &blockResult, nil
}

// GetBlockVerboseTxAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See GetBlockVerboseTx or the blocking version and more details.
func (c *Client) GetBlockVerboseTxAsync(ctx context.Context, blockHash *chainhash.Hash) FutureGetBlockVerboseTxResult {
	hash, err := hashParam(blockHash)
	if err != nil {
		return newFutureError(err)
	}
	return c.sendCmd(ctx, "getblock", hash, blockVerbosityFullTx)
}

// GetBlockVerboseTx returns a data structure from the server with information
// about a block and its transactions given its hash.
//
// See GetBlockVerbose if only transaction hashes are preferred.
// See GetBlock to retrieve a raw block instead.
func (c *Client) GetBlockVerboseTx(ctx context.Context, blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error) {
	return c.GetBlockVerboseTxAsync(ctx, blockHash).Receive()
}
