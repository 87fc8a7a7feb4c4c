// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"context"
	"fmt"

	"github.com/bibajz/bitcoinrpc/btcjson"
)

// receivePSBT decodes a result holding a single base64 encoded PSBT.
func receivePSBT(f chan *Response) (string, error) {
	res, err := ReceiveFuture(f)
	if err != nil {
		return "", err
	}

	var psbt string
	if err := unmarshalResult(res, &psbt); err != nil {
		return "", err
	}
	return psbt, nil
}

// psbtListParam checks that psbts holds at least one transaction.
func psbtListParam(method string, psbts []string) error {
	if len(psbts) == 0 {
		return fmt.Errorf("%w: %s needs at least one psbt",
			ErrInvalidParam, method)
	}
	return nil
}

// FutureAnalyzePSBTResult is a future promise to deliver the result of an
// AnalyzePSBTAsync RPC invocation (or an applicable error).
type FutureAnalyzePSBTResult chan *Response

// Receive waits for the response promised by the future and returns the
// analysis of the PSBT.
func (r FutureAnalyzePSBTResult) Receive() (*btcjson.AnalyzePSBTResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var analysis btcjson.AnalyzePSBTResult
	if err := unmarshalResult(res, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// AnalyzePSBTAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See AnalyzePSBT for the blocking version and more details.
func (c *Client) AnalyzePSBTAsync(ctx context.Context, psbt string) FutureAnalyzePSBTResult {
	return c.sendCmd(ctx, "analyzepsbt", psbt)
}

// AnalyzePSBT analyzes and provides information about the current status of a
// base64 encoded PSBT and its inputs.
func (c *Client) AnalyzePSBT(ctx context.Context, psbt string) (*btcjson.AnalyzePSBTResult, error) {
	return c.AnalyzePSBTAsync(ctx, psbt).Receive()
}

// FutureCombinePSBTResult is a future promise to deliver the result of a
// CombinePSBTAsync RPC invocation (or an applicable error).
type FutureCombinePSBTResult chan *Response

// Receive waits for the response promised by the future and returns the
// combined PSBT.
func (r FutureCombinePSBTResult) Receive() (string, error) {
	return receivePSBT(r)
}

// CombinePSBTAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See CombinePSBT for the blocking version and more details.
func (c *Client) CombinePSBTAsync(ctx context.Context, psbts []string) FutureCombinePSBTResult {
	if err := psbtListParam("combinepsbt", psbts); err != nil {
		return newFutureError(err)
	}

	// The daemon expects the transactions as a single array parameter.
	return c.sendCmd(ctx, "combinepsbt", psbts)
}

// CombinePSBT combines multiple PSBTs of the same transaction into one.
func (c *Client) CombinePSBT(ctx context.Context, psbts []string) (string, error) {
	return c.CombinePSBTAsync(ctx, psbts).Receive()
}

// FutureDecodePSBTResult is a future promise to deliver the result of a
// DecodePSBTAsync RPC invocation (or an applicable error).
type FutureDecodePSBTResult chan *Response

// Receive waits for the response promised by the future and returns the
// decoded PSBT.
func (r FutureDecodePSBTResult) Receive() (*btcjson.DecodePSBTResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var decoded btcjson.DecodePSBTResult
	if err := unmarshalResult(res, &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

// DecodePSBTAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See DecodePSBT for the blocking version and more details.
func (c *Client) DecodePSBTAsync(ctx context.Context, psbt string) FutureDecodePSBTResult {
	return c.sendCmd(ctx, "decodepsbt", psbt)
}

// DecodePSBT returns a data structure representing the serialized, base64
// encoded PSBT.
func (c *Client) DecodePSBT(ctx context.Context, psbt string) (*btcjson.DecodePSBTResult, error) {
	return c.DecodePSBTAsync(ctx, psbt).Receive()
}

// FutureFinalizePSBTResult is a future promise to deliver the result of a
// FinalizePSBTAsync RPC invocation (or an applicable error).
type FutureFinalizePSBTResult chan *Response

// Receive waits for the response promised by the future and returns the
// finalized PSBT or the extracted transaction.
func (r FutureFinalizePSBTResult) Receive() (*btcjson.FinalizePSBTResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var finalized btcjson.FinalizePSBTResult
	if err := unmarshalResult(res, &finalized); err != nil {
		return nil, err
	}
	return &finalized, nil
}

// FinalizePSBTAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See FinalizePSBT for the blocking version and more details.
func (c *Client) FinalizePSBTAsync(ctx context.Context, psbt string, extract *bool) FutureFinalizePSBTResult {
	if extract == nil {
		return c.sendCmd(ctx, "finalizepsbt", psbt)
	}
	return c.sendCmd(ctx, "finalizepsbt", psbt, *extract)
}

// FinalizePSBT finalizes the inputs of a PSBT.  If the transaction is fully
// signed and extract is nil or true, the network serialized transaction is
// returned in the Hex field of the result, otherwise the updated PSBT is
// returned in the Psbt field.
func (c *Client) FinalizePSBT(ctx context.Context, psbt string, extract *bool) (*btcjson.FinalizePSBTResult, error) {
	return c.FinalizePSBTAsync(ctx, psbt, extract).Receive()
}

// FutureJoinPSBTsResult is a future promise to deliver the result of a
// JoinPSBTsAsync RPC invocation (or an applicable error).
type FutureJoinPSBTsResult chan *Response

// Receive waits for the response promised by the future and returns the
// joined PSBT.
func (r FutureJoinPSBTsResult) Receive() (string, error) {
	return receivePSBT(r)
}

// JoinPSBTsAsync returns an instance of a type that can be used to get the
// result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See JoinPSBTs for the blocking version and more details.
func (c *Client) JoinPSBTsAsync(ctx context.Context, psbts []string) FutureJoinPSBTsResult {
	if err := psbtListParam("joinpsbts", psbts); err != nil {
		return newFutureError(err)
	}

	// The daemon expects the transactions as a single array parameter.
	return c.sendCmd(ctx, "joinpsbts", psbts)
}

// JoinPSBTs joins the inputs and outputs of distinct PSBTs into a single one.
func (c *Client) JoinPSBTs(ctx context.Context, psbts []string) (string, error) {
	return c.JoinPSBTsAsync(ctx, psbts).Receive()
}

// FutureUtxoUpdatePSBTResult is a future promise to deliver the result of a
// UtxoUpdatePSBTAsync RPC invocation (or an applicable error).
type FutureUtxoUpdatePSBTResult chan *Response

// Receive waits for the response promised by the future and returns the
// updated PSBT.
func (r FutureUtxoUpdatePSBTResult) Receive() (string, error) {
	return receivePSBT(r)
}

// UtxoUpdatePSBTAsync returns an instance of a type that can be used to get
// the result of the RPC at some future time by invoking the Receive function on
// the returned instance.
//
// See UtxoUpdatePSBT for the blocking version and more details.
func (c *Client) UtxoUpdatePSBTAsync(ctx context.Context, psbt string, descriptors []btcjson.PSBTDescriptor) FutureUtxoUpdatePSBTResult {
	if descriptors == nil {
		return c.sendCmd(ctx, "utxoupdatepsbt", psbt)
	}
	return c.sendCmd(ctx, "utxoupdatepsbt", psbt, descriptors)
}

// UtxoUpdatePSBT updates a PSBT with the UTXOs found in the UTXO set, the
// mempool or the given output descriptors.  A nil descriptors slice leaves
// the parameter out.
func (c *Client) UtxoUpdatePSBT(ctx context.Context, psbt string, descriptors []btcjson.PSBTDescriptor) (string, error) {
	return c.UtxoUpdatePSBTAsync(ctx, psbt, descriptors).Receive()
}

// FutureWalletProcessPSBTResult is a future promise to deliver the result of
// a WalletProcessPSBTAsync RPC invocation (or an applicable error).
type FutureWalletProcessPSBTResult chan *Response

// Receive waits for the response promised by the future and returns the
// processed PSBT.
func (r FutureWalletProcessPSBTResult) Receive() (*btcjson.WalletProcessPSBTResult, error) {
	res, err := ReceiveFuture(r)
	if err != nil {
		return nil, err
	}

	var processed btcjson.WalletProcessPSBTResult
	if err := unmarshalResult(res, &processed); err != nil {
		return nil, err
	}
	return &processed, nil
}

// walletProcessPSBTParams builds the params of walletprocesspsbt.  Unset
// trailing options are left out, unset options followed by a set one are
// filled with the daemon defaults.
func walletProcessPSBTParams(psbt string, sign *bool,
	sighashType btcjson.SigHashType, bip32Derivs *bool) []interface{} {

	params := []interface{}{psbt}
	switch {
	case bip32Derivs != nil:
		params = append(params, boolOrDefault(sign, true),
			sigHashOrDefault(sighashType), *bip32Derivs)

	case sighashType != "":
		params = append(params, boolOrDefault(sign, true), sighashType)

	case sign != nil:
		params = append(params, *sign)
	}
	return params
}

func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func sigHashOrDefault(sighashType btcjson.SigHashType) btcjson.SigHashType {
	if sighashType == "" {
		return btcjson.SigHashDefault
	}
	return sighashType
}

// WalletProcessPSBTAsync returns an instance of a type that can be used to
// get the result of the RPC at some future time by invoking the Receive
// function on the returned instance.
//
// See WalletProcessPSBT for the blocking version and more details.
func (c *Client) WalletProcessPSBTAsync(ctx context.Context, psbt string, sign *bool,
	sighashType btcjson.SigHashType, bip32Derivs *bool) FutureWalletProcessPSBTResult {

	params := walletProcessPSBTParams(psbt, sign, sighashType, bip32Derivs)
	return c.sendCmd(ctx, "walletprocesspsbt", params...)
}

// WalletProcessPSBT updates a PSBT with input information from the wallet of
// the daemon and optionally signs it.  Nil options and an empty sighashType
// keep the daemon defaults.  The client must point at a wallet endpoint when
// several wallets are loaded, see ConnConfig.Wallet.
func (c *Client) WalletProcessPSBT(ctx context.Context, psbt string, sign *bool,
	sighashType btcjson.SigHashType, bip32Derivs *bool) (*btcjson.WalletProcessPSBTResult, error) {

	return c.WalletProcessPSBTAsync(ctx, psbt, sign, sighashType, bip32Derivs).Receive()
}
