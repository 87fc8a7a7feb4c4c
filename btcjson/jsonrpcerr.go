// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcjson

// Protocol level errors from the JSON-RPC 2.0 standard.  bitcoind returns
// these when the envelope itself is wrong, for example an unknown method.
var (
	ErrRPCInvalidRequest = &RPCError{Code: -32600, Message: "Invalid request"}
	ErrRPCMethodNotFound = &RPCError{Code: -32601, Message: "Method not found"}
	ErrRPCInvalidParams  = &RPCError{Code: -32602, Message: "Invalid parameters"}
	ErrRPCInternal       = &RPCError{Code: -32603, Message: "Internal error"}
	ErrRPCParse          = &RPCError{Code: -32700, Message: "Parse error"}
)

// Application error codes of Bitcoin Core, see src/rpc/protocol.h.
const (
	// ErrRPCMisc is the catch all for exceptions raised while handling a
	// command, including pruned block data.
	ErrRPCMisc RPCErrorCode = -1

	// ErrRPCForbiddenBySafeMode is no longer produced by current releases.
	ErrRPCForbiddenBySafeMode RPCErrorCode = -2

	// ErrRPCType means a parameter had the wrong JSON type.
	ErrRPCType RPCErrorCode = -3

	// ErrRPCInvalidAddressOrKey covers invalid addresses and keys as well as
	// blocks and transactions the node does not know about.
	ErrRPCInvalidAddressOrKey RPCErrorCode = -5

	ErrRPCOutOfMemory RPCErrorCode = -7

	// ErrRPCInvalidParameter means a parameter was out of range, missing or
	// given twice.
	ErrRPCInvalidParameter RPCErrorCode = -8

	ErrRPCDatabase RPCErrorCode = -20

	// ErrRPCDeserialization means hex or base64 input (a transaction, block
	// or PSBT) failed to decode.
	ErrRPCDeserialization RPCErrorCode = -22

	ErrRPCVerify               RPCErrorCode = -25
	ErrRPCVerifyRejected       RPCErrorCode = -26
	ErrRPCVerifyAlreadyInChain RPCErrorCode = -27

	// ErrRPCInWarmup is returned for every call while the node is still
	// loading its block index.
	ErrRPCInWarmup RPCErrorCode = -28

	ErrRPCMethodDeprecated RPCErrorCode = -32
)

// Node and network error codes.
const (
	ErrRPCClientNotConnected      RPCErrorCode = -9
	ErrRPCClientInInitialDownload RPCErrorCode = -10
	ErrRPCClientNodeAlreadyAdded  RPCErrorCode = -23
	ErrRPCClientNodeNotAdded      RPCErrorCode = -24
	ErrRPCClientNodeNotConnected  RPCErrorCode = -29
	ErrRPCClientInvalidIPOrSubnet RPCErrorCode = -30
	ErrRPCClientP2PDisabled       RPCErrorCode = -31
	ErrRPCClientMempoolDisabled   RPCErrorCode = -33
)

// Wallet error codes.  These only show up for calls sent to a wallet
// endpoint, see ConnConfig.Wallet in package rpcclient.
const (
	ErrRPCWallet                    RPCErrorCode = -4
	ErrRPCWalletInsufficientFunds   RPCErrorCode = -6
	ErrRPCWalletInvalidLabelName    RPCErrorCode = -11
	ErrRPCWalletKeypoolRanOut       RPCErrorCode = -12
	ErrRPCWalletUnlockNeeded        RPCErrorCode = -13
	ErrRPCWalletPassphraseIncorrect RPCErrorCode = -14
	ErrRPCWalletWrongEncState       RPCErrorCode = -15
	ErrRPCWalletEncryptionFailed    RPCErrorCode = -16
	ErrRPCWalletAlreadyUnlocked     RPCErrorCode = -17

	// ErrRPCWalletNotFound means the named wallet is not loaded.
	ErrRPCWalletNotFound RPCErrorCode = -18

	// ErrRPCWalletNotSpecified means several wallets are loaded and the call
	// did not name one.
	ErrRPCWalletNotSpecified RPCErrorCode = -19
)

// Aliases named after what the wrappers in rpcclient most often run into.
const (
	ErrRPCBlockNotFound    = ErrRPCInvalidAddressOrKey
	ErrRPCNoTxInfo         = ErrRPCInvalidAddressOrKey
	ErrRPCOutOfRange       = ErrRPCInvalidParameter
	ErrRPCDecodeHexString  = ErrRPCDeserialization
	ErrRPCTxError          = ErrRPCVerify
	ErrRPCTxRejected       = ErrRPCVerifyRejected
	ErrRPCTxAlreadyInChain = ErrRPCVerifyAlreadyInChain
)
