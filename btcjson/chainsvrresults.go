// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcjson

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil"
)

// GetBlockHeaderVerboseResult models the data from the getblockheader command
// when the verbose flag is set.  When the verbose flag is not set,
// getblockheader returns a hex-encoded string.
type GetBlockHeaderVerboseResult struct {
	Hash          string  `json:"hash"`
	Confirmations int64   `json:"confirmations"`
	Height        int32   `json:"height"`
	Version       int32   `json:"version"`
	VersionHex    string  `json:"versionHex"`
	MerkleRoot    string  `json:"merkleroot"`
	Time          int64   `json:"time"`
	MedianTime    int64   `json:"mediantime"`
	Nonce         uint64  `json:"nonce"`
	Bits          string  `json:"bits"`
	Difficulty    float64 `json:"difficulty"`
	ChainWork     string  `json:"chainwork"`
	NTx           int64   `json:"nTx"`
	PreviousHash  string  `json:"previousblockhash,omitempty"`
	NextHash      string  `json:"nextblockhash,omitempty"`
}

// GetBlockVerboseResult models the data from the getblock command when the
// verbosity is 1.  Transactions are listed by their ids only.
type GetBlockVerboseResult struct {
	GetBlockHeaderVerboseResult

	StrippedSize int32    `json:"strippedsize"`
	Size         int32    `json:"size"`
	Weight       int32    `json:"weight"`
	Tx           []string `json:"tx,omitempty"`
}

// GetBlockVerboseTxResult models the data from the getblock command when the
// verbosity is 2.  Every transaction is fully decoded.
type GetBlockVerboseTxResult struct {
	GetBlockHeaderVerboseResult

	StrippedSize int32         `json:"strippedsize"`
	Size         int32         `json:"size"`
	Weight       int32         `json:"weight"`
	Tx           []TxRawResult `json:"tx,omitempty"`
}

// GetBlockStatsResult models the data from the getblockstats command.  The
// daemon only returns the requested subset of fields when stats are filtered,
// the remaining fields keep their zero value.
type GetBlockStatsResult struct {
	AverageFee         int64   `json:"avgfee"`
	AverageFeeRate     int64   `json:"avgfeerate"`
	AverageTxSize      int64   `json:"avgtxsize"`
	FeeratePercentiles []int64 `json:"feerate_percentiles"`
	Hash               string  `json:"blockhash"`
	Height             int64   `json:"height"`
	Ins                int64   `json:"ins"`
	MaxFee             int64   `json:"maxfee"`
	MaxFeeRate         int64   `json:"maxfeerate"`
	MaxTxSize          int64   `json:"maxtxsize"`
	MedianFee          int64   `json:"medianfee"`
	MedianTime         int64   `json:"mediantime"`
	MedianTxSize       int64   `json:"mediantxsize"`
	MinFee             int64   `json:"minfee"`
	MinFeeRate         int64   `json:"minfeerate"`
	MinTxSize          int64   `json:"mintxsize"`
	Outs               int64   `json:"outs"`
	SegWitTotalSize    int64   `json:"swtotal_size"`
	SegWitTotalWeight  int64   `json:"swtotal_weight"`
	SegWitTxs          int64   `json:"swtxs"`
	Subsidy            int64   `json:"subsidy"`
	Time               int64   `json:"time"`
	TotalOut           int64   `json:"total_out"`
	TotalSize          int64   `json:"total_size"`
	TotalWeight        int64   `json:"total_weight"`
	TotalFee           int64   `json:"totalfee"`
	Txs                int64   `json:"txs"`
	UTXOIncrease       int64   `json:"utxo_increase"`
	UTXOSizeIncrease   int64   `json:"utxo_size_inc"`
}

// GetBlockChainInfoResult models the data returned from the getblockchaininfo
// command.
type GetBlockChainInfoResult struct {
	Chain                string                     `json:"chain"`
	Blocks               int32                      `json:"blocks"`
	Headers              int32                      `json:"headers"`
	BestBlockHash        string                     `json:"bestblockhash"`
	Difficulty           float64                    `json:"difficulty"`
	MedianTime           int64                      `json:"mediantime"`
	VerificationProgress float64                    `json:"verificationprogress"`
	InitialBlockDownload bool                       `json:"initialblockdownload"`
	ChainWork            string                     `json:"chainwork"`
	SizeOnDisk           int64                      `json:"size_on_disk"`
	Pruned               bool                       `json:"pruned"`
	PruneHeight          int32                      `json:"pruneheight,omitempty"`
	SoftForks            map[string]json.RawMessage `json:"softforks,omitempty"`
	Warnings             json.RawMessage            `json:"warnings,omitempty"`
}

// Chain tip statuses reported by getchaintips.
const (
	ChainTipActive       = "active"
	ChainTipValidFork    = "valid-fork"
	ChainTipValidHeaders = "valid-headers"
	ChainTipHeadersOnly  = "headers-only"
	ChainTipInvalid      = "invalid"
)

// GetChainTipsResult models a single entry of the data returned from the
// getchaintips command.
type GetChainTipsResult struct {
	Height    int32  `json:"height"`
	Hash      string `json:"hash"`
	BranchLen int32  `json:"branchlen"`
	Status    string `json:"status"`
}

// GetMempoolInfoResult models the data returned from the getmempoolinfo
// command.  Fee values are expressed in BTC/kvB.
type GetMempoolInfoResult struct {
	Loaded           bool    `json:"loaded"`
	Size             int64   `json:"size"`
	Bytes            int64   `json:"bytes"`
	Usage            int64   `json:"usage"`
	TotalFee         float64 `json:"total_fee"`
	MaxMempool       int64   `json:"maxmempool"`
	MempoolMinFee    float64 `json:"mempoolminfee"`
	MinRelayTxFee    float64 `json:"minrelaytxfee"`
	UnbroadcastCount int64   `json:"unbroadcastcount"`
}

// MinFee returns the mempool minimum fee rate as an amount per kvB.
func (r *GetMempoolInfoResult) MinFee() (btcutil.Amount, error) {
	return btcutil.NewAmount(r.MempoolMinFee)
}

// MinRelayFee returns the minimum relay fee rate as an amount per kvB.
func (r *GetMempoolInfoResult) MinRelayFee() (btcutil.Amount, error) {
	return btcutil.NewAmount(r.MinRelayTxFee)
}

// GetMiningInfoResult models the data from the getmininginfo command.
type GetMiningInfoResult struct {
	Blocks             int64           `json:"blocks"`
	CurrentBlockWeight uint64          `json:"currentblockweight,omitempty"`
	CurrentBlockTx     uint64          `json:"currentblocktx,omitempty"`
	Difficulty         float64         `json:"difficulty"`
	NetworkHashPS      float64         `json:"networkhashps"`
	PooledTx           uint64          `json:"pooledtx"`
	Chain              string          `json:"chain"`
	Warnings           json.RawMessage `json:"warnings,omitempty"`
}

// LocalAddressesResult models the localaddresses data from the getnetworkinfo
// command.
type LocalAddressesResult struct {
	Address string  `json:"address"`
	Port    uint16  `json:"port"`
	Score   float64 `json:"score"`
}

// NetworksResult models the networks data from the getnetworkinfo command.
type NetworksResult struct {
	Name                      string `json:"name"`
	Limited                   bool   `json:"limited"`
	Reachable                 bool   `json:"reachable"`
	Proxy                     string `json:"proxy"`
	ProxyRandomizeCredentials bool   `json:"proxy_randomize_credentials"`
}

// GetNetworkInfoResult models the data returned from the getnetworkinfo
// command.
type GetNetworkInfoResult struct {
	Version            int32                  `json:"version"`
	SubVersion         string                 `json:"subversion"`
	ProtocolVersion    int32                  `json:"protocolversion"`
	LocalServices      string                 `json:"localservices"`
	LocalServicesNames []string               `json:"localservicesnames"`
	LocalRelay         bool                   `json:"localrelay"`
	TimeOffset         int64                  `json:"timeoffset"`
	Connections        int32                  `json:"connections"`
	ConnectionsIn      int32                  `json:"connections_in"`
	ConnectionsOut     int32                  `json:"connections_out"`
	NetworkActive      bool                   `json:"networkactive"`
	Networks           []NetworksResult       `json:"networks"`
	RelayFee           float64                `json:"relayfee"`
	IncrementalFee     float64                `json:"incrementalfee"`
	LocalAddresses     []LocalAddressesResult `json:"localaddresses"`
	Warnings           json.RawMessage        `json:"warnings,omitempty"`
}

// ScriptPubKeyResult models the scriptPubKey data of a tx script.  It is
// defined separately since it is used by multiple commands.
type ScriptPubKeyResult struct {
	Asm     string `json:"asm"`
	Desc    string `json:"desc,omitempty"`
	Hex     string `json:"hex,omitempty"`
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
}

// ScriptSig models a signature script.  It is defined separately since it only
// applies to non-coinbase.  Therefore the field in the Vin structure needs
// to be a pointer.
type ScriptSig struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

// Vin models parts of the tx data.  It is defined separately since
// getrawtransaction, decoderawtransaction and getblock use the same
// structure.
type Vin struct {
	Coinbase  string     `json:"coinbase"`
	Txid      string     `json:"txid"`
	Vout      uint32     `json:"vout"`
	ScriptSig *ScriptSig `json:"scriptSig"`
	Witness   []string   `json:"txinwitness"`
	Sequence  uint32     `json:"sequence"`
}

// IsCoinBase returns a bool to show if a Vin is a Coinbase one or not.
func (v *Vin) IsCoinBase() bool {
	return len(v.Coinbase) > 0
}

// HasWitness returns a bool to show if a Vin has any witness data associated
// with it or not.
func (v *Vin) HasWitness() bool {
	return len(v.Witness) > 0
}

// MarshalJSON provides a custom Marshal method for Vin.
func (v *Vin) MarshalJSON() ([]byte, error) {
	if v.IsCoinBase() {
		coinbaseStruct := struct {
			Coinbase string   `json:"coinbase"`
			Witness  []string `json:"txinwitness,omitempty"`
			Sequence uint32   `json:"sequence"`
		}{
			Coinbase: v.Coinbase,
			Witness:  v.Witness,
			Sequence: v.Sequence,
		}
		return json.Marshal(coinbaseStruct)
	}

	txStruct := struct {
		Txid      string     `json:"txid"`
		Vout      uint32     `json:"vout"`
		ScriptSig *ScriptSig `json:"scriptSig"`
		Witness   []string   `json:"txinwitness,omitempty"`
		Sequence  uint32     `json:"sequence"`
	}{
		Txid:      v.Txid,
		Vout:      v.Vout,
		ScriptSig: v.ScriptSig,
		Witness:   v.Witness,
		Sequence:  v.Sequence,
	}
	return json.Marshal(txStruct)
}

// Vout models parts of the tx data.  It is defined separately since both
// getrawtransaction and decoderawtransaction use the same structure.
type Vout struct {
	Value        float64            `json:"value"`
	N            uint32             `json:"n"`
	ScriptPubKey ScriptPubKeyResult `json:"scriptPubKey"`
}

// Amount returns the output value as an amount.
func (v *Vout) Amount() (btcutil.Amount, error) {
	return btcutil.NewAmount(v.Value)
}

// TxRawResult models the data from the getrawtransaction command.
type TxRawResult struct {
	Hex           string  `json:"hex"`
	Txid          string  `json:"txid"`
	Hash          string  `json:"hash,omitempty"`
	Size          int32   `json:"size,omitempty"`
	Vsize         int32   `json:"vsize,omitempty"`
	Weight        int32   `json:"weight,omitempty"`
	Version       uint32  `json:"version"`
	LockTime      uint32  `json:"locktime"`
	Vin           []Vin   `json:"vin"`
	Vout          []Vout  `json:"vout"`
	Fee           float64 `json:"fee,omitempty"`
	BlockHash     string  `json:"blockhash,omitempty"`
	Confirmations uint64  `json:"confirmations,omitempty"`
	Time          int64   `json:"time,omitempty"`
	Blocktime     int64   `json:"blocktime,omitempty"`
}
