// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcjson

import "encoding/json"

// AnalyzePSBTInputMissing models the missing data of a single input from the
// analyzepsbt command.
type AnalyzePSBTInputMissing struct {
	Pubkeys       []string `json:"pubkeys,omitempty"`
	Signatures    []string `json:"signatures,omitempty"`
	RedeemScript  string   `json:"redeemscript,omitempty"`
	WitnessScript string   `json:"witnessscript,omitempty"`
}

// AnalyzePSBTInput models a single input of the data returned from the
// analyzepsbt command.
type AnalyzePSBTInput struct {
	HasUTXO bool                     `json:"has_utxo"`
	IsFinal bool                     `json:"is_final"`
	Missing *AnalyzePSBTInputMissing `json:"missing,omitempty"`
	Next    string                   `json:"next,omitempty"`
}

// AnalyzePSBTResult models the data returned from the analyzepsbt command.
// The fee related members are only present once all inputs carry their UTXO.
type AnalyzePSBTResult struct {
	Inputs           []AnalyzePSBTInput `json:"inputs"`
	EstimatedVSize   *float64           `json:"estimated_vsize,omitempty"`
	EstimatedFeeRate *float64           `json:"estimated_feerate,omitempty"`
	Fee              *float64           `json:"fee,omitempty"`
	Next             string             `json:"next"`
	Error            string             `json:"error,omitempty"`
}

// DecodePSBTResult models the data returned from the decodepsbt command.  The
// per input and per output maps vary a lot between daemon versions and are
// kept undecoded.
type DecodePSBTResult struct {
	Tx      TxRawResult                  `json:"tx"`
	Global  []json.RawMessage            `json:"global_xpubs,omitempty"`
	Version uint32                       `json:"psbt_version"`
	Unknown map[string]string            `json:"unknown"`
	Inputs  []map[string]json.RawMessage `json:"inputs"`
	Outputs []map[string]json.RawMessage `json:"outputs"`
	Fee     *float64                     `json:"fee,omitempty"`
}

// FinalizePSBTResult models the data returned from the finalizepsbt command.
// Psbt is set when the transaction was not extracted, Hex when it was.
type FinalizePSBTResult struct {
	Psbt     string `json:"psbt,omitempty"`
	Hex      string `json:"hex,omitempty"`
	Complete bool   `json:"complete"`
}

// WalletProcessPSBTResult models the data returned from the walletprocesspsbt
// command.
type WalletProcessPSBTResult struct {
	Psbt     string `json:"psbt"`
	Complete bool   `json:"complete"`
	Hex      string `json:"hex,omitempty"`
}

// SigHashType enumerates the available signature hashing types that the
// walletprocesspsbt command accepts.
type SigHashType string

// Constants used to indicate the signature hash type for walletprocesspsbt.
const (
	// SigHashDefault is the taproot default signature hash type.
	SigHashDefault SigHashType = "DEFAULT"

	// SigHashAll indicates ALL of the outputs should be signed.
	SigHashAll SigHashType = "ALL"

	// SigHashNone indicates NONE of the outputs should be signed.  This
	// can be thought of as specifying the signer does not care where the
	// bitcoins go.
	SigHashNone SigHashType = "NONE"

	// SigHashSingle indicates that a SINGLE output should be signed.  This
	// can be thought of specifying the signer only cares about where ONE of
	// the outputs goes, but not any of the others.
	SigHashSingle SigHashType = "SINGLE"

	// SigHashAllAnyoneCanPay indicates that signer does not care where the
	// other inputs to the transaction come from, so it allows other people
	// to add inputs.  In addition, it uses the SigHashAll signing method
	// for outputs.
	SigHashAllAnyoneCanPay SigHashType = "ALL|ANYONECANPAY"

	// SigHashNoneAnyoneCanPay indicates that signer does not care where the
	// other inputs to the transaction come from, so it allows other people
	// to add inputs.  In addition, it uses the SigHashNone signing method
	// for outputs.
	SigHashNoneAnyoneCanPay SigHashType = "NONE|ANYONECANPAY"

	// SigHashSingleAnyoneCanPay indicates that signer does not care where
	// the other inputs to the transaction come from, so it allows other
	// people to add inputs.  In addition, it uses the SigHashSingle signing
	// method for outputs.
	SigHashSingleAnyoneCanPay SigHashType = "SINGLE|ANYONECANPAY"
)

// PSBTDescriptor is a single entry of the descriptors parameter of the
// utxoupdatepsbt command.  A bare descriptor string is also accepted by the
// daemon; use the Desc field alone for that form.
type PSBTDescriptor struct {
	Desc  string      `json:"desc"`
	Range interface{} `json:"range,omitempty"`
}

// MarshalJSON marshals the descriptor as a plain string when no range is set,
// and as an object otherwise.
func (d PSBTDescriptor) MarshalJSON() ([]byte, error) {
	if d.Range == nil {
		return json.Marshal(d.Desc)
	}

	type Alias PSBTDescriptor
	return json.Marshal(Alias(d))
}
