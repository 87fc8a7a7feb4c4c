package rpcclient

import (
	"context"
	"testing"

	"github.com/bibajz/bitcoinrpc/btcjson"
	"github.com/stretchr/testify/require"
)

const testPSBT = "cHNidP8BAHECAAAAAQ=="

// TestWalletProcessPSBTParams checks the trimming and filling of the optional
// walletprocesspsbt arguments.
func TestWalletProcessPSBTParams(t *testing.T) {
	t.Parallel()

	yes, no := true, false

	testCases := []struct {
		name        string
		sign        *bool
		sighashType btcjson.SigHashType
		bip32Derivs *bool
		want        []interface{}
	}{
		{
			name: "no options",
			want: []interface{}{testPSBT},
		},
		{
			name: "sign only",
			sign: &no,
			want: []interface{}{testPSBT, false},
		},
		{
			name:        "sighash fills sign",
			sighashType: btcjson.SigHashAllAnyoneCanPay,
			want: []interface{}{testPSBT, true,
				btcjson.SigHashAllAnyoneCanPay},
		},
		{
			name:        "bip32 derivs fills the gaps",
			bip32Derivs: &no,
			want: []interface{}{testPSBT, true, btcjson.SigHashDefault,
				false},
		},
		{
			name:        "all set",
			sign:        &no,
			sighashType: btcjson.SigHashSingle,
			bip32Derivs: &yes,
			want: []interface{}{testPSBT, false, btcjson.SigHashSingle,
				true},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := walletProcessPSBTParams(testPSBT, tc.sign,
				tc.sighashType, tc.bip32Derivs)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestPSBTRequests checks the method and params sent by the psbt wrappers.
func TestPSBTRequests(t *testing.T) {
	t.Parallel()

	extract := false

	testCases := []struct {
		name      string
		call      func(ctx context.Context, c *Client) error
		result    string
		expMethod string
		expParams string
	}{
		{
			name: "combinepsbt sends a single array",
			call: func(ctx context.Context, c *Client) error {
				combined, err := c.CombinePSBT(ctx,
					[]string{testPSBT, testPSBT})
				if err == nil {
					require.Equal(t, testPSBT, combined)
				}
				return err
			},
			result:    `"` + testPSBT + `"`,
			expMethod: "combinepsbt",
			expParams: `[["` + testPSBT + `","` + testPSBT + `"]]`,
		},
		{
			name: "joinpsbts",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.JoinPSBTs(ctx, []string{testPSBT})
				return err
			},
			result:    `"` + testPSBT + `"`,
			expMethod: "joinpsbts",
			expParams: `[["` + testPSBT + `"]]`,
		},
		{
			name: "analyzepsbt",
			call: func(ctx context.Context, c *Client) error {
				res, err := c.AnalyzePSBT(ctx, testPSBT)
				if err == nil {
					require.Equal(t, "updater", res.Next)
					require.Len(t, res.Inputs, 1)
					require.NotNil(t, res.Inputs[0].Missing)
					require.Nil(t, res.Fee)
				}
				return err
			},
			result: `{"inputs":[{"has_utxo":false,"is_final":false,` +
				`"next":"updater","missing":{"pubkeys":["aa"]}}],` +
				`"next":"updater"}`,
			expMethod: "analyzepsbt",
			expParams: `["` + testPSBT + `"]`,
		},
		{
			name: "decodepsbt",
			call: func(ctx context.Context, c *Client) error {
				res, err := c.DecodePSBT(ctx, testPSBT)
				if err == nil {
					require.Equal(t, "abcd", res.Tx.Txid)
					require.NotNil(t, res.Fee)
					require.InDelta(t, 0.0001, *res.Fee, 1e-9)
				}
				return err
			},
			result: `{"tx":{"txid":"abcd","vin":[],"vout":[]},` +
				`"unknown":{},"inputs":[{}],"outputs":[{}],"fee":0.0001}`,
			expMethod: "decodepsbt",
			expParams: `["` + testPSBT + `"]`,
		},
		{
			name: "finalizepsbt without extract",
			call: func(ctx context.Context, c *Client) error {
				res, err := c.FinalizePSBT(ctx, testPSBT, nil)
				if err == nil {
					require.True(t, res.Complete)
					require.Equal(t, "00", res.Hex)
				}
				return err
			},
			result:    `{"hex":"00","complete":true}`,
			expMethod: "finalizepsbt",
			expParams: `["` + testPSBT + `"]`,
		},
		{
			name: "finalizepsbt with extract",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.FinalizePSBT(ctx, testPSBT, &extract)
				return err
			},
			result:    `{"psbt":"` + testPSBT + `","complete":false}`,
			expMethod: "finalizepsbt",
			expParams: `["` + testPSBT + `",false]`,
		},
		{
			name: "utxoupdatepsbt with descriptors",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.UtxoUpdatePSBT(ctx, testPSBT,
					[]btcjson.PSBTDescriptor{
						{Desc: "addr(bcrt1qxyz)"},
						{Desc: "wpkh(xpub/0/*)", Range: 100},
					})
				return err
			},
			result:    `"` + testPSBT + `"`,
			expMethod: "utxoupdatepsbt",
			expParams: `["` + testPSBT + `",["addr(bcrt1qxyz)",` +
				`{"desc":"wpkh(xpub/0/*)","range":100}]]`,
		},
		{
			name: "utxoupdatepsbt without descriptors",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.UtxoUpdatePSBT(ctx, testPSBT, nil)
				return err
			},
			result:    `"` + testPSBT + `"`,
			expMethod: "utxoupdatepsbt",
			expParams: `["` + testPSBT + `"]`,
		},
		{
			name: "walletprocesspsbt",
			call: func(ctx context.Context, c *Client) error {
				res, err := c.WalletProcessPSBT(ctx, testPSBT, nil,
					btcjson.SigHashAll, nil)
				if err == nil {
					require.False(t, res.Complete)
					require.Equal(t, testPSBT, res.Psbt)
				}
				return err
			},
			result:    `{"psbt":"` + testPSBT + `","complete":false}`,
			expMethod: "walletprocesspsbt",
			expParams: `["` + testPSBT + `",true,"ALL"]`,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := resultDaemon(t, tc.result)
			client := newTestClient(t, d)

			require.NoError(t, tc.call(context.Background(), client))

			reqs := d.received()
			require.Len(t, reqs, 1)
			require.Equal(t, tc.expMethod, reqs[0].Method)
			require.JSONEq(t, tc.expParams, paramsOf(t, reqs[0]))
		})
	}
}

// TestPSBTEmptyList checks that empty psbt lists fail before any request.
func TestPSBTEmptyList(t *testing.T) {
	t.Parallel()

	d := resultDaemon(t, `""`)
	client := newTestClient(t, d)
	ctx := context.Background()

	_, err := client.CombinePSBT(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidParam)

	_, err = client.JoinPSBTs(ctx, []string{})
	require.ErrorIs(t, err, ErrInvalidParam)

	require.Empty(t, d.received())
}
