package rpcclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGetNetworkHashPS checks that the height is only sent when given.
func TestGetNetworkHashPS(t *testing.T) {
	t.Parallel()

	d := resultDaemon(t, "4.5e+20")
	client := newTestClient(t, d)
	ctx := context.Background()

	hashPS, err := client.GetNetworkHashPS(ctx, 120, nil)
	require.NoError(t, err)
	require.InDelta(t, 4.5e20, hashPS, 1e6)

	height := int64(800_000)
	_, err = client.GetNetworkHashPS(ctx, -1, &height)
	require.NoError(t, err)

	reqs := d.received()
	require.Len(t, reqs, 2)
	require.Equal(t, "getnetworkhashps", reqs[0].Method)
	require.JSONEq(t, `[120]`, paramsOf(t, reqs[0]))
	require.JSONEq(t, `[-1,800000]`, paramsOf(t, reqs[1]))
}

// TestNodeInfoRequests checks the argumentless info wrappers.
func TestNodeInfoRequests(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		call      func(ctx context.Context, c *Client) error
		result    string
		expMethod string
	}{
		{
			name: "getmininginfo",
			call: func(ctx context.Context, c *Client) error {
				info, err := c.GetMiningInfo(ctx)
				if err == nil {
					require.Equal(t, int64(101), info.Blocks)
					require.Equal(t, "regtest", info.Chain)
				}
				return err
			},
			result: `{"blocks":101,"difficulty":4.6e-10,` +
				`"networkhashps":12.5,"pooledtx":0,"chain":"regtest",` +
				`"warnings":[]}`,
			expMethod: "getmininginfo",
		},
		{
			name: "getconnectioncount",
			call: func(ctx context.Context, c *Client) error {
				count, err := c.GetConnectionCount(ctx)
				if err == nil {
					require.Equal(t, int64(8), count)
				}
				return err
			},
			result:    "8",
			expMethod: "getconnectioncount",
		},
		{
			name: "getnetworkinfo",
			call: func(ctx context.Context, c *Client) error {
				info, err := c.GetNetworkInfo(ctx)
				if err == nil {
					require.Equal(t, "/Satoshi:28.1.0/", info.SubVersion)
					require.Len(t, info.Networks, 1)
				}
				return err
			},
			result: `{"version":280100,"subversion":"/Satoshi:28.1.0/",` +
				`"protocolversion":70016,"networks":[{"name":"ipv4",` +
				`"limited":false,"reachable":true,"proxy":"",` +
				`"proxy_randomize_credentials":false}],"warnings":""}`,
			expMethod: "getnetworkinfo",
		},
		{
			name: "getmempoolinfo",
			call: func(ctx context.Context, c *Client) error {
				info, err := c.GetMempoolInfo(ctx)
				if err != nil {
					return err
				}
				require.True(t, info.Loaded)

				minFee, err := info.MinFee()
				require.NoError(t, err)
				require.Equal(t, int64(1000), int64(minFee))

				relayFee, err := info.MinRelayFee()
				require.NoError(t, err)
				require.Equal(t, int64(1000), int64(relayFee))
				return nil
			},
			result: `{"loaded":true,"size":3,"bytes":600,"usage":4000,` +
				`"total_fee":0.0003,"maxmempool":300000000,` +
				`"mempoolminfee":0.00001,"minrelaytxfee":0.00001,` +
				`"unbroadcastcount":0}`,
			expMethod: "getmempoolinfo",
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
			require.JSONEq(t, `[]`, paramsOf(t, reqs[0]))
		})
	}
}
