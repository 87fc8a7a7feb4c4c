package rpcclient

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestReadCookieFile checks the parsing of cookie files.
func TestReadCookieFile(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		contents  string
		expUser   string
		expPass   string
		expErrStr string
	}{
		{
			name:     "bitcoind cookie",
			contents: "__cookie__:0123abcd",
			expUser:  "__cookie__",
			expPass:  "0123abcd",
		},
		{
			name:     "trailing newline",
			contents: "user:pass\n",
			expUser:  "user",
			expPass:  "pass",
		},
		{
			name:     "colon in password",
			contents: "user:pa:ss",
			expUser:  "user",
			expPass:  "pa:ss",
		},
		{
			name:      "no separator",
			contents:  "userpass",
			expErrStr: "malformed cookie file",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), ".cookie")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0600))

			user, pass, err := readCookieFile(path)
			if tc.expErrStr != "" {
				require.ErrorContains(t, err, tc.expErrStr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expUser, user)
			require.Equal(t, tc.expPass, pass)
		})
	}
}

// TestCookieRetrieverReload checks that a rewritten cookie file is picked up
// once the check interval has passed.
func TestCookieRetrieverReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".cookie")
	require.NoError(t, os.WriteFile(path, []byte("__cookie__:first"), 0600))

	retriever := newCookieRetriever(path)
	retriever.interval = 0

	_, pass, err := retriever.retrieve()
	require.NoError(t, err)
	require.Equal(t, "first", pass)

	// Rewrite the file as a restarted daemon would and make sure the
	// modification time differs even on coarse grained file systems.
	require.NoError(t, os.WriteFile(path, []byte("__cookie__:second"), 0600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	_, pass, err = retriever.retrieve()
	require.NoError(t, err)
	require.Equal(t, "second", pass)

	require.NoError(t, os.Remove(path))
	_, _, err = retriever.retrieve()
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestCookieAuth checks that calls authenticate with the cookie credentials.
func TestCookieAuth(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".cookie")
	require.NoError(t, os.WriteFile(path, []byte("__cookie__:s3cret\n"), 0600))

	d := resultDaemon(t, "0")
	client := newTestClient(t, d, func(cfg *ConnConfig) {
		cfg.User, cfg.Pass = "", ""
		cfg.CookiePath = path
	})

	_, err := client.GetBlockCount(context.Background())
	require.NoError(t, err)

	user, pass, ok := (&http.Request{Header: d.received()[0].header}).BasicAuth()
	require.True(t, ok)
	require.Equal(t, "__cookie__", user)
	require.Equal(t, "s3cret", pass)
}

// TestCookieMissing checks that an unreadable cookie fails the call without
// sending it.
func TestCookieMissing(t *testing.T) {
	t.Parallel()

	d := resultDaemon(t, "0")
	client := newTestClient(t, d, func(cfg *ConnConfig) {
		cfg.User, cfg.Pass = "", ""
		cfg.CookiePath = filepath.Join(t.TempDir(), "missing")
	})

	_, err := client.GetBlockCount(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Empty(t, d.received())
}
