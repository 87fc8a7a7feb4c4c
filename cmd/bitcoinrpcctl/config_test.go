package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	flags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
)

// testArgs prepends a config file path which does not exist so that the
// configuration of the user running the tests is never read.
func testArgs(t *testing.T, args ...string) []string {
	t.Helper()

	missing := filepath.Join(t.TempDir(), "missing.conf")
	return append([]string{"-C", missing}, args...)
}

func TestNormalizeAddress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		addr string
		port string
		want string
	}{
		{addr: "localhost", port: "8332", want: "localhost:8332"},
		{addr: "localhost:1234", port: "8332", want: "localhost:1234"},
		{addr: "10.0.0.1", port: "18443", want: "10.0.0.1:18443"},
		{addr: "::1", port: "38332", want: "[::1]:38332"},
		{addr: "[::1]:1", port: "38332", want: "[::1]:1"},
		{addr: "https://node.example", port: "8332", want: "https://node.example"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, normalizeAddress(tc.addr, tc.port),
			tc.addr)
	}
}

func TestLoadConfigNetworks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		flag      string
		expServer string
		expCookie string
	}{
		{flag: "", expServer: "localhost:8332", expCookie: ".cookie"},
		{flag: "--testnet", expServer: "localhost:18332", expCookie: "testnet3/.cookie"},
		{flag: "--testnet4", expServer: "localhost:48332", expCookie: "testnet4/.cookie"},
		{flag: "--regtest", expServer: "localhost:18443", expCookie: "regtest/.cookie"},
		{flag: "--signet", expServer: "localhost:38332", expCookie: "signet/.cookie"},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.flag, func(t *testing.T) {
			t.Parallel()

			dataDir := t.TempDir()
			args := []string{"--datadir", dataDir}
			if tc.flag != "" {
				args = append(args, tc.flag)
			}
			args = append(args, "getblockcount")

			cfg, remaining, err := loadConfig(testArgs(t, args...))
			require.NoError(t, err)
			require.Equal(t, []string{"getblockcount"}, remaining)
			require.Equal(t, tc.expServer, cfg.RPCServer)
			require.Equal(t, filepath.Join(dataDir,
				filepath.FromSlash(tc.expCookie)), cfg.RPCCookie)
		})
	}
}

func TestLoadConfigArgsAfterCommand(t *testing.T) {
	t.Parallel()

	cfg, remaining, err := loadConfig(testArgs(t, "-u", "alice", "-P",
		"secret", "getnetworkhashps", "-1", "--regtest"))
	require.NoError(t, err)
	require.Equal(t, []string{"getnetworkhashps", "-1", "--regtest"},
		remaining)
	require.False(t, cfg.RegTest)
	require.Empty(t, cfg.RPCCookie)
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	confFile := filepath.Join(t.TempDir(), "bitcoinrpcctl.conf")
	contents := "rpcuser=alice\nrpcpass=secret\nrpcserver=10.0.0.1\n" +
		"regtest=1\n"
	require.NoError(t, os.WriteFile(confFile, []byte(contents), 0600))

	cfg, _, err := loadConfig([]string{"-C", confFile, "-P", "override",
		"getblockcount"})
	require.NoError(t, err)
	require.Equal(t, "alice", cfg.RPCUser)
	require.Equal(t, "override", cfg.RPCPassword)
	require.Equal(t, "10.0.0.1:18443", cfg.RPCServer)

	connCfg, err := cfg.connConfig()
	require.NoError(t, err)
	require.Equal(t, "alice", connCfg.User)
	require.Equal(t, "override", connCfg.Pass)
	require.Empty(t, connCfg.CookiePath)
	require.True(t, connCfg.DisableTLS)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		args      []string
		expErrStr string
	}{
		{
			name:      "two networks",
			args:      []string{"--testnet", "--regtest", "getblockcount"},
			expErrStr: "can't be used together",
		},
		{
			name: "user and cookie",
			args: []string{"-u", "alice", "--rpccookiefile", "/tmp/c",
				"getblockcount"},
			expErrStr: "rpcuser and rpccookiefile",
		},
		{
			name:      "bad debug level",
			args:      []string{"--debuglevel", "loud", "getblockcount"},
			expErrStr: "debug level [loud] is invalid",
		},
		{
			name:      "unknown flag",
			args:      []string{"--nope", "getblockcount"},
			expErrStr: "unknown flag",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := loadConfig(testArgs(t, tc.args...))
			require.ErrorContains(t, err, tc.expErrStr)
		})
	}
}

func TestLoadConfigHelp(t *testing.T) {
	t.Parallel()

	_, _, err := loadConfig(testArgs(t, "-h"))

	var flagsErr *flags.Error
	require.True(t, errors.As(err, &flagsErr))
	require.Equal(t, flags.ErrHelp, flagsErr.Type)
}

func TestConnConfigCookie(t *testing.T) {
	t.Parallel()

	cookie := filepath.Join(t.TempDir(), ".cookie")
	cfg, _, err := loadConfig(testArgs(t, "--rpccookiefile", cookie,
		"-w", "hot", "getbalance"))
	require.NoError(t, err)

	connCfg, err := cfg.connConfig()
	require.NoError(t, err)
	require.Equal(t, cookie, connCfg.CookiePath)
	require.Equal(t, "hot", connCfg.Wallet)
	require.Empty(t, connCfg.User)
}

func TestDefaultConfigFile(t *testing.T) {
	t.Parallel()

	confFile := filepath.Join(t.TempDir(), "sub", defaultConfigFilename)
	require.False(t, fileExists(confFile))
	require.NoError(t, createDefaultConfigFile(confFile))
	require.True(t, fileExists(confFile))

	// Every option of the sample is commented out, so loading it must
	// leave the defaults untouched.
	cfg, remaining, err := loadConfig([]string{"-C", confFile,
		"getblockcount"})
	require.NoError(t, err)
	require.Equal(t, []string{"getblockcount"}, remaining)
	require.Equal(t, "localhost:8332", cfg.RPCServer)
	require.Equal(t, defaultTimeout, cfg.Timeout)
	require.Equal(t, defaultLogLevel, cfg.DebugLevel)
}
