// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bibajz/bitcoinrpc/rpcclient"
	"github.com/bibajz/bitcoinrpc/sampleconfig"
	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "bitcoinrpcctl.conf"
	defaultLogFilename    = "bitcoinrpcctl.log"
	defaultLogLevel       = "warn"
	defaultRPCServer      = "localhost"
	defaultTimeout        = 30 * time.Second
)

var (
	bitcoindHomeDir   = btcutil.AppDataDir("bitcoin", true)
	ctlHomeDir        = btcutil.AppDataDir("bitcoinrpcctl", false)
	defaultConfigFile = filepath.Join(ctlHomeDir, defaultConfigFilename)
)

// network describes the defaults of one of the bitcoin networks.
type network struct {
	name    string
	port    string
	dataDir string
}

var (
	mainNet  = network{name: "mainnet", port: "8332"}
	testNet  = network{name: "testnet", port: "18332", dataDir: "testnet3"}
	testNet4 = network{name: "testnet4", port: "48332", dataDir: "testnet4"}
	regTest  = network{name: "regtest", port: "18443", dataDir: "regtest"}
	sigNet   = network{name: "signet", port: "38332", dataDir: "signet"}
)

// config defines the configuration options for bitcoinrpcctl.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion  bool          `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile   string        `short:"C" long:"configfile" description:"Path to configuration file"`
	RPCUser      string        `short:"u" long:"rpcuser" description:"RPC username"`
	RPCPassword  string        `short:"P" long:"rpcpass" default-mask:"-" description:"RPC password"`
	AskPass      bool          `long:"askpass" description:"Prompt for the RPC password on the terminal"`
	RPCCookie    string        `long:"rpccookiefile" description:"Path to the bitcoind .cookie file, used when no RPC username is given"`
	DataDir      string        `short:"d" long:"datadir" description:"bitcoind data directory to look for the .cookie file in"`
	RPCServer    string        `short:"s" long:"rpcserver" description:"RPC server to connect to"`
	Wallet       string        `short:"w" long:"rpcwallet" description:"Send the command to the named wallet"`
	RPCCert      string        `short:"c" long:"rpccert" description:"RPC server certificate chain for validation"`
	TLS          bool          `long:"tls" description:"Connect with TLS, for servers behind a TLS terminating proxy"`
	Proxy        string        `long:"proxy" description:"Connect via SOCKS5 proxy (eg. 127.0.0.1:9050)"`
	ProxyUser    string        `long:"proxyuser" description:"Username for proxy server"`
	ProxyPass    string        `long:"proxypass" default-mask:"-" description:"Password for proxy server"`
	TestNet      bool          `long:"testnet" description:"Connect to testnet3"`
	TestNet4     bool          `long:"testnet4" description:"Connect to testnet4"`
	RegTest      bool          `long:"regtest" description:"Connect to the regression test network"`
	SigNet       bool          `long:"signet" description:"Connect to signet"`
	Timeout      time.Duration `short:"t" long:"timeout" description:"Timeout for the whole call"`
	Terminal     bool          `short:"i" long:"terminal" description:"Start an interactive session"`
	LogDir       string        `long:"logdir" description:"Also write logs to a rotated file in this directory"`
	DebugLevel   string        `long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	ShowRequests bool          `short:"j" long:"json" description:"Log the JSON-RPC requests sent and responses received"`

	net network
}

// activeNet returns the network selected by the network flags and fails when
// more than one is set.
func (cfg *config) activeNet() (network, error) {
	selected := mainNet
	numNets := 0
	for _, n := range []struct {
		set bool
		net network
	}{
		{cfg.TestNet, testNet},
		{cfg.TestNet4, testNet4},
		{cfg.RegTest, regTest},
		{cfg.SigNet, sigNet},
	} {
		if n.set {
			selected = n.net
			numNets++
		}
	}
	if numNets > 1 {
		return network{}, errors.New("the testnet, testnet4, regtest " +
			"and signet params can't be used together -- choose one")
	}
	return selected, nil
}

// normalizeAddress returns addr with the passed default port appended if
// there is not already a port specified.  Full URLs are left alone.
func normalizeAddress(addr, defaultPort string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return net.JoinHostPort(addr, defaultPort)
	}
	return addr
}

// cookiePath returns the location bitcoind writes its cookie to for the
// passed data directory and network.
func cookiePath(dataDir string, n network) string {
	return filepath.Join(dataDir, n.dataDir, ".cookie")
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but the variables can still be expanded via POSIX-style
	// $VARIABLE.
	path = os.ExpandEnv(path)

	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	// Expand initial ~ to the current user's home directory, or ~otheruser
	// to otheruser's home directory.  On Windows, both forward and backward
	// slashes can be used.
	path = path[1:]

	var pathSeparators string
	if runtime.GOOS == "windows" {
		pathSeparators = string(os.PathSeparator) + "/"
	} else {
		pathSeparators = string(os.PathSeparator)
	}

	userName := ""
	if i := strings.IndexAny(path, pathSeparators); i != -1 {
		userName = path[:i]
		path = path[i:]
	}

	homeDir := ""
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if err == nil {
		homeDir = u.HomeDir
	}
	// Fallback to CWD if user lookup fails or user has no home directory.
	if homeDir == "" {
		homeDir = "."
	}

	return filepath.Join(homeDir, path)
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// createDefaultConfigFile writes the sample config to destinationPath,
// creating the parent directory as needed.
func createDefaultConfigFile(destinationPath string) error {
	if err := os.MkdirAll(filepath.Dir(destinationPath), 0700); err != nil {
		return err
	}
	return os.WriteFile(destinationPath, []byte(sampleconfig.FileContents),
		0600)
}

// newConfigParser returns a go-flags parser for cfg.
func newConfigParser(cfg *config, options flags.Options) *flags.Parser {
	parser := flags.NewParser(cfg, options)
	parser.Usage = "[OPTIONS] <command> <args...>"
	return parser
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in functioning properly without any config settings
// while still allowing the user to override settings with config files and
// command line options.  Command line options always take precedence.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		ConfigFile: defaultConfigFile,
		RPCServer:  defaultRPCServer,
		DataDir:    bitcoindHomeDir,
		DebugLevel: defaultLogLevel,
		Timeout:    defaultTimeout,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.  Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := cfg
	preParser := newConfigParser(&preCfg,
		flags.HelpFlag|flags.PassAfterNonOption)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			return nil, nil, err
		}
	}
	if preCfg.ShowVersion {
		return &preCfg, nil, nil
	}

	// Write the commented sample config on first use of the default
	// location so users have something to edit.
	if preCfg.ConfigFile == defaultConfigFile && !fileExists(defaultConfigFile) {
		if err := createDefaultConfigFile(defaultConfigFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating a default config "+
				"file: %v\n", err)
		}
	}

	// Load additional config from file.  A missing file is fine.
	parser := newConfigParser(&cfg, flags.HelpFlag|flags.PassDoubleDash|
		flags.PassAfterNonOption)
	err = flags.NewIniParser(parser).ParseFile(
		cleanAndExpandPath(preCfg.ConfigFile))
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, nil, fmt.Errorf("error parsing config "+
				"file: %w", err)
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	cfg.net, err = cfg.activeNet()
	if err != nil {
		return nil, nil, err
	}

	if cfg.RPCUser != "" && cfg.RPCCookie != "" {
		return nil, nil, errors.New("the rpcuser and rpccookiefile " +
			"options can't be used together")
	}
	if _, err := parseLogLevel(cfg.DebugLevel); err != nil {
		return nil, nil, err
	}

	// Fall back to the cookie of the selected network when no
	// credentials were given at all.
	if cfg.RPCUser == "" && cfg.RPCPassword == "" && !cfg.AskPass &&
		cfg.RPCCookie == "" {

		cfg.RPCCookie = cookiePath(cleanAndExpandPath(cfg.DataDir),
			cfg.net)
	}
	if cfg.RPCCookie != "" {
		cfg.RPCCookie = cleanAndExpandPath(cfg.RPCCookie)
	}
	if cfg.RPCCert != "" {
		cfg.RPCCert = cleanAndExpandPath(cfg.RPCCert)
	}
	if cfg.LogDir != "" {
		cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	}

	// Add default port to RPC server based on the network flags if
	// needed.
	cfg.RPCServer = normalizeAddress(cfg.RPCServer, cfg.net.port)

	return &cfg, remainingArgs, nil
}

// connConfig returns the client configuration matching cfg.
func (cfg *config) connConfig() (*rpcclient.ConnConfig, error) {
	connCfg := &rpcclient.ConnConfig{
		Host:       cfg.RPCServer,
		Wallet:     cfg.Wallet,
		DisableTLS: !cfg.TLS,
		Proxy:      cfg.Proxy,
		ProxyUser:  cfg.ProxyUser,
		ProxyPass:  cfg.ProxyPass,
	}

	if cfg.RPCCookie != "" {
		connCfg.CookiePath = cfg.RPCCookie
	} else {
		connCfg.User = cfg.RPCUser
		connCfg.Pass = cfg.RPCPassword
	}

	if cfg.TLS && cfg.RPCCert != "" {
		pem, err := os.ReadFile(cfg.RPCCert)
		if err != nil {
			return nil, err
		}
		connCfg.Certificates = pem
	}

	return connCfg, nil
}
