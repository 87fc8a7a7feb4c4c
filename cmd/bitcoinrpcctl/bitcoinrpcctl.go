package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibajz/bitcoinrpc/btcjson"
	"github.com/bibajz/bitcoinrpc/internal/version"
	"github.com/bibajz/bitcoinrpc/rpcclient"
	"github.com/btcsuite/btclog"
	flags "github.com/jessevdk/go-flags"
	"golang.org/x/crypto/ssh/terminal"
)

const showHelpMessage = "Specify -h to show available options"

// usage displays the general usage when the help flag is not displayed and
// and an invalid command was specified.
func usage(errorMessage string) {
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	fmt.Fprintln(os.Stderr, errorMessage)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintf(os.Stderr, "  %s [OPTIONS] <command> <args...>\n\n",
		appName)
	fmt.Fprintln(os.Stderr, showHelpMessage)
	fmt.Fprintln(os.Stderr, "The special parameter `-` indicates that a "+
		"parameter should be read from the\nnext unread line from "+
		"standard input.")
}

// isBlockHash reports whether s looks like a hex encoded hash, which must
// stay a string even when it only holds digits.
func isBlockHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// parseParam converts a command line argument to a positional parameter.
// Arguments which are valid JSON, such as numbers, booleans, arrays and
// objects, are sent as they are.  Everything else is sent as a string.
func parseParam(arg string) json.RawMessage {
	trimmed := strings.TrimSpace(arg)
	if trimmed != "" && !isBlockHash(trimmed) && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}

	// Marshalling a string can not fail.
	quoted, _ := json.Marshal(arg)
	return quoted
}

// parseParams converts the command line arguments to positional parameters.
//
// Since some commands, such as submitblock, can involve data which is too
// large for the Operating System to allow as a normal command line parameter,
// an argument of '-' is replaced by the next line read from stdin.
func parseParams(args []string, stdin *bufio.Reader) ([]json.RawMessage, error) {
	params := make([]json.RawMessage, 0, len(args))
	for _, arg := range args {
		if arg != "-" {
			params = append(params, parseParam(arg))
			continue
		}

		param, err := stdin.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read data from "+
				"stdin: %w", err)
		}
		if err == io.EOF && len(param) == 0 {
			return nil, errors.New("not enough lines provided on " +
				"stdin")
		}
		param = strings.TrimRight(param, "\r\n")
		params = append(params, parseParam(param))
	}
	return params, nil
}

// formatResult renders a result for display.  Objects and arrays are
// indented, strings are unquoted and null is rendered as nothing.
func formatResult(result json.RawMessage) (string, error) {
	strResult := string(bytes.TrimSpace(result))
	switch {
	case strings.HasPrefix(strResult, "{") || strings.HasPrefix(strResult, "["):
		var dst bytes.Buffer
		if err := json.Indent(&dst, result, "", "  "); err != nil {
			return "", fmt.Errorf("failed to format result: %w", err)
		}
		return dst.String(), nil

	case strings.HasPrefix(strResult, `"`):
		var str string
		if err := json.Unmarshal(result, &str); err != nil {
			return "", fmt.Errorf("failed to unmarshal result: %w",
				err)
		}
		return str, nil

	case strResult == "null":
		return "", nil

	default:
		return strResult, nil
	}
}

// formatError renders a failed call for display.  Daemon errors are shown
// with their code, whatever status code they came with.
func formatError(err error) string {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return fmt.Sprintf("error code: %d\nerror message:\n%s",
			rpcErr.Code, rpcErr.Message)
	}

	var statusErr *rpcclient.HTTPStatusError
	if errors.As(err, &statusErr) {
		if rpcErr := statusErr.RPCError(); rpcErr != nil {
			return fmt.Sprintf("error code: %d\nerror message:\n%s",
				rpcErr.Code, rpcErr.Message)
		}
	}

	return fmt.Sprintf("error: %v", err)
}

// execute sends method with the passed arguments and writes the outcome to
// stdout or stderr.  It reports whether the call succeeded.
func execute(ctx context.Context, cfg *config, client *rpcclient.Client,
	method string, args []string, stdin *bufio.Reader, stdout,
	stderr io.Writer) bool {

	params, err := parseParams(args, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return false
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	ctlLog.Debugf("Sending %s with %d params to %s", method, len(params),
		client.URL())

	result, err := client.RawRequest(ctx, method, params)
	if err != nil {
		fmt.Fprintln(stderr, formatError(err))
		return false
	}

	out, err := formatResult(result)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return false
	}
	if out != "" {
		fmt.Fprintln(stdout, out)
	}
	return true
}

// readPassword prompts for the RPC password on the controlling terminal.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "RPC password: ")
	pass, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprint(os.Stderr, "\n")
	if err != nil {
		return "", fmt.Errorf("unable to read password: %w", err)
	}
	return string(pass), nil
}

func realMain() int {
	cfg, args, err := loadConfig(os.Args[1:])
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, showHelpMessage)
		return 1
	}

	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.String())
		return 0
	}

	if cfg.LogDir != "" {
		err := initLogRotator(filepath.Join(cfg.LogDir,
			defaultLogFilename))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer logRotator.Close()
	}
	setLogLevels(cfg.DebugLevel)
	if cfg.ShowRequests {
		rpccLog.SetLevel(btclog.LevelTrace)
	}

	if !cfg.Terminal && len(args) < 1 {
		usage("No command specified")
		return 1
	}

	if cfg.AskPass {
		cfg.RPCPassword, err = readPassword()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	connCfg, err := cfg.connConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client, err := rpcclient.New(connCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx := context.Background()
	if cfg.Terminal {
		startTerminal(ctx, cfg, client)
		return 0
	}

	stdin := bufio.NewReader(os.Stdin)
	if !execute(ctx, cfg, client, args[0], args[1:], stdin, os.Stdout,
		os.Stderr) {

		return 1
	}
	return 0
}

func main() {
	os.Exit(realMain())
}
