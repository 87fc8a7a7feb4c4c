// terminal
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bibajz/bitcoinrpc/rpcclient"
	"golang.org/x/crypto/ssh/terminal"
)

// terminalAction is what the interactive loop does after a line.
type terminalAction int

const (
	actionContinue terminalAction = iota
	actionQuit
	actionToggleProtect
	actionClear
)

// parseTerminalLine maps the built in commands of the interactive session to
// their action.  Any other line is a daemon command and yields
// actionContinue with its fields.
func parseTerminalLine(line string) (terminalAction, []string) {
	switch strings.TrimSpace(line) {
	case "q", "quit":
		return actionQuit, nil
	case "p", "protect":
		return actionToggleProtect, nil
	case "c", "clear":
		return actionClear, nil
	}
	return actionContinue, strings.Fields(line)
}

func printTerminalHelp() {
	fmt.Printf("[h]elp          print this message\n")
	fmt.Printf("[p]rotect       toggle protected mode (for passwords)\n")
	fmt.Printf("[c]lear         clear command history\n")
	fmt.Printf("[q]uit/ctrl+d   exit\n")
	fmt.Printf("Enter commands with arguments to execute them.\n")
}

func startTerminal(ctx context.Context, cfg *config, client *rpcclient.Client) {
	var protected bool

	fmt.Println("Starting terminal mode.")
	fmt.Println("Enter h for [h]elp.")
	fmt.Println("Enter q for [q]uit.")

	stdin := bufio.NewReader(os.Stdin)
	termState, err := terminal.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode on STDIN: %v\n",
			err)
		return
	}
	n := terminal.NewTerminal(os.Stdin, "> ")
	for {
		var ln string
		var err error
		if !protected {
			ln, err = n.ReadLine()
		} else {
			ln, err = n.ReadPassword(">*")
		}
		terminal.Restore(int(os.Stdin.Fd()), termState)
		if err != nil {
			break
		}

		action, fields := parseTerminalLine(ln)
		switch action {
		case actionQuit:
			fmt.Println("exiting...")
			return

		case actionToggleProtect:
			protected = !protected

		case actionClear:
			fmt.Println("Clearing history...")
			n = terminal.NewTerminal(os.Stdin, "> ")

		default:
			switch {
			case len(fields) == 0:
			case fields[0] == "h" || fields[0] == "help":
				printTerminalHelp()
			default:
				execute(ctx, cfg, client, fields[0], fields[1:],
					stdin, os.Stdout, os.Stderr)
			}
		}

		termState, err = terminal.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set raw mode on "+
				"STDIN: %v\n", err)
			break
		}
	}
	fmt.Println("exiting...")
}
