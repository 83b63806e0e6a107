package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	dispatch(ctx context.Context, cmd string, args []string) error
}

// runREPL reads commands from scanner until EOF or "exit"/"quit" and hands
// them to a.dispatch. Errors are reported by the commands themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("vmailctl (type 'help' for commands)")

	for {
		printlnFn(fmt.Sprintf("vmail %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: register, get <username>, inspect [limit], ping, logout, exit")
			} else {
				printlnFn("Available commands: login, register, ping, exit")
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			_ = a.dispatch(ctx, cmd, parts[1:])
		}
	}
}
