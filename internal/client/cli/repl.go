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
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Publish(ctx context.Context) error
	Cart(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Relays(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the satchel CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("satchel%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: publish, cart, cart add <product> <qty> <price>, cart rm <product>, cart clear, cart sync, upload <path>, relays, logout, exit")
			} else {
				printlnFn("Available commands: login, relays, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "publish":
			if !a.isLoggedIn() {
				printlnFn("Log in first")
				continue
			}
			_ = a.Publish(ctx)

		case "cart":
			if !a.isLoggedIn() {
				printlnFn("Log in first")
				continue
			}
			_ = a.Cart(ctx, args)

		case "upload":
			if !a.isLoggedIn() {
				printlnFn("Log in first")
				continue
			}
			_ = a.Upload(ctx, args)

		case "relays":
			_ = a.Relays(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
