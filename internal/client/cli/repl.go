package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Fetch(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Find(ctx context.Context, streetNumber string) error
	Status(ctx context.Context) error
}

const helpText = "Available commands: fetch|refresh, (l)ist, show <uuid>, find <street-number>, status, exit"

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". promptFn is called before every read; an empty prompt
// is not printed.
//
// Command errors are ignored here; handlers report to the user themselves.
func runREPL(ctx context.Context, a execIface, promptFn func() string, scanner *bufio.Scanner) {
	for {
		if p := promptFn(); p != "" {
			printFn(p)
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "fetch", "refresh":
			_ = a.Fetch(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <uuid>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "find":
			if len(args) == 0 {
				printlnFn("Usage: find <street-number>")
				continue
			}
			_ = a.Find(ctx, args[0])

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
