package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn writes the prompt without a trailing newline.
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Create(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	View(ctx context.Context, id string) error
	Rename(ctx context.Context, id string) error
	Done(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	WhoAmI(ctx context.Context) error
	Stats(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpText = "Available commands: (l)ist, create, show, edit, view, rename, done, delete, whoami, stats, logout, exit"

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and the
// optional second token as a record id, and dispatches to methods on a.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Handlers report their own problems to the user; returned errors are only
// logged here so one failing command never ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, onErr func(error)) {
	for {
		if statusFn != nil {
			printFn(fmt.Sprintf("rk %s> ", statusFn()))
		}
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		var id string
		if len(parts) > 1 {
			id = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "create", "add":
			cmdErr = a.Create(ctx)

		case "show":
			cmdErr = a.Show(ctx, id)

		case "edit":
			cmdErr = a.Edit(ctx, id)

		case "view":
			cmdErr = a.View(ctx, id)

		case "rename":
			cmdErr = a.Rename(ctx, id)

		case "done":
			cmdErr = a.Done(ctx, id)

		case "delete", "rm":
			cmdErr = a.Delete(ctx, id)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil && onErr != nil {
			onErr(cmdErr)
		}
	}
}
