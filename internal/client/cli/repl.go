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

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	DeleteAccount(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Backup(ctx context.Context, args []string) error
	MigrateLegacy(ctx context.Context, args []string) error
	Memo(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, memo new|list|show|edit|delete|export|import, help, exit"
	helpLoggedIn  = "Available commands: add, (l)ist [YYYY-MM], update <id>, delete <id>, " +
		"stats month|year|range, categories, export json|xlsx, import <file>, " +
		"backup upload|download, memo new|list|show|edit|delete|export|import, " +
		"migrate-legacy, logout, delete-account, help, exit"
)

// runREPL reads commands from r until EOF, "exit" or "quit".
//
// The first token of a line selects the handler, the rest are passed as
// args. Handlers print their own outcome, so their errors only end up in
// the debug output here. Memo commands work without a session since memos
// never leave the device.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gl %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "register":
			handler = a.Register
		case "login":
			handler = a.Login
		case "logout":
			handler = a.Logout
		case "delete-account":
			handler = a.DeleteAccount

		case "add":
			handler = a.Add
		case "l", "list":
			handler = a.List
		case "update":
			handler = a.Update
		case "delete":
			handler = a.Delete

		case "stats":
			handler = a.Stats
		case "categories":
			handler = a.Categories

		case "export":
			handler = a.Export
		case "import":
			handler = a.Import
		case "backup":
			handler = a.Backup
		case "migrate-legacy":
			handler = a.MigrateLegacy

		case "memo":
			handler = a.Memo

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		_ = handler(ctx, args)

		if err != nil {
			return
		}
	}
}
