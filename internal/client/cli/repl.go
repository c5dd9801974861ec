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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	Roles(ctx context.Context) error
	Pending(ctx context.Context) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Reports(ctx context.Context) error
	Alerts(ctx context.Context) error
	Risks(ctx context.Context) error
	Stats(ctx context.Context, districtID string) error
	Get(ctx context.Context, path string) error
	Delete(ctx context.Context, path string) error
}

const (
	helpLoggedOut = "Available commands: register, roles, login, status, exit"
	helpLoggedIn  = "Available commands: profile, status, reports, alerts, risks, stats [district-id], " +
		"pending, approve <id>, reject <id>, get <path>, delete <path>, logout, exit"
)

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by command handlers are
// printed via describeError and the loop continues. The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             - show available commands
//	  - register         - submit a sign-up request
//	  - roles            - list roles a sign-up may request
//	  - login            - authenticate
//	  - status           - show session state
//	  - exit | quit      - leave the program
//
//	Logged in:
//	  - profile          - show the current user
//	  - reports          - list ASHA reports
//	  - alerts | risks   - list district alerts or risk scores
//	  - stats [id]       - state, or one district's, dashboard statistics
//	  - pending          - pending sign-up requests (administrators)
//	  - approve <id>     - approve a sign-up request
//	  - reject <id>      - reject a sign-up request
//	  - get <path>       - raw GET of an API path
//	  - delete <path>    - raw DELETE of an API path
//	  - logout           - log out
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("hs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "roles":
			cmdErr = a.Roles(ctx)

		case "pending":
			cmdErr = a.Pending(ctx)

		case "approve", "reject":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			if cmd == "approve" {
				cmdErr = a.Approve(ctx, args[0])
			} else {
				cmdErr = a.Reject(ctx, args[0])
			}

		case "reports":
			cmdErr = a.Reports(ctx)

		case "alerts":
			cmdErr = a.Alerts(ctx)

		case "risks":
			cmdErr = a.Risks(ctx)

		case "stats":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			cmdErr = a.Stats(ctx, id)

		case "get", "delete":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <path>", cmd))
				continue
			}
			if cmd == "get" {
				cmdErr = a.Get(ctx, args[0])
			} else {
				cmdErr = a.Delete(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}
		if err != nil {
			return
		}
	}
}
