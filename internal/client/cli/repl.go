package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	consumeExpiry() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Resources(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Patch(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: whoami, resources, list, get, create, update, patch, delete, upload, logout, help, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a.
//
//	Not logged in:
//	  login            sign in
//	  help | exit
//
//	Logged in:
//	  whoami                              show the session
//	  resources                           collections available to the role
//	  list <res> [name=value ...]         list a collection
//	  get <res> <id>                      show one item
//	  create <res> <json>                 create an item
//	  update <res> <id> <json>            replace an item
//	  patch <res> <id> <json>             change some fields
//	  delete <res> <id>                   delete an item
//	  upload <res> <file> [name=value]    multipart upload
//	  logout | help | exit
//
// Handlers print their own errors; the loop ignores them. When the session
// expired during the previous command, the user is asked to log in again
// before the next prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if a.consumeExpiry() {
			printlnFn("Session expired. Please log in again.")
			_ = a.Login(ctx)
		}

		printlnFn(fmt.Sprintf("kiosk %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first (type 'login')")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "resources":
			_ = a.Resources(ctx)
		case "l", "list":
			_ = a.List(ctx, args)
		case "get", "show":
			_ = a.Get(ctx, args)
		case "create":
			_ = a.Create(ctx, args)
		case "update":
			_ = a.Update(ctx, args)
		case "patch":
			_ = a.Patch(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
