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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Tags(ctx context.Context) error
	Folders(ctx context.Context) error
	MkDir(ctx context.Context) error
	MvDir(ctx context.Context, args []string) error
	RmDir(ctx context.Context, args []string) error
	Move(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Settings(ctx context.Context) error
	Sync(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Inkpad CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - list [sort]      — list notes (sort: date, title, favorite)
//	  - search <text>    — filter by text; "search tag:<tag>" filters by tag
//	  - show <n>         — print a single note
//	  - new              — create a note
//	  - edit <n>         — edit a note (autosaves while editing)
//	  - rm <n>           — delete a note
//	  - fav <n>          — toggle favorite
//	  - tag <n> +x -y    — add and remove tags
//	  - tags             — list known tags
//	  - folders          — list folders
//	  - mkdir            — create a folder
//	  - mvdir <n> <name> — rename a folder
//	  - rmdir <n>        — delete a folder (notes are kept)
//	  - move <n> <dir>   — file a note into a folder ("-" detaches)
//	  - export <n> [fmt] — write a note to disk (txt, md, or fm for
//	    markdown with YAML frontmatter)
//	  - settings         — view and change profile settings
//	  - sync             — refresh from the server
//	  - logout           — log out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ink> %s > ", statusFn()))
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
				printlnFn("Available commands: (l)ist, search, show, new, edit, rm, fav, tag, tags, folders, mkdir, mvdir, rmdir, move, export, settings, sync, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "new":
			_ = a.New(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "rm", "delete":
			_ = a.Delete(ctx, args)

		case "fav":
			_ = a.Fav(ctx, args)

		case "tag":
			_ = a.Tag(ctx, args)

		case "tags":
			_ = a.Tags(ctx)

		case "folders":
			_ = a.Folders(ctx)

		case "mkdir":
			_ = a.MkDir(ctx)

		case "mvdir":
			_ = a.MvDir(ctx, args)

		case "rmdir":
			_ = a.RmDir(ctx, args)

		case "move":
			_ = a.Move(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "settings":
			_ = a.Settings(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
