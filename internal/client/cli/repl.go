package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests provide a stub.
type execIface interface {
	helpText() string
	Unlock(ctx context.Context) error
	Logout(ctx context.Context) error
	Sync(ctx context.Context) error
	Menu(ctx context.Context) error
	Go(ctx context.Context, target string) error
	Show(ctx context.Context) error
	Rename(ctx context.Context) error
	Verify(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Download(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	DeleteAll(ctx context.Context) error
	AskKey(ctx context.Context, on bool) error
	CreateAccount(ctx context.Context) error
	SetActivation(ctx context.Context, ref string, active bool) error
	RemoveAccount(ctx context.Context, ref string) error
	Keygen(ctx context.Context) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit". Handler
// errors are printed and the loop continues.
//
//	unlock                     enter a product key
//	menu                       toggle the side panel
//	go <view|#>                open a view (or "go logout")
//	show | sync | refresh      redraw, optionally after a refresh
//	rename | verify            profile actions
//	upload <path>              add a file
//	download|delete <#|id>     file actions
//	delete-all                 remove every file
//	ask-key on|off             product key prompt at start
//	create                     admin: new account
//	activate|deactivate <#|id> admin: activation
//	remove <#|id>              admin: delete account
//	keygen                     print a fresh product key
//	logout | exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("forks %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		switch cmd {
		case "help":
			printlnFn(a.helpText())
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if needsArg(cmd) && arg == "" {
			printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, argName(cmd)))
			continue
		}

		switch cmd {
		case "unlock":
			err = a.Unlock(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "sync", "refresh":
			err = a.Sync(ctx)
		case "menu":
			err = a.Menu(ctx)
		case "go":
			err = a.Go(ctx, arg)
		case "show":
			err = a.Show(ctx)
		case "rename":
			err = a.Rename(ctx)
		case "verify":
			err = a.Verify(ctx)
		case "upload":
			err = a.Upload(ctx, arg)
		case "download":
			err = a.Download(ctx, arg)
		case "delete":
			err = a.Delete(ctx, arg)
		case "delete-all":
			err = a.DeleteAll(ctx)
		case "ask-key":
			switch strings.ToLower(arg) {
			case "on":
				err = a.AskKey(ctx, true)
			case "off":
				err = a.AskKey(ctx, false)
			default:
				printlnFn("Usage: ask-key on|off")
				continue
			}
		case "create":
			err = a.CreateAccount(ctx)
		case "activate":
			err = a.SetActivation(ctx, arg, true)
		case "deactivate":
			err = a.SetActivation(ctx, arg, false)
		case "remove":
			err = a.RemoveAccount(ctx, arg)
		case "keygen":
			err = a.Keygen(ctx)
		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}

func needsArg(cmd string) bool {
	return argName(cmd) != ""
}

func argName(cmd string) string {
	switch cmd {
	case "go":
		return "view"
	case "upload":
		return "path"
	case "download", "delete", "activate", "deactivate", "remove":
		return "#|id"
	case "ask-key":
		return "on|off"
	default:
		return ""
	}
}
