package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gamekeeper/internal/client/views"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	screen() views.Screen
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, title string) error
	SetTitle(ctx context.Context, title string) error
	Submit(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
	Upload(ctx context.Context, id int64) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. The
// available commands depend on the current screen:
//
//	Signed out:
//	  - login          sign in
//	  - signup         create an account
//
//	Catalog:
//	  - (l)ist         refetch the games
//	  - add <title>    add a game
//	  - title <text>   set the form draft
//	  - submit         add or update from the draft
//	  - edit <id>      start editing a game
//	  - cancel         stop editing
//	  - delete <id>    delete a game (asks first)
//	  - upload <id>    attach a cover image
//	  - logout
//
// help, exit and quit work everywhere. The loop ends on EOF, exit or quit.
// Everything it prints goes to out, which must be the writer background
// renders use.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	r := &repl{exec: a, out: out}
	for {
		if ctx.Err() != nil {
			return
		}
		r.println(fmt.Sprintf("gk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, rest := parts[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), parts[0]))

		switch cmd {
		case "exit", "quit":
			r.println("Bye!")
			return
		case "help":
			r.help(a.screen())
			continue
		}

		switch a.screen() {
		case views.ScreenAuth:
			r.dispatchAuth(ctx, cmd)
		case views.ScreenCatalog:
			r.dispatchCatalog(ctx, cmd, rest)
		default:
			r.println("Still loading, try again in a moment")
		}
	}
}

type repl struct {
	exec execIface
	out  io.Writer
}

func (r *repl) println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

func (r *repl) help(s views.Screen) {
	switch s {
	case views.ScreenAuth:
		r.println("Available commands: login, signup, exit")
	case views.ScreenCatalog:
		r.println("Available commands: (l)ist, add <title>, title <text>, submit, edit <id>, cancel, delete <id>, upload <id>, logout, exit")
	default:
		r.println("Available commands: exit")
	}
}

func (r *repl) dispatchAuth(ctx context.Context, cmd string) {
	switch cmd {
	case "login":
		r.report(r.exec.SignIn(ctx))
	case "signup", "register":
		r.report(r.exec.SignUp(ctx))
	default:
		r.println("Unknown command:", cmd)
	}
}

func (r *repl) dispatchCatalog(ctx context.Context, cmd, rest string) {
	a := r.exec
	switch cmd {
	case "l", "list":
		r.report(a.List(ctx))
	case "add":
		r.report(a.Add(ctx, rest))
	case "title":
		r.report(a.SetTitle(ctx, rest))
	case "submit":
		r.report(a.Submit(ctx))
	case "cancel":
		r.report(a.Cancel(ctx))
	case "logout":
		r.report(a.Logout(ctx))
	case "edit", "delete", "upload":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			r.println(fmt.Sprintf("Usage: %s <id>", cmd))
			return
		}
		switch cmd {
		case "edit":
			r.report(a.Edit(ctx, id))
		case "delete":
			r.report(a.Delete(ctx, id))
		default:
			r.report(a.Upload(ctx, id))
		}
	default:
		r.println("Unknown command:", cmd)
	}
}

func (r *repl) report(err error) {
	if err != nil {
		r.println("Error:", err)
	}
}
