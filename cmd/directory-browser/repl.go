package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sternrassler/user-directory-client/pkg/controller"
)

const helpText = `commands:
  fetch, f   load the directory
  next, n    next page
  prev, p    previous page
  reset, r   close the result and return to idle
  show, s    print the current state
  help, h    this text
  quit, q    exit`

// browser is the part of the controller the REPL drives.
type browser interface {
	StartFetch(ctx context.Context) (<-chan struct{}, bool)
	Reset() error
	NextPage() bool
	PreviousPage() bool
	Snapshot() controller.Snapshot
}

// runREPL reads commands from in until quit, EOF or ctx is done and prints
// the resulting state to out.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, ctrl browser) error {
	render(out, ctrl.Snapshot())
	fmt.Fprintln(out, `type "help" for commands`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch cmd {
		case "":
			continue
		case "quit", "q", "exit":
			return nil
		case "help", "h", "?":
			fmt.Fprintln(out, helpText)
		case "show", "s":
			render(out, ctrl.Snapshot())
		case "fetch", "f":
			done, started := ctrl.StartFetch(ctx)
			if !started {
				fmt.Fprintln(out, "already loaded; reset first")
				continue
			}
			render(out, ctrl.Snapshot())
			select {
			case <-done:
			case <-ctx.Done():
				return nil
			}
			render(out, ctrl.Snapshot())
		case "next", "n":
			if !ctrl.NextPage() {
				fmt.Fprintln(out, "no next page")
				continue
			}
			render(out, ctrl.Snapshot())
		case "prev", "p":
			if !ctrl.PreviousPage() {
				fmt.Fprintln(out, "no previous page")
				continue
			}
			render(out, ctrl.Snapshot())
		case "reset", "r", "close":
			if err := ctrl.Reset(); err != nil {
				if errors.Is(err, controller.ErrFetchInFlight) {
					fmt.Fprintln(out, "fetch in progress; try again when it finished")
					continue
				}
				return err
			}
			render(out, ctrl.Snapshot())
		default:
			fmt.Fprintf(out, "unknown command %q (type help)\n", cmd)
		}
	}
}

// render prints the status line and, when loaded, the visible page.
func render(out io.Writer, snap controller.Snapshot) {
	fmt.Fprintf(out, "[%s] %s\n", snap.State.Name(), snap.Status)

	if _, loaded := snap.State.(controller.Loaded); !loaded {
		return
	}
	if snap.Page.TotalPages == 0 {
		fmt.Fprintln(out, "  (no records)")
		return
	}

	fmt.Fprintf(out, "Page %d/%d\n", snap.PageIndex+1, snap.Page.TotalPages)
	for _, r := range snap.Page.Items {
		fmt.Fprintf(out, "  #%d %s <%s>\n", r.ID, r.Name, r.Email)
	}

	var nav []string
	if snap.Page.HasPrevious() {
		nav = append(nav, "< prev")
	}
	if snap.Page.HasNext() {
		nav = append(nav, "next >")
	}
	if len(nav) > 0 {
		fmt.Fprintf(out, "  %s\n", strings.Join(nav, " | "))
	}
}
