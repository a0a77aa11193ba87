package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
	Reset(ctx context.Context) error
	Reload(ctx context.Context) error
	Status(ctx context.Context) error
}

const helpText = `Available commands:
  list                            list poems with the current filters
  show <id>                       show one poem
  add                             add a poem
  edit <id>                       edit a poem
  delete <id>                     delete a poem
  search [text]                   filter by text (no text clears)
  category <name|all>             filter by category
  sort <title|author|date> [asc|desc]
  categories                      list categories in use
  reset                           clear search, category and sort
  reload                          load the collection again
  status                          show connectivity and filters
  exit | quit                     leave the program`

// runREPL reads one command per line from r and dispatches it to a. It
// returns on end of input, "exit"/"quit" or when ctx is done. Command errors
// are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("poems %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "h":
			printlnFn(helpText)
		case "l", "list":
			_ = a.List(ctx)
		case "show":
			_ = a.Show(ctx, args)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "search":
			_ = a.Search(ctx, args)
		case "category":
			_ = a.Category(ctx, args)
		case "sort":
			_ = a.Sort(ctx, args)
		case "categories":
			_ = a.Categories(ctx)
		case "reset":
			_ = a.Reset(ctx)
		case "reload":
			_ = a.Reload(ctx)
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
