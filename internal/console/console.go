// Package console drives the interactive session: the top-level menu, the
// five query flows, scope resolution, and the batch loop over selected
// templates. Everything is synchronous and line-at-a-time.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/pkg/azure"
	"github.com/jaycalderwood/KQL/pkg/query"
	"github.com/jaycalderwood/KQL/pkg/types"
)

// Config carries the startup parameters. They configure defaults only.
type Config struct {
	// LibraryRoot is the query library path.
	LibraryRoot string
	// DefaultSpan is the ISO-8601 timespan used when the operator accepts
	// the default.
	DefaultSpan string
	// MaxRows is the row-count ceiling for inventory queries.
	MaxRows int
}

// Directory lists the Azure entities the scope menus are built from.
type Directory interface {
	Subscriptions(ctx context.Context) ([]azure.Subscription, error)
	Workspaces(ctx context.Context) ([]types.WorkspaceScope, error)
	Resources(ctx context.Context, subscriptionID, keyword string) ([]types.ResourceScope, error)
}

// Sink receives each template's result set.
type Sink interface {
	Emit(rs *query.ResultSet, prefix string) error
}

// Console is one interactive session.
type Console struct {
	cfg    Config
	prompt Prompter
	dir    Directory
	disp   *query.Dispatcher
	sink   Sink
	out    io.Writer
}

// New assembles a console session.
func New(cfg Config, prompt Prompter, dir Directory, disp *query.Dispatcher, sink Sink, out io.Writer) *Console {
	return &Console{cfg: cfg, prompt: prompt, dir: dir, disp: disp, sink: sink, out: out}
}

// Run loops the top-level menu until the operator quits or input ends. A
// failing flow invocation is reported and the menu re-presented; nothing
// short of EOF or "q" ends the session.
func (c *Console) Run(ctx context.Context) error {
	message.Banner()
	for {
		c.menu()
		line, err := c.prompt.Line("> ")
		if err != nil {
			return nil
		}
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "1":
			c.report(c.workspaceBrowse(ctx))
		case "2":
			c.report(c.workspaceSearch(ctx))
		case "3":
			c.report(c.resourceScoped(ctx))
		case "4":
			c.report(c.hunting(ctx))
		case "5":
			c.report(c.inventory(ctx))
		case "q", "quit", "exit":
			return nil
		default:
			message.Warning("unknown choice %q", strings.TrimSpace(line))
		}
	}
}

func (c *Console) menu() {
	message.Section("KQL Console")
	fmt.Fprintln(c.out, " 1) Workspace query - browse by category")
	fmt.Fprintln(c.out, " 2) Workspace query - keyword search")
	fmt.Fprintln(c.out, " 3) Workspace query - resource scoped")
	fmt.Fprintln(c.out, " 4) Advanced hunting query")
	fmt.Fprintln(c.out, " 5) Resource inventory query")
	fmt.Fprintln(c.out, " q) Quit")
}

// report surfaces a flow failure; the menu loop carries on regardless.
func (c *Console) report(err error) {
	if err == nil {
		return
	}
	message.Error("%v", err)
	slog.Debug("flow aborted", "error", err)
}
