package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/pkg/library"
	"github.com/jaycalderwood/KQL/pkg/query"
)

// workspaceBrowse: pick a workspace, browse one category, run the selected
// templates against the workspace.
func (c *Console) workspaceBrowse(ctx context.Context) error {
	ws, err := c.resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	cat, err := c.pickCategory()
	if err != nil {
		return err
	}

	templates, err := library.Templates(cat.Path, library.ExtWorkspace)
	if err != nil {
		return err
	}
	sel, err := c.pickTemplates(templates, true)
	if err != nil {
		return err
	}

	tr, err := c.promptTimeRange()
	if err != nil {
		return err
	}
	return c.runBatch(ctx, query.WorkspaceQuery, sel, ws, nil, tr, 0)
}

// workspaceSearch: pick a workspace, search the whole library by keyword,
// run the selected matches.
func (c *Console) workspaceSearch(ctx context.Context) error {
	ws, err := c.resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	keyword, err := c.prompt.Line("Search keyword > ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(keyword) == "" {
		return fmt.Errorf("empty search keyword")
	}

	matches, err := library.Search(c.cfg.LibraryRoot, keyword,
		[]string{library.ExtWorkspace},
		library.FolderHunting, library.FolderInventory)
	if err != nil {
		return err
	}
	sel, err := c.pickTemplates(matches, true)
	if err != nil {
		return err
	}

	tr, err := c.promptTimeRange()
	if err != nil {
		return err
	}
	return c.runBatch(ctx, query.WorkspaceQuery, sel, ws, nil, tr, 0)
}

// resourceScoped: pick a target resource first; its identity fields become
// the auto-context for the category's Scoped templates.
func (c *Console) resourceScoped(ctx context.Context) error {
	res, err := c.resolveResource(ctx)
	if err != nil {
		return err
	}
	ws, err := c.resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	cat, err := c.pickCategory()
	if err != nil {
		return err
	}
	dir, err := library.ScopedDir(cat.Path)
	if err != nil {
		return err
	}

	templates, err := library.Templates(dir, library.ExtWorkspace)
	if err != nil {
		return err
	}
	sel, err := c.pickTemplates(templates, false)
	if err != nil {
		return err
	}

	tr, err := c.promptTimeRange()
	if err != nil {
		return err
	}
	return c.runBatch(ctx, query.WorkspaceQuery, sel, ws, res.AutoContext(), tr, 0)
}

// hunting: templates from the reserved hunting folder, duration-scoped, no
// workspace.
func (c *Console) hunting(ctx context.Context) error {
	dir, err := library.BackendDir(c.cfg.LibraryRoot, library.FolderHunting)
	if err != nil {
		return err
	}
	templates, err := library.Templates(dir, library.ExtWorkspace)
	if err != nil {
		return err
	}
	sel, err := c.pickTemplates(templates, true)
	if err != nil {
		return err
	}

	span, err := c.promptSpan()
	if err != nil {
		return err
	}
	return c.runBatch(ctx, query.ThreatHuntingQuery, sel, nil, nil, query.Span(span), 0)
}

// inventory: templates from the reserved inventory folder, bounded by a row
// count instead of a time range.
func (c *Console) inventory(ctx context.Context) error {
	dir, err := library.BackendDir(c.cfg.LibraryRoot, library.FolderInventory)
	if err != nil {
		return err
	}
	templates, err := library.Templates(dir, library.ExtInventory)
	if err != nil {
		return err
	}
	sel, err := c.pickTemplates(templates, true)
	if err != nil {
		return err
	}

	top, err := c.promptRowLimit()
	if err != nil {
		return err
	}
	return c.runBatch(ctx, query.ResourceInventoryQuery, sel, nil, nil, query.TimeRange{}, top)
}

func (c *Console) pickCategory() (library.Category, error) {
	cats, err := library.Categories(c.cfg.LibraryRoot)
	if err != nil {
		return library.Category{}, err
	}
	if len(cats) == 0 {
		return library.Category{}, fmt.Errorf("no categories under %s", c.cfg.LibraryRoot)
	}

	message.Section("Categories")
	for i, cat := range cats {
		fmt.Fprintf(c.out, " %2d) %s\n", i+1, cat.Name)
	}
	idx, err := pickOne(c.prompt, "Category > ", len(cats))
	if err != nil {
		return library.Category{}, err
	}
	return cats[idx-1], nil
}

// pickTemplates lists the candidates and returns the operator's selection
// in the order given. With adhoc enabled, "*" swaps the list for a single
// query typed at the prompt.
func (c *Console) pickTemplates(list []library.Template, adhoc bool) ([]library.Template, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	message.Section("Templates")
	for i, t := range list {
		fmt.Fprintf(c.out, " %2d) %s/%s\n", i+1, t.Category, t.Name)
	}
	if adhoc {
		fmt.Fprintln(c.out, "  *) type an ad-hoc query")
	}

	line, err := c.prompt.Line("Select (comma separated) > ")
	if err != nil {
		return nil, err
	}
	if adhoc && strings.TrimSpace(line) == "*" {
		text, err := c.prompt.Line("Query > ")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: empty query", ErrInvalidSelection)
		}
		return []library.Template{library.Inline("adhoc", text)}, nil
	}

	sel, err := ParseSelection(line, len(list))
	if err != nil {
		return nil, err
	}
	out := make([]library.Template, 0, len(sel))
	for _, i := range sel {
		out = append(out, list[i-1])
	}
	return out, nil
}

func (c *Console) promptTimeRange() (query.TimeRange, error) {
	line, err := c.prompt.Line(fmt.Sprintf("Timespan [%s], or start..end RFC3339 > ", c.cfg.DefaultSpan))
	if err != nil {
		return query.TimeRange{}, err
	}
	return parseTimeRange(line, c.cfg.DefaultSpan)
}

// parseTimeRange turns operator input into exactly one TimeRange form:
// empty input takes the default span, "start..end" the absolute pair, and
// anything else is passed through as an ISO-8601 duration.
func parseTimeRange(input, def string) (query.TimeRange, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return query.Span(def), nil
	}
	if strings.Contains(s, "..") {
		parts := strings.SplitN(s, "..", 2)
		start, err1 := time.Parse(time.RFC3339, strings.TrimSpace(parts[0]))
		end, err2 := time.Parse(time.RFC3339, strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return query.TimeRange{}, fmt.Errorf("bad time range %q: want RFC3339 start..end", s)
		}
		if !end.After(start) {
			return query.TimeRange{}, fmt.Errorf("bad time range %q: end precedes start", s)
		}
		return query.Between(start, end), nil
	}
	return query.Span(s), nil
}

func (c *Console) promptSpan() (string, error) {
	line, err := c.prompt.Line(fmt.Sprintf("Timespan [%s] > ", c.cfg.DefaultSpan))
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(line)
	if s == "" {
		s = c.cfg.DefaultSpan
	}
	return s, nil
}

func (c *Console) promptRowLimit() (int32, error) {
	line, err := c.prompt.Line(fmt.Sprintf("Row limit [%d] > ", c.cfg.MaxRows))
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(line)
	if s == "" {
		return int32(c.cfg.MaxRows), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("row limit must be a positive number, got %q", s)
	}
	if n > c.cfg.MaxRows {
		message.Warning("row limit capped at %d", c.cfg.MaxRows)
		n = c.cfg.MaxRows
	}
	return int32(n), nil
}
