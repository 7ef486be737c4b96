package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/pkg/library"
	"github.com/jaycalderwood/KQL/pkg/query"
	"github.com/jaycalderwood/KQL/pkg/tokens"
	"github.com/jaycalderwood/KQL/pkg/types"
)

// runBatch processes the selected templates strictly in selection order.
// A failing template is reported and the loop moves to the next one; the
// batch itself never fails.
func (c *Console) runBatch(ctx context.Context, kind query.BackendKind, sel []library.Template, ws *types.WorkspaceScope, auto map[string]string, tr query.TimeRange, top int32) error {
	runID := uuid.New().String()[:8]
	slog.Debug("starting batch", "run", runID, "kind", kind.String(), "templates", len(sel))

	for _, t := range sel {
		if err := c.runOne(ctx, kind, t, ws, auto, tr, top); err != nil {
			message.Error("%s: %v", t.Name, err)
			slog.Debug("template failed", "run", runID, "template", t.Name, "error", err)
		}
	}
	return nil
}

// runOne reads, substitutes, previews, dispatches, and emits one template.
func (c *Console) runOne(ctx context.Context, kind query.BackendKind, t library.Template, ws *types.WorkspaceScope, auto map[string]string, tr query.TimeRange, top int32) error {
	text, err := t.Text()
	if err != nil {
		return err
	}

	final, err := tokens.Substitute(text, auto, promptResolver{c.prompt})
	if err != nil {
		return err
	}

	message.Section(t.Name)
	fmt.Fprintln(c.out, final)

	rs, err := c.disp.Dispatch(ctx, kind, final, ws, tr, top)
	if err != nil {
		return err
	}
	if rs.Empty() {
		message.Info("no results")
		return nil
	}

	message.Success("%d rows", len(rs.Rows))
	return c.sink.Emit(rs, t.Name)
}
