package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
)

// resolveNodeID resolves a WBS node reference which can be:
//   - a full id
//   - a unique id prefix
//   - an exact node name, when only one node carries it
func resolveNodeID(ctx context.Context, app *App, input string) (string, error) {
	nodes := app.WBS.List(ctx)
	ids := make([]string, len(nodes))
	names := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i], names[i] = n.ID, n.Name
	}
	id, err := resolveRef(input, ids, names)
	if err != nil {
		return "", fmt.Errorf("wbs node %q: %w", input, err)
	}
	return id, nil
}

// resolveTaskID resolves a task reference by id, id prefix or exact title.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	ts := app.Tasks.List(ctx, nil)
	ids := make([]string, len(ts))
	titles := make([]string, len(ts))
	for i, t := range ts {
		ids[i], titles[i] = t.ID, t.Title
	}
	id, err := resolveRef(input, ids, titles)
	if err != nil {
		return "", fmt.Errorf("task %q: %w", input, err)
	}
	return id, nil
}

// resolveNodeIDs resolves each reference for deletion. References that match
// nothing are passed through unchanged; deleting them is a no-op.
func resolveNodeIDs(ctx context.Context, app *App, inputs []string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if id, err := resolveNodeID(ctx, app, in); err == nil {
			out = append(out, id)
		} else {
			out = append(out, in)
		}
	}
	return out
}

func resolveTaskIDs(ctx context.Context, app *App, inputs []string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if id, err := resolveTaskID(ctx, app, in); err == nil {
			out = append(out, id)
		} else {
			out = append(out, in)
		}
	}
	return out
}

func resolveRef(input string, ids, labels []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.ErrUnknownID
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	if len(matches) == 0 {
		for i, l := range labels {
			if l == input {
				matches = append(matches, ids[i])
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", domain.ErrUnknownID
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous reference matches %d records", len(matches))
	}
}
