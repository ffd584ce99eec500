package engine

import (
	"context"
	"log/slog"

	"github.com/bianoble/direct-url/internal/dist"
)

// Remover is a distribution whose metadata files can be deleted.
type Remover interface {
	dist.Distribution
	Remove(name string) (bool, error)
}

// RemoveEngine deletes the direct URL descriptor of a distribution.
type RemoveEngine struct {
	Logger *slog.Logger
}

// RemoveOptions configures a remove operation.
type RemoveOptions struct {
	DryRun bool
}

// Remove deletes d's descriptor. A descriptor that fails to parse is still
// removed.
func (e *RemoveEngine) Remove(ctx context.Context, d Remover, opts RemoveOptions) (*RemoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := loggerOrDiscard(e.Logger)
	result := &RemoveResult{Dist: d.Name()}

	current, ok, err := dist.Read(d)
	if err != nil {
		log.Warn("removing unreadable descriptor", "dist", d.Name(), "err", err)
	} else if ok {
		result.Before = Summarize(d, current)
		result.Before.Present = true
	}

	if opts.DryRun {
		result.Action = "would-remove"
		if !ok {
			result.Action = "absent"
		}
		return result, nil
	}

	removed, err := d.Remove(dist.MetadataName)
	if err != nil {
		return nil, err
	}
	if !removed {
		result.Action = "absent"
		return result, nil
	}

	log.Debug("removed descriptor", "dist", d.Name())
	result.Action = "removed"
	return result, nil
}
