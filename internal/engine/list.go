package engine

import (
	"context"
	"log/slog"

	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/record"
)

// ListEngine summarizes every distribution found on the search paths.
type ListEngine struct {
	Finder *dist.Finder
	Logger *slog.Logger
}

// ListOptions filters a list operation.
type ListOptions struct {
	// Kind keeps only records of this kind. KindUnknown keeps all.
	Kind record.Kind

	// EditableOnly keeps only editable directory installs.
	EditableOnly bool

	// All includes distributions without a descriptor.
	All bool
}

// List reads the descriptor of each distribution. A malformed descriptor is
// reported in Errors and does not stop the listing.
func (e *ListEngine) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	log := loggerOrDiscard(e.Logger)

	dists, err := e.Finder.All()
	if err != nil {
		return nil, err
	}
	log.Debug("found distributions", "count", len(dists), "paths", e.Finder.Paths)

	result := &ListResult{}
	show := &ShowEngine{Logger: e.Logger}

	for _, d := range dists {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s, err := show.Show(ctx, d)
		if err != nil {
			log.Warn("skipping distribution", "dist", d.Name(), "err", err)
			result.Errors = append(result.Errors, DistError{Dist: d.String(), Err: err})
			continue
		}

		if !keep(s, opts) {
			continue
		}
		result.Entries = append(result.Entries, *s)
	}

	return result, nil
}

func keep(s *Summary, opts ListOptions) bool {
	if !s.Present && !opts.All {
		return false
	}
	if opts.Kind != record.KindUnknown && s.Kind != opts.Kind {
		return false
	}
	if opts.EditableOnly && !s.Editable {
		return false
	}
	return true
}
