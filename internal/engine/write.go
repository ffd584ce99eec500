package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bianoble/direct-url/internal/digest"
	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/record"
)

// WriteEngine replaces the direct URL descriptor of a distribution.
type WriteEngine struct {
	Logger *slog.Logger
}

// WriteOptions configures a write operation.
type WriteOptions struct {
	DryRun bool
}

// Write stores rec as d's descriptor. An existing descriptor whose
// canonical form already equals rec's is left untouched. An existing
// descriptor that fails to parse is overwritten.
func (e *WriteEngine) Write(ctx context.Context, d dist.Distribution, rec record.Record, opts WriteOptions) (*WriteResult, error) {
	if rec == nil {
		return nil, fmt.Errorf("writing %s for %s: no record", dist.MetadataName, d.Name())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := loggerOrDiscard(e.Logger)
	result := &WriteResult{After: Summarize(d, rec)}

	current, ok, err := dist.Read(d)
	switch {
	case err != nil:
		log.Warn("replacing unreadable descriptor", "dist", d.Name(), "err", err)
	case ok:
		result.Before = Summarize(d, current)
		result.Before.Present = true
	}

	if result.Before != nil && result.Before.JSON == result.After.JSON {
		result.Action = "unchanged"
		return result, nil
	}

	if opts.DryRun {
		result.Action = "would-write"
		result.Bytes = len(result.After.JSON)
		return result, nil
	}

	n, err := dist.Write(d, rec)
	if err != nil {
		return nil, err
	}
	log.Debug("wrote descriptor", "dist", d.Name(), "kind", rec.Kind(), "bytes", n)

	result.Action = "written"
	result.Bytes = n
	return result, nil
}

// ArchiveFromFile builds an archive record for url whose hashes are computed
// from the local copy at path.
func ArchiveFromFile(url, path string, algorithms []string) (*record.ArchiveRecord, error) {
	hashes, err := digest.File(path, algorithms...)
	if err != nil {
		return nil, err
	}
	return &record.ArchiveRecord{
		URL:         url,
		ArchiveInfo: record.ArchiveInfo{Hashes: hashes},
	}, nil
}
