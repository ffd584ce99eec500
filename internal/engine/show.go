package engine

import (
	"context"
	"log/slog"

	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/record"
)

// ShowEngine reads the direct URL descriptor of a single distribution.
type ShowEngine struct {
	Logger *slog.Logger
}

// Show reads d's descriptor and summarizes it. A missing descriptor is not
// an error: the summary reports Present false.
func (e *ShowEngine) Show(ctx context.Context, d dist.Distribution) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := loggerOrDiscard(e.Logger)

	rec, ok, err := dist.Read(d)
	if err != nil {
		return nil, err
	}
	log.Debug("read descriptor", "dist", d.Name(), "path", d.Path(), "present", ok, "kind", record.KindOf(rec))

	s := Summarize(d, rec)
	s.Present = ok
	return s, nil
}

// Summarize describes d with rec as its descriptor. Present is set when rec
// is non-nil.
func Summarize(d dist.Distribution, rec record.Record) *Summary {
	s := &Summary{
		Name:    d.Name(),
		Version: d.Version(),
		Path:    d.Path(),
		Present: rec != nil,
		Kind:    record.KindOf(rec),
		Record:  rec,
		PURL:    PURL(d.Name(), d.Version(), rec),
	}
	if rec == nil {
		return s
	}

	s.URL = rec.SourceURL()
	s.JSON = rec.JSON()

	switch r := rec.(type) {
	case *record.VCSRecord:
		s.Commit = r.VCSInfo.CommitID
	case *record.ArchiveRecord:
		s.Hashes = r.ArchiveInfo.AllHashes()
		s.SecureHash = r.ArchiveInfo.HasSecureHash()
	case *record.DirectoryRecord:
		s.Editable = r.DirInfo.IsEditable()
	}
	return s
}
