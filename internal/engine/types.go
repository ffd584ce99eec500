package engine

import (
	"log/slog"

	"github.com/bianoble/direct-url/internal/record"
)

// DistError represents an error associated with a specific distribution.
type DistError struct {
	Dist string
	Err  error
}

func (e DistError) Error() string {
	return e.Dist + ": " + e.Err.Error()
}

func (e DistError) Unwrap() error {
	return e.Err
}

// Summary describes an installed distribution and its direct URL descriptor.
type Summary struct {
	Name    string
	Version string
	Path    string

	// Present is false when the distribution has no direct_url.json.
	Present bool

	// Kind is KindUnknown when the descriptor is absent or of no known shape.
	Kind record.Kind

	Record record.Record

	// JSON is the canonical form of Record, empty when Record is nil.
	JSON string

	URL        string
	Editable   bool
	Hashes     map[string]string
	SecureHash bool
	Commit     string
	PURL       string
}

// ListResult holds the outcome of a list operation.
type ListResult struct {
	Entries []Summary
	Errors  []DistError
}

// WriteResult holds the outcome of a write operation.
type WriteResult struct {
	Before *Summary // nil when no descriptor existed
	After  *Summary
	Action string // "written", "unchanged", "would-write"
	Bytes  int
}

// RemoveResult holds the outcome of a remove operation.
type RemoveResult struct {
	Dist   string
	Before *Summary // nil when no descriptor existed
	Action string   // "removed", "absent", "would-remove"
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
