// Package directurl provides the public Go library API for direct-url.
//
// direct-url reads and writes direct_url.json, the descriptor an installer
// leaves in a distribution's dist-info directory to record where the package
// came from: a VCS checkout, a downloaded archive, or a local directory.
//
// # Basic Usage
//
//	rec, err := directurl.ParseJSON(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	switch r := rec.(type) {
//	case *directurl.VCSRecord:
//	    fmt.Println(r.VCSInfo.CommitID)
//	case nil:
//	    // no known shape
//	}
//
//	client, err := directurl.New(directurl.Options{})
//	editable, err := client.IsEditable(ctx, "my-project")
package directurl

import (
	"context"

	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/record"
)

// Parse builds a record from a decoded JSON object. It returns nil, nil when
// the object has none of archive_info, dir_info or vcs_info.
func Parse(m map[string]any) (Record, error) {
	return record.Parse(m)
}

// ParseJSON decodes and parses a direct_url.json document.
func ParseJSON(data []byte) (Record, error) {
	return record.ParseJSON(data)
}

// ParseFile reads and parses a direct_url.json file.
func ParseFile(path string) (Record, error) {
	return record.ParseFile(path)
}

// ToMap converts a record to its JSON-ready mapping form.
func ToMap(v any) (map[string]any, error) {
	return record.ToMap(v)
}

// ToJSON returns the canonical JSON text of a record or mapping.
func ToJSON(v any) (string, error) {
	return record.CanonicalJSON(v)
}

// OpenDistribution opens the dist-info directory at path.
func OpenDistribution(path string) (*PathDistribution, error) {
	return dist.Open(path)
}

// ReadFromDistribution parses d's descriptor. The bool is false when d has
// none.
func ReadFromDistribution(d Distribution) (Record, bool, error) {
	return dist.Read(d)
}

// WriteToDistribution replaces d's descriptor with v, a record or a mapping,
// and returns the number of bytes written.
func WriteToDistribution(d Distribution, v any) (int, error) {
	return dist.Write(d, v)
}

// IsEditable reports whether the named distribution, found on the default
// search paths, is an editable directory install. It returns an error
// wrapping ErrNotFound when no such distribution is installed.
func IsEditable(ctx context.Context, name string) (bool, error) {
	c, err := New(Options{})
	if err != nil {
		return false, err
	}
	return c.IsEditable(ctx, name)
}
