// Package record models the direct URL descriptor (direct_url.json) that records
// where an installed distribution came from: a VCS checkout, a downloaded archive,
// or a local directory.
package record

import (
	"strings"

	"github.com/bianoble/direct-url/internal/digest"
)

// Kind identifies a record variant.
type Kind string

const (
	KindUnknown   Kind = ""
	KindVCS       Kind = "vcs"
	KindArchive   Kind = "archive"
	KindDirectory Kind = "dir"
)

// Record is one of *VCSRecord, *ArchiveRecord or *DirectoryRecord.
// Parse returns a nil Record for a mapping of no known shape.
type Record interface {
	Kind() Kind
	SourceURL() string
	ToMap() map[string]any
	JSON() string

	isRecord()
}

// KindOf returns the kind of rec, or KindUnknown when rec is nil.
func KindOf(rec Record) Kind {
	if rec == nil {
		return KindUnknown
	}
	return rec.Kind()
}

// VCSInfo describes a checkout from a version control system.
type VCSInfo struct {
	VCS      string // e.g. "git", "hg"
	CommitID string // exact commit that was installed

	// Optional; nil means the key is absent.
	RequestedRevision    *string
	ResolvedRevision     *string
	ResolvedRevisionType *string
}

// VCSRecord is a distribution installed from a version control URL.
type VCSRecord struct {
	URL     string
	VCSInfo VCSInfo
}

// HashPair is the deprecated single-hash form, "algorithm=value" on the wire.
type HashPair struct {
	Algorithm string
	Value     string
}

// String encodes the pair in its wire form.
func (h HashPair) String() string {
	return h.Algorithm + "=" + h.Value
}

// ParseHashPair splits s once on the first "=".
func ParseHashPair(s string) (HashPair, bool) {
	alg, value, ok := strings.Cut(s, "=")
	if !ok {
		return HashPair{}, false
	}
	return HashPair{Algorithm: alg, Value: value}, true
}

// ArchiveInfo holds the hashes of a downloaded archive.
//
// A nil Hashes map means the key is absent; a non-nil empty map is an explicitly
// empty mapping and is written back as {}. Read the merged view through AllHashes
// rather than either field alone.
type ArchiveInfo struct {
	Hashes     map[string]string
	LegacyHash *HashPair
}

// AllHashes merges Hashes with LegacyHash. Entries in Hashes win on collision.
// The result is never nil.
func (a ArchiveInfo) AllHashes() map[string]string {
	all := make(map[string]string, len(a.Hashes)+1)
	if a.LegacyHash != nil {
		all[a.LegacyHash.Algorithm] = a.LegacyHash.Value
	}
	for alg, value := range a.Hashes {
		all[alg] = value
	}
	return all
}

// HasSecureHash reports whether at least one merged algorithm is in the
// guaranteed set. It is advisory and never affects parsing.
func (a ArchiveInfo) HasSecureHash() bool {
	for alg := range a.AllHashes() {
		if digest.IsGuaranteed(alg) {
			return true
		}
	}
	return false
}

// ArchiveRecord is a distribution installed from a wheel, sdist or other archive.
type ArchiveRecord struct {
	URL         string
	ArchiveInfo ArchiveInfo
}

// DirectoryInfo describes a local directory install.
type DirectoryInfo struct {
	// Editable is nil when the key is absent, which is distinct from false.
	Editable *bool
}

// IsEditable is true only when Editable is set to true.
func (d DirectoryInfo) IsEditable() bool {
	return d.Editable != nil && *d.Editable
}

// SetEditable replaces the stored value. Pass nil to drop the key.
func (d *DirectoryInfo) SetEditable(v *bool) {
	if v == nil {
		d.Editable = nil
		return
	}
	b := *v
	d.Editable = &b
}

// DirectoryRecord is a distribution installed from a local directory.
type DirectoryRecord struct {
	URL     string
	DirInfo DirectoryInfo
}

func (*VCSRecord) Kind() Kind       { return KindVCS }
func (*ArchiveRecord) Kind() Kind   { return KindArchive }
func (*DirectoryRecord) Kind() Kind { return KindDirectory }

func (r *VCSRecord) SourceURL() string       { return r.URL }
func (r *ArchiveRecord) SourceURL() string   { return r.URL }
func (r *DirectoryRecord) SourceURL() string { return r.URL }

func (*VCSRecord) isRecord()       {}
func (*ArchiveRecord) isRecord()   {}
func (*DirectoryRecord) isRecord() {}

// String returns a pointer to s, for filling optional fields.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for filling DirectoryInfo.Editable.
func Bool(b bool) *bool { return &b }
