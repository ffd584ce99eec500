package record

import "fmt"

// ToMap converts v to a JSON-ready object. v must be one of the record variants,
// by pointer or by value; anything else returns an *UnsupportedTypeError.
func ToMap(v any) (map[string]any, error) {
	switch r := v.(type) {
	case *VCSRecord:
		if r != nil {
			return r.ToMap(), nil
		}
	case VCSRecord:
		return r.ToMap(), nil
	case *ArchiveRecord:
		if r != nil {
			return r.ToMap(), nil
		}
	case ArchiveRecord:
		return r.ToMap(), nil
	case *DirectoryRecord:
		if r != nil {
			return r.ToMap(), nil
		}
	case DirectoryRecord:
		return r.ToMap(), nil
	}
	return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", v)}
}

// ToMap returns the vcs_info object. Optional revisions are omitted when nil.
func (v VCSInfo) ToMap() map[string]any {
	m := map[string]any{
		"vcs":       v.VCS,
		"commit_id": v.CommitID,
	}
	if v.RequestedRevision != nil {
		m["requested_revision"] = *v.RequestedRevision
	}
	if v.ResolvedRevision != nil {
		m["resolved_revision"] = *v.ResolvedRevision
	}
	if v.ResolvedRevisionType != nil {
		m["resolved_revision_type"] = *v.ResolvedRevisionType
	}
	return m
}

// ToMap returns the archive_info object. An empty but non-nil Hashes map is
// kept as {}.
func (a ArchiveInfo) ToMap() map[string]any {
	m := map[string]any{}
	if a.Hashes != nil {
		hashes := make(map[string]any, len(a.Hashes))
		for alg, value := range a.Hashes {
			hashes[alg] = value
		}
		m["hashes"] = hashes
	}
	if a.LegacyHash != nil {
		m["hash"] = a.LegacyHash.String()
	}
	return m
}

// ToMap returns the dir_info object. Editable is written as stored, not
// normalized, and omitted when nil.
func (d DirectoryInfo) ToMap() map[string]any {
	m := map[string]any{}
	if d.Editable != nil {
		m["editable"] = *d.Editable
	}
	return m
}

func (r VCSRecord) ToMap() map[string]any {
	return map[string]any{keyURL: r.URL, keyVCSInfo: r.VCSInfo.ToMap()}
}

func (r ArchiveRecord) ToMap() map[string]any {
	return map[string]any{keyURL: r.URL, keyArchiveInfo: r.ArchiveInfo.ToMap()}
}

func (r DirectoryRecord) ToMap() map[string]any {
	return map[string]any{keyURL: r.URL, keyDirInfo: r.DirInfo.ToMap()}
}

// JSON returns the canonical JSON encoding of the record.
func (r VCSRecord) JSON() string { return mustCanonical(r.ToMap()) }

// JSON returns the canonical JSON encoding of the record.
func (r ArchiveRecord) JSON() string { return mustCanonical(r.ToMap()) }

// JSON returns the canonical JSON encoding of the record.
func (r DirectoryRecord) JSON() string { return mustCanonical(r.ToMap()) }

// mustCanonical encodes maps built by ToMap, which only ever hold strings,
// booleans and nested maps.
func mustCanonical(m map[string]any) string {
	s, err := CanonicalJSON(m)
	if err != nil {
		panic(fmt.Sprintf("record: encoding own map: %v", err))
	}
	return s
}
