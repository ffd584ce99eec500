package record

import (
	"encoding/json"
	"fmt"
	"os"
)

// Top-level keys. The info keys select the variant.
const (
	keyURL         = "url"
	keyArchiveInfo = "archive_info"
	keyDirInfo     = "dir_info"
	keyVCSInfo     = "vcs_info"
)

// ParseJSON decodes data and parses the resulting object.
func ParseJSON(data []byte) (Record, error) {
	return Decode(data, "<input>")
}

// ParseFile reads and parses a direct_url.json file.
func ParseFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode is ParseJSON with source naming the origin of data in syntax errors.
func Decode(data []byte, source string) (Record, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &SyntaxError{Source: source, Err: err}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", source, invalid("<root>", "must be a JSON object"))
	}
	rec, err := Parse(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return rec, nil
}

// Parse builds a record from a decoded JSON object.
//
// The first of archive_info, dir_info and vcs_info present in m selects the
// variant. When none is present Parse returns nil, nil: the mapping has no
// known shape, which is not an error.
func Parse(m map[string]any) (Record, error) {
	if raw, ok := m[keyArchiveInfo]; ok {
		return parseArchive(m, raw)
	}
	if raw, ok := m[keyDirInfo]; ok {
		return parseDirectory(m, raw)
	}
	if raw, ok := m[keyVCSInfo]; ok {
		return parseVCS(m, raw)
	}
	return nil, nil
}

func parseArchive(m map[string]any, raw any) (Record, error) {
	url, err := requiredString(m, keyURL, keyURL)
	if err != nil {
		return nil, err
	}
	info, err := object(raw, keyArchiveInfo)
	if err != nil {
		return nil, err
	}

	hashes, err := stringMap(info, "hashes", keyArchiveInfo+".hashes")
	if err != nil {
		return nil, err
	}

	legacy, err := optionalString(info, "hash", keyArchiveInfo+".hash")
	if err != nil {
		return nil, err
	}
	var pair *HashPair
	if legacy != nil && *legacy != "" {
		hp, ok := ParseHashPair(*legacy)
		if !ok {
			return nil, invalid(keyArchiveInfo+".hash", "must have the form <algorithm>=<value>")
		}
		pair = &hp
	}

	return &ArchiveRecord{
		URL:         url,
		ArchiveInfo: ArchiveInfo{Hashes: hashes, LegacyHash: pair},
	}, nil
}

func parseDirectory(m map[string]any, raw any) (Record, error) {
	url, err := requiredString(m, keyURL, keyURL)
	if err != nil {
		return nil, err
	}
	info, err := object(raw, keyDirInfo)
	if err != nil {
		return nil, err
	}

	var editable *bool
	if v, ok := info["editable"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, invalid(keyDirInfo+".editable", "must be a boolean")
		}
		editable = &b
	}

	return &DirectoryRecord{
		URL:     url,
		DirInfo: DirectoryInfo{Editable: editable},
	}, nil
}

func parseVCS(m map[string]any, raw any) (Record, error) {
	url, err := requiredString(m, keyURL, keyURL)
	if err != nil {
		return nil, err
	}
	info, err := object(raw, keyVCSInfo)
	if err != nil {
		return nil, err
	}

	var vi VCSInfo
	if vi.VCS, err = requiredString(info, "vcs", keyVCSInfo+".vcs"); err != nil {
		return nil, err
	}
	if vi.CommitID, err = requiredString(info, "commit_id", keyVCSInfo+".commit_id"); err != nil {
		return nil, err
	}
	if vi.RequestedRevision, err = optionalString(info, "requested_revision", keyVCSInfo+".requested_revision"); err != nil {
		return nil, err
	}
	if vi.ResolvedRevision, err = optionalString(info, "resolved_revision", keyVCSInfo+".resolved_revision"); err != nil {
		return nil, err
	}
	if vi.ResolvedRevisionType, err = optionalString(info, "resolved_revision_type", keyVCSInfo+".resolved_revision_type"); err != nil {
		return nil, err
	}

	return &VCSRecord{URL: url, VCSInfo: vi}, nil
}

func object(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(path, "must be a JSON object")
	}
	return obj, nil
}

func requiredString(obj map[string]any, key, path string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", missing(path)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(path, "must be a string")
	}
	return s, nil
}

func optionalString(obj map[string]any, key, path string) (*string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalid(path, "must be a string")
	}
	return &s, nil
}

// stringMap returns nil when the key is absent or null, and a non-nil map
// (possibly empty) otherwise.
func stringMap(obj map[string]any, key, path string) (map[string]string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch raw := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(raw))
		for k, s := range raw {
			out[k] = s
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(raw))
		for k, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(path+"."+k, "must be a string")
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, invalid(path, "must be a JSON object")
	}
}
