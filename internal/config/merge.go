package config

import (
	"fmt"
	"path/filepath"
)

// Merge combines two configs where overlay takes precedence over base:
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - search_paths: overlay entries first, then base entries not already listed
//   - output: overlay wins when set
//   - hash_algorithms: overlay replaces base when set
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.SearchPaths = mergeSearchPaths(base.SearchPaths, overlay.SearchPaths)

	result.Output = base.Output
	if overlay.Output != "" {
		result.Output = overlay.Output
	}

	result.HashAlgorithms = base.HashAlgorithms
	if len(overlay.HashAlgorithms) > 0 {
		result.HashAlgorithms = overlay.HashAlgorithms
	}

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d — all config layers must agree on version", base, overlay)
	}
	return nil
}

// mergeSearchPaths puts overlay paths first so higher-precedence layers are
// searched first.
func mergeSearchPaths(base, overlay []string) []string {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	var result []string
	seen := make(map[string]bool, len(base)+len(overlay))
	for _, group := range [][]string{overlay, base} {
		for _, p := range group {
			key := filepath.Clean(p)
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, p)
		}
	}
	return result
}
