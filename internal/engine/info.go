package engine

import (
	"sort"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/digest"
	"github.com/bianoble/direct-url/internal/dist"
)

// ConfigLayerStatus describes a config layer's load status for display.
type ConfigLayerStatus struct {
	Level  string // "system", "user", "project"
	Path   string
	Loaded bool
}

// SearchPathStatus describes one search path.
type SearchPathStatus struct {
	Path          string
	Distributions int
	Descriptors   int
	Err           error
}

// InfoResult holds tool information for the info command.
type InfoResult struct {
	Version        string
	ConfigPath     string
	ConfigChain    []ConfigLayerStatus
	SearchPaths    []SearchPathStatus
	HashAlgorithms []string
	Guaranteed     []string
	Output         string
}

// Info gathers tool information. Each search path is scanned on its own so
// that shadowed distributions are counted where they live.
func Info(version, configPath string, cfg *config.Config, layers []config.ConfigLayerInfo, searchPaths []string) *InfoResult {
	r := &InfoResult{
		Version:    version,
		ConfigPath: configPath,
		Guaranteed: guaranteedNames(),
	}

	for _, l := range layers {
		r.ConfigChain = append(r.ConfigChain, ConfigLayerStatus{
			Level:  string(l.Level),
			Path:   l.Path,
			Loaded: l.Loaded,
		})
	}

	if cfg != nil {
		r.HashAlgorithms = cfg.Algorithms()
		r.Output = cfg.OutputFormat()
	}

	for _, p := range searchPaths {
		st := SearchPathStatus{Path: p}
		dists, err := (&dist.Finder{Paths: []string{p}}).All()
		if err != nil {
			st.Err = err
			r.SearchPaths = append(r.SearchPaths, st)
			continue
		}
		st.Distributions = len(dists)
		for _, d := range dists {
			if _, ok, _ := d.ReadText(dist.MetadataName); ok {
				st.Descriptors++
			}
		}
		r.SearchPaths = append(r.SearchPaths, st)
	}

	return r
}

func guaranteedNames() []string {
	names := make([]string, 0, len(digest.Guaranteed))
	for name := range digest.Guaranteed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
