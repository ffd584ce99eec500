package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/engine"
	"github.com/bianoble/direct-url/internal/record"
)

// summaryView is the structured form of engine.Summary.
type summaryView struct {
	Name       string            `json:"name" yaml:"name" toml:"name"`
	Version    string            `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Path       string            `json:"path" yaml:"path" toml:"path"`
	Present    bool              `json:"present" yaml:"present" toml:"present"`
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	URL        string            `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
	Editable   bool              `json:"editable,omitempty" yaml:"editable,omitempty" toml:"editable,omitempty"`
	CommitID   string            `json:"commit_id,omitempty" yaml:"commit_id,omitempty" toml:"commit_id,omitempty"`
	Hashes     map[string]string `json:"hashes,omitempty" yaml:"hashes,omitempty" toml:"hashes,omitempty"`
	SecureHash bool              `json:"secure_hash,omitempty" yaml:"secure_hash,omitempty" toml:"secure_hash,omitempty"`
	PURL       string            `json:"purl" yaml:"purl" toml:"purl"`
	Record     map[string]any    `json:"record,omitempty" yaml:"record,omitempty" toml:"record,omitempty"`
}

func newSummaryView(s *engine.Summary) summaryView {
	v := summaryView{
		Name:       s.Name,
		Version:    s.Version,
		Path:       s.Path,
		Present:    s.Present,
		Kind:       string(s.Kind),
		URL:        s.URL,
		Editable:   s.Editable,
		CommitID:   s.Commit,
		Hashes:     s.Hashes,
		SecureHash: s.SecureHash,
		PURL:       s.PURL,
	}
	if s.Record != nil {
		v.Record = s.Record.ToMap()
	}
	return v
}

// listView wraps list entries so every format has a top-level table.
type listView struct {
	Distributions []summaryView `json:"distributions" yaml:"distributions" toml:"distributions"`
	Errors        []string      `json:"errors,omitempty" yaml:"errors,omitempty" toml:"errors,omitempty"`
}

// render writes v to w in a structured format.
func render(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputTOML:
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("format %s is not structured", format)
	}
}

// renderRecord writes a parsed descriptor. JSON and text use the canonical
// encoding; yaml and toml encode its mapping form.
func renderRecord(w io.Writer, format string, rec record.Record) error {
	switch format {
	case config.OutputJSON, config.OutputText:
		_, err := fmt.Fprintln(w, rec.JSON())
		return err
	default:
		return render(w, format, rec.ToMap())
	}
}
