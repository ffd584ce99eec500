// Package dist reads and writes direct_url.json inside the metadata directory
// of an installed distribution (its <name>-<version>.dist-info directory).
package dist

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bianoble/direct-url/internal/record"
	"github.com/bianoble/direct-url/internal/sandbox"
)

// MetadataName is the file name of the direct URL descriptor.
const MetadataName = "direct_url.json"

const (
	distInfoSuffix = ".dist-info"
	manifestName   = "METADATA"
)

// Distribution is an installed distribution's metadata directory.
type Distribution interface {
	// Name is the project name as recorded by the installer.
	Name() string

	// Version is the installed version, empty if unknown.
	Version() string

	// Path is the metadata directory.
	Path() string

	// ReadText returns the content of a file in the metadata directory.
	// The bool is false when the file does not exist.
	ReadText(name string) (string, bool, error)

	// WriteText replaces a file in the metadata directory and returns the
	// number of bytes written.
	WriteText(name, text string) (int, error)
}

// PathDistribution is a Distribution backed by a directory on disk.
type PathDistribution struct {
	path    string
	name    string
	version string
}

// Open returns the distribution whose metadata lives in path. Name and
// version come from the METADATA headers when present and from the
// directory name otherwise.
func Open(path string) (*PathDistribution, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving metadata directory %s: %w", path, err)
	}

	d := &PathDistribution{path: abs}
	d.name, d.version = splitDistInfo(filepath.Base(abs))

	text, ok, err := d.ReadText(manifestName)
	if err != nil {
		return nil, err
	}
	if ok {
		if name, version := manifestHeaders(text); name != "" {
			d.name = name
			if version != "" {
				d.version = version
			}
		}
	}

	return d, nil
}

func (d *PathDistribution) Name() string    { return d.name }
func (d *PathDistribution) Version() string { return d.version }
func (d *PathDistribution) Path() string    { return d.path }

func (d *PathDistribution) ReadText(name string) (string, bool, error) {
	data, ok, err := sandbox.SafeRead(d.path, name)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(data), true, nil
}

func (d *PathDistribution) WriteText(name, text string) (int, error) {
	return sandbox.SafeWrite(d.path, name, []byte(text), 0644)
}

// Remove deletes a file from the metadata directory. It reports whether a
// file was removed.
func (d *PathDistribution) Remove(name string) (bool, error) {
	return sandbox.SafeRemove(d.path, name)
}

func (d *PathDistribution) String() string {
	if d.version == "" {
		return d.name
	}
	return d.name + " " + d.version
}

// Read parses the direct URL descriptor of d.
//
// The bool is false when d has no descriptor or an empty one, which is not
// an error. A descriptor of no known shape yields a nil record with the bool
// set.
func Read(d Distribution) (record.Record, bool, error) {
	text, ok, err := d.ReadText(MetadataName)
	if err != nil {
		return nil, false, err
	}
	if !ok || text == "" {
		return nil, false, nil
	}

	rec, err := record.Decode([]byte(text), filepath.Join(d.Path(), MetadataName))
	if err != nil {
		return nil, true, err
	}
	return rec, true, nil
}

// Write stores v as the direct URL descriptor of d. v is a record or an
// object already in mapping form; it is encoded with record.CanonicalJSON.
func Write(d Distribution, v any) (int, error) {
	text, err := record.CanonicalJSON(v)
	if err != nil {
		return 0, err
	}
	n, err := d.WriteText(MetadataName, text)
	if err != nil {
		return 0, fmt.Errorf("writing %s for %s: %w", MetadataName, d.Name(), err)
	}
	return n, nil
}

// splitDistInfo splits "<name>-<version>.dist-info". Names never contain "-"
// in a conformant directory name, so the first "-" separates the two.
func splitDistInfo(base string) (string, string) {
	stem := strings.TrimSuffix(base, distInfoSuffix)
	name, version, _ := strings.Cut(stem, "-")
	return name, version
}

// manifestHeaders returns the Name and Version headers of a METADATA file.
// Headers end at the first blank line.
func manifestHeaders(text string) (name, version string) {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			if name == "" {
				name = strings.TrimSpace(value)
			}
		case "version":
			if version == "" {
				version = strings.TrimSpace(value)
			}
		}
	}
	return name, version
}
