package dist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrNotFound is returned when no installed distribution matches a name.
var ErrNotFound = errors.New("distribution not found")

// NotFoundError wraps ErrNotFound with the name and the paths searched.
type NotFoundError struct {
	Name  string
	Paths []string
}

func (e *NotFoundError) Error() string {
	if len(e.Paths) == 0 {
		return fmt.Sprintf("distribution '%s' not found — no search paths configured", e.Name)
	}
	return fmt.Sprintf("distribution '%s' not found in %s", e.Name, strings.Join(e.Paths, string(os.PathListSeparator)))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

var separatorRuns = regexp.MustCompile(`[-_.]+`)

// NormalizeName lowercases a project name and collapses runs of "-", "_"
// and "." into a single "-".
func NormalizeName(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(strings.TrimSpace(name), "-"))
}

// Finder locates installed distributions in an ordered list of directories
// (site-packages and similar). Earlier paths shadow later ones.
type Finder struct {
	Paths []string
}

// Find returns the first distribution whose normalized name matches name.
func (f *Finder) Find(name string) (*PathDistribution, error) {
	want := NormalizeName(name)
	for _, dir := range f.Paths {
		candidates, err := distInfoDirs(dir)
		if err != nil {
			return nil, err
		}
		for _, path := range candidates {
			stem, _ := splitDistInfo(filepath.Base(path))
			if NormalizeName(stem) != want {
				continue
			}
			return Open(path)
		}
	}
	return nil, &NotFoundError{Name: name, Paths: f.Paths}
}

// All returns every distribution across the search paths, sorted by
// normalized name. When a name appears in several paths the first wins.
func (f *Finder) All() ([]*PathDistribution, error) {
	seen := make(map[string]bool)
	var out []*PathDistribution

	for _, dir := range f.Paths {
		candidates, err := distInfoDirs(dir)
		if err != nil {
			return nil, err
		}
		for _, path := range candidates {
			stem, _ := splitDistInfo(filepath.Base(path))
			key := NormalizeName(stem)
			if seen[key] {
				continue
			}
			seen[key] = true

			d, err := Open(path)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return NormalizeName(out[i].Name()) < NormalizeName(out[j].Name())
	})
	return out, nil
}

// distInfoDirs lists the *.dist-info directories directly under dir, sorted.
// A missing dir yields no entries.
func distInfoDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), distInfoSuffix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path) // follows symlinks
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, path)
	}
	return out, nil
}
