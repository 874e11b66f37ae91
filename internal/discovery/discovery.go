// Package discovery locates store roots by walking from a starting directory
// up to the filesystem root.
package discovery

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultMarker is the directory name that marks a store root.
const DefaultMarker = ".sebas"

// Finder walks a filesystem looking for store-root marker directories.
type Finder struct {
	Fs     afero.Fs
	Marker string
}

// New returns a Finder over fs. An empty marker selects DefaultMarker.
func New(fs afero.Fs, marker string) *Finder {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Finder{Fs: fs, Marker: marker}
}

// Roots returns every store root found in start and its ancestors, nearest
// first. Finding none is not an error. The walk never creates anything.
func (f *Finder) Roots(start string) ([]string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolve %q: %w", start, err)
	}

	var roots []string
	for {
		candidate := filepath.Join(dir, f.Marker)
		ok, err := afero.DirExists(f.Fs, candidate)
		if err != nil {
			return nil, fmt.Errorf("discovery: stat %s: %w", candidate, err)
		}
		if ok {
			roots = append(roots, candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return roots, nil
}

// Nearest returns the store root closest to start, or ("", false) when no
// ancestor carries one.
func (f *Finder) Nearest(start string) (string, bool, error) {
	roots, err := f.Roots(start)
	if err != nil {
		return "", false, err
	}
	if len(roots) == 0 {
		return "", false, nil
	}
	return roots[0], true, nil
}
