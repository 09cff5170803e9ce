package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/leeforge/modkit/errors"
	"github.com/spf13/afero"
)

// Suffixes recognised by Discover.
var manifestSuffixes = []string{".plugin.json", ".plugin.yaml", ".plugin.yml"}

// IsManifest reports whether a file name looks like a plugin manifest.
func IsManifest(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range manifestSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// Discover loads every manifest under dir, sorted by path. A missing
// directory yields no manifests. Two manifests with the same IID are an
// error; the first one found is kept.
func Discover(fs afero.Fs, dir string) ([]Manifest, error) {
	if ok, err := afero.DirExists(fs, dir); err != nil || !ok {
		return nil, nil
	}

	var paths []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsManifest(info.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "walk "+dir)
	}
	sort.Strings(paths)

	chain := apperrors.NewErrorChain()
	seen := make(map[string]string, len(paths))
	out := make([]Manifest, 0, len(paths))
	for _, path := range paths {
		m, err := Load(fs, path)
		if err != nil {
			chain.Add(err)
			continue
		}
		if prev, dup := seen[m.IID]; dup {
			chain.Add(apperrors.NewConflict("manifest", m.IID).
				WithDetail("path", filepath.ToSlash(path)).
				WithDetail("first", filepath.ToSlash(prev)))
			continue
		}
		seen[m.IID] = path
		out = append(out, m)
	}
	return out, chain.Err()
}

// Enabled filters out disabled manifests.
func Enabled(ms []Manifest) []Manifest {
	out := make([]Manifest, 0, len(ms))
	for _, m := range ms {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}
