package params

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
)

// manifestExtensions are the filename extensions treated as manifests during
// discovery.
var manifestExtensions = []string{".yaml", ".yml"}

// IsManifestPath reports whether the path looks like a manifest file by
// extension.
func IsManifestPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range manifestExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Discover expands a mixed list of files and directories into the manifest
// files beneath them. Directories are walked recursively; hidden directories
// are skipped; results are absolute, de-duplicated, and sorted so batch
// output is stable.
func Discover(paths ...string) ([]string, error) {
	var found []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.ResourceNotFound, "cannot discover manifests"),
				errors.Fields{"path": path})
		}

		if !info.IsDir() {
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, errors.Wrap(err, errors.Unknown, "cannot resolve manifest path")
			}
			found = append(found, abs)
			continue
		}

		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				// Unreadable subtrees are skipped, not fatal.
				return nil
			}
			if fi.IsDir() {
				if name := filepath.Base(p); strings.HasPrefix(name, ".") && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if !IsManifestPath(p) {
				return nil
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			found = append(found, abs)
			return nil
		})
		if err != nil {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.Unknown, "cannot walk directory"),
				errors.Fields{"path": path})
		}
	}

	found = dedupe(found)
	sort.Strings(found)
	return found, nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
