package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindByExtension walks root and returns every file whose name ends in
// "."+ext. Traversal order is the filesystem's; callers must not depend on
// anything beyond set membership. No matches is an empty slice, never an
// error.
func FindByExtension(root, ext string) []string {
	suffix := "." + ext
	return find(root, func(name string) bool { return strings.HasSuffix(name, suffix) })
}

// FindByName walks root and returns every file named exactly fname.
func FindByName(root, fname string) []string {
	return find(root, func(name string) bool { return name == fname })
}

func find(root string, match func(string) bool) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, never fatal.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if match(d.Name()) {
			out = append(out, path)
		}
		return nil
	})
	return out
}
