package budget

import (
	"path/filepath"
)

// MakeRelative shortens absolute paths for display. A single path becomes its
// base name; otherwise each path is made relative to root. Labels use forward
// slashes and start with "/".
func MakeRelative(paths []string, root string) []string {
	labels := make([]string, len(paths))

	if len(paths) == 1 {
		labels[0] = "/" + filepath.Base(paths[0])
		return labels
	}

	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			labels[i] = filepath.ToSlash(p)
			continue
		}
		labels[i] = "/" + filepath.ToSlash(rel)
	}

	return labels
}
