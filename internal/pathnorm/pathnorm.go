// Package pathnorm converts absolute filesystem paths into
// root-relative, forward-slash paths: the one representation every
// section of the envelope uses.
package pathnorm

import (
	"path/filepath"
	"strings"
)

// ToRelative converts absPath to a path relative to root, with `/` as
// the separator. Idempotent: calling it again on its own output (which
// is already relative) returns the input unchanged.
func ToRelative(absPath, root string) string {
	if absPath == "" || root == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return filepath.ToSlash(absPath)
	}

	cleanAbs := filepath.Clean(absPath)
	cleanRoot := filepath.Clean(root)

	rel, err := filepath.Rel(cleanRoot, cleanAbs)
	if err != nil {
		return filepath.ToSlash(cleanAbs)
	}
	if strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(cleanAbs)
	}
	return filepath.ToSlash(rel)
}
