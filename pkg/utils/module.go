package utils

import (
	"path/filepath"
	"strings"
)

// sourceRootMarkers are the directory suffixes tried, in order, when the
// source root has to be inferred from a file path.
var sourceRootMarkers = []string{"/src/python/", "/src/"}

// InferSourceRoot guesses the source root from an absolute path by looking
// for the nearest src/python (then src) ancestor. It returns "" when the path
// has neither.
func InferSourceRoot(absPath string) string {
	slashed := filepath.ToSlash(absPath)
	if !strings.HasSuffix(slashed, "/") {
		slashed += "/"
	}
	for _, marker := range sourceRootMarkers {
		if i := strings.LastIndex(slashed, marker); i >= 0 {
			return filepath.FromSlash(slashed[:i+len(marker)-1])
		}
	}
	return ""
}

// PackageName returns the dotted Python package of the file at filePath,
// relative to srcRoot. Both paths must be absolute. A file directly under
// srcRoot, or outside of it, has no package.
func PackageName(srcRoot, filePath string) string {
	rel, err := filepath.Rel(srcRoot, filepath.Dir(filePath))
	if err != nil || rel == "." {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return strings.ReplaceAll(rel, "/", ".")
}
