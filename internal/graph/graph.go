// Package graph implements the import/dependency graph orchestrator. It
// dispatches each
// candidate file to its language's ImportExtractor, resolves the raw
// references against the project file set, and assembles sorted
// GraphEntry records.
package graph

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/codescan/internal/analyzers"
	"github.com/standardbeagle/codescan/internal/content"
	"github.com/standardbeagle/codescan/internal/envelope"
	"github.com/standardbeagle/codescan/internal/pathnorm"
	"github.com/standardbeagle/codescan/internal/scanctx"
)

// Build resolves the import graph over files (absolute paths) rooted at
// root. The project file set P is exactly files, normalized to
// root-relative form. Entries are sorted by file; imports within an
// entry are deduplicated and sorted case-insensitively.
func Build(ctx *scanctx.Context, files []string, root string, registry *analyzers.Registry) ([]envelope.GraphEntry, error) {
	relPaths := make([]string, len(files))
	relSet := make(map[string]bool, len(files))
	for i, f := range files {
		rel := pathnorm.ToRelative(f, root)
		relPaths[i] = rel
		relSet[rel] = true
	}

	entries := make([]envelope.GraphEntry, 0, len(files))
	for i, f := range files {
		if ctx.Cancelled() {
			break
		}
		rel := relPaths[i]
		ext := strings.ToLower(filepath.Ext(f))
		extractor, ok := registry.ImportExtractorFor(ext)
		if !ok {
			continue
		}

		data, skip, err := content.ReadText(f)
		if err != nil || skip {
			continue
		}

		// f is passed (not rel) so analyzers that walk the filesystem
		// (the Go binding's go.mod lookup) resolve against real paths;
		// normalizeRefs brings whatever coordinate space each analyzer
		// returns back to root-relative before resolution.
		rawRefs := normalizeRefs(extractor.ExtractImports(data, f), root)
		imports := resolve(rawRefs, relSet, rel)

		entries = append(entries, envelope.GraphEntry{File: rel, Imports: imports})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	return entries, nil
}

// normalizeRefs converts each raw reference — which may be absolute
// (anything an analyzer derived from the absolute filePath it was
// given) or already root-relative (fixed-prefix guesses like Rust's
// "src/...") — into root-relative form, preserving a directory-form
// reference's trailing slash.
func normalizeRefs(refs []analyzers.ImportRef, root string) []analyzers.ImportRef {
	out := make([]analyzers.ImportRef, len(refs))
	for i, ref := range refs {
		r := string(ref)
		dir := ref.IsDir()
		if dir {
			r = strings.TrimSuffix(r, "/")
		}
		r = pathnorm.ToRelative(r, root)
		if dir {
			r += "/"
		}
		out[i] = analyzers.ImportRef(r)
	}
	return out
}

// resolve matches each raw reference against the project file set,
// deduplicating by resolved path while preserving first-occurrence
// order before the final sort.
func resolve(refs []analyzers.ImportRef, projectSet map[string]bool, self string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ref := range refs {
		r := string(ref)
		if ref.IsDir() {
			prefix := r
			for p := range projectSet {
				if p == self {
					continue
				}
				if strings.HasPrefix(p, prefix) && !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
			continue
		}
		clean := path.Clean(r)
		if clean == self {
			continue
		}
		if projectSet[clean] && !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}
