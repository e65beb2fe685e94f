// Package lines implements the line extractor: pulling exact, known
// line ranges out of a set of files, independent of any pattern match.
package lines

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/standardbeagle/codescan/internal/content"
	"github.com/standardbeagle/codescan/internal/envelope"
	"github.com/standardbeagle/codescan/internal/pathnorm"
	"github.com/standardbeagle/codescan/internal/rangemerge"
	"github.com/standardbeagle/codescan/internal/scanctx"
	"github.com/standardbeagle/codescan/internal/scanerrors"
)

// Spec is one `path:start:end` range request (1-based, inclusive).
type Spec struct {
	Path  string
	Start int
	End   int
}

// ParseSpec parses one "path:start:end" token. The path itself may
// contain colons, so only the trailing two fields are treated as line
// numbers. Malformed input (fewer than 3 fields, non-integer or
// non-positive line numbers) is a user error.
func ParseSpec(raw string) (Spec, error) {
	fields := strings.Split(raw, ":")
	if len(fields) < 3 {
		return Spec{}, scanerrors.NewConfigError(scanerrors.KindInvalid, fmt.Sprintf("invalid line spec %q: expected path:start:end", raw), nil)
	}
	path := strings.Join(fields[:len(fields)-2], ":")
	startStr, endStr := fields[len(fields)-2], fields[len(fields)-1]

	start, errS := strconv.Atoi(startStr)
	end, errE := strconv.Atoi(endStr)
	if path == "" || errS != nil || errE != nil || start <= 0 || end <= 0 {
		return Spec{}, scanerrors.NewConfigError(scanerrors.KindInvalid, fmt.Sprintf("invalid line spec %q: expected path:start:end with positive integers", raw), nil)
	}

	if start > end {
		start, end = end, start
	}
	return Spec{Path: path, Start: start, End: end}, nil
}

// ParseSpecs splits the space-separated contents of one or more --lines
// flag values into individual Spec tokens.
func ParseSpecs(raws []string) ([]Spec, error) {
	var specs []Spec
	for _, raw := range raws {
		for _, tok := range strings.Fields(raw) {
			s, err := ParseSpec(tok)
			if err != nil {
				return nil, err
			}
			specs = append(specs, s)
		}
	}
	return specs, nil
}

// Extract resolves each spec against root and returns one FileEntry per
// distinct file (specs naming the same file are grouped), with
// overlapping/adjacent ranges merged and chunks rendered in ascending
// start-line order.
func Extract(ctx *scanctx.Context, specs []Spec, root string, lineNumbers bool) []envelope.FileEntry {
	byPath := make(map[string][]Spec)
	var order []string
	for _, s := range specs {
		abs := filepath.Join(root, filepath.FromSlash(s.Path))
		if _, ok := byPath[abs]; !ok {
			order = append(order, abs)
		}
		byPath[abs] = append(byPath[abs], s)
	}

	entries := make([]envelope.FileEntry, 0, len(order))
	for _, abs := range order {
		if ctx.Cancelled() {
			break
		}
		entry, skip := extractFile(abs, byPath[abs], root, lineNumbers)
		if skip {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func extractFile(absPath string, specs []Spec, root string, lineNumbers bool) (envelope.FileEntry, bool) {
	relPath := pathnorm.ToRelative(absPath, root)

	fileLines, binary, err := content.ReadLines(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return envelope.FileEntry{Path: relPath, Error: fmt.Sprintf("File not found: %s", relPath)}, false
		}
		return envelope.FileEntry{Path: relPath, Error: scanerrors.NewFileError("read", relPath, err).Error()}, false
	}
	if binary {
		return envelope.FileEntry{}, true
	}

	n := len(fileLines)
	if n == 0 {
		return envelope.FileEntry{Path: relPath, Error: "range out of bounds"}, false
	}
	var matchIdx []int
	for _, s := range specs {
		end := s.End
		if end > n {
			end = n
		}
		start := s.Start
		if start > end {
			start = end
		}
		for i := start - 1; i < end; i++ {
			matchIdx = append(matchIdx, i)
		}
	}
	sort.Ints(matchIdx)
	matchIdx = dedupeSorted(matchIdx)

	intervals := rangemerge.Merge(matchIdx, 0, n)
	chunks := make([]envelope.FileChunk, 0, len(intervals))
	for _, iv := range intervals {
		var b strings.Builder
		for ln := iv.Start; ln <= iv.End; ln++ {
			if lineNumbers {
				fmt.Fprintf(&b, "%d.  ", ln+1)
			}
			b.WriteString(fileLines[ln])
			if ln != iv.End {
				b.WriteByte('\n')
			}
		}
		chunks = append(chunks, envelope.FileChunk{StartLine: iv.Start + 1, EndLine: iv.End + 1, Content: b.String()})
	}

	entry := envelope.FileEntry{Path: relPath}
	if len(chunks) == 1 && chunks[0].StartLine == 1 && chunks[0].EndLine == n {
		entry.Contents = chunks[0].Content
	} else {
		entry.Chunks = chunks
	}
	return entry, false
}

func dedupeSorted(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
