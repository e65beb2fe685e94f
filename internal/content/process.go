// Package content implements the bounded-concurrency search/count
// pipeline over a set of candidate files.
package content

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/codescan/internal/envelope"
	"github.com/standardbeagle/codescan/internal/pathnorm"
	"github.com/standardbeagle/codescan/internal/rangemerge"
	"github.com/standardbeagle/codescan/internal/scanctx"
	"github.com/standardbeagle/codescan/internal/scanerrors"
)

// searchWorkerLimit bounds content-search parallelism at 2x the host's
// logical processor count, distinct from the tree scanner's 1x pool.
func searchWorkerLimit() int {
	n := runtime.GOMAXPROCS(0) * 2
	if n < 1 {
		n = 1
	}
	return n
}

// Mode selects between emitting matched content (Search) and counting
// matching lines per file (Count).
type Mode int

const (
	ModeSearch Mode = iota
	ModeCount
)

// Options configures a content-processing run.
type Options struct {
	Matcher           Matcher
	Pad               int
	LineNumbers       bool
	Mode              Mode
	IncludeZeroCounts bool // count mode: emit {path, count: 0} entries too
}

// Process runs opts over paths (already root-relative-ordered candidate
// absolute paths) and returns the resulting FileEntry list (sorted
// case-insensitively by path) plus the sum of all per-file match counts.
func Process(ctx *scanctx.Context, paths []string, root string, opts Options) ([]envelope.FileEntry, int, error) {
	entries := make([]*envelope.FileEntry, len(paths))
	totals := make([]int, len(paths))

	g := &errgroup.Group{}
	g.SetLimit(searchWorkerLimit())

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if ctx.Cancelled() {
				return nil
			}
			entry, count, skip := processOne(ctx, p, root, opts)
			if skip {
				return nil
			}
			entries[i] = entry
			totals[i] = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var out []envelope.FileEntry
	var totalMatches int
	for i, e := range entries {
		if e == nil {
			continue
		}
		out = append(out, *e)
		totalMatches += totals[i]
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Path) < strings.ToLower(out[j].Path)
	})

	return out, totalMatches, nil
}

// processOne runs the per-file pipeline: load, binary sniff, match,
// merge ranges, render chunks. skip is true when the file contributes
// no FileEntry at all (empty, binary, or a no-match search).
func processOne(ctx *scanctx.Context, path, root string, opts Options) (entry *envelope.FileEntry, matchCount int, skip bool) {
	relPath := pathnorm.ToRelative(path, root)

	lf, err := loadFile(path)
	if err != nil {
		return &envelope.FileEntry{Path: relPath, Error: scanerrors.NewFileError("open", relPath, err).Error()}, 0, false
	}
	defer lf.release()

	if len(lf.data) == 0 {
		return nil, 0, true
	}
	if isBinary(lf.data) {
		return nil, 0, true
	}

	lines := splitLines(lf.data)
	n := len(lines)

	var matchIdx []int
	for i, line := range lines {
		if opts.Matcher.Match(line) {
			matchIdx = append(matchIdx, i)
		}
	}

	if opts.Mode == ModeCount {
		if len(matchIdx) == 0 && !opts.IncludeZeroCounts {
			return nil, 0, true
		}
		count := len(matchIdx)
		return &envelope.FileEntry{Path: relPath, Count: &count}, count, false
	}

	if len(matchIdx) == 0 {
		return nil, 0, true
	}

	intervals := rangemerge.Merge(matchIdx, opts.Pad, n)
	chunks := renderChunks(ctx, lines, intervals, opts.LineNumbers)

	result := &envelope.FileEntry{Path: relPath}
	if len(chunks) == 1 && chunks[0].StartLine == 1 && chunks[0].EndLine == n {
		result.Contents = chunks[0].Content
	} else {
		result.Chunks = chunks
	}

	return result, len(matchIdx), false
}

// renderChunks renders the lines of each interval into a chunk,
// optionally prefixing each emitted line with its 1-based line number.
// Cancellation is polled between chunks; whatever was rendered so far is
// returned.
func renderChunks(ctx *scanctx.Context, lines []string, intervals []rangemerge.Interval, lineNumbers bool) []envelope.FileChunk {
	chunks := make([]envelope.FileChunk, 0, len(intervals))
	for _, iv := range intervals {
		if ctx.Cancelled() {
			break
		}
		var b strings.Builder
		for ln := iv.Start; ln <= iv.End; ln++ {
			if lineNumbers {
				b.WriteString(fmt.Sprintf("%d.  ", ln+1))
			}
			b.WriteString(lines[ln])
			if ln != iv.End {
				b.WriteByte('\n')
			}
		}
		chunks = append(chunks, envelope.FileChunk{
			StartLine: iv.Start + 1,
			EndLine:   iv.End + 1,
			Content:   b.String(),
		})
	}
	return chunks
}
