// Package stats implements the stats aggregator: per-extension and
// aggregate codebase statistics over a set of files.
package stats

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/standardbeagle/codescan/internal/envelope"
	"github.com/standardbeagle/codescan/internal/pathnorm"
	"github.com/standardbeagle/codescan/internal/scanctx"
)

// mmapThreshold matches the content processor's read-strategy cutoff;
// large files are newline-counted through the mapping.
const mmapThreshold = 64 * 1024

// Compute aggregates byte size and newline-counted line count per file,
// grouping by lowercased extension, and returns the languages list
// (sorted by lines descending, extension ascending on ties), grand
// totals, and the 10 largest files by byte size.
func Compute(ctx *scanctx.Context, files []string, root string) (*envelope.StatsResult, error) {
	type langAgg struct {
		files int
		lines int64
		bytes int64
	}
	langs := make(map[string]*langAgg)
	var largest []envelope.LargestFile
	var totalFiles int
	var totalLines, totalBytes int64

	for _, f := range files {
		if ctx.Cancelled() {
			break
		}
		size, lineCount, err := fileStats(f)
		if err != nil {
			continue
		}

		ext := strings.ToLower(filepath.Ext(f))
		agg, ok := langs[ext]
		if !ok {
			agg = &langAgg{}
			langs[ext] = agg
		}
		agg.files++
		agg.lines += lineCount
		agg.bytes += size

		totalFiles++
		totalLines += lineCount
		totalBytes += size

		largest = append(largest, envelope.LargestFile{Path: pathnorm.ToRelative(f, root), Bytes: size})
	}

	languages := make([]envelope.LanguageStats, 0, len(langs))
	for ext, agg := range langs {
		languages = append(languages, envelope.LanguageStats{
			Extension: strings.TrimPrefix(ext, "."),
			Files:     agg.files,
			Lines:     agg.lines,
			Bytes:     agg.bytes,
		})
	}
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Lines != languages[j].Lines {
			return languages[i].Lines > languages[j].Lines
		}
		return languages[i].Extension < languages[j].Extension
	})

	sort.Slice(largest, func(i, j int) bool {
		if largest[i].Bytes != largest[j].Bytes {
			return largest[i].Bytes > largest[j].Bytes
		}
		return largest[i].Path < largest[j].Path
	})
	if len(largest) > 10 {
		largest = largest[:10]
	}

	return &envelope.StatsResult{
		Languages: languages,
		Totals:    envelope.Totals{Files: totalFiles, Lines: totalLines, Bytes: totalBytes},
		Largest:   largest,
	}, nil
}

// fileStats returns a file's byte size (from metadata) and its line
// count, counted conservatively as the number of `\n` bytes in the raw
// content. Binary files are counted like any other; no binary sniffing
// here.
func fileStats(path string) (size int64, lines int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}
	size = info.Size()
	if size == 0 {
		return 0, 0, nil
	}

	if size >= mmapThreshold {
		m, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return size, 0, err
		}
		defer m.Unmap()
		return size, countNewlines(m), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return size, 0, err
	}
	return size, countNewlines(data), nil
}

func countNewlines(data []byte) int64 {
	var n int64
	rest := data
	for {
		idx := bytes.IndexByte(rest, '\n')
		if idx == -1 {
			break
		}
		n++
		rest = rest[idx+1:]
	}
	return n
}
