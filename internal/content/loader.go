package content

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mmapThreshold is the size at or above which files are read via memory
// mapping rather than a single buffered read.
const mmapThreshold = 64 * 1024

// binarySampleSize is how much of a file's head is sampled for the
// binary-detection null-byte check.
const binarySampleSize = 8 * 1024

// loadedFile is a file's full content plus however it was obtained, so
// the caller can release mmap'd memory once done.
type loadedFile struct {
	data    []byte
	release func() error
}

// loadFile opens path and returns its full content: memory-mapped for
// files at or above mmapThreshold, a single buffered read otherwise.
// The caller must call release when finished with data.
func loadFile(path string) (loadedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return loadedFile{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return loadedFile{}, err
	}

	if info.Size() == 0 {
		return loadedFile{data: nil, release: func() error { return nil }}, nil
	}

	if info.Size() >= mmapThreshold {
		m, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return loadedFile{}, err
		}
		return loadedFile{data: m, release: func() error { return m.Unmap() }}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return loadedFile{}, err
	}
	return loadedFile{data: data, release: func() error { return nil }}, nil
}

// isBinary samples up to binarySampleSize bytes from data and reports
// whether a NUL byte appears within the sample.
func isBinary(data []byte) bool {
	sample := data
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	return bytes.IndexByte(sample, 0x00) != -1
}

// splitLines splits data on `\n`, stripping a trailing `\r` from each
// line. A trailing newline does not produce a spurious empty final
// line.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	raw := bytes.Split(data, []byte("\n"))
	if len(raw) > 0 && len(raw[len(raw)-1]) == 0 {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		if len(l) > 0 && l[len(l)-1] == '\r' {
			l = l[:len(l)-1]
		}
		lines[i] = string(l)
	}
	return lines
}
