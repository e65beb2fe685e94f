package lines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codescan/internal/scanctx"
)

func TestParseSpec_SwapsReversedRange(t *testing.T) {
	s, err := ParseSpec("b.rs:10:8")
	require.NoError(t, err)
	require.Equal(t, "b.rs", s.Path)
	require.Equal(t, 8, s.Start)
	require.Equal(t, 10, s.End)
}

func TestParseSpec_PathWithColons(t *testing.T) {
	s, err := ParseSpec("C:/repo/a.rs:2:4")
	require.NoError(t, err)
	require.Equal(t, "C:/repo/a.rs", s.Path)
	require.Equal(t, 2, s.Start)
	require.Equal(t, 4, s.End)
}

func TestParseSpec_RejectsMalformed(t *testing.T) {
	_, err := ParseSpec("a.rs:1")
	require.Error(t, err)

	_, err = ParseSpec("a.rs:0:3")
	require.Error(t, err)

	_, err = ParseSpec("a.rs:x:3")
	require.Error(t, err)
}

func TestParseSpecs_SplitsWhitespaceAcrossValues(t *testing.T) {
	specs, err := ParseSpecs([]string{"a.rs:1:2 b.rs:3:4", "c.rs:5:6"})
	require.NoError(t, err)
	require.Len(t, specs, 3)
	require.Equal(t, "c.rs", specs[2].Path)
}

func TestExtract_ClampsOutOfRangeToFileBounds(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "b.rs")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\nfour\nfive\n"), 0o644))

	ctx := scanctx.New(root, false)
	entries := Extract(ctx, []Spec{{Path: "b.rs", Start: 8, End: 10}}, root, false)
	require.Len(t, entries, 1)
	require.Empty(t, entries[0].Error)
	require.Equal(t, "five", entries[0].Chunks[0].Content)
}

func TestExtract_EmptyFileIsOutOfBounds(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "empty.rs")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	ctx := scanctx.New(root, false)
	entries := Extract(ctx, []Spec{{Path: "empty.rs", Start: 1, End: 1}}, root, false)
	require.Len(t, entries, 1)
	require.Equal(t, "range out of bounds", entries[0].Error)
}

func TestExtract_BinaryFileSkipped(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte("ELF\x00\x00data"), 0o644))

	ctx := scanctx.New(root, false)
	entries := Extract(ctx, []Spec{{Path: "blob.bin", Start: 1, End: 2}}, root, false)
	require.Empty(t, entries)
}

func TestExtract_MissingFile(t *testing.T) {
	root := t.TempDir()
	ctx := scanctx.New(root, false)
	entries := Extract(ctx, []Spec{{Path: "nope.rs", Start: 1, End: 2}}, root, false)
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].Error, "File not found")
}

func TestExtract_GroupsAndMergesOverlappingRangesPerFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("l1\nl2\nl3\nl4\nl5\nl6\n"), 0o644))

	ctx := scanctx.New(root, false)
	entries := Extract(ctx, []Spec{
		{Path: "a.go", Start: 1, End: 2},
		{Path: "a.go", Start: 2, End: 3},
		{Path: "a.go", Start: 5, End: 5},
	}, root, true)

	require.Len(t, entries, 1)
	require.Len(t, entries[0].Chunks, 2)
	require.Equal(t, 1, entries[0].Chunks[0].StartLine)
	require.Equal(t, 3, entries[0].Chunks[0].EndLine)
	require.Equal(t, "1.  l1\n2.  l2\n3.  l3", entries[0].Chunks[0].Content)
	require.Equal(t, 5, entries[0].Chunks[1].StartLine)
	require.Equal(t, 5, entries[0].Chunks[1].EndLine)
}

func TestExtract_WholeFileCollapsesToContents(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	ctx := scanctx.New(root, false)
	entries := Extract(ctx, []Spec{{Path: "a.go", Start: 1, End: 2}}, root, false)
	require.Len(t, entries, 1)
	require.Empty(t, entries[0].Chunks)
	require.Equal(t, "one\ntwo", entries[0].Contents)
}
