package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codescan/internal/scanctx"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProcess_SearchFindsAndPadsMatches(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	writeFile(t, path, "line1\nline2\nTARGET\nline4\nline5\n")

	matcher, err := NewMatcher("target", false)
	require.NoError(t, err)

	ctx := scanctx.New(root, false)
	entries, total, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Pad: 1, Mode: ModeSearch})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, entries, 1)
	require.Equal(t, "a.go", entries[0].Path)
	require.Len(t, entries[0].Chunks, 1)
	require.Equal(t, 2, entries[0].Chunks[0].StartLine)
	require.Equal(t, 4, entries[0].Chunks[0].EndLine)
	require.Equal(t, "line2\nTARGET\nline4", entries[0].Chunks[0].Content)
}

func TestProcess_WholeFileCollapse(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	writeFile(t, path, "one\ntwo\nthree\n")

	matcher, err := NewMatcher("two", false)
	require.NoError(t, err)

	ctx := scanctx.New(root, false)
	entries, _, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Pad: 5, Mode: ModeSearch})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Empty(t, entries[0].Chunks)
	require.Equal(t, "one\ntwo\nthree", entries[0].Contents)
}

func TestProcess_LineNumberPrefix(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	writeFile(t, path, "alpha\nbeta\ngamma\ndelta\nepsilon\n")

	matcher, err := NewMatcher("gamma", false)
	require.NoError(t, err)

	ctx := scanctx.New(root, false)
	entries, _, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Pad: 0, Mode: ModeSearch, LineNumbers: true})
	require.NoError(t, err)
	require.Equal(t, "3.  gamma", entries[0].Chunks[0].Content)
}

func TestProcess_BinaryFileSkipped(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.bin")
	writeFile(t, path, "PNG\x00\x00\x00content")

	matcher, err := NewMatcher("content", false)
	require.NoError(t, err)

	ctx := scanctx.New(root, false)
	entries, total, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Mode: ModeSearch})
	require.NoError(t, err)
	require.Empty(t, entries)
	require.Equal(t, 0, total)
}

func TestProcess_CountModeSuppressesZeroByDefault(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	writeFile(t, path, "nothing here\n")

	matcher, err := NewMatcher("missing", false)
	require.NoError(t, err)

	ctx := scanctx.New(root, false)
	entries, _, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Mode: ModeCount})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestProcess_CountModeIncludesZeroWhenRequested(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	writeFile(t, path, "nothing here\n")

	matcher, err := NewMatcher("missing", false)
	require.NoError(t, err)

	ctx := scanctx.New(root, false)
	entries, _, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Mode: ModeCount, IncludeZeroCounts: true})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Count)
	require.Equal(t, 0, *entries[0].Count)
}

func TestNewMatcher_MultiTermSplitsOnPipe(t *testing.T) {
	m, err := NewMatcher("foo | BAR", false)
	require.NoError(t, err)
	require.True(t, m.Match("this has bar in it"))
	require.True(t, m.Match("this has FOO in it"))
	require.False(t, m.Match("neither term"))
}

func TestNewMatcher_RegexCaseInsensitive(t *testing.T) {
	m, err := NewMatcher("^func [A-Z]", true)
	require.NoError(t, err)
	require.True(t, m.Match("FUNC Example"))
}

func TestNewMatcher_InvalidRegexIsUserError(t *testing.T) {
	_, err := NewMatcher("(unclosed", true)
	require.Error(t, err)
}

func TestSplitLines_NoTrailingEmptyLine(t *testing.T) {
	lines := splitLines([]byte("a\nb\nc\n"))
	require.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestSplitLines_StripsCarriageReturn(t *testing.T) {
	lines := splitLines([]byte("a\r\nb\r\n"))
	require.Equal(t, []string{"a", "b"}, lines)
}

func TestIsBinary_NullByteInSample(t *testing.T) {
	require.True(t, isBinary([]byte{0x41, 0x00, 0x42}))
	require.False(t, isBinary([]byte("plain text")))
}

func TestLoadFile_EmptyFileSkipped(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "empty.go")
	writeFile(t, path, "")

	matcher, err := NewMatcher("x", false)
	require.NoError(t, err)
	ctx := scanctx.New(root, false)
	entries, _, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Mode: ModeSearch})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLoadFile_LargeFileUsesMmapPath(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "large.go")
	content := strings.Repeat("filler line of text\n", 5000) + "NEEDLE\n"
	writeFile(t, path, content)
	require.Greater(t, len(content), mmapThreshold)

	matcher, err := NewMatcher("needle", false)
	require.NoError(t, err)
	ctx := scanctx.New(root, false)
	entries, total, err := Process(ctx, []string{path}, root, Options{Matcher: matcher, Mode: ModeSearch})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, entries, 1)
}
