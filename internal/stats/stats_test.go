package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codescan/internal/scanctx"
)

func TestCompute_AggregatesPerExtensionAndTotals(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.go"), "line1\nline2\nline3\n")
	write(t, filepath.Join(root, "b.go"), "line1\n")
	write(t, filepath.Join(root, "c.rs"), "fn main() {}\n")

	ctx := scanctx.New(root, false)
	result, err := Compute(ctx, []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "b.go"),
		filepath.Join(root, "c.rs"),
	}, root)
	require.NoError(t, err)

	require.Equal(t, 3, result.Totals.Files)
	require.Equal(t, int64(5), result.Totals.Lines)

	require.Len(t, result.Languages, 2)
	require.Equal(t, "go", result.Languages[0].Extension)
	require.Equal(t, 2, result.Languages[0].Files)
	require.Equal(t, int64(4), result.Languages[0].Lines)
	require.Equal(t, "rs", result.Languages[1].Extension)
}

func TestCompute_LargestSortedDescendingBySize(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "small.go"), "x\n")
	write(t, filepath.Join(root, "big.go"), "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx\n")

	ctx := scanctx.New(root, false)
	result, err := Compute(ctx, []string{
		filepath.Join(root, "small.go"),
		filepath.Join(root, "big.go"),
	}, root)
	require.NoError(t, err)
	require.Len(t, result.Largest, 2)
	require.Equal(t, "big.go", result.Largest[0].Path)
}

func TestCompute_CapsLargestAtTen(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for i := 0; i < 15; i++ {
		p := filepath.Join(root, "f"+string(rune('a'+i))+".go")
		write(t, p, "x\n")
		paths = append(paths, p)
	}

	ctx := scanctx.New(root, false)
	result, err := Compute(ctx, paths, root)
	require.NoError(t, err)
	require.Len(t, result.Largest, 10)
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
