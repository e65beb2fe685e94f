package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codescan/internal/config"
	"github.com/standardbeagle/codescan/internal/scanctx"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanTree_PrunesEmptyAndExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "sub", "helper.go"), "package sub")
	writeFile(t, filepath.Join(root, "sub", "README.txt"), "not source")
	writeFile(t, filepath.Join(root, "empty_dir", ".keep"), "")
	writeFile(t, filepath.Join(root, "node_modules", "pkg.js"), "console.log(1)")

	ctx := scanctx.New(root, false)
	filter := config.NewFilter(true, nil)
	exts := config.NewExtensionSet(true, nil)

	tree, err := ScanTree(ctx, root, filter, exts)
	require.NoError(t, err)
	require.Contains(t, tree.Files, "main.go")

	found := false
	for _, child := range tree.Children {
		if child.Name == "sub" {
			found = true
			require.Equal(t, []string{"helper.go"}, child.Files)
		}
		require.NotEqual(t, "empty_dir", child.Name)
		require.NotEqual(t, "node_modules", child.Name)
	}
	require.True(t, found, "expected sub/ to survive pruning")
}

func TestScanTree_CaseInsensitiveSort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Zeta.go"), "package main")
	writeFile(t, filepath.Join(root, "alpha.go"), "package main")
	writeFile(t, filepath.Join(root, "Beta.go"), "package main")

	ctx := scanctx.New(root, false)
	filter := config.NewFilter(true, nil)
	exts := config.NewExtensionSet(true, nil)

	tree, err := ScanTree(ctx, root, filter, exts)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha.go", "Beta.go", "Zeta.go"}, tree.Files)
}

func TestScanTree_UnreadableDirSkippedSilently(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.go"), "package main")
	blocked := filepath.Join(root, "blocked")
	require.NoError(t, os.MkdirAll(blocked, 0o000))
	defer os.Chmod(blocked, 0o755)

	ctx := scanctx.New(root, false)
	filter := config.NewFilter(true, nil)
	exts := config.NewExtensionSet(true, nil)

	tree, err := ScanTree(ctx, root, filter, exts)
	require.NoError(t, err)
	require.Contains(t, tree.Files, "ok.go")
}

func TestFlatFind_FiltersByGlobAndExclusion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package main")
	writeFile(t, filepath.Join(root, "b.rs"), "fn main() {}")
	writeFile(t, filepath.Join(root, "vendor", "c.go"), "package vendor")

	ctx := scanctx.New(root, false)
	filter := config.NewFilter(true, nil)

	got, err := FlatFind(ctx, root, []string{"*.go"}, filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, filepath.Join(root, "a.go"), got[0])
}

func TestFlatFind_CancelledReturnsPartial(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package main")

	ctx := scanctx.New(root, false)
	ctx.Cancel()
	filter := config.NewFilter(true, nil)

	got, err := FlatFind(ctx, root, nil, filter)
	require.NoError(t, err)
	require.Empty(t, got)
}
