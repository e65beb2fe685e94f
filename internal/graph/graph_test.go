package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codescan/internal/analyzers"
	"github.com/standardbeagle/codescan/internal/scanctx"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuild_GoModulePrefixedImportResolvesToDirectoryForm(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "go.mod"), "module example.com/widget\n\ngo 1.24\n")
	write(t, filepath.Join(root, "main.go"), "package main\n\nimport \"example.com/widget/internal/util\"\n\nfunc main() {}\n")
	write(t, filepath.Join(root, "internal", "util", "util.go"), "package util\n")

	files := []string{
		filepath.Join(root, "main.go"),
		filepath.Join(root, "internal", "util", "util.go"),
	}

	ctx := scanctx.New(root, false)
	entries, err := Build(ctx, files, root, analyzers.NewRegistry())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "main.go", entries[1].File)
	require.Contains(t, entries[1].Imports, "internal/util/util.go")
}

func TestBuild_RustModAndUseCrateResolveAgainstProject(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "src", "main.rs"), "mod cli;\nuse crate::util::X;\n\nfn main() {}\n")
	write(t, filepath.Join(root, "src", "cli.rs"), "pub fn run() {}\n")
	write(t, filepath.Join(root, "src", "util.rs"), "pub struct X;\n")

	files := []string{
		filepath.Join(root, "src", "main.rs"),
		filepath.Join(root, "src", "cli.rs"),
		filepath.Join(root, "src", "util.rs"),
	}

	ctx := scanctx.New(root, false)
	entries, err := Build(ctx, files, root, analyzers.NewRegistry())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Equal(t, "src/cli.rs", entries[0].File)
	require.Equal(t, "src/main.rs", entries[1].File)
	require.Equal(t, []string{"src/cli.rs", "src/util.rs"}, entries[1].Imports)
}

func TestBuild_RustModDeclarationProbesBothForms(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "lib.rs"), "mod foo;\n")
	write(t, filepath.Join(root, "foo.rs"), "pub fn hi() {}\n")

	files := []string{
		filepath.Join(root, "lib.rs"),
		filepath.Join(root, "foo.rs"),
	}

	ctx := scanctx.New(root, false)
	entries, err := Build(ctx, files, root, analyzers.NewRegistry())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "lib.rs", entries[1].File)
	require.Equal(t, []string{"foo.rs"}, entries[1].Imports)
}

func TestBuild_UnclaimedExtensionSkipped(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "README.md"), "# hi\n")

	ctx := scanctx.New(root, false)
	entries, err := Build(ctx, []string{filepath.Join(root, "README.md")}, root, analyzers.NewRegistry())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestBuild_SortsEntriesByFile(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "z.rs"), "fn z() {}\n")
	write(t, filepath.Join(root, "a.rs"), "fn a() {}\n")

	ctx := scanctx.New(root, false)
	entries, err := Build(ctx, []string{
		filepath.Join(root, "z.rs"),
		filepath.Join(root, "a.rs"),
	}, root, analyzers.NewRegistry())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a.rs", entries[0].File)
	require.Equal(t, "z.rs", entries[1].File)
}
