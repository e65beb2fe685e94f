package orchestrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codescan/internal/config"
	"github.com/standardbeagle/codescan/internal/scanctx"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func baseOpts(root string) Options {
	return Options{
		Root:        root,
		Filter:      config.NewFilter(true, nil),
		Extensions:  config.NewExtensionSet(true, nil),
		LineNumbers: true,
	}
}

func TestRun_DefaultModeIsTree(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.go"), "package a\n")

	opts := baseOpts(root)
	env, err := Run(scanctx.New(root, false), opts)
	require.NoError(t, err)
	require.NotNil(t, env.Tree)
	require.Equal(t, 1, env.Meta.FilesScanned)
}

func TestRun_FindModeReturnsMatchingFiles(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.go"), "package a\n\nfunc Target() {}\n")
	write(t, filepath.Join(root, "b.go"), "package b\n")

	opts := baseOpts(root)
	opts.Mode = ModeFind
	opts.FindPattern = "Target"
	env, err := Run(scanctx.New(root, false), opts)
	require.NoError(t, err)
	require.Len(t, env.Files, 1)
	require.Equal(t, "a.go", env.Files[0].Path)
}

func TestRun_CountModeRequiresNoFlagHandlingHere(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.go"), "x Target\nTarget again\n")

	opts := baseOpts(root)
	opts.Mode = ModeCount
	opts.FindPattern = "Target"
	env, err := Run(scanctx.New(root, false), opts)
	require.NoError(t, err)
	require.Len(t, env.Files, 1)
	require.NotNil(t, env.Files[0].Count)
	require.Equal(t, 2, *env.Files[0].Count)
	require.Equal(t, 2, env.Meta.TotalMatches)
}

func TestRun_StatsMode(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.go"), "line1\nline2\n")

	opts := baseOpts(root)
	opts.Mode = ModeStats
	env, err := Run(scanctx.New(root, false), opts)
	require.NoError(t, err)
	require.NotNil(t, env.Stats)
	require.Equal(t, 1, env.Stats.Totals.Files)
}

func TestRun_SymbolsModeStampsLanguage(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.go"), "package a\n\nfunc Widget() {}\n")

	opts := baseOpts(root)
	opts.Mode = ModeSymbols
	env, err := Run(scanctx.New(root, false), opts)
	require.NoError(t, err)
	require.Len(t, env.Symbols, 1)
	require.Equal(t, "go", env.Symbols[0].Language)
	require.Equal(t, "Widget", env.Symbols[0].Symbols[0].Name)
}

func TestRun_LimitTruncatesFiles(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.go"), "x\n")
	write(t, filepath.Join(root, "b.go"), "x\n")

	opts := baseOpts(root)
	opts.Mode = ModeGlob
	opts.Globs = []string{"*.go"}
	opts.Limit = 1
	env, err := Run(scanctx.New(root, false), opts)
	require.NoError(t, err)
	require.Len(t, env.Files, 1)
}
