package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter_DefaultsExcludeCommonDirectories(t *testing.T) {
	f := NewFilter(true, nil)
	require.True(t, f.IsExcluded("node_modules"))
	require.True(t, f.IsExcluded(".GIT"))
	require.False(t, f.IsExcluded("src"))
}

func TestFilter_NoDefaultsOnlyHonorsAdditions(t *testing.T) {
	f := NewFilter(false, []string{"scratch"})
	require.False(t, f.IsExcluded("node_modules"))
	require.True(t, f.IsExcluded("Scratch"))
}

func TestExtensionSet_NormalizesDotAndCase(t *testing.T) {
	s := NewExtensionSet(false, []string{"RS", ".Go"})
	require.True(t, s.Has(".rs"))
	require.True(t, s.Has("go"))
	require.False(t, s.Has(".py"))
}

func TestExtensionSet_Defaults(t *testing.T) {
	s := NewExtensionSet(true, nil)
	require.True(t, s.Has(".md"))
	require.False(t, s.Has(".exe"))
}

func TestLoadFileConfig_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadFileConfig(filepath.Join(t.TempDir(), ".codescan.kdl"))
	require.NoError(t, err)
	require.Empty(t, cfg.Exclude)
	require.False(t, cfg.NoDefaults)
}

func TestLoadFileConfig_ParsesExcludeAndExtensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".codescan.kdl")
	kdl := "exclude \"scratch\" \"tmp\"\nextensions \".zig\"\nno-defaults true\n"
	require.NoError(t, os.WriteFile(path, []byte(kdl), 0o644))

	cfg, err := LoadFileConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"scratch", "tmp"}, cfg.Exclude)
	require.Equal(t, []string{".zig"}, cfg.Extensions)
	require.True(t, cfg.NoDefaults)
}

func TestDetectBuildExclusions_TsconfigOutDir(t *testing.T) {
	dir := t.TempDir()
	tsconfig := `{"compilerOptions": {"outDir": "./generated"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte(tsconfig), 0o644))

	names := DetectBuildExclusions(dir)
	require.Contains(t, names, "generated")
}

func TestDetectBuildExclusions_NothingDeclared(t *testing.T) {
	require.Empty(t, DetectBuildExclusions(t.TempDir()))
}
