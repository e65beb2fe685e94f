package pathnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToRelative_StripsRootAndUsesForwardSlash(t *testing.T) {
	require.Equal(t, "src/a.go", ToRelative("/repo/src/a.go", "/repo"))
}

func TestToRelative_IdempotentOnAlreadyRelative(t *testing.T) {
	require.Equal(t, "src/a.go", ToRelative("src/a.go", "/repo"))
}

func TestToRelative_OutsideRootFallsBackToCleanedAbsolute(t *testing.T) {
	got := ToRelative("/other/a.go", "/repo")
	require.Equal(t, "/other/a.go", got)
}
