package rangemerge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge_AdjacentIntervalsCombine(t *testing.T) {
	got := Merge([]int{2, 5}, 1, 20)
	require.Equal(t, []Interval{{Start: 1, End: 6}}, got)
}

func TestMerge_DisjointIntervalsStaySeparate(t *testing.T) {
	got := Merge([]int{2, 20}, 1, 30)
	require.Equal(t, []Interval{{Start: 1, End: 3}, {Start: 19, End: 21}}, got)
}

func TestMerge_ClampsToFileBounds(t *testing.T) {
	got := Merge([]int{0, 9}, 3, 10)
	require.Equal(t, []Interval{{Start: 0, End: 3}, {Start: 6, End: 9}}, got)
}

func TestMerge_ZeroPadKeepsExactLines(t *testing.T) {
	got := Merge([]int{1, 3, 4}, 0, 10)
	require.Equal(t, []Interval{{Start: 1, End: 1}, {Start: 3, End: 4}}, got)
}

func TestMerge_Empty(t *testing.T) {
	require.Nil(t, Merge(nil, 2, 10))
}
