// Package rangemerge implements the interval-merging rule shared by the
// content processor and the line extractor (which always passes pad 0):
// pad each match index into an interval, then collapse overlapping or
// adjacent intervals into a minimal disjoint, sorted set.
package rangemerge

// Interval is an inclusive, 0-based [start, end] line range.
type Interval struct {
	Start int
	End   int
}

// Merge forms, for each 0-based index in matches (ascending order), the
// interval [max(0,i-pad), min(n-1,i+pad)], then merges any interval
// whose start is <= the previous interval's end + 1 into that interval.
func Merge(matches []int, pad, n int) []Interval {
	if len(matches) == 0 {
		return nil
	}
	out := make([]Interval, 0, len(matches))
	for _, i := range matches {
		start := i - pad
		if start < 0 {
			start = 0
		}
		end := i + pad
		if end > n-1 {
			end = n - 1
		}
		if len(out) > 0 && start <= out[len(out)-1].End+1 {
			if end > out[len(out)-1].End {
				out[len(out)-1].End = end
			}
			continue
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out
}
