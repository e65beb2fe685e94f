// Package scanner implements the parallel directory walk that produces
// either a pruned ScanResult tree or a flat list of candidate file
// paths.
package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/standardbeagle/codescan/internal/config"
	"github.com/standardbeagle/codescan/internal/envelope"
	"github.com/standardbeagle/codescan/internal/globmatch"
	"github.com/standardbeagle/codescan/internal/scanctx"
)

// treeWorkerLimit bounds the directory-traversal worker pool to the
// host's logical processor count, as opposed to content search's 2x
// cap.
func treeWorkerLimit() int64 {
	n := int64(runtime.GOMAXPROCS(0))
	if n < 1 {
		n = 1
	}
	return n
}

// ScanTree walks root and returns the pruned directory tree: a node
// survives only if it or a descendant holds a recognized source file.
// Unreadable directories are skipped silently; cancellation returns
// whatever has been accumulated so far.
//
// Fan-out is unbounded in branching — every non-excluded subdirectory is
// dispatched — but actual concurrent execution is capped by a semaphore
// shared across the whole walk, sized to the host's logical processor
// count.
func ScanTree(ctx *scanctx.Context, root string, filter *config.Filter, exts *config.ExtensionSet) (*envelope.ScanResult, error) {
	sem := semaphore.NewWeighted(treeWorkerLimit())
	node, err := scanDir(ctx, sem, root, filter, exts)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = &envelope.ScanResult{Name: filepath.Base(root)}
	}
	return node, nil
}

// scanDir scans a single directory's immediate files and recurses into
// its non-excluded subdirectories, bounding concurrent recursion with
// sem. It returns nil if the directory and all its descendants carry no
// recognized source file — the prune rule.
func scanDir(ctx *scanctx.Context, sem *semaphore.Weighted, dir string, filter *config.Filter, exts *config.ExtensionSet) (*envelope.ScanResult, error) {
	if ctx.Cancelled() {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories are skipped silently; they never abort
		// the walk.
		return nil, nil
	}

	node := &envelope.ScanResult{Name: filepath.Base(dir)}

	var subdirNames []string
	for _, e := range entries {
		if ctx.Cancelled() {
			break
		}
		name := e.Name()
		if e.IsDir() {
			if filter.IsExcluded(name) {
				continue
			}
			subdirNames = append(subdirNames, name)
			continue
		}
		if exts.Has(filepath.Ext(name)) && !filter.IsExcluded(name) {
			node.Files = append(node.Files, name)
		}
	}

	// Dispatch each subdirectory to a worker when a permit is free,
	// otherwise recurse inline. A goroutine never blocks on a permit
	// while its parent holds one, so a tree deeper than the pool size
	// cannot wedge the walk.
	results := make([]*envelope.ScanResult, len(subdirNames))
	g := &errgroup.Group{}
	for idx, name := range subdirNames {
		idx, name := idx, name
		sub := filepath.Join(dir, name)
		if sem.TryAcquire(1) {
			g.Go(func() error {
				defer sem.Release(1)
				child, err := scanDir(ctx, sem, sub, filter, exts)
				if err != nil {
					return err
				}
				results[idx] = child
				return nil
			})
			continue
		}
		child, err := scanDir(ctx, sem, sub, filter, exts)
		if err != nil {
			return nil, err
		}
		results[idx] = child
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, child := range results {
		if child == nil {
			continue
		}
		if len(child.Files) == 0 && len(child.Children) == 0 {
			continue
		}
		node.Children = append(node.Children, *child)
	}

	sort.Slice(node.Children, func(i, j int) bool {
		return strings.ToLower(node.Children[i].Name) < strings.ToLower(node.Children[j].Name)
	})
	sort.Slice(node.Files, func(i, j int) bool {
		return strings.ToLower(node.Files[i]) < strings.ToLower(node.Files[j])
	})

	if len(node.Files) == 0 && len(node.Children) == 0 {
		return nil, nil
	}
	return node, nil
}

// FlatFind walks root and returns every candidate file path: not
// excluded, and matching at least one of globs (basename match only;
// globs never cross separators). When globs is empty, every
// non-excluded file is a candidate — callers that want the
// source-extensions filter apply it themselves rather than relying on a
// "*.*" sentinel pattern.
func FlatFind(ctx *scanctx.Context, root string, globs []string, filter *config.Filter) ([]string, error) {
	sem := semaphore.NewWeighted(treeWorkerLimit())
	var (
		mu  sync.Mutex
		out []string
	)

	var walk func(dir string) error
	walk = func(dir string) error {
		if ctx.Cancelled() {
			return nil
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}

		var subdirs []string
		for _, e := range entries {
			if ctx.Cancelled() {
				return nil
			}
			name := e.Name()
			if filter.IsExcluded(name) {
				continue
			}
			full := filepath.Join(dir, name)
			if e.IsDir() {
				subdirs = append(subdirs, full)
				continue
			}
			if len(globs) == 0 || globmatch.MatchesAny(name, globs) {
				mu.Lock()
				out = append(out, full)
				mu.Unlock()
			}
		}

		g := &errgroup.Group{}
		for _, sub := range subdirs {
			sub := sub
			if sem.TryAcquire(1) {
				g.Go(func() error {
					defer sem.Release(1)
					return walk(sub)
				})
				continue
			}
			if err := walk(sub); err != nil {
				return err
			}
		}
		return g.Wait()
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
