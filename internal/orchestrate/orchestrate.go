// Package orchestrate implements mode dispatch: the per-mode calls into
// the scanner/content/lines/graph/analyzers/stats components, and
// envelope assembly.
package orchestrate

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/standardbeagle/codescan/internal/analyzers"
	"github.com/standardbeagle/codescan/internal/config"
	"github.com/standardbeagle/codescan/internal/content"
	"github.com/standardbeagle/codescan/internal/envelope"
	"github.com/standardbeagle/codescan/internal/graph"
	"github.com/standardbeagle/codescan/internal/lines"
	"github.com/standardbeagle/codescan/internal/pathnorm"
	"github.com/standardbeagle/codescan/internal/scanctx"
	"github.com/standardbeagle/codescan/internal/scanerrors"
	"github.com/standardbeagle/codescan/internal/scanner"
	"github.com/standardbeagle/codescan/internal/stats"
)

// Mode selects which of the mutually exclusive operations runs. Flag
// priority is lines > graph > symbols > stats > (find+count) > find >
// glob-only > tree.
type Mode int

const (
	ModeTree Mode = iota
	ModeGlob
	ModeFind
	ModeCount
	ModeStats
	ModeSymbols
	ModeGraph
	ModeLines
)

// Options bundles every flag-derived setting a scan needs. Exactly one
// of the mode-selecting fields should be set by the caller (main wires
// this from CLI flags, applying the priority order itself before
// calling Run — Run trusts Mode as already resolved).
type Options struct {
	Root        string
	Mode        Mode
	Filter      *config.Filter
	Extensions  *config.ExtensionSet
	Globs       []string
	FindPattern string
	UseRegex    bool
	Pad         int
	LineNumbers bool
	Limit       int
	AllCounts   bool
	LineSpecs   []lines.Spec
	Timeout     time.Duration
	Verbose     bool
}

// Run dispatches opts.Mode and assembles the resulting OutputEnvelope.
// On cancellation (timeout or external interrupt), whatever was
// accumulated is still returned with Meta.Timeout set. ctx is built by
// the caller (main wires an interrupt signal handler to it, and Run
// starts the opts.Timeout watchdog on the same *scanctx.Context, so
// either source of cancellation is reflected identically here).
func Run(ctx *scanctx.Context, opts Options) (*envelope.OutputEnvelope, error) {
	if opts.Timeout > 0 {
		stop := ctx.WatchTimeout(opts.Timeout)
		defer stop()
	}

	env := &envelope.OutputEnvelope{}
	var err error

	switch opts.Mode {
	case ModeLines:
		env.Files = lines.Extract(ctx, opts.LineSpecs, opts.Root, opts.LineNumbers)
		env.Meta.FilesScanned = len(env.Files)
		env.Meta.FilesMatched = len(env.Files)
	case ModeGraph:
		err = runGraph(ctx, opts, env)
	case ModeSymbols:
		err = runSymbols(ctx, opts, env)
	case ModeStats:
		err = runStats(ctx, opts, env)
	case ModeCount:
		err = runContent(ctx, opts, env, content.ModeCount)
	case ModeFind:
		err = runContent(ctx, opts, env, content.ModeSearch)
	case ModeGlob:
		err = runGlobOnly(ctx, opts, env)
	default:
		err = runTree(ctx, opts, env)
	}

	env.Meta.ElapsedMs = ctx.ElapsedMs()
	if ctx.Cancelled() {
		env.Meta.Timeout = true
	}
	if opts.Verbose {
		env.Meta.ScanID = ctx.ScanID
		log.Printf("scan %s: mode=%d elapsedMs=%d filesScanned=%d", ctx.ScanID, opts.Mode, env.Meta.ElapsedMs, env.Meta.FilesScanned)
	}

	applyLimit(env, opts.Limit)
	return env, err
}

func applyLimit(env *envelope.OutputEnvelope, limit int) {
	if limit <= 0 {
		return
	}
	if len(env.Files) > limit {
		env.Files = env.Files[:limit]
	}
	if len(env.Symbols) > limit {
		env.Symbols = env.Symbols[:limit]
	}
	if len(env.Graph) > limit {
		env.Graph = env.Graph[:limit]
	}
}

func runTree(ctx *scanctx.Context, opts Options, env *envelope.OutputEnvelope) error {
	tree, err := scanner.ScanTree(ctx, opts.Root, opts.Filter, opts.Extensions)
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindNotFound, "failed to scan directory", err)
	}
	env.Tree = tree
	env.Meta.FilesScanned = countTreeFiles(tree)
	return nil
}

func countTreeFiles(n *envelope.ScanResult) int {
	if n == nil {
		return 0
	}
	total := len(n.Files)
	for i := range n.Children {
		total += countTreeFiles(&n.Children[i])
	}
	return total
}

func runGlobOnly(ctx *scanctx.Context, opts Options, env *envelope.OutputEnvelope) error {
	paths, err := scanner.FlatFind(ctx, opts.Root, opts.Globs, opts.Filter)
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindNotFound, "failed to scan directory", err)
	}
	entries := make([]envelope.FileEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, envelope.FileEntry{Path: pathnorm.ToRelative(p, opts.Root)})
	}
	env.Files = entries
	env.Meta.FilesScanned = len(paths)
	env.Meta.FilesMatched = len(paths)
	return nil
}

func runContent(ctx *scanctx.Context, opts Options, env *envelope.OutputEnvelope, mode content.Mode) error {
	matcher, err := content.NewMatcher(opts.FindPattern, opts.UseRegex)
	if err != nil {
		return err
	}

	globs := opts.Globs
	paths, err := scanner.FlatFind(ctx, opts.Root, globs, opts.Filter)
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindNotFound, "failed to scan directory", err)
	}

	entries, totalMatches, err := content.Process(ctx, paths, opts.Root, content.Options{
		Matcher:           matcher,
		Pad:               opts.Pad,
		LineNumbers:       opts.LineNumbers,
		Mode:              mode,
		IncludeZeroCounts: opts.AllCounts,
	})
	if err != nil {
		return err
	}

	env.Files = entries
	env.Meta.FilesScanned = len(paths)
	env.Meta.FilesMatched = len(entries)
	if mode == content.ModeCount {
		env.Meta.TotalMatches = totalMatches
	}
	return nil
}

func runStats(ctx *scanctx.Context, opts Options, env *envelope.OutputEnvelope) error {
	paths, err := scanner.FlatFind(ctx, opts.Root, nil, opts.Filter)
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindNotFound, "failed to scan directory", err)
	}
	paths = filterByExtension(paths, opts.Extensions)

	result, err := stats.Compute(ctx, paths, opts.Root)
	if err != nil {
		return err
	}
	env.Stats = result
	env.Meta.FilesScanned = result.Totals.Files
	env.Meta.FilesMatched = result.Totals.Files
	return nil
}

func runSymbols(ctx *scanctx.Context, opts Options, env *envelope.OutputEnvelope) error {
	paths, err := scanner.FlatFind(ctx, opts.Root, opts.Globs, opts.Filter)
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindNotFound, "failed to scan directory", err)
	}
	if len(opts.Globs) == 0 {
		paths = filterByExtension(paths, opts.Extensions)
	}

	registry := analyzers.NewRegistry()
	var entries []envelope.FileEntry
	for _, p := range paths {
		if ctx.Cancelled() {
			break
		}
		ext := filepath.Ext(p)
		extractor, ok := registry.SymbolExtractorFor(ext)
		if !ok {
			continue
		}
		text, skip, err := content.ReadText(p)
		if err != nil || skip {
			continue
		}
		symbols := extractor.ExtractSymbols(text)
		if len(symbols) == 0 {
			continue
		}
		entries = append(entries, envelope.FileEntry{
			Path:     pathnorm.ToRelative(p, opts.Root),
			Language: languageOf(ext),
			Symbols:  symbols,
		})
	}

	env.Symbols = entries
	env.Meta.FilesScanned = len(paths)
	env.Meta.FilesMatched = len(entries)
	return nil
}

func runGraph(ctx *scanctx.Context, opts Options, env *envelope.OutputEnvelope) error {
	paths, err := scanner.FlatFind(ctx, opts.Root, opts.Globs, opts.Filter)
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindNotFound, "failed to scan directory", err)
	}
	if len(opts.Globs) == 0 {
		paths = filterByExtension(paths, opts.Extensions)
	}

	registry := analyzers.NewRegistry()
	entries, err := graph.Build(ctx, paths, opts.Root, registry)
	if err != nil {
		return err
	}
	env.Graph = entries
	env.Meta.FilesScanned = len(paths)
	env.Meta.FilesMatched = len(entries)
	return nil
}

// languageOf derives the readability-only language tag from a file
// extension: the lower-cased extension with its leading dot stripped.
func languageOf(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func filterByExtension(paths []string, exts *config.ExtensionSet) []string {
	out := paths[:0:0]
	for _, p := range paths {
		if exts.Has(filepath.Ext(p)) {
			out = append(out, p)
		}
	}
	return out
}
