// Command codescan is a single-binary source-tree scanner: one
// invocation selects a mode (tree, glob, find, lines, graph, symbols,
// count, or stats) and emits one structured OutputEnvelope as YAML or
// JSON.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/codescan/internal/config"
	"github.com/standardbeagle/codescan/internal/envelope"
	"github.com/standardbeagle/codescan/internal/lines"
	"github.com/standardbeagle/codescan/internal/orchestrate"
	"github.com/standardbeagle/codescan/internal/output"
	"github.com/standardbeagle/codescan/internal/scanctx"
	"github.com/standardbeagle/codescan/internal/scanerrors"
	"github.com/standardbeagle/codescan/internal/version"
)

func main() {
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Aliases: []string{"V"}, Usage: "print the version"}
	app := &cli.App{
		Name:                   "codescan",
		Usage:                  "scan a source tree and emit a structured envelope (tree/glob/find/lines/graph/symbols/count/stats)",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "root directory to scan", Value: "."},
			&cli.StringSliceFlag{Name: "glob", Aliases: []string{"g"}, Usage: "glob pattern(s) to list matching files"},
			&cli.StringFlag{Name: "find", Aliases: []string{"f"}, Usage: "pattern to search file contents for"},
			&cli.StringSliceFlag{Name: "lines", Usage: "space-separated path:start:end range specs"},
			&cli.BoolFlag{Name: "graph", Usage: "emit the project-internal import graph"},
			&cli.BoolFlag{Name: "symbols", Aliases: []string{"s"}, Usage: "extract language-level symbol declarations"},
			&cli.BoolFlag{Name: "count", Aliases: []string{"c"}, Usage: "count matching lines per file (requires --find)"},
			&cli.BoolFlag{Name: "all", Usage: "in --count mode, include files with zero matches (default: suppressed)"},
			&cli.BoolFlag{Name: "stats", Aliases: []string{"S"}, Usage: "emit per-extension codebase statistics"},
			&cli.BoolFlag{Name: "regex", Aliases: []string{"E"}, Usage: "treat --find as a regular expression"},
			&cli.IntFlag{Name: "pad", Usage: "context lines around each match", Value: 0},
			&cli.StringFlag{Name: "line-numbers", Usage: `"off" to suppress "{n}.  " line-number prefixes`, Value: "on"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"L"}, Usage: "cap the number of file entries in output"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "additional directory/file basenames to exclude"},
			&cli.BoolFlag{Name: "no-defaults", Usage: "suppress the built-in exclusion defaults"},
			&cli.Float64Flag{Name: "timeout", Usage: "cancel and emit partial results after N seconds"},
			&cli.StringFlag{Name: "format", Aliases: []string{"F"}, Usage: "yaml or json", Value: "yaml"},
			&cli.BoolFlag{Name: "json", Usage: "shorthand for --format json"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the envelope to a file instead of stdout"},
			&cli.StringFlag{Name: "config", Usage: "path to an optional .codescan.kdl config file", Value: ".codescan.kdl"},
			&cli.BoolFlag{Name: "verbose", Usage: "stamp meta.scanID and log a per-scan summary line to stderr"},
			&cli.StringFlag{Name: "color", Usage: "auto, always, or never (affects only stderr error banners)", Value: "auto"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		if cfgErr, ok := err.(*scanerrors.ConfigError); ok {
			writeErrorEnvelope(cfgErr)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	switch c.String("color") {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	root, err := filepath.Abs(c.String("dir"))
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindConfig, "failed to resolve --dir", err)
	}
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		return scanerrors.NewConfigError(scanerrors.KindNotFound, fmt.Sprintf("directory not found: %s", root), statErr)
	}

	fileCfg, err := config.LoadFileConfig(filepath.Join(root, c.String("config")))
	if err != nil {
		return scanerrors.NewConfigError(scanerrors.KindConfig, "failed to load config", err)
	}

	noDefaults := c.Bool("no-defaults") || fileCfg.NoDefaults
	exclude := append(append([]string{}, fileCfg.Exclude...), c.StringSlice("exclude")...)
	exclude = append(exclude, config.DetectBuildExclusions(root)...)
	filter := config.NewFilter(!noDefaults, exclude)
	exts := config.NewExtensionSet(!noDefaults, fileCfg.Extensions)

	opts := orchestrate.Options{
		Root:        root,
		Filter:      filter,
		Extensions:  exts,
		Globs:       c.StringSlice("glob"),
		FindPattern: c.String("find"),
		UseRegex:    c.Bool("regex"),
		Pad:         c.Int("pad"),
		LineNumbers: c.String("line-numbers") != "off",
		Limit:       c.Int("limit"),
		AllCounts:   c.Bool("all"),
		Timeout:     time.Duration(c.Float64("timeout") * float64(time.Second)),
		Verbose:     c.Bool("verbose"),
	}

	lineRaws := c.StringSlice("lines")
	hasLines := len(lineRaws) > 0
	hasGraph := c.Bool("graph")
	hasSymbols := c.Bool("symbols")
	hasStats := c.Bool("stats")
	hasFind := c.String("find") != ""
	hasCount := c.Bool("count")
	hasGlob := len(c.StringSlice("glob")) > 0

	if hasCount && !hasFind {
		return scanerrors.NewConfigError(scanerrors.KindConfig, "--count requires --find", nil)
	}

	switch {
	case hasLines:
		specs, err := lines.ParseSpecs(lineRaws)
		if err != nil {
			return err
		}
		opts.Mode = orchestrate.ModeLines
		opts.LineSpecs = specs
	case hasGraph:
		opts.Mode = orchestrate.ModeGraph
	case hasSymbols:
		opts.Mode = orchestrate.ModeSymbols
	case hasStats:
		opts.Mode = orchestrate.ModeStats
	case hasFind && hasCount:
		opts.Mode = orchestrate.ModeCount
	case hasFind:
		opts.Mode = orchestrate.ModeFind
	case hasGlob:
		opts.Mode = orchestrate.ModeGlob
	default:
		opts.Mode = orchestrate.ModeTree
	}

	ctx := scanctx.New(root, opts.Verbose)
	stopOnSignal := watchInterrupt(ctx)
	defer stopOnSignal()

	env, runErr := orchestrate.Run(ctx, opts)
	if runErr != nil {
		if cfgErr, ok := runErr.(*scanerrors.ConfigError); ok {
			return cfgErr
		}
		return scanerrors.NewConfigError(scanerrors.KindConfig, runErr.Error(), runErr)
	}

	format := output.FormatYAML
	if c.Bool("json") || c.String("format") == "json" {
		format = output.FormatJSON
	}

	if writeErr := writeEnvelope(env, format, c.String("output")); writeErr != nil {
		return scanerrors.NewConfigError(scanerrors.KindConfig, "failed to write output", writeErr)
	}

	switch {
	case ctx.TimedOut():
		os.Exit(2)
	case ctx.Cancelled():
		os.Exit(130)
	}
	return nil
}

// watchInterrupt wires SIGINT (os.Interrupt) to ctx.Cancel so an in-flight scan
// stops at its next safe point and the envelope is still emitted with
// meta.timeout set. Cancellation behaves the same whether it came from
// the timeout watchdog or an external signal.
func watchInterrupt(ctx *scanctx.Context) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			ctx.Cancel()
		case <-done:
		}
	}()
	return func() {
		close(done)
		signal.Stop(sigCh)
	}
}

func writeEnvelope(env *envelope.OutputEnvelope, format output.Format, outPath string) error {
	if outPath == "" {
		return output.Write(os.Stdout, env, format)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return output.Write(f, env, format)
}

func writeErrorEnvelope(cfgErr *scanerrors.ConfigError) {
	env := &envelope.OutputEnvelope{Error: cfgErr.Error()}
	banner := color.New(color.FgRed).SprintFunc()
	fmt.Fprintln(os.Stderr, banner("codescan: "+cfgErr.Error()))
	_ = output.Write(os.Stdout, env, output.FormatYAML)
}
