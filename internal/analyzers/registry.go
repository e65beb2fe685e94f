package analyzers

import "strings"

// Registry is a per-scan capability lookup keyed by file extension. A
// fresh Registry is built once per invocation so any stateful extractor
// (the Go import extractor's go.mod memoization) never leaks across
// scans.
type Registry struct {
	imports map[string]ImportExtractor
	symbols map[string]SymbolExtractor
}

// NewRegistry builds a Registry pre-populated with every shipped
// language binding: Rust, TS/JS, C#, Go, Python, Java, Kotlin, Ruby.
func NewRegistry() *Registry {
	r := &Registry{
		imports: make(map[string]ImportExtractor),
		symbols: make(map[string]SymbolExtractor),
	}
	r.registerBoth(NewRustAnalyzer())
	r.registerBoth(NewTSJSAnalyzer())
	r.registerBoth(NewCSharpAnalyzer())
	r.registerBoth(NewGoAnalyzer())
	r.registerBoth(NewPythonAnalyzer())
	r.registerBoth(NewJavaAnalyzer())
	r.registerBoth(NewKotlinAnalyzer())
	r.registerBoth(NewRubyAnalyzer())
	return r
}

// dualAnalyzer is satisfied by every language binding in this package:
// each implements both capability interfaces, even when one side (e.g.
// Python's ExtractImports) does most of the work and the other is thin.
type dualAnalyzer interface {
	ImportExtractor
	SymbolExtractor
}

func (r *Registry) registerBoth(a dualAnalyzer) {
	r.RegisterImportExtractor(a)
	r.RegisterSymbolExtractor(a)
}

// RegisterImportExtractor registers e for every extension it claims.
// A later registration for the same extension overrides an earlier one
// ("at most one handler per capability per extension").
func (r *Registry) RegisterImportExtractor(e ImportExtractor) {
	for _, ext := range e.Extensions() {
		r.imports[normalize(ext)] = e
	}
}

// RegisterSymbolExtractor registers e for every extension it claims.
func (r *Registry) RegisterSymbolExtractor(e SymbolExtractor) {
	for _, ext := range e.Extensions() {
		r.symbols[normalize(ext)] = e
	}
}

// ImportExtractorFor returns the extractor claiming ext, if any. Files
// whose extension is claimed by no handler are silently skipped by the
// affected mode.
func (r *Registry) ImportExtractorFor(ext string) (ImportExtractor, bool) {
	e, ok := r.imports[normalize(ext)]
	return e, ok
}

// SymbolExtractorFor returns the extractor claiming ext, if any.
func (r *Registry) SymbolExtractorFor(ext string) (SymbolExtractor, bool) {
	e, ok := r.symbols[normalize(ext)]
	return e, ok
}

func normalize(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}
