// Package analyzers implements the language-pluggable import and symbol
// extractors. A language binding may implement either capability
// interface, both, or neither; selection is by file extension, at most
// one handler per capability per extension.
package analyzers

import "github.com/standardbeagle/codescan/internal/envelope"

// ImportRef is a raw, language-specific import reference, before graph
// resolution. A reference names either a single file (forward-slash;
// root-relative, or absolute when derived from an absolute filePath) or
// — with a trailing "/" — a directory prefix whose every project file
// should be considered imported. The graph orchestrator normalizes
// absolute references to root-relative form before resolving them.
type ImportRef string

// IsDir reports whether ref is a directory-prefix reference.
func (r ImportRef) IsDir() bool {
	return len(r) > 0 && r[len(r)-1] == '/'
}

// ImportExtractor extracts raw import references from one file. Multiple
// candidate refs may be returned for the same logical import (e.g. Rust's
// `mod x;` probing both `x.rs` and `x/mod.rs`) — the graph orchestrator
// resolves each independently against the project file set and keeps
// whichever exist.
type ImportExtractor interface {
	// Extensions lists the file extensions (dotted, lower case) this
	// extractor claims.
	Extensions() []string
	// ExtractImports returns the raw import references found in
	// content, which came from filePath (needed by analyzers — Go in
	// particular — that resolve relative to the file's location or to
	// a module root discovered by walking up from it).
	ExtractImports(content, filePath string) []ImportRef
}

// SymbolExtractor extracts symbol declarations from one file's content.
// The orchestrator, not the extractor, stamps the owning file path onto
// each returned envelope.SymbolEntry.
type SymbolExtractor interface {
	// Extensions lists the file extensions (dotted, lower case) this
	// extractor claims.
	Extensions() []string
	// ExtractSymbols returns the symbols declared in content, in the
	// order they appear (line ascending).
	ExtractSymbols(content string) []envelope.SymbolEntry
}
