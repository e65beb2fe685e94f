// Package envelope defines the single structured output shape every scan
// mode assembles into: one OutputEnvelope, serialized once by
// internal/output.
package envelope

// OutputEnvelope is the top-level result of a single invocation. Every
// field besides Meta is optional and present only when populated by the
// selected mode.
type OutputEnvelope struct {
	Meta    MetaInfo     `yaml:"meta" json:"meta"`
	Tree    *ScanResult  `yaml:"tree,omitempty" json:"tree,omitempty"`
	Files   []FileEntry  `yaml:"files,omitempty" json:"files,omitempty"`
	Graph   []GraphEntry `yaml:"graph,omitempty" json:"graph,omitempty"`
	Symbols []FileEntry  `yaml:"symbols,omitempty" json:"symbols,omitempty"`
	Stats   *StatsResult `yaml:"stats,omitempty" json:"stats,omitempty"`
	Error   string       `yaml:"error,omitempty" json:"error,omitempty"`
}

// MetaInfo carries run-level accounting. ElapsedMs is always present;
// everything else is populated only when meaningful for the mode that ran.
type MetaInfo struct {
	ElapsedMs     int64  `yaml:"elapsedMs" json:"elapsedMs"`
	Timeout       bool   `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	FilesScanned  int    `yaml:"filesScanned,omitempty" json:"filesScanned,omitempty"`
	FilesMatched  int    `yaml:"filesMatched,omitempty" json:"filesMatched,omitempty"`
	TotalMatches  int    `yaml:"totalMatches,omitempty" json:"totalMatches,omitempty"`
	ScanID        string `yaml:"scanID,omitempty" json:"scanID,omitempty"`
}

// ScanResult is one node of the tree-mode directory hierarchy. A node is
// retained by the scanner only if it or a descendant holds a recognized
// source file.
type ScanResult struct {
	Name     string       `yaml:"name" json:"name"`
	Children []ScanResult `yaml:"children,omitempty" json:"children,omitempty"`
	Files    []string     `yaml:"files,omitempty" json:"files,omitempty"`
}

// FileEntry is one file's contribution to search, count, lines, or symbol
// mode output. At most one of Contents/Chunks/Error/Count/Symbols is set,
// per the mode that produced it.
type FileEntry struct {
	Path     string        `yaml:"path" json:"path"`
	Language string        `yaml:"language,omitempty" json:"language,omitempty"`
	Contents string        `yaml:"contents,omitempty" json:"contents,omitempty"`
	Chunks   []FileChunk   `yaml:"chunks,omitempty" json:"chunks,omitempty"`
	Error    string        `yaml:"error,omitempty" json:"error,omitempty"`
	Count    *int          `yaml:"count,omitempty" json:"count,omitempty"`
	Symbols  []SymbolEntry `yaml:"symbols,omitempty" json:"symbols,omitempty"`
}

// FileChunk is a single contiguous, inclusive line range rendered as one
// content block.
type FileChunk struct {
	StartLine int    `yaml:"startLine" json:"startLine"`
	EndLine   int    `yaml:"endLine" json:"endLine"`
	Content   string `yaml:"content" json:"content"`
}

// GraphEntry is one file's resolved, in-project import set.
type GraphEntry struct {
	File    string   `yaml:"file" json:"file"`
	Imports []string `yaml:"imports" json:"imports"`
}

// SymbolEntry is one language-level declaration extracted from a file.
type SymbolEntry struct {
	Kind       string `yaml:"kind" json:"kind"`
	Name       string `yaml:"name" json:"name"`
	Line       int    `yaml:"line" json:"line"`
	Visibility string `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Parent     string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Signature  string `yaml:"signature" json:"signature"`
}

// StatsResult is the per-extension and aggregate codebase statistics
// produced by stats mode.
type StatsResult struct {
	Languages []LanguageStats `yaml:"languages" json:"languages"`
	Totals    Totals          `yaml:"totals" json:"totals"`
	Largest   []LargestFile   `yaml:"largest,omitempty" json:"largest,omitempty"`
}

// LanguageStats aggregates one file extension across the scanned tree.
type LanguageStats struct {
	Extension string `yaml:"extension" json:"extension"`
	Files     int    `yaml:"files" json:"files"`
	Lines     int64  `yaml:"lines" json:"lines"`
	Bytes     int64  `yaml:"bytes" json:"bytes"`
}

// Totals is the sum of LanguageStats across every extension.
type Totals struct {
	Files int   `yaml:"files" json:"files"`
	Lines int64 `yaml:"lines" json:"lines"`
	Bytes int64 `yaml:"bytes" json:"bytes"`
}

// LargestFile is one entry in the top-10-by-size list.
type LargestFile struct {
	Path  string `yaml:"path" json:"path"`
	Bytes int64  `yaml:"bytes" json:"bytes"`
}
