package analyzers

import (
	"path"
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// RustAnalyzer implements both capability interfaces for .rs files:
// module/use import extraction and fn/struct/enum/trait/type/const/mod/
// impl-method symbol extraction.
type RustAnalyzer struct{}

func NewRustAnalyzer() *RustAnalyzer { return &RustAnalyzer{} }

func (RustAnalyzer) Extensions() []string { return []string{".rs"} }

var (
	rustModRe        = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?mod\s+([A-Za-z_][A-Za-z0-9_]*)\s*;`)
	rustUseCrateRe   = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+crate::([A-Za-z0-9_:]+)`)
	rustUseSuperRe   = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+super::([A-Za-z0-9_:]+)`)
	rustFnRe         = regexp.MustCompile(`^(\s*)(pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustStructRe     = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?struct\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustEnumRe       = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?enum\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustTraitRe      = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?trait\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustTypeRe       = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?type\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustConstRe      = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?const\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustModDeclRe    = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?mod\s+([A-Za-z_][A-Za-z0-9_]*)\s*;`)
	rustImplRe       = regexp.MustCompile(`^\s*impl(?:<[^>]*>)?\s+(?:[A-Za-z_][A-Za-z0-9_:<>]*\s+for\s+)?([A-Za-z_][A-Za-z0-9_]*)`)
)

// ExtractImports recognizes `mod X;` (probing both sibling-file and
// subdirectory-module forms), `use crate::A::B`, and `use super::A`.
func (RustAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	dir := path.Dir(filePath)
	var refs []ImportRef
	for _, line := range strings.Split(content, "\n") {
		if m := rustModRe.FindStringSubmatch(line); m != nil {
			refs = append(refs,
				ImportRef(path.Join(dir, m[1]+".rs")),
				ImportRef(path.Join(dir, m[1], "mod.rs")),
			)
			continue
		}
		if m := rustUseCrateRe.FindStringSubmatch(line); m != nil {
			segs := strings.Split(strings.TrimSuffix(m[1], "::*"), "::")
			if len(segs) > 0 {
				refs = append(refs, ImportRef("src/"+strings.Join(segs, "/")+".rs"))
			}
			// The last segment is usually the imported symbol, not a
			// module: `use crate::util::X` should also probe src/util.rs.
			if len(segs) > 1 {
				refs = append(refs, ImportRef("src/"+strings.Join(segs[:len(segs)-1], "/")+".rs"))
			}
			continue
		}
		if m := rustUseSuperRe.FindStringSubmatch(line); m != nil {
			segs := strings.Split(m[1], "::")
			if len(segs) > 0 {
				refs = append(refs, ImportRef(path.Join(path.Dir(dir), segs[0]+".rs")))
			}
		}
	}
	return refs
}

// ExtractSymbols scans line by line, tracking brace depth at column 0
// to recognize the `impl T [for U]` block an `fn` belongs to.
func (RustAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
	var out []envelope.SymbolEntry
	var implStack []string
	depth := 0

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimLeft(line, " \t")
		indent := len(line) - len(trimmed)

		if m := rustImplRe.FindStringSubmatch(line); m != nil && indent == 0 {
			implStack = append(implStack, m[1])
		}

		switch {
		case rustFnRe.MatchString(line):
			m := rustFnRe.FindStringSubmatch(line)
			kind := "fn"
			var parent string
			vis := rustVisibility(m[2])
			if indent > 0 && len(implStack) > 0 {
				kind = "method"
				parent = implStack[len(implStack)-1]
			}
			out = append(out, envelope.SymbolEntry{
				Kind: kind, Name: m[3], Line: lineNo, Visibility: vis, Parent: parent,
				Signature: trimSignature(line),
			})
		case rustStructRe.MatchString(line):
			m := rustStructRe.FindStringSubmatch(line)
			out = append(out, symbolOf("struct", m[2], lineNo, rustVisibility(m[1]), line))
		case rustEnumRe.MatchString(line):
			m := rustEnumRe.FindStringSubmatch(line)
			out = append(out, symbolOf("enum", m[2], lineNo, rustVisibility(m[1]), line))
		case rustTraitRe.MatchString(line):
			m := rustTraitRe.FindStringSubmatch(line)
			out = append(out, symbolOf("trait", m[2], lineNo, rustVisibility(m[1]), line))
		case rustTypeRe.MatchString(line):
			m := rustTypeRe.FindStringSubmatch(line)
			out = append(out, symbolOf("type", m[2], lineNo, rustVisibility(m[1]), line))
		case rustConstRe.MatchString(line):
			m := rustConstRe.FindStringSubmatch(line)
			out = append(out, symbolOf("const", m[2], lineNo, rustVisibility(m[1]), line))
		case rustModDeclRe.MatchString(line):
			m := rustModDeclRe.FindStringSubmatch(line)
			out = append(out, symbolOf("mod", m[2], lineNo, rustVisibility(m[1]), line))
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if indent == 0 && depth == 0 && len(implStack) > 0 && strings.Contains(line, "}") {
			implStack = implStack[:len(implStack)-1]
		}
	}
	return out
}

func rustVisibility(modifier string) string {
	if strings.TrimSpace(modifier) == "" {
		return ""
	}
	return "pub"
}

func symbolOf(kind, name string, line int, vis, rawLine string) envelope.SymbolEntry {
	return envelope.SymbolEntry{Kind: kind, Name: name, Line: line, Visibility: vis, Signature: trimSignature(rawLine)}
}

// trimSignature trims a declaration line to its content up to the
// opening brace or end of line.
func trimSignature(line string) string {
	line = strings.TrimRight(line, "\r")
	if idx := strings.IndexByte(line, '{'); idx != -1 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
